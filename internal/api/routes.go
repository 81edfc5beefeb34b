package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Get("/profile", handler.AuthRequired, handler.GetProfile)
	api.Patch("/profile", handler.AuthRequired, handler.UpdateProfile)

	tasks := api.Group("/tasks", handler.AuthRequired)
	tasks.Get("", handler.GetTasks)
	tasks.Post("", handler.TaskOpAllowed, handler.CreateTask)
	tasks.Patch("/:id", handler.UpdateTask)
	tasks.Delete("/:id", handler.TaskOpAllowed, handler.DeleteTask)
	tasks.Post("/:id/claim", handler.TaskOpAllowed, handler.ToggleClaim)
	tasks.Post("/:id/done", handler.TaskOpAllowed, handler.ToggleMarkedAsDone)
	tasks.Post("/:id/complete", handler.SetTaskCompleted)

	api.Put("/join-group/:code", handler.AuthRequired, handler.JoinGroup)

	groups := api.Group("/groups", handler.AuthRequired)
	groups.Post("", handler.CreateGroup)
	groups.Get("", handler.ListGroups)
	groups.Get("/:id", handler.GetGroup)
	groups.Patch("/:id", handler.UpdateGroup)
	groups.Post("/:id/invites", handler.CreateInvite)
	groups.Get("/:id/invites", handler.ListInvites)
	groups.Post("/:id/pets", handler.AssignPetToGroup)
	groups.Delete("/:id/pets/:petId", handler.UnassignPetFromGroup)
	groups.Post("/:id/members/:userId/approve", handler.ApproveMember)
	groups.Delete("/:id/members/:userId", handler.RemoveMember)

	pets := api.Group("/pets", handler.AuthRequired)
	pets.Post("", handler.CreatePet)
	pets.Get("", handler.ListPets)
	pets.Patch("/:id", handler.UpdatePet)
	pets.Delete("/:id", handler.DeletePet)

	notifications := api.Group("/notifications", handler.AuthRequired)
	notifications.Get("", handler.ListNotifications)
	notifications.Post("/:id/read", handler.MarkNotificationRead)
}
