package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ToggleClaim claims an unclaimed task for the caller or releases the
// caller's existing claim.
func (handler *Handler) ToggleClaim(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	taskID, err := parseID(c.Params("id"))
	if err != nil {
		return validationError(c, "invalid task id")
	}

	task, err := handler.deps.claims.ToggleClaim(taskID, user.ID, time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, task)
}

// ToggleMarkedAsDone marks the caller's claimed task done, or takes the
// caller's own mark back.
func (handler *Handler) ToggleMarkedAsDone(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	taskID, err := parseID(c.Params("id"))
	if err != nil {
		return validationError(c, "invalid task id")
	}

	task, err := handler.deps.claims.ToggleMarkedAsDone(taskID, user.ID, time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, task)
}
