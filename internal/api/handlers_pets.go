package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sablegrove/sitterly/internal/models"
	"github.com/sablegrove/sitterly/internal/services"
)

func (handler *Handler) CreatePet(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}

	input := petInput{}
	if err := c.BodyParser(&input); err != nil {
		return validationError(c, "invalid payload")
	}
	if input.Name == "" {
		return validationError(c, "pet name is required")
	}
	if input.Species == "" {
		input.Species = models.SpeciesOther
	}

	pet := models.Pet{
		OwnerID:     user.ID,
		CreatorID:   user.ID,
		Name:        input.Name,
		Species:     input.Species,
		Breed:       input.Breed,
		DateOfBirth: input.DateOfBirth,
		ImageURL:    input.ImageURL,
		Note:        input.Note,
	}
	if err := handler.deps.repositories.Pets.Create(&pet); err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, pet)
}

func (handler *Handler) ListPets(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	pets, err := handler.deps.repositories.Pets.ListByOwner(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, pets)
}

func (handler *Handler) UpdatePet(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	petID, err := parseID(c.Params("id"))
	if err != nil {
		return validationError(c, "invalid pet id")
	}

	input := petInput{}
	if err := c.BodyParser(&input); err != nil {
		return validationError(c, "invalid payload")
	}

	updates := map[string]any{
		"breed":         input.Breed,
		"date_of_birth": input.DateOfBirth,
		"image_url":     input.ImageURL,
		"note":          input.Note,
	}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Species != "" {
		updates["species"] = input.Species
	}

	affected, err := handler.deps.repositories.Pets.UpdateOwned(petID, user.ID, updates)
	if err != nil {
		return serviceError(c, err)
	}
	if affected == 0 {
		return serviceError(c, services.ErrPetNotFound)
	}

	pet, err := handler.deps.repositories.Pets.FindByID(petID)
	if err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, pet)
}

// DeletePet removes the pet and cascades its group associations and tasks.
func (handler *Handler) DeletePet(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	petID, err := parseID(c.Params("id"))
	if err != nil {
		return validationError(c, "invalid pet id")
	}

	affected, err := handler.deps.repositories.Pets.DeleteOwned(petID, user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	if affected == 0 {
		return serviceError(c, services.ErrPetNotFound)
	}
	return apiSuccess(c, fiber.Map{"deleted": true})
}
