package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) CreateGroup(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}

	input := groupInput{}
	if err := c.BodyParser(&input); err != nil {
		return validationError(c, "invalid payload")
	}
	if input.Name == "" {
		return validationError(c, "group name is required")
	}

	group, err := handler.deps.groups.Create(user.ID, input.Name, input.Description, input.PetIDs)
	if err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, group)
}

func (handler *Handler) ListGroups(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	groups, err := handler.deps.groups.ListForUser(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, groups)
}

func (handler *Handler) GetGroup(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	groupID, err := parseID(c.Params("id"))
	if err != nil {
		return validationError(c, "invalid group id")
	}

	group, members, err := handler.deps.groups.GetForMember(groupID, user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, fiber.Map{"group": group, "members": members})
}

func (handler *Handler) UpdateGroup(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	groupID, err := parseID(c.Params("id"))
	if err != nil {
		return validationError(c, "invalid group id")
	}

	input := groupInput{}
	if err := c.BodyParser(&input); err != nil {
		return validationError(c, "invalid payload")
	}

	group, err := handler.deps.groups.UpdateDetails(groupID, user.ID, input.Name, input.Description)
	if err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, group)
}

func (handler *Handler) CreateInvite(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	groupID, err := parseID(c.Params("id"))
	if err != nil {
		return validationError(c, "invalid group id")
	}

	input := inviteInput{}
	if err := c.BodyParser(&input); err != nil {
		return validationError(c, "invalid payload")
	}

	invite, err := handler.deps.groups.CreateInvite(
		groupID,
		user.ID,
		input.MaxUses,
		time.Duration(input.TTLHours)*time.Hour,
		input.RequiresApproval,
		time.Now(),
	)
	if err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, invite)
}

func (handler *Handler) ListInvites(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	groupID, err := parseID(c.Params("id"))
	if err != nil {
		return validationError(c, "invalid group id")
	}

	invites, err := handler.deps.groups.ListInvites(groupID, user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, invites)
}

func (handler *Handler) AssignPetToGroup(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	groupID, err := parseID(c.Params("id"))
	if err != nil {
		return validationError(c, "invalid group id")
	}

	input := assignPetInput{}
	if err := c.BodyParser(&input); err != nil || input.PetID == 0 {
		return validationError(c, "pet_id is required")
	}

	if err := handler.deps.groups.AssignPet(groupID, user.ID, input.PetID); err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, fiber.Map{"assigned": true})
}

func (handler *Handler) UnassignPetFromGroup(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	groupID, err := parseID(c.Params("id"))
	if err != nil {
		return validationError(c, "invalid group id")
	}
	petID, err := parseID(c.Params("petId"))
	if err != nil {
		return validationError(c, "invalid pet id")
	}

	if err := handler.deps.groups.UnassignPet(groupID, user.ID, petID); err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, fiber.Map{"unassigned": true})
}

func (handler *Handler) ApproveMember(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	groupID, err := parseID(c.Params("id"))
	if err != nil {
		return validationError(c, "invalid group id")
	}
	memberID, err := parseID(c.Params("userId"))
	if err != nil {
		return validationError(c, "invalid user id")
	}

	if err := handler.deps.groups.ApprovePending(groupID, user.ID, memberID); err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, fiber.Map{"approved": true})
}

func (handler *Handler) RemoveMember(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	groupID, err := parseID(c.Params("id"))
	if err != nil {
		return validationError(c, "invalid group id")
	}
	memberID, err := parseID(c.Params("userId"))
	if err != nil {
		return validationError(c, "invalid user id")
	}

	if err := handler.deps.groups.RemoveMember(groupID, user.ID, memberID); err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, fiber.Map{"removed": true})
}
