package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sablegrove/sitterly/internal/models"
	"github.com/sablegrove/sitterly/internal/services"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func apiSuccess(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"status": "success", "data": data})
}

func apiError(c *fiber.Ctx, status int, errorType string, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    "error",
		"errorType": errorType,
		"message":   message,
	})
}

func validationError(c *fiber.Ctx, message string) error {
	return apiError(c, fiber.StatusBadRequest, "ValidationError", message)
}

// serviceError maps the service error taxonomy onto wire error types once,
// at the boundary. Unknown errors are logged and become a generic 500.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrPetNotFound),
		errors.Is(err, services.ErrNotificationNotFound):
		return apiError(c, fiber.StatusNotFound, "NotFound", err.Error())
	case errors.Is(err, services.ErrAlreadyClaimed):
		return apiError(c, fiber.StatusConflict, "AlreadyClaimed", err.Error())
	case errors.Is(err, services.ErrAlreadyDone):
		return apiError(c, fiber.StatusConflict, "AlreadyDone", err.Error())
	case errors.Is(err, services.ErrAlreadyVerified):
		return apiError(c, fiber.StatusConflict, "AlreadyVerified", err.Error())
	case errors.Is(err, services.ErrNotClaimant):
		return apiError(c, fiber.StatusForbidden, "NotClaimant", err.Error())
	case errors.Is(err, services.ErrOwnTask):
		return apiError(c, fiber.StatusBadRequest, "OwnTask", err.Error())
	case errors.Is(err, services.ErrInviteNotFound):
		return apiError(c, fiber.StatusNotFound, "InviteNotFound", err.Error())
	case errors.Is(err, services.ErrInviteExpired):
		return apiError(c, fiber.StatusGone, "InviteExpired", err.Error())
	case errors.Is(err, services.ErrInviteExhausted):
		return apiError(c, fiber.StatusGone, "InviteExhausted", err.Error())
	case errors.Is(err, services.ErrAlreadyMember):
		return apiError(c, fiber.StatusConflict, "AlreadyMember", err.Error())
	case errors.Is(err, services.ErrInvalidRange):
		return apiError(c, fiber.StatusBadRequest, "InvalidRange", err.Error())
	case errors.Is(err, services.ErrNotGroupOwner):
		return apiError(c, fiber.StatusForbidden, "Unauthorized", err.Error())
	case errors.Is(err, services.ErrPetNotInGroup),
		errors.Is(err, services.ErrNoPendingMember),
		errors.Is(err, services.ErrLastOwner),
		errors.Is(err, services.ErrScheduleMissingDueDate),
		errors.Is(err, services.ErrScheduleMissingRange),
		errors.Is(err, services.ErrScheduleInvertedRange):
		return validationError(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		return apiError(c, fiber.StatusConflict, "ValidationError", err.Error())
	case errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrMissingDisplayName):
		return validationError(c, err.Error())
	}
	log.Printf("unexpected error on %s %s: %v", c.Method(), c.Path(), err)
	return apiError(c, fiber.StatusInternalServerError, "InternalError", "something went wrong")
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
