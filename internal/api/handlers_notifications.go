package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const defaultNotificationLimit = 50

func (handler *Handler) ListNotifications(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}

	limit := defaultNotificationLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return validationError(c, "invalid limit")
		}
		limit = parsed
	}

	notifications, err := handler.deps.notifications.ListForUser(user.ID, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, notifications)
}

func (handler *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	notificationID, err := parseID(c.Params("id"))
	if err != nil {
		return validationError(c, "invalid notification id")
	}

	if err := handler.deps.notifications.MarkRead(notificationID, user.ID); err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, fiber.Map{"read": true})
}
