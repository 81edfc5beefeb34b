package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// JoinGroup redeems an invite code for the caller. Approval-gated codes leave
// the caller pending; otherwise they become a full member immediately.
func (handler *Handler) JoinGroup(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}

	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
	if code == "" {
		return validationError(c, "invite code is required")
	}

	invite, membership, err := handler.deps.invites.Redeem(code, user.ID, time.Now())
	if err != nil {
		return serviceError(c, err)
	}

	return apiSuccess(c, fiber.Map{
		"invite":     invite,
		"membership": membership,
	})
}
