package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sablegrove/sitterly/internal/models"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return validationError(c, "invalid payload")
	}

	user, err := handler.deps.auth.Register(input.Email, input.Password, input.DisplayName)
	if err != nil {
		return serviceError(c, err)
	}

	return handler.respondWithToken(c, &user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return validationError(c, "invalid payload")
	}

	user, err := handler.deps.auth.Login(input.Email, input.Password)
	if err != nil {
		return serviceError(c, err)
	}

	return handler.respondWithToken(c, &user)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-time.Hour),
	})
	return apiSuccess(c, fiber.Map{"logged_out": true})
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	return apiSuccess(c, user)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}

	input := profileInput{}
	if err := c.BodyParser(&input); err != nil {
		return validationError(c, "invalid payload")
	}

	updated, err := handler.deps.auth.UpdateProfile(user.ID, input.DisplayName, input.AvatarURL)
	if err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, updated)
}

func (handler *Handler) respondWithToken(c *fiber.Ctx, user *models.User) error {
	now := time.Now()
	token, err := handler.buildToken(user, defaultTokenTTL, now)
	if err != nil {
		return serviceError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  now.Add(defaultTokenTTL),
	})

	return apiSuccess(c, fiber.Map{"user": user, "token": token})
}
