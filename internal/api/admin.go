package api

import (
	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (h *handler) login(c *fiber.Ctx) error {
	var in models.LoginInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	result, err := h.services.Auth.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return dataEnvelope(c, fiber.StatusOK, result)
}

func (h *handler) register(c *fiber.Ctx) error {
	var in models.RegisterInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	admin, err := h.services.Auth.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return dataEnvelope(c, fiber.StatusCreated, admin)
}

func (h *handler) me(c *fiber.Ctx) error {
	admin, err := h.services.Auth.Me(c.UserContext(), currentAdmin(c).ID)
	if err != nil {
		return err
	}
	return dataEnvelope(c, fiber.StatusOK, admin)
}

func (h *handler) changePassword(c *fiber.Ctx) error {
	var in models.PasswordChangeInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	if err := h.services.Auth.ChangePassword(c.UserContext(), currentAdmin(c).ID, in); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{}, "message": "Password updated successfully"})
}
