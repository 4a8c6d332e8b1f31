package http

import (
	"log"

	"github.com/fuzzlea/bpa-skillswap-v04/internal/service"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON([]string{"Invalid request body"})
	}

	user, verrs, err := h.auth.Register(c.Context(), &req)
	if err != nil {
		return fail(c, err)
	}
	if len(verrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(verrs)
	}

	log.Printf("✅ [AUTH] Registered user %q", user.UserName)
	return c.JSON(fiber.Map{
		"userName": user.UserName,
		"email":    user.Email,
	})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req struct {
		UserName string `json:"userName"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	token, user, err := h.auth.Login(c.Context(), req.UserName, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"token":    token,
		"roles":    user.Roles(),
		"userName": user.UserName,
	})
}
