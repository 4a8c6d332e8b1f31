package http

import (
	"log"

	"github.com/fuzzlea/bpa-skillswap-v04/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handler) AdminGetAllUsers(c *fiber.Ctx) error {
	users, err := h.admin.GetAllUsers(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

func (h *Handler) AdminAddUser(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON([]string{"Invalid request body"})
	}
	user, verrs, err := h.admin.AddUser(c.Context(), &req)
	if err != nil {
		return fail(c, err)
	}
	if len(verrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(verrs)
	}

	log.Printf("✅ [ADMIN] Created user %q", user.UserName)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       user.ID,
		"userName": user.UserName,
		"email":    user.Email,
	})
}

func (h *Handler) AdminDeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}
	if err := h.admin.DeleteUser(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) AdminToggleRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}
	var req struct {
		IsAdmin bool `json:"isAdmin"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	user, err := h.admin.SetAdminRole(c.Context(), id, req.IsAdmin)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"id":       user.ID,
		"userName": user.UserName,
		"isAdmin":  user.IsAdmin,
	})
}

func (h *Handler) AdminGetSummary(c *fiber.Ctx) error {
	summary, err := h.admin.GetSummary(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}
