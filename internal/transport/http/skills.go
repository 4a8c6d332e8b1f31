package http

import "github.com/gofiber/fiber/v2"

func (h *Handler) GetAllSkills(c *fiber.Ctx) error {
	skills, err := h.skills.GetAll(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(skills)
}

func (h *Handler) GetSkill(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	skill, err := h.skills.Get(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(skill)
}
