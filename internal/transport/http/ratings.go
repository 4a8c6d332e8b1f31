package http

import (
	"github.com/fuzzlea/bpa-skillswap-v04/internal/middleware"
	"github.com/fuzzlea/bpa-skillswap-v04/internal/service"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) SubmitRating(c *fiber.Ctx) error {
	var req service.RatingInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	rating, err := h.ratings.Submit(c.Context(), middleware.UserID(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rating)
}

func (h *Handler) GetRatingsForProfile(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	ratings, err := h.ratings.ForProfile(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ratings)
}

func (h *Handler) GetAverageRating(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	avg, err := h.ratings.Average(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"average": avg})
}
