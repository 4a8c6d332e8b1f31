package http

import (
	"github.com/fuzzlea/bpa-skillswap-v04/internal/middleware"
	"github.com/fuzzlea/bpa-skillswap-v04/internal/service"
	"github.com/fuzzlea/bpa-skillswap-v04/pkg/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type profileView struct {
	ProfileID     uint           `json:"id"`
	UserID        uuid.UUID      `json:"userId"`
	UserName      *string        `json:"userName"`
	DisplayName   *string        `json:"displayName"`
	Bio           *string        `json:"bio"`
	Location      *string        `json:"location"`
	SkillsOffered []models.Skill `json:"skillsOffered"`
	SkillsWanted  []models.Skill `json:"skillsWanted"`
	Availability  *string        `json:"availability"`
	Contact       *string        `json:"contact"`
}

func toProfileView(p *models.Profile) profileView {
	v := profileView{
		ProfileID:     p.ID,
		UserID:        p.UserID,
		DisplayName:   p.DisplayName,
		Bio:           p.Bio,
		Location:      p.Location,
		SkillsOffered: p.SkillsOffered,
		SkillsWanted:  p.SkillsWanted,
		Availability:  p.Availability,
		Contact:       p.Contact,
	}
	if p.User != nil {
		v.UserName = &p.User.UserName
	}
	if v.SkillsOffered == nil {
		v.SkillsOffered = []models.Skill{}
	}
	if v.SkillsWanted == nil {
		v.SkillsWanted = []models.Skill{}
	}
	return v
}

func (h *Handler) GetAllProfiles(c *fiber.Ctx) error {
	profiles, err := h.profiles.GetAll(c.Context())
	if err != nil {
		return fail(c, err)
	}
	views := make([]profileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, toProfileView(p))
	}
	return c.JSON(views)
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	profile, err := h.profiles.Get(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toProfileView(profile))
}

func (h *Handler) GetMyProfile(c *fiber.Ctx) error {
	profile, err := h.profiles.GetByUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toProfileView(profile))
}

// UpsertMyProfile creates the caller's profile on first POST and updates the
// same row on later ones.
func (h *Handler) UpsertMyProfile(c *fiber.Ctx) error {
	var req service.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	profile, err := h.profiles.Upsert(c.Context(), middleware.UserID(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toProfileView(profile))
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req service.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	profile, err := h.profiles.Update(c.Context(), id, middleware.UserID(c), middleware.IsAdmin(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toProfileView(profile))
}

func (h *Handler) DeleteProfile(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.profiles.Delete(c.Context(), id, middleware.UserID(c), middleware.IsAdmin(c)); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
