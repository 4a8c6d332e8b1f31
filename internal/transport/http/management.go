package http

import (
	"github.com/fuzzlea/bpa-skillswap-v04/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Host-only session management surface under /sessions/:id/management.

func (h *Handler) GetSessionManagement(c *fiber.Ctx) error {
	sessionID, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	view, err := h.sessions.Management(c.Context(), sessionID, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

func (h *Handler) GetAttendees(c *fiber.Ctx) error {
	sessionID, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	attendees, err := h.sessions.Attendees(c.Context(), sessionID, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(attendees)
}

func (h *Handler) VerifyAttendance(c *fiber.Ctx) error {
	sessionID, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	requestID, err := paramUint(c, "requestId")
	if err != nil {
		return fail(c, err)
	}
	request, err := h.sessions.VerifyAttendance(c.Context(), sessionID, requestID, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"id":          request.ID,
		"hasAttended": request.HasAttended,
		"verifiedAt":  request.VerifiedAt,
	})
}

func (h *Handler) UnverifyAttendance(c *fiber.Ctx) error {
	sessionID, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	requestID, err := paramUint(c, "requestId")
	if err != nil {
		return fail(c, err)
	}
	request, err := h.sessions.UnverifyAttendance(c.Context(), sessionID, requestID, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"id":          request.ID,
		"hasAttended": request.HasAttended,
		"verifiedAt":  request.VerifiedAt,
	})
}

func (h *Handler) KickAttendee(c *fiber.Ctx) error {
	sessionID, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	requestID, err := paramUint(c, "requestId")
	if err != nil {
		return fail(c, err)
	}
	request, err := h.sessions.Kick(c.Context(), sessionID, requestID, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Attendee removed from session",
		"id":      request.ID,
		"status":  request.Status,
	})
}
