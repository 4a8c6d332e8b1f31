package http

import (
	"time"

	"github.com/fuzzlea/bpa-skillswap-v04/internal/middleware"
	"github.com/fuzzlea/bpa-skillswap-v04/internal/service"
	"github.com/fuzzlea/bpa-skillswap-v04/pkg/models"

	"github.com/gofiber/fiber/v2"
)

type sessionView struct {
	ID              uint          `json:"id"`
	Title           string        `json:"title"`
	Description     *string       `json:"description"`
	Skill           *models.Skill `json:"skill"`
	HostProfileID   uint          `json:"hostProfileId"`
	HostDisplayName *string       `json:"hostDisplayName"`
	ScheduledAt     time.Time     `json:"scheduledAt"`
	DurationMinutes int           `json:"durationMinutes"`
	IsOpen          bool          `json:"isOpen"`
	Requests        []requestView `json:"requests,omitempty"`
}

type requestView struct {
	ID                   uint                 `json:"id"`
	SessionID            uint                 `json:"sessionId"`
	RequesterProfileID   uint                 `json:"requesterProfileId"`
	RequesterDisplayName *string              `json:"requesterDisplayName,omitempty"`
	Message              *string              `json:"message,omitempty"`
	Status               models.RequestStatus `json:"status"`
	CreatedAt            time.Time            `json:"createdAt"`
}

func toSessionView(s *models.Session, withRequests bool) sessionView {
	v := sessionView{
		ID:              s.ID,
		Title:           s.Title,
		Description:     s.Description,
		Skill:           s.Skill,
		HostProfileID:   s.HostProfileID,
		ScheduledAt:     s.ScheduledAt,
		DurationMinutes: s.DurationMinutes,
		IsOpen:          s.IsOpen,
	}
	if s.HostProfile != nil {
		name := s.HostProfile.Name()
		v.HostDisplayName = &name
	}
	if withRequests {
		v.Requests = make([]requestView, 0, len(s.Requests))
		for i := range s.Requests {
			v.Requests = append(v.Requests, toRequestView(&s.Requests[i]))
		}
	}
	return v
}

func toRequestView(r *models.SessionRequest) requestView {
	v := requestView{
		ID:                 r.ID,
		SessionID:          r.SessionID,
		RequesterProfileID: r.RequesterProfileID,
		Message:            r.Message,
		Status:             r.Status,
		CreatedAt:          r.CreatedAt,
	}
	if r.RequesterProfile != nil {
		name := r.RequesterProfile.Name()
		v.RequesterDisplayName = &name
	}
	return v
}

func (h *Handler) GetAllSessions(c *fiber.Ctx) error {
	sessions, err := h.sessions.GetAll(c.Context())
	if err != nil {
		return fail(c, err)
	}
	views := make([]sessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, toSessionView(s, false))
	}
	return c.JSON(views)
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	session, err := h.sessions.Get(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toSessionView(session, true))
}

func (h *Handler) CreateSession(c *fiber.Ctx) error {
	var req service.SessionInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	session, err := h.sessions.Create(c.Context(), middleware.UserID(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSessionView(session, false))
}

func (h *Handler) UpdateSession(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req service.SessionUpdateInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	session, err := h.sessions.Update(c.Context(), id, middleware.UserID(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toSessionView(session, false))
}

func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.sessions.Delete(c.Context(), id, middleware.UserID(c)); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) GetActiveSessionsForProfile(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	sessions, err := h.sessions.ActiveForProfile(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	views := make([]sessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, toSessionView(s, false))
	}
	return c.JSON(views)
}

func (h *Handler) GetMyParticipations(c *fiber.Ctx) error {
	views, err := h.sessions.MyParticipations(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(views)
}

func (h *Handler) RequestJoin(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req struct {
		Message *string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	request, err := h.sessions.RequestJoin(c.Context(), id, middleware.UserID(c), req.Message)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toRequestView(request))
}

func (h *Handler) RespondToRequest(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req struct {
		Accept  bool    `json:"accept"`
		Message *string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	request, err := h.sessions.Respond(c.Context(), id, middleware.UserID(c), req.Accept, req.Message)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toRequestView(request))
}

func (h *Handler) GetPendingRequests(c *fiber.Ctx) error {
	views, err := h.sessions.PendingForHost(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(views)
}
