// internal/transport/http/handlers.go
package http

import (
	"errors"
	"log"
	"strconv"

	"github.com/fuzzlea/bpa-skillswap-v04/internal/service"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	auth     *service.AuthService
	profiles *service.ProfileService
	skills   *service.SkillService
	sessions *service.SessionService
	ratings  *service.RatingService
	notify   *service.NotifyService
	admin    *service.AdminService
}

func NewHandler(
	auth *service.AuthService,
	profiles *service.ProfileService,
	skills *service.SkillService,
	sessions *service.SessionService,
	ratings *service.RatingService,
	notify *service.NotifyService,
	admin *service.AdminService,
) *Handler {
	return &Handler{
		auth:     auth,
		profiles: profiles,
		skills:   skills,
		sessions: sessions,
		ratings:  ratings,
		notify:   notify,
		admin:    admin,
	}
}

// fail is the single error-translation point: every service error maps to one
// HTTP status + body shape here. Anything that is not a *service.Error is an
// unexpected failure and comes back as an opaque 500.
func fail(c *fiber.Ctx, err error) error {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		status := fiber.StatusInternalServerError
		switch svcErr.Kind {
		case service.KindBadRequest:
			status = fiber.StatusBadRequest
		case service.KindUnauthorized:
			status = fiber.StatusUnauthorized
		case service.KindForbidden:
			status = fiber.StatusForbidden
		case service.KindNotFound:
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{"error": svcErr.Message})
	}

	log.Printf("🔥 [ERROR] %s %s → %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
}

func paramUint(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, service.BadRequest("Invalid " + name)
	}
	return uint(n), nil
}
