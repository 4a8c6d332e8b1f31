// internal/middleware/auth.go
package middleware

import (
	"log"
	"strings"

	"github.com/fuzzlea/bpa-skillswap-v04/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Context keys for user information (string keys for Fiber Locals)
const (
	UserIDKey   = "userID"
	UserNameKey = "userName"
	RolesKey    = "roles"
)

// Protected validates the bearer token and stashes the caller's identity in
// Locals. Token claims are re-validated on every request; the client-side
// decode is UI sugar, not a security boundary.
func Protected(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized: missing bearer token",
			})
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := service.ParseToken(tokenStr, jwtSecret)
		if err != nil {
			log.Printf("[AUTH] ❌ REJECTED | IP=%s | Path=%s | %v", c.IP(), c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized: invalid or expired token",
			})
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized: malformed subject claim",
			})
		}

		c.Locals(UserIDKey, userID)
		c.Locals(UserNameKey, claims.Username)
		c.Locals(RolesKey, claims.Roles)
		return c.Next()
	}
}

// AdminOnly requires the Admin role claim; must run after Protected.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, _ := c.Locals(RolesKey).([]string)
		for _, role := range roles {
			if strings.EqualFold(role, "Admin") {
				return c.Next()
			}
		}
		log.Printf("[ADMIN-AUTH] ❌ REJECTED (no admin) | Roles=%v | Path=%s", roles, c.Path())
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden: admin role required",
		})
	}
}

// UserID returns the authenticated caller's id from Locals.
func UserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(UserIDKey).(uuid.UUID)
	return id
}

// IsAdmin reports whether the caller carries the Admin role.
func IsAdmin(c *fiber.Ctx) bool {
	roles, _ := c.Locals(RolesKey).([]string)
	for _, role := range roles {
		if strings.EqualFold(role, "Admin") {
			return true
		}
	}
	return false
}
