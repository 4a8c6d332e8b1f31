package http

import (
	"github.com/fuzzlea/bpa-skillswap-v04/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Client-facing notification surface: paginated list, unread count, mark-one
// read, delete-one. No bulk operations, no push; clients poll.

func (h *Handler) GetNotifications(c *fiber.Ctx) error {
	pageSize := c.QueryInt("pageSize", 20)
	pageNumber := c.QueryInt("pageNumber", 1)

	notifications, err := h.notify.GetAll(c.Context(), middleware.UserID(c), pageSize, pageNumber)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(notifications)
}

func (h *Handler) GetUnreadCount(c *fiber.Ctx) error {
	count, err := h.notify.UnreadCount(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"unreadCount": count})
}

func (h *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.notify.MarkRead(c.Context(), middleware.UserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) DeleteNotification(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.notify.Delete(c.Context(), middleware.UserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
