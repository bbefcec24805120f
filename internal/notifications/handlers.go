package notifications

import (
	"landeed-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// GET /api/notifications?email=
func (h *Handlers) List(c *fiber.Ctx) error {
	email := c.Query("email")
	data, err := h.Service.ListForEmail(c.Context(), email)
	if err != nil {
		switch err {
		case ErrEmailRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		case ErrUserNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
		}
	}
	return response.Success(c, "Notifications fetched successfully", data)
}

// POST /api/notifications/:id/read
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid notification id", fiber.StatusBadRequest)
	}
	if err := h.Service.MarkRead(c.Context(), id); err != nil {
		switch err {
		case ErrNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
		}
	}
	return response.Success(c, "Notification marked as read", nil)
}
