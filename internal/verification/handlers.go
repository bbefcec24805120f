package verification

import (
	"landeed-backend/internal/admins"
	"landeed-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// POST /api/admin/properties/:id/verify — body: {propertyClass}
func (h *Handlers) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest)
	}
	var body struct {
		PropertyClass string `json:"propertyClass"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	admin := admins.GetAdmin(c)
	if admin == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	property, err := h.Service.Approve(c.Context(), id, body.PropertyClass, admin.AdminID)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Property verified successfully", property)
}

// POST /api/admin/properties/:id/reject — body: {rejectionReason}
func (h *Handlers) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest)
	}
	var body struct {
		RejectionReason string `json:"rejectionReason"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	admin := admins.GetAdmin(c)
	if admin == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	property, err := h.Service.Reject(c.Context(), id, body.RejectionReason, admin.AdminID)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Property rejected successfully", property)
}

// GET /api/admin/properties/:status
func (h *Handlers) ListByStatus(c *fiber.Ctx) error {
	data, err := h.Service.ListByStatus(c.Context(), c.Params("status"))
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Properties fetched successfully", data)
}

// GET /api/admin/dashboard
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	stats, err := h.Service.DashboardStats(c.Context())
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Dashboard statistics fetched", stats)
}

func (h *Handlers) mapError(c *fiber.Ctx, err error) error {
	switch err {
	case ErrInvalidClass, ErrInvalidStatus, ErrReasonRequired:
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	case ErrNotFound:
		return response.Error(c, err.Error(), fiber.StatusNotFound)
	case ErrAlreadyReviewed:
		return response.Error(c, err.Error(), fiber.StatusConflict)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
}
