package admins

import (
	"landeed-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// POST /api/admin/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	result, err := h.Service.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		switch err {
		case ErrEmailPasswordRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		case ErrInvalidCredentials, ErrAccountDisabled:
			return response.Unauthorized(c, "Invalid credentials")
		default:
			return response.Error(c, "Error during login", fiber.StatusInternalServerError)
		}
	}
	return response.Success(c, "Login successful", result)
}

// POST /api/admin/admins — super_admin only (enforced by middleware).
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	admin, err := h.Service.Create(c.Context(), CreateInput{
		Email:    body.Email,
		Password: body.Password,
		FullName: body.FullName,
		Role:     body.Role,
	})
	if err != nil {
		switch err {
		case ErrInvalidEmailDomain, ErrWeakPassword, ErrFullNameRequired, ErrInvalidRole:
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		case ErrAlreadyExists:
			return response.Error(c, err.Error(), fiber.StatusConflict)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
		}
	}
	return response.Created(c, "Admin created successfully", admin)
}

// GET /api/admin/admins — super_admin only (enforced by middleware).
func (h *Handlers) List(c *fiber.Ctx) error {
	admins, err := h.Service.List(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, "Admins fetched successfully", admins)
}
