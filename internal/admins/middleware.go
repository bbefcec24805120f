package admins

import (
	"strings"

	"landeed-backend/internal/models"
	"landeed-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const adminLocal = "admin"

// RequireAdmin validates the bearer token, loads the admin and requires the
// account to be active. The admin is stored in Locals for handlers.
func RequireAdmin(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return response.Unauthorized(c, "Unauthorized")
		}
		adminID, err := svc.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}
		admin, err := svc.GetByID(c.Context(), adminID)
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}
		if !admin.IsActive {
			return response.Error(c, ErrAccountDisabled.Error(), fiber.StatusForbidden)
		}
		c.Locals(adminLocal, admin)
		return c.Next()
	}
}

// RequireSuperAdmin gates routes to super_admin accounts. Must run after
// RequireAdmin.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin := GetAdmin(c)
		if admin == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		if admin.Role != models.RoleSuperAdmin {
			return response.Error(c, ErrSuperAdminOnly.Error(), fiber.StatusForbidden)
		}
		return c.Next()
	}
}

// GetAdmin returns the authenticated admin from Locals (nil when absent).
func GetAdmin(c *fiber.Ctx) *models.Admin {
	admin, _ := c.Locals(adminLocal).(*models.Admin)
	return admin
}
