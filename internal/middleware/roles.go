package middleware

import (
	"github.com/clinichq/clinic-backend/internal/authz"
	"github.com/clinichq/clinic-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// RoleGuard checks the caller's role against the static permission table
// for the matched route. It must run after JWTProtected; without a
// populated identity every request is denied.
func RoleGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if !role.Valid() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if !authz.Allowed(c.Method(), c.Route().Path, role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Forbidden: insufficient role",
			})
		}

		return c.Next()
	}
}
