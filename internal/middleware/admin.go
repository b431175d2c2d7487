package middleware

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// RequireRoles lets the request through when the authenticated identity
// holds at least one of roles. It must run after Authenticate.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := auth.FromContext(c.UserContext())
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if !identity.HasAnyRole(roles...) {
			slog.Warn("role check failed",
				"username", identity.Username,
				"path", c.Path(),
				"roles", identity.Roles,
			)
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Forbidden: insufficient role",
			})
		}
		return c.Next()
	}
}

// AnyUser is the policy for every authenticated resource route.
func AnyUser() fiber.Handler {
	return RequireRoles(models.RoleUser, models.RoleAdmin)
}

// AdminOnly guards operator endpoints.
func AdminOnly() fiber.Handler {
	return RequireRoles(models.RoleAdmin)
}
