package middleware

import (
	"strings"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the Bearer JWT and sets actor info in context
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("user_id", claims.UserID.String())
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RequireRoles is the single capability gate: the authenticated actor's role
// must be one of the required roles.
func RequireRoles(requiredRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No role found"})
		}

		if !model.RoleAllowed(role, requiredRoles...) {
			return c.Status(403).JSON(fiber.Map{
				"error": "Access denied: requires one of " + strings.Join(requiredRoles, ", "),
			})
		}

		return c.Next()
	}
}
