package middleware

import (
	"strings"

	"go-pharmacy-pos/internal/repository"
	"go-pharmacy-pos/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token and sets user info in the request
// context. The user must still exist and be active; a deleted or disabled
// account invalidates outstanding tokens immediately.
func RequireAuth(signer *jwt.Signer, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := signer.Validate(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "User account is inactive"})
		}

		c.Locals("user_id", claims.UserID.String())
		c.Locals("username", claims.Username)
		c.Locals("role", claims.RoleCode)

		return c.Next()
	}
}

// RequireRole gates a route on the authenticated user's role code.
func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role == "" {
			return c.Status(403).JSON(fiber.Map{"error": "No role found"})
		}

		if role != requiredRole {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: requires '" + requiredRole + "' role",
			})
		}

		return c.Next()
	}
}
