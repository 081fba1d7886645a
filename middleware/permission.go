package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/taskr/models"
	"github.com/meinhoongagan/taskr/store"
	"github.com/meinhoongagan/taskr/utils"
)

// CurrentUser reloads the caller from the store so role changes and
// deletions take effect before the token expires. The fresh role replaces
// the one carried by the token.
func CurrentUser(s *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := s.GetUser(UserID(c))
		if err != nil {
			return utils.Fail(c, fiber.StatusUnauthorized, "User not found")
		}
		c.Locals(localRole, u.Role)
		return c.Next()
	}
}

// RequireRole checks if the user has one of the given roles
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := Role(c)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return utils.Fail(c, fiber.StatusForbidden, "You don't have the required role to perform this action")
	}
}

// RequireCapability admits callers whose role passes allowed, e.g.
// models.Role.CanManageUsers.
func RequireCapability(allowed func(models.Role) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if allowed(Role(c)) {
			return c.Next()
		}
		return utils.Fail(c, fiber.StatusForbidden, "You don't have the required role to perform this action")
	}
}
