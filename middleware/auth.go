package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/meinhoongagan/taskr/models"
	"github.com/meinhoongagan/taskr/utils"
)

const (
	localUserID = "userID"
	localRole   = "role"
)

// Protected verifies the bearer token and stores the caller's id and role in
// the request locals.
func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return utils.Fail(c, fiber.StatusUnauthorized, "Invalid token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return utils.Fail(c, fiber.StatusUnauthorized, "Invalid token claims")
			}

			userID, err := extractUserID(claims)
			if err != nil {
				log.Printf("jwt: %v", err)
				return utils.Fail(c, fiber.StatusUnauthorized, "Invalid user ID in token")
			}
			role, err := extractRole(claims)
			if err != nil {
				log.Printf("jwt: %v", err)
				return utils.Fail(c, fiber.StatusUnauthorized, "Invalid role in token")
			}

			c.Locals(localUserID, userID)
			c.Locals(localRole, role)
			return c.Next()
		},
	})
}

// IssueToken signs an HS256 access token for u.
func IssueToken(secret string, u models.User, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"id":    u.ID,
		"email": u.Email,
		"role":  string(u.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// UserID returns the authenticated caller's id.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(localUserID).(string)
	return id
}

// Role returns the role the caller currently holds.
func Role(c *fiber.Ctx) models.Role {
	role, _ := c.Locals(localRole).(models.Role)
	return role
}

func extractUserID(claims jwt.MapClaims) (string, error) {
	idVal := claims["id"]
	if idVal == nil {
		return "", fmt.Errorf("no ID found in claims")
	}
	id, ok := idVal.(string)
	if !ok || id == "" {
		return "", fmt.Errorf("unsupported ID type: %T", idVal)
	}
	return id, nil
}

func extractRole(claims jwt.MapClaims) (models.Role, error) {
	roleVal := claims["role"]
	if roleVal == nil {
		return "", fmt.Errorf("no role found in claims")
	}
	name, ok := roleVal.(string)
	if !ok {
		return "", fmt.Errorf("unsupported role type: %T", roleVal)
	}
	role, ok := models.ParseRole(name)
	if !ok {
		return "", fmt.Errorf("unknown role %q", name)
	}
	return role, nil
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
		Error:   "Unauthorized",
		Message: "Invalid or expired token",
	})
}
