package controllers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/meinhoongagan/taskr/middleware"
	"github.com/meinhoongagan/taskr/models"
	"github.com/meinhoongagan/taskr/store"
	"github.com/meinhoongagan/taskr/utils"
)

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register handles user registration. Self-registration may only pick the
// client or professional role.
func (h *Handler) Register(c *fiber.Ctx) error {
	input := new(registerInput)
	if err := c.BodyParser(input); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(input.Password) == "" {
		return utils.RespondError(c, &store.Error{Kind: store.KindMissingRequiredField, Message: "password is required"})
	}

	role := models.RoleUser
	if input.Role != "" {
		r, ok := models.ParseRole(input.Role)
		if !ok {
			return utils.RespondError(c, &store.Error{Kind: store.KindInvalidValue, Message: "unknown role " + input.Role})
		}
		if r != models.RoleUser && r != models.RoleProfessional {
			return utils.Fail(c, fiber.StatusForbidden, "Role cannot be self-assigned")
		}
		role = r
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user, err := h.Store.CreateUser(store.CreateUserInput{
		Name:         input.Name,
		Email:        input.Email,
		Role:         role,
		PasswordHash: string(hashedPassword),
	})
	if err != nil {
		return utils.RespondError(c, err)
	}
	log.Printf("Registered user %s with role %s", user.ID, user.Role)

	return h.respondWithToken(c, fiber.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return badBody(c)
	}

	user, err := h.Store.FindUserByEmail(input.Email)
	if err != nil {
		if errors.Is(err, store.ErrUnknownUser) {
			return utils.Fail(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return utils.RespondError(c, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	return h.respondWithToken(c, fiber.StatusOK, user)
}

// Me returns the current user with the dashboard their role lands on.
func (h *Handler) Me(c *fiber.Ctx) error {
	user, err := h.Store.GetUser(middleware.UserID(c))
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"user":      user,
		"dashboard": user.Role.Dashboard(),
	})
}

func (h *Handler) respondWithToken(c *fiber.Ctx, status int, user models.User) error {
	token, err := middleware.IssueToken(h.Secret, user, h.TokenTTL, h.Now())
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to generate token")
	}
	return c.Status(status).JSON(fiber.Map{
		"token":     token,
		"user":      user,
		"dashboard": user.Role.Dashboard(),
	})
}
