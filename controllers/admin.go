package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/taskr/middleware"
	"github.com/meinhoongagan/taskr/models"
	"github.com/meinhoongagan/taskr/query"
	"github.com/meinhoongagan/taskr/store"
	"github.com/meinhoongagan/taskr/utils"
)

// ListUsers lists accounts, optionally narrowed by role and by q, a
// case-insensitive match on name or email.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	users := query.SearchUsers(h.Store.Snapshot(), c.Query("q"), models.Role(c.Query("role")))
	items, p := paginate(c, users)
	return c.JSON(fiber.Map{
		"users": items,
		"total": p.Total,
		"page":  p.Page,
		"limit": p.Limit,
		"pages": p.Pages,
	})
}

func (h *Handler) UpdateUserRole(c *fiber.Ctx) error {
	body := new(struct {
		Role string `json:"role"`
	})
	if err := c.BodyParser(body); err != nil {
		return badBody(c)
	}
	role, ok := models.ParseRole(body.Role)
	if !ok {
		return utils.RespondError(c, &store.Error{Kind: store.KindInvalidValue, Message: "unknown role " + body.Role})
	}
	u, err := h.Store.UpdateUserRole(c.Params("id"), role)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(u)
}

// DeleteUser removes an account and cascades. Admins cannot delete
// themselves.
func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == middleware.UserID(c) {
		return utils.Fail(c, fiber.StatusBadRequest, "You cannot delete your own account")
	}
	if err := h.Store.DeleteUser(id); err != nil {
		return utils.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Activity lists recent store events when an activity feed is configured.
func (h *Handler) Activity(c *fiber.Ctx) error {
	if h.Activity == nil {
		return utils.Fail(c, fiber.StatusServiceUnavailable, "Activity feed is not configured")
	}
	events, err := h.Activity.Recent(c.UserContext(), c.QueryInt("limit", 20))
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"events": events})
}
