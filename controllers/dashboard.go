package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/taskr/middleware"
	"github.com/meinhoongagan/taskr/models"
	"github.com/meinhoongagan/taskr/query"
)

// Dashboard returns the statistics for the caller's role.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	snap := h.Store.Snapshot()
	userID := middleware.UserID(c)
	role := middleware.Role(c)

	var stats interface{}
	switch role {
	case models.RoleAdmin:
		stats = query.ComputeAdminStats(snap)
	case models.RoleSupport:
		stats = query.ComputeSupportStats(snap, userID)
	case models.RoleProfessional:
		var profileID string
		if p, ok := snap.ProfessionalByUser(userID); ok {
			profileID = p.ID
		}
		stats = query.ComputeProfessionalStats(snap, profileID)
	case models.RoleUser:
		stats = query.ComputeClientStats(snap, userID)
	}

	return c.JSON(fiber.Map{
		"dashboard":    role.Dashboard(),
		"stats":        stats,
		"last_updated": h.Now().UTC().Format(time.RFC3339),
	})
}
