package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/taskr/controllers"
	"github.com/meinhoongagan/taskr/middleware"
	"github.com/meinhoongagan/taskr/models"
)

func SetupDashboardRoutes(app *fiber.App, h *controllers.Handler) {
	app.Get("/dashboard", authenticated(h, h.Dashboard)...)
}

// SetupAdminRoutes configures user administration
func SetupAdminRoutes(app *fiber.App, h *controllers.Handler) {
	admin := app.Group("/admin", authenticated(h, middleware.RequireCapability(models.Role.CanManageUsers))...)
	admin.Get("/users", h.ListUsers)
	admin.Patch("/users/:id/role", h.UpdateUserRole)
	admin.Delete("/users/:id", h.DeleteUser)
	admin.Get("/activity", h.Activity)
}
