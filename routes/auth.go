package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/taskr/controllers"
	"github.com/meinhoongagan/taskr/middleware"
)

// Setup registers every route group on app.
func Setup(app *fiber.App, h *controllers.Handler) {
	SetupAuthRoutes(app, h)
	SetupProfessionalRoutes(app, h)
	SetupBookingRoutes(app, h)
	SetupTicketRoutes(app, h)
	SetupSupportRoutes(app, h)
	SetupDashboardRoutes(app, h)
	SetupAdminRoutes(app, h)
}

// authenticated verifies the token, reloads the caller from the store and
// then runs next. Each call returns a fresh slice.
func authenticated(h *controllers.Handler, next ...fiber.Handler) []fiber.Handler {
	chain := []fiber.Handler{middleware.Protected(h.Secret), middleware.CurrentUser(h.Store)}
	return append(chain, next...)
}

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App, h *controllers.Handler) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)

	// Protected routes
	auth.Get("/me", authenticated(h, h.Me)...)
}
