package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/taskr/controllers"
)

// SetupBookingRoutes configures all booking related routes
func SetupBookingRoutes(app *fiber.App, h *controllers.Handler) {
	bookings := app.Group("/bookings", authenticated(h)...)
	bookings.Get("/", h.ListBookings)
	bookings.Post("/", h.CreateBooking)
	bookings.Patch("/:id/status", h.UpdateBookingStatus)
}
