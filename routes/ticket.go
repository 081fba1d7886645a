package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/taskr/controllers"
	"github.com/meinhoongagan/taskr/middleware"
	"github.com/meinhoongagan/taskr/models"
)

// SetupTicketRoutes lets any signed-in user file and follow tickets.
func SetupTicketRoutes(app *fiber.App, h *controllers.Handler) {
	tickets := app.Group("/tickets", authenticated(h)...)
	tickets.Get("/", h.ListMyTickets)
	tickets.Post("/", h.CreateTicket)
}

// SetupSupportRoutes configures the support queue for agents and admins.
func SetupSupportRoutes(app *fiber.App, h *controllers.Handler) {
	support := app.Group("/support", authenticated(h, middleware.RequireCapability(models.Role.CanWorkTickets))...)
	support.Get("/tickets", h.ListAllTickets)
	support.Post("/tickets/:id/assign", h.AssignTicket)
	support.Patch("/tickets/:id/status", h.UpdateTicketStatus)
	support.Post("/tickets/:id/reopen", h.ReopenTicket)
}
