package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/taskr/controllers"
	"github.com/meinhoongagan/taskr/middleware"
	"github.com/meinhoongagan/taskr/models"
)

// SetupProfessionalRoutes configures the directory and profile management routes
func SetupProfessionalRoutes(app *fiber.App, h *controllers.Handler) {
	pros := app.Group("/professionals")
	pros.Get("/", h.ListProfessionals)
	pros.Get("/categories", h.ListCategories)
	pros.Get("/:id", h.GetProfessional)
	pros.Get("/:id/reviews", h.GetProfessionalReviews)

	owner := middleware.RequireRole(models.RoleProfessional, models.RoleAdmin)
	pros.Post("/", authenticated(h, middleware.RequireRole(models.RoleProfessional), h.CreateProfile)...)
	pros.Patch("/:id", authenticated(h, owner, h.UpdateProfile)...)
	pros.Post("/:id/services", authenticated(h, owner, h.AddService)...)
	pros.Delete("/:id/services/:serviceId", authenticated(h, owner, h.RemoveService)...)
	pros.Post("/:id/avatar", authenticated(h, owner, h.UploadAvatar)...)
	pros.Post("/:id/reviews", authenticated(h, h.CreateReview)...)
}
