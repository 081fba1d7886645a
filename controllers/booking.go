package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/taskr/middleware"
	"github.com/meinhoongagan/taskr/models"
	"github.com/meinhoongagan/taskr/query"
	"github.com/meinhoongagan/taskr/utils"
)

// ListBookings returns the caller's bookings: those made against their
// profile for professionals, every booking for admins, and the bookings they
// made otherwise. An optional status query narrows the list.
func (h *Handler) ListBookings(c *fiber.Ctx) error {
	snap := h.Store.Snapshot()
	userID := middleware.UserID(c)

	var bookings []models.Booking
	switch middleware.Role(c) {
	case models.RoleProfessional:
		if p, ok := snap.ProfessionalByUser(userID); ok && c.Query("as") != "client" {
			bookings = query.ProfessionalBookings(snap, p.ID)
		} else {
			bookings = query.UserBookings(snap, userID)
		}
	case models.RoleAdmin:
		bookings = snap.Bookings
	case models.RoleUser, models.RoleSupport:
		bookings = query.UserBookings(snap, userID)
	}

	if status := models.BookingStatus(c.Query("status")); status != "" {
		filtered := bookings[:0:0]
		for _, b := range bookings {
			if b.Status == status {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}
	return c.JSON(fiber.Map{"bookings": query.BookingViews(snap, bookings)})
}

func (h *Handler) CreateBooking(c *fiber.Ctx) error {
	body := new(struct {
		ProfessionalID string    `json:"professional_id"`
		ServiceID      string    `json:"service_id"`
		Date           time.Time `json:"date"`
		Notes          string    `json:"notes"`
	})
	if err := c.BodyParser(body); err != nil {
		return badBody(c)
	}
	b, err := h.Store.CreateBooking(middleware.UserID(c), body.ProfessionalID, body.ServiceID, body.Date, body.Notes)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

// UpdateBookingStatus moves a booking along its lifecycle. The professional
// confirms and completes; either party may cancel; admins may do anything.
func (h *Handler) UpdateBookingStatus(c *fiber.Ctx) error {
	body := new(struct {
		Status models.BookingStatus `json:"status"`
	})
	if err := c.BodyParser(body); err != nil {
		return badBody(c)
	}
	b, err := h.Store.GetBooking(c.Params("id"))
	if err != nil {
		return utils.RespondError(c, err)
	}
	if !h.mayMoveBooking(c, b, body.Status) {
		return utils.Fail(c, fiber.StatusForbidden, "You are not allowed to change this booking")
	}
	updated, err := h.Store.TransitionBooking(b.ID, body.Status)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) mayMoveBooking(c *fiber.Ctx, b models.Booking, target models.BookingStatus) bool {
	if middleware.Role(c) == models.RoleAdmin {
		return true
	}
	userID := middleware.UserID(c)
	if p, err := h.Store.GetProfessional(b.ProfessionalID); err == nil && p.UserID == userID {
		return true
	}
	return b.UserID == userID && target == models.BookingCancelled
}
