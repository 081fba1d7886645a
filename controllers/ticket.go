package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/taskr/middleware"
	"github.com/meinhoongagan/taskr/models"
	"github.com/meinhoongagan/taskr/query"
	"github.com/meinhoongagan/taskr/utils"
)

// ListMyTickets returns the tickets the caller filed.
func (h *Handler) ListMyTickets(c *fiber.Ctx) error {
	snap := h.Store.Snapshot()
	tickets := query.Tickets(snap, query.TicketFilter{UserID: middleware.UserID(c)})
	return c.JSON(fiber.Map{"tickets": query.TicketViews(snap, tickets)})
}

func (h *Handler) CreateTicket(c *fiber.Ctx) error {
	body := new(struct {
		Subject  string          `json:"subject"`
		Message  string          `json:"message"`
		Priority models.Priority `json:"priority"`
	})
	if err := c.BodyParser(body); err != nil {
		return badBody(c)
	}
	t, err := h.Store.CreateTicket(middleware.UserID(c), body.Subject, body.Message, body.Priority)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// ListAllTickets is the support queue. status takes a comma separated list;
// mine=true limits the list to tickets assigned to the caller.
func (h *Handler) ListAllTickets(c *fiber.Ctx) error {
	snap := h.Store.Snapshot()
	var f query.TicketFilter
	if c.QueryBool("mine") {
		f.AssignedTo = middleware.UserID(c)
	}
	for _, s := range strings.Split(c.Query("status"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			f.Statuses = append(f.Statuses, models.TicketStatus(s))
		}
	}
	return c.JSON(fiber.Map{"tickets": query.TicketViews(snap, query.Tickets(snap, f))})
}

// AssignTicket assigns the ticket to the calling agent.
func (h *Handler) AssignTicket(c *fiber.Ctx) error {
	t, err := h.Store.AssignTicket(c.Params("id"), middleware.UserID(c))
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(t)
}

func (h *Handler) UpdateTicketStatus(c *fiber.Ctx) error {
	body := new(struct {
		Status models.TicketStatus `json:"status"`
	})
	if err := c.BodyParser(body); err != nil {
		return badBody(c)
	}
	t, err := h.Store.TransitionTicket(c.Params("id"), body.Status)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(t)
}

func (h *Handler) ReopenTicket(c *fiber.Ctx) error {
	t, err := h.Store.ReopenTicket(c.Params("id"), c.QueryBool("unassign"))
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(t)
}
