package query

import (
	"time"

	"github.com/meinhoongagan/taskr/models"
	"github.com/meinhoongagan/taskr/store"
)

// UnknownName is shown for references whose target no longer exists.
const UnknownName = "Unknown"

// BookingView is a booking joined with the names of its parties. Service is
// nil when the professional no longer offers it.
type BookingView struct {
	models.Booking
	ClientName       string          `json:"client_name"`
	ProfessionalName string          `json:"professional_name"`
	Service          *models.Service `json:"service"`
}

// TicketView is a ticket joined with requester and assignee names.
type TicketView struct {
	models.SupportTicket
	RequesterName string `json:"requester_name"`
	AssigneeName  string `json:"assignee_name,omitempty"`
}

// BookingViews joins each booking with the snapshot's users and profiles.
func BookingViews(snap store.Snapshot, bookings []models.Booking) []BookingView {
	out := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		v := BookingView{Booking: b, ClientName: UnknownName, ProfessionalName: UnknownName}
		if u, ok := snap.User(b.UserID); ok {
			v.ClientName = u.Name
		}
		if p, ok := snap.Professional(b.ProfessionalID); ok {
			v.ProfessionalName = p.Name
			if svc, ok := p.FindService(b.ServiceID); ok {
				v.Service = &svc
			}
		}
		out = append(out, v)
	}
	return out
}

// TicketViews joins each ticket with the snapshot's users.
func TicketViews(snap store.Snapshot, tickets []models.SupportTicket) []TicketView {
	out := make([]TicketView, 0, len(tickets))
	for _, t := range tickets {
		v := TicketView{SupportTicket: t.Clone(), RequesterName: UnknownName}
		if u, ok := snap.User(t.UserID); ok {
			v.RequesterName = u.Name
		}
		if t.AssignedTo != nil {
			v.AssigneeName = UnknownName
			if u, ok := snap.User(*t.AssignedTo); ok {
				v.AssigneeName = u.Name
			}
		}
		out = append(out, v)
	}
	return out
}

// UserBookings returns the bookings a client made.
func UserBookings(snap store.Snapshot, userID string) []models.Booking {
	var out []models.Booking
	for _, b := range snap.Bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

// ProfessionalBookings returns the bookings made against a profile.
func ProfessionalBookings(snap store.Snapshot, profileID string) []models.Booking {
	var out []models.Booking
	for _, b := range snap.Bookings {
		if b.ProfessionalID == profileID {
			out = append(out, b)
		}
	}
	return out
}

// ProfessionalReviews returns a profile's reviews, newest first. Reviews
// recorded at the same instant keep insertion order.
func ProfessionalReviews(snap store.Snapshot, profileID string) []models.Review {
	var out []models.Review
	for i := len(snap.Reviews) - 1; i >= 0; i-- {
		if r := snap.Reviews[i]; r.ProfessionalID == profileID {
			out = append(out, r.Clone())
		}
	}
	return out
}

// TicketFilter narrows ticket listings. Zero values match everything.
type TicketFilter struct {
	UserID     string
	AssignedTo string
	Statuses   []models.TicketStatus
}

// Tickets returns the tickets matching f in filing order.
func Tickets(snap store.Snapshot, f TicketFilter) []models.SupportTicket {
	var out []models.SupportTicket
	for _, t := range snap.Tickets {
		if f.UserID != "" && t.UserID != f.UserID {
			continue
		}
		if f.AssignedTo != "" && (t.AssignedTo == nil || *t.AssignedTo != f.AssignedTo) {
			continue
		}
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, t.Status) {
			continue
		}
		out = append(out, t.Clone())
	}
	return out
}

func containsStatus(list []models.TicketStatus, s models.TicketStatus) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// UpcomingBookings returns confirmed bookings dated within [from, to).
func UpcomingBookings(snap store.Snapshot, from, to time.Time) []models.Booking {
	var out []models.Booking
	for _, b := range snap.Bookings {
		if b.Status != models.BookingConfirmed {
			continue
		}
		if b.Date.Before(from) || !b.Date.Before(to) {
			continue
		}
		out = append(out, b)
	}
	return out
}
