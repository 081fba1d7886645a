package query

import (
	"github.com/meinhoongagan/taskr/models"
	"github.com/meinhoongagan/taskr/store"
)

type AdminStats struct {
	TotalUsers         int `json:"total_users"`
	TotalProfessionals int `json:"total_professionals"`
	TotalBookings      int `json:"total_bookings"`
	OpenTickets        int `json:"open_tickets"`
}

type SupportStats struct {
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
	MyTickets  int `json:"my_tickets"`
}

type ProfessionalStats struct {
	Pending     int     `json:"pending"`
	Confirmed   int     `json:"confirmed"`
	Completed   int     `json:"completed"`
	Cancelled   int     `json:"cancelled"`
	Earnings    float64 `json:"earnings"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}

type ClientStats struct {
	Upcoming  int `json:"upcoming"`
	Completed int `json:"completed"`
	Tickets   int `json:"tickets"`
}

// ComputeAdminStats counts every collection. OpenTickets includes tickets
// still being worked.
func ComputeAdminStats(snap store.Snapshot) AdminStats {
	s := AdminStats{
		TotalUsers:         len(snap.Users),
		TotalProfessionals: len(snap.Professionals),
		TotalBookings:      len(snap.Bookings),
	}
	for _, t := range snap.Tickets {
		if t.Status == models.TicketOpen || t.Status == models.TicketInProgress {
			s.OpenTickets++
		}
	}
	return s
}

// ComputeSupportStats counts tickets by status; MyTickets counts those
// assigned to actorID.
func ComputeSupportStats(snap store.Snapshot, actorID string) SupportStats {
	var s SupportStats
	for _, t := range snap.Tickets {
		switch t.Status {
		case models.TicketOpen:
			s.Open++
		case models.TicketInProgress:
			s.InProgress++
		case models.TicketResolved:
			s.Resolved++
		}
		if t.AssignedTo != nil && *t.AssignedTo == actorID {
			s.MyTickets++
		}
	}
	return s
}

// ComputeProfessionalStats summarizes a profile's bookings. Earnings add the
// price of completed bookings whose service is still listed.
func ComputeProfessionalStats(snap store.Snapshot, profileID string) ProfessionalStats {
	var s ProfessionalStats
	p, ok := snap.Professional(profileID)
	if ok {
		s.Rating = p.Rating
		s.ReviewCount = p.ReviewCount
	}
	for _, b := range ProfessionalBookings(snap, profileID) {
		switch b.Status {
		case models.BookingPending:
			s.Pending++
		case models.BookingConfirmed:
			s.Confirmed++
		case models.BookingCompleted:
			s.Completed++
			if svc, found := p.FindService(b.ServiceID); ok && found {
				s.Earnings += svc.Price
			}
		case models.BookingCancelled:
			s.Cancelled++
		}
	}
	return s
}

func ComputeClientStats(snap store.Snapshot, userID string) ClientStats {
	var s ClientStats
	for _, b := range UserBookings(snap, userID) {
		switch b.Status {
		case models.BookingPending, models.BookingConfirmed:
			s.Upcoming++
		case models.BookingCompleted:
			s.Completed++
		}
	}
	s.Tickets = len(Tickets(snap, TicketFilter{UserID: userID}))
	return s
}
