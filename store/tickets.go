package store

import (
	"strings"
	"time"

	"github.com/meinhoongagan/taskr/models"
)

// CreateTicket files a support ticket for userID. It starts open and
// unassigned.
func (s *Store) CreateTicket(userID, subject, message string, priority models.Priority) (models.SupportTicket, error) {
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if subject == "" || message == "" {
		return models.SupportTicket{}, newError(KindMissingRequiredField, "subject and message are required")
	}
	p, ok := models.ParsePriority(string(priority))
	if !ok {
		return models.SupportTicket{}, newError(KindInvalidValue, "unknown priority %q", priority)
	}

	var created models.SupportTicket
	err := s.mutate(func(st *state, now time.Time) ([]Event, error) {
		if st.userIndex(userID) < 0 {
			return nil, newError(KindUnknownUser, "user %s not found", userID)
		}
		created = models.SupportTicket{
			ID:        s.newID(),
			UserID:    userID,
			Subject:   subject,
			Message:   message,
			Priority:  p,
			Status:    models.TicketOpen,
			CreatedAt: now,
			UpdatedAt: now,
		}
		st.tickets = append(st.tickets, created)
		return []Event{{Kind: EventTicketCreated, EntityID: created.ID, Status: string(created.Status)}}, nil
	})
	return created.Clone(), err
}

// GetTicket returns the ticket with id.
func (s *Store) GetTicket(id string) (models.SupportTicket, error) {
	var (
		t  models.SupportTicket
		ok bool
	)
	s.read(func(st *state) {
		if i := st.ticketIndex(id); i >= 0 {
			t, ok = st.tickets[i].Clone(), true
		}
	})
	if !ok {
		return models.SupportTicket{}, newError(KindUnknownTicket, "ticket %s not found", id)
	}
	return t, nil
}

// AssignTicket hands a ticket to a support agent or admin and puts it in
// progress, whatever its previous status, unless it is closed.
func (s *Store) AssignTicket(id, assigneeID string) (models.SupportTicket, error) {
	var updated models.SupportTicket
	err := s.mutate(func(st *state, now time.Time) ([]Event, error) {
		i := st.ticketIndex(id)
		if i < 0 {
			return nil, newError(KindUnknownTicket, "ticket %s not found", id)
		}
		u := st.userIndex(assigneeID)
		if u < 0 {
			return nil, newError(KindUnknownUser, "user %s not found", assigneeID)
		}
		if role := st.users[u].Role; !role.CanWorkTickets() {
			return nil, newError(KindRoleNotPermitted, "role %s cannot be assigned tickets", role)
		}
		t := st.tickets[i]
		if t.Status == models.TicketClosed {
			return nil, newError(KindTicketClosed, "ticket %s is closed", id)
		}
		assignee := assigneeID
		t.AssignedTo = &assignee
		t.Status = models.TicketInProgress
		t.UpdatedAt = now
		st.tickets[i] = t
		updated = t
		return []Event{{Kind: EventTicketAssigned, EntityID: id, Status: string(t.Status)}}, nil
	})
	return updated.Clone(), err
}

// TransitionTicket moves a ticket along its lifecycle and stamps UpdatedAt.
// Re-applying the current status is a no-op.
func (s *Store) TransitionTicket(id string, target models.TicketStatus) (models.SupportTicket, error) {
	return s.transitionTicket(id, target, false)
}

// ReopenTicket sends a ticket back to open. The assignee is kept unless
// clearAssignment is set.
func (s *Store) ReopenTicket(id string, clearAssignment bool) (models.SupportTicket, error) {
	return s.transitionTicket(id, models.TicketOpen, clearAssignment)
}

func (s *Store) transitionTicket(id string, target models.TicketStatus, clearAssignment bool) (models.SupportTicket, error) {
	if !target.Valid() {
		return models.SupportTicket{}, newError(KindInvalidTransition, "unknown ticket status %q", target)
	}

	var updated models.SupportTicket
	err := s.mutate(func(st *state, now time.Time) ([]Event, error) {
		i := st.ticketIndex(id)
		if i < 0 {
			return nil, newError(KindUnknownTicket, "ticket %s not found", id)
		}
		t := st.tickets[i]
		if t.Status == target {
			updated = t
			return nil, nil
		}
		if !t.Status.CanTransition(target) {
			return nil, newError(KindInvalidTransition, "ticket cannot move from %s to %s", t.Status, target)
		}
		t.Status = target
		if clearAssignment {
			t.AssignedTo = nil
		}
		t.UpdatedAt = now
		st.tickets[i] = t
		updated = t
		return []Event{{Kind: EventTicketStatus, EntityID: id, Status: string(target)}}, nil
	})
	return updated.Clone(), err
}
