package store

import "time"

// EventKind names a committed change.
type EventKind string

const (
	EventUserCreated      EventKind = "user.created"
	EventUserRoleChanged  EventKind = "user.role_changed"
	EventUserDeleted      EventKind = "user.deleted"
	EventProfileCreated   EventKind = "profile.created"
	EventProfileUpdated   EventKind = "profile.updated"
	EventServiceAdded     EventKind = "service.added"
	EventServiceRemoved   EventKind = "service.removed"
	EventBookingCreated   EventKind = "booking.created"
	EventBookingStatus    EventKind = "booking.status_changed"
	EventReviewRecorded   EventKind = "review.recorded"
	EventTicketCreated    EventKind = "ticket.created"
	EventTicketAssigned   EventKind = "ticket.assigned"
	EventTicketStatus     EventKind = "ticket.status_changed"
	EventSnapshotRestored EventKind = "store.restored"
)

// Event describes one committed change. Status carries the new status for
// lifecycle events and is empty otherwise.
type Event struct {
	Kind     EventKind `json:"kind"`
	EntityID string    `json:"entity_id"`
	Status   string    `json:"status,omitempty"`
	At       time.Time `json:"at"`
}

// Observer is called once per committed event, outside the store lock.
// Observers must not block for long; they run on the mutating goroutine.
type Observer func(Event)

// Subscribe registers o for all future events.
func (s *Store) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}
