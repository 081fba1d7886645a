// Package store holds the marketplace's canonical in-memory collections and
// keeps them consistent across every mutation.
//
// Every mutation runs against a private copy of the state and is swapped in
// only when it succeeds, so a failed operation (including a partially applied
// cascade) leaves the store exactly as it was and readers never see a
// half-applied change.
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meinhoongagan/taskr/models"
)

// Store is the single writer for users, profiles, bookings, reviews and
// tickets. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	state     state
	now       func() time.Time
	newID     func() string
	observers []Observer
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how entity ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		state: newState(),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type state struct {
	users    []models.User
	profiles []models.ProfessionalProfile
	bookings []models.Booking
	reviews  []models.Review
	tickets  []models.SupportTicket
	emails   map[string]string // normalized email -> user id
}

func newState() state {
	return state{emails: map[string]string{}}
}

func (st state) clone() state {
	c := state{
		users:    append([]models.User(nil), st.users...),
		profiles: make([]models.ProfessionalProfile, len(st.profiles)),
		bookings: append([]models.Booking(nil), st.bookings...),
		reviews:  make([]models.Review, len(st.reviews)),
		tickets:  make([]models.SupportTicket, len(st.tickets)),
		emails:   make(map[string]string, len(st.emails)),
	}
	for i, p := range st.profiles {
		c.profiles[i] = p.Clone()
	}
	for i, r := range st.reviews {
		c.reviews[i] = r.Clone()
	}
	for i, t := range st.tickets {
		c.tickets[i] = t.Clone()
	}
	for k, v := range st.emails {
		c.emails[k] = v
	}
	return c
}

// mutate applies fn to a copy of the state and commits it only when fn
// succeeds. Events returned by fn are delivered after the lock is released.
func (s *Store) mutate(fn func(st *state, now time.Time) ([]Event, error)) error {
	s.mu.Lock()
	next := s.state.clone()
	now := s.now()
	events, err := fn(&next, now)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	for _, ev := range events {
		if ev.At.IsZero() {
			ev.At = now
		}
		for _, o := range observers {
			o(ev)
		}
	}
	return nil
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.state)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (st *state) userIndex(id string) int {
	for i := range st.users {
		if st.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (st *state) profileIndex(id string) int {
	for i := range st.profiles {
		if st.profiles[i].ID == id {
			return i
		}
	}
	return -1
}

func (st *state) profileIndexByUser(userID string) int {
	for i := range st.profiles {
		if st.profiles[i].UserID == userID {
			return i
		}
	}
	return -1
}

func (st *state) bookingIndex(id string) int {
	for i := range st.bookings {
		if st.bookings[i].ID == id {
			return i
		}
	}
	return -1
}

func (st *state) ticketIndex(id string) int {
	for i := range st.tickets {
		if st.tickets[i].ID == id {
			return i
		}
	}
	return -1
}
