package store

import (
	"time"

	"github.com/meinhoongagan/taskr/models"
)

// Snapshot is a deep copy of every collection, each in insertion order.
// Mutating a snapshot never affects the store.
type Snapshot struct {
	Users         []models.User                `json:"users"`
	Professionals []models.ProfessionalProfile `json:"professionals"`
	Bookings      []models.Booking             `json:"bookings"`
	Reviews       []models.Review              `json:"reviews"`
	Tickets       []models.SupportTicket       `json:"tickets"`
}

// Snapshot returns a consistent copy of the store.
func (s *Store) Snapshot() Snapshot {
	var snap Snapshot
	s.read(func(st *state) {
		c := st.clone()
		snap = Snapshot{
			Users:         c.users,
			Professionals: c.profiles,
			Bookings:      c.bookings,
			Reviews:       c.reviews,
			Tickets:       c.tickets,
		}
	})
	return snap
}

// Restore replaces the whole state with snap. The snapshot must satisfy the
// same rules the mutating operations enforce; otherwise the store is
// unchanged and the first violation is returned.
func (s *Store) Restore(snap Snapshot) error {
	return s.mutate(func(st *state, now time.Time) ([]Event, error) {
		next, err := restoredState(snap)
		if err != nil {
			return nil, err
		}
		*st = next
		return []Event{{Kind: EventSnapshotRestored, At: now}}, nil
	})
}

func restoredState(snap Snapshot) (state, error) {
	next := newState()
	ids := map[string]bool{}
	for _, u := range snap.Users {
		if u.ID == "" || ids[u.ID] {
			return state{}, newError(KindInvalidValue, "user id %q is empty or repeated", u.ID)
		}
		ids[u.ID] = true
		if !u.Role.Valid() {
			return state{}, newError(KindInvalidValue, "user %s has unknown role %q", u.ID, u.Role)
		}
		key := normalizeEmail(u.Email)
		if _, dup := next.emails[key]; dup {
			return state{}, newError(KindDuplicateEmail, "email %s appears twice", u.Email)
		}
		next.emails[key] = u.ID
		next.users = append(next.users, u)
	}

	ids = map[string]bool{}
	for _, p := range snap.Professionals {
		if p.ID == "" || ids[p.ID] {
			return state{}, newError(KindInvalidValue, "profile id %q is empty or repeated", p.ID)
		}
		ids[p.ID] = true
		u := next.userIndex(p.UserID)
		if u < 0 {
			return state{}, newError(KindUnknownUser, "profile %s references missing user %s", p.ID, p.UserID)
		}
		if !next.users[u].Role.CanOwnProfile() {
			return state{}, newError(KindRoleNotPermitted, "profile %s belongs to a %s", p.ID, next.users[u].Role)
		}
		if next.profileIndexByUser(p.UserID) >= 0 {
			return state{}, newError(KindProfileAlreadyExists, "user %s has two profiles", p.UserID)
		}
		services := map[string]bool{}
		for _, svc := range p.Services {
			if svc.ID == "" || services[svc.ID] {
				return state{}, newError(KindInvalidValue, "profile %s repeats service id %q", p.ID, svc.ID)
			}
			services[svc.ID] = true
		}
		next.profiles = append(next.profiles, p.Clone())
	}

	ids = map[string]bool{}
	for _, b := range snap.Bookings {
		if b.ID == "" || ids[b.ID] {
			return state{}, newError(KindInvalidValue, "booking id %q is empty or repeated", b.ID)
		}
		ids[b.ID] = true
		if !b.Status.Valid() {
			return state{}, newError(KindInvalidValue, "booking %s has unknown status %q", b.ID, b.Status)
		}
		next.bookings = append(next.bookings, b)
	}

	ids = map[string]bool{}
	for _, r := range snap.Reviews {
		if r.ID == "" || ids[r.ID] {
			return state{}, newError(KindInvalidValue, "review id %q is empty or repeated", r.ID)
		}
		ids[r.ID] = true
		if !models.ValidRating(r.Rating) {
			return state{}, newError(KindInvalidRating, "review %s has rating %d", r.ID, r.Rating)
		}
		next.reviews = append(next.reviews, r.Clone())
	}

	ids = map[string]bool{}
	for _, t := range snap.Tickets {
		if t.ID == "" || ids[t.ID] {
			return state{}, newError(KindInvalidValue, "ticket id %q is empty or repeated", t.ID)
		}
		ids[t.ID] = true
		if !t.Status.Valid() {
			return state{}, newError(KindInvalidValue, "ticket %s has unknown status %q", t.ID, t.Status)
		}
		if _, ok := models.ParsePriority(string(t.Priority)); !ok || t.Priority == "" {
			return state{}, newError(KindInvalidValue, "ticket %s has unknown priority %q", t.ID, t.Priority)
		}
		if t.AssignedTo != nil {
			u := next.userIndex(*t.AssignedTo)
			if u < 0 {
				return state{}, newError(KindUnknownUser, "ticket %s is assigned to missing user %s", t.ID, *t.AssignedTo)
			}
			if !next.users[u].Role.CanWorkTickets() {
				return state{}, newError(KindRoleNotPermitted, "ticket %s is assigned to a %s", t.ID, next.users[u].Role)
			}
		}
		next.tickets = append(next.tickets, t.Clone())
	}
	return next, nil
}

// User returns the user with id from the snapshot.
func (snap Snapshot) User(id string) (models.User, bool) {
	for _, u := range snap.Users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// Professional returns the profile with id from the snapshot.
func (snap Snapshot) Professional(id string) (models.ProfessionalProfile, bool) {
	for _, p := range snap.Professionals {
		if p.ID == id {
			return p, true
		}
	}
	return models.ProfessionalProfile{}, false
}

// ProfessionalByUser returns the profile owned by userID.
func (snap Snapshot) ProfessionalByUser(userID string) (models.ProfessionalProfile, bool) {
	for _, p := range snap.Professionals {
		if p.UserID == userID {
			return p, true
		}
	}
	return models.ProfessionalProfile{}, false
}
