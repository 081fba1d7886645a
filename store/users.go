package store

import (
	"strings"
	"time"

	"github.com/meinhoongagan/taskr/models"
)

// CreateUserInput carries the registration fields. PasswordHash is optional
// and stored as given.
type CreateUserInput struct {
	Name         string
	Email        string
	Role         models.Role
	PasswordHash string
}

// CreateUser registers a user. Emails are unique ignoring case and
// surrounding whitespace.
func (s *Store) CreateUser(in CreateUserInput) (models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return models.User{}, newError(KindMissingRequiredField, "name and email are required")
	}
	if !in.Role.Valid() {
		return models.User{}, newError(KindInvalidValue, "unknown role %q", in.Role)
	}

	var created models.User
	err := s.mutate(func(st *state, now time.Time) ([]Event, error) {
		key := normalizeEmail(email)
		if _, exists := st.emails[key]; exists {
			return nil, newError(KindDuplicateEmail, "email %s is already registered", email)
		}
		created = models.User{
			ID:           s.newID(),
			Name:         name,
			Email:        email,
			PasswordHash: in.PasswordHash,
			Role:         in.Role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		st.users = append(st.users, created)
		st.emails[key] = created.ID
		return []Event{{Kind: EventUserCreated, EntityID: created.ID}}, nil
	})
	return created, err
}

// GetUser returns the user with id.
func (s *Store) GetUser(id string) (models.User, error) {
	var (
		u  models.User
		ok bool
	)
	s.read(func(st *state) {
		if i := st.userIndex(id); i >= 0 {
			u, ok = st.users[i], true
		}
	})
	if !ok {
		return models.User{}, newError(KindUnknownUser, "user %s not found", id)
	}
	return u, nil
}

// FindUserByEmail looks a user up case-insensitively.
func (s *Store) FindUserByEmail(email string) (models.User, error) {
	var (
		u  models.User
		ok bool
	)
	s.read(func(st *state) {
		id, found := st.emails[normalizeEmail(email)]
		if !found {
			return
		}
		if i := st.userIndex(id); i >= 0 {
			u, ok = st.users[i], true
		}
	})
	if !ok {
		return models.User{}, newError(KindUnknownUser, "no user with email %s", email)
	}
	return u, nil
}

// ListUsers returns every user in registration order.
func (s *Store) ListUsers() []models.User {
	var users []models.User
	s.read(func(st *state) {
		users = append([]models.User(nil), st.users...)
	})
	return users
}

// UpdateUserRole changes a user's role. A user who owns a professional
// profile must stay a professional, and a support agent or admin who loses
// that role gives up their ticket assignments in the same commit.
func (s *Store) UpdateUserRole(id string, role models.Role) (models.User, error) {
	if !role.Valid() {
		return models.User{}, newError(KindInvalidValue, "unknown role %q", role)
	}

	var updated models.User
	err := s.mutate(func(st *state, now time.Time) ([]Event, error) {
		i := st.userIndex(id)
		if i < 0 {
			return nil, newError(KindUnknownUser, "user %s not found", id)
		}
		u := st.users[i]
		if u.Role == role {
			updated = u
			return nil, nil
		}
		if !role.CanOwnProfile() && st.profileIndexByUser(id) >= 0 {
			return nil, newError(KindRoleNotPermitted, "user %s owns a professional profile", id)
		}

		events := []Event{{Kind: EventUserRoleChanged, EntityID: id, Status: string(role)}}
		if u.Role.CanWorkTickets() && !role.CanWorkTickets() {
			events = append(events, st.releaseAssignments(id, now)...)
		}
		u.Role = role
		u.UpdatedAt = now
		st.users[i] = u
		updated = u
		return events, nil
	})
	return updated, err
}

// DeleteUser removes a user and cascades: their professional profile and its
// services go away (reviews stay, detached), tickets assigned to them are
// released, and bookings or tickets they filed are kept for history.
func (s *Store) DeleteUser(id string) error {
	return s.mutate(func(st *state, now time.Time) ([]Event, error) {
		i := st.userIndex(id)
		if i < 0 {
			return nil, newError(KindUnknownUser, "user %s not found", id)
		}
		u := st.users[i]

		var events []Event
		if p := st.profileIndexByUser(id); p >= 0 {
			st.profiles = append(st.profiles[:p], st.profiles[p+1:]...)
		}
		events = append(events, st.releaseAssignments(id, now)...)

		st.users = append(st.users[:i], st.users[i+1:]...)
		delete(st.emails, normalizeEmail(u.Email))
		events = append(events, Event{Kind: EventUserDeleted, EntityID: id})
		return events, nil
	})
}

// releaseAssignments unassigns every ticket held by userID. Tickets that were
// being worked go back to open so another agent can pick them up.
func (st *state) releaseAssignments(userID string, now time.Time) []Event {
	var events []Event
	for i := range st.tickets {
		t := st.tickets[i]
		if t.AssignedTo == nil || *t.AssignedTo != userID {
			continue
		}
		t.AssignedTo = nil
		if t.Status == models.TicketInProgress {
			t.Status = models.TicketOpen
		}
		t.UpdatedAt = now
		st.tickets[i] = t
		events = append(events, Event{Kind: EventTicketAssigned, EntityID: t.ID, Status: string(t.Status)})
	}
	return events
}
