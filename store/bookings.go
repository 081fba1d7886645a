package store

import (
	"strings"
	"time"

	"github.com/meinhoongagan/taskr/models"
)

// CreateBooking records a pending booking request. The professional must
// currently offer serviceID; any registered user may book.
func (s *Store) CreateBooking(userID, professionalID, serviceID string, date time.Time, notes string) (models.Booking, error) {
	if date.IsZero() || strings.TrimSpace(serviceID) == "" {
		return models.Booking{}, newError(KindMissingRequiredField, "date and service are required")
	}

	var created models.Booking
	err := s.mutate(func(st *state, now time.Time) ([]Event, error) {
		if st.userIndex(userID) < 0 {
			return nil, newError(KindUnknownUser, "user %s not found", userID)
		}
		p := st.profileIndex(professionalID)
		if p < 0 {
			return nil, newError(KindUnknownProfessional, "profile %s not found", professionalID)
		}
		if _, ok := st.profiles[p].FindService(serviceID); !ok {
			return nil, newError(KindUnknownService, "service %s is not offered by %s", serviceID, professionalID)
		}
		created = models.Booking{
			ID:             s.newID(),
			UserID:         userID,
			ProfessionalID: professionalID,
			ServiceID:      serviceID,
			Status:         models.BookingPending,
			Date:           date,
			Notes:          notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		st.bookings = append(st.bookings, created)
		return []Event{{Kind: EventBookingCreated, EntityID: created.ID, Status: string(created.Status)}}, nil
	})
	return created, err
}

// GetBooking returns the booking with id.
func (s *Store) GetBooking(id string) (models.Booking, error) {
	var (
		b  models.Booking
		ok bool
	)
	s.read(func(st *state) {
		if i := st.bookingIndex(id); i >= 0 {
			b, ok = st.bookings[i], true
		}
	})
	if !ok {
		return models.Booking{}, newError(KindUnknownBooking, "booking %s not found", id)
	}
	return b, nil
}

// TransitionBooking moves a booking along its lifecycle. Asking for the
// status the booking already has succeeds without change so callers can
// retry safely.
func (s *Store) TransitionBooking(id string, target models.BookingStatus) (models.Booking, error) {
	if !target.Valid() {
		return models.Booking{}, newError(KindInvalidTransition, "unknown booking status %q", target)
	}

	var updated models.Booking
	err := s.mutate(func(st *state, now time.Time) ([]Event, error) {
		i := st.bookingIndex(id)
		if i < 0 {
			return nil, newError(KindUnknownBooking, "booking %s not found", id)
		}
		b := st.bookings[i]
		if b.Status == target {
			updated = b
			return nil, nil
		}
		if !b.Status.CanTransition(target) {
			return nil, newError(KindInvalidTransition, "booking cannot move from %s to %s", b.Status, target)
		}
		b.Status = target
		b.UpdatedAt = now
		st.bookings[i] = b
		updated = b
		return []Event{{Kind: EventBookingStatus, EntityID: id, Status: string(target)}}, nil
	})
	return updated, err
}
