package models

import (
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID             string        `json:"id" gorm:"primaryKey"`
	Position       int           `json:"-"`
	UserID         string        `json:"user_id" gorm:"index"`
	ProfessionalID string        `json:"professional_id" gorm:"index"`
	ServiceID      string        `json:"service_id"`
	Status         BookingStatus `json:"status"`
	Date           time.Time     `json:"date"`
	Notes          string        `json:"notes"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// CanTransition reports whether a booking in s may move to next.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	if s.Terminal() {
		return false
	}
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCompleted || next == BookingCancelled
	}
	return false
}
