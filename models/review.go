package models

import (
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Position       int       `json:"-"`
	ProfessionalID string    `json:"professional_id" gorm:"index"`
	UserID         *string   `json:"user_id"`
	BookingID      *string   `json:"booking_id"` // Optional link to the booking being reviewed
	Rating         int       `json:"rating" gorm:"not null"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"created_at"`
}

// ValidRating reports whether r is a whole star rating between 1 and 5.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// Clone returns a copy whose optional references are not shared with r.
func (r Review) Clone() Review {
	if r.UserID != nil {
		u := *r.UserID
		r.UserID = &u
	}
	if r.BookingID != nil {
		b := *r.BookingID
		r.BookingID = &b
	}
	return r
}
