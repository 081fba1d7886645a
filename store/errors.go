package store

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable failure category returned by store operations.
type Kind string

const (
	KindDuplicateEmail       Kind = "DUPLICATE_EMAIL"
	KindProfileAlreadyExists Kind = "PROFILE_ALREADY_EXISTS"
	KindUnknownProfessional  Kind = "UNKNOWN_PROFESSIONAL"
	KindUnknownService       Kind = "UNKNOWN_SERVICE"
	KindUnknownUser          Kind = "UNKNOWN_USER"
	KindUnknownBooking       Kind = "UNKNOWN_BOOKING"
	KindUnknownTicket        Kind = "UNKNOWN_TICKET"
	KindMissingRequiredField Kind = "MISSING_REQUIRED_FIELD"
	KindInvalidTransition    Kind = "INVALID_TRANSITION"
	KindTicketClosed         Kind = "TICKET_CLOSED"
	KindRoleNotPermitted     Kind = "ROLE_NOT_PERMITTED"
	KindInvalidRating        Kind = "INVALID_RATING"
	KindInvalidValue         Kind = "INVALID_VALUE"
)

// Error is the typed result for an expected business failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrUnknownUser)
// works regardless of the message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrDuplicateEmail       = &Error{Kind: KindDuplicateEmail}
	ErrProfileAlreadyExists = &Error{Kind: KindProfileAlreadyExists}
	ErrUnknownProfessional  = &Error{Kind: KindUnknownProfessional}
	ErrUnknownService       = &Error{Kind: KindUnknownService}
	ErrUnknownUser          = &Error{Kind: KindUnknownUser}
	ErrUnknownBooking       = &Error{Kind: KindUnknownBooking}
	ErrUnknownTicket        = &Error{Kind: KindUnknownTicket}
	ErrMissingRequiredField = &Error{Kind: KindMissingRequiredField}
	ErrInvalidTransition    = &Error{Kind: KindInvalidTransition}
	ErrTicketClosed         = &Error{Kind: KindTicketClosed}
	ErrRoleNotPermitted     = &Error{Kind: KindRoleNotPermitted}
	ErrInvalidRating        = &Error{Kind: KindInvalidRating}
	ErrInvalidValue         = &Error{Kind: KindInvalidValue}
)

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind carried by err, or "" when err is not a store error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
