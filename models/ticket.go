package models

import (
	"strings"
	"time"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in-progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type SupportTicket struct {
	ID         string       `json:"id" gorm:"primaryKey"`
	Position   int          `json:"-"`
	UserID     string       `json:"user_id" gorm:"index"`
	Subject    string       `json:"subject"`
	Message    string       `json:"message"`
	Priority   Priority     `json:"priority"`
	Status     TicketStatus `json:"status"`
	AssignedTo *string      `json:"assigned_to"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Clone returns a copy whose AssignedTo pointer is not shared with t.
func (t SupportTicket) Clone() SupportTicket {
	if t.AssignedTo != nil {
		a := *t.AssignedTo
		t.AssignedTo = &a
	}
	return t
}

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

// CanTransition reports whether a ticket in s may move to next. Closed is
// terminal and open never jumps straight to closed.
func (s TicketStatus) CanTransition(next TicketStatus) bool {
	switch s {
	case TicketOpen:
		return next == TicketInProgress
	case TicketInProgress:
		return next == TicketResolved || next == TicketOpen
	case TicketResolved:
		return next == TicketClosed || next == TicketOpen
	case TicketClosed:
		return false
	}
	return false
}

// ParsePriority maps s to a priority; empty input yields medium.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return PriorityMedium, true
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, true
	}
	return p, false
}
