package models

import (
	"testing"
	"time"
)

func TestBookingTerminalStatesHaveNoExits(t *testing.T) {
	all := []BookingStatus{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled}
	for _, from := range all {
		exits := 0
		for _, to := range all {
			if from.CanTransition(to) {
				exits++
			}
		}
		if from.Terminal() != (exits == 0) {
			t.Errorf("%s: terminal=%v but %d exits", from, from.Terminal(), exits)
		}
	}
}

func TestDurationToDuration(t *testing.T) {
	d := Duration{Hours: 1, Minutes: 30}
	if got := d.ToDuration(); got != 90*time.Minute {
		t.Fatalf("expected 90m, got %v", got)
	}
	if got := (Duration{}).ToDuration(); got != 0 {
		t.Fatalf("expected zero, got %v", got)
	}
}

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role        Role
		tickets     bool
		manageUsers bool
		ownProfile  bool
	}{
		{RoleUser, false, false, false},
		{RoleProfessional, false, false, true},
		{RoleSupport, true, false, false},
		{RoleAdmin, true, true, false},
	}
	for _, tt := range tests {
		if got := tt.role.CanWorkTickets(); got != tt.tickets {
			t.Errorf("%s CanWorkTickets = %v", tt.role, got)
		}
		if got := tt.role.CanManageUsers(); got != tt.manageUsers {
			t.Errorf("%s CanManageUsers = %v", tt.role, got)
		}
		if got := tt.role.CanOwnProfile(); got != tt.ownProfile {
			t.Errorf("%s CanOwnProfile = %v", tt.role, got)
		}
	}
}
