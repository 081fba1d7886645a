package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/meinhoongagan/taskr/models"
)

var fixedTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	n := 0
	return New(
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func mustUser(t *testing.T, s *Store, name, email string, role models.Role) models.User {
	t.Helper()
	u, err := s.CreateUser(CreateUserInput{Name: name, Email: email, Role: role})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func mustProfessional(t *testing.T, s *Store, name string, rate float64) (models.User, models.ProfessionalProfile) {
	t.Helper()
	u := mustUser(t, s, name, name+"@example.com", models.RoleProfessional)
	p, err := s.CreateProfessionalProfile(u.ID, ProfileInput{Title: name + " services", HourlyRate: rate})
	if err != nil {
		t.Fatalf("create profile for %s: %v", name, err)
	}
	return u, p
}

func TestCreateUserRejectsDuplicateEmailIgnoringCase(t *testing.T) {
	s := newTestStore(t)
	mustUser(t, s, "Ada", "ada@example.com", models.RoleUser)

	for _, email := range []string{"ada@example.com", "ADA@Example.com", "  ada@example.com "} {
		_, err := s.CreateUser(CreateUserInput{Name: "Other", Email: email, Role: models.RoleUser})
		if !errors.Is(err, ErrDuplicateEmail) {
			t.Fatalf("email %q: expected duplicate email, got %v", email, err)
		}
	}
	if got := len(s.ListUsers()); got != 1 {
		t.Fatalf("expected 1 user, got %d", got)
	}
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name string
		in   CreateUserInput
		kind Kind
	}{
		{name: "missing name", in: CreateUserInput{Email: "a@b.c", Role: models.RoleUser}, kind: KindMissingRequiredField},
		{name: "missing email", in: CreateUserInput{Name: "A", Role: models.RoleUser}, kind: KindMissingRequiredField},
		{name: "unknown role", in: CreateUserInput{Name: "A", Email: "a@b.c", Role: "owner"}, kind: KindInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			_, err := s.CreateUser(tt.in)
			if KindOf(err) != tt.kind {
				t.Fatalf("expected %s, got %v", tt.kind, err)
			}
		})
	}
}

func TestFindUserByEmail(t *testing.T) {
	s := newTestStore(t)
	u := mustUser(t, s, "Ada", "Ada@Example.com", models.RoleUser)

	got, err := s.FindUserByEmail("ada@example.COM")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("expected %s, got %s", u.ID, got.ID)
	}
	if _, err := s.FindUserByEmail("nobody@example.com"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected unknown user, got %v", err)
	}
}

func TestCreateProfessionalProfileRules(t *testing.T) {
	s := newTestStore(t)
	client := mustUser(t, s, "Cli", "cli@example.com", models.RoleUser)
	pro := mustUser(t, s, "Pro", "pro@example.com", models.RoleProfessional)

	if _, err := s.CreateProfessionalProfile("missing", ProfileInput{}); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected unknown user, got %v", err)
	}
	if _, err := s.CreateProfessionalProfile(client.ID, ProfileInput{}); !errors.Is(err, ErrRoleNotPermitted) {
		t.Fatalf("expected role not permitted, got %v", err)
	}
	if _, err := s.CreateProfessionalProfile(pro.ID, ProfileInput{HourlyRate: -1}); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected invalid value, got %v", err)
	}

	p, err := s.CreateProfessionalProfile(pro.ID, ProfileInput{Title: " Plumber ", Skills: []string{" pipes", "", "drains "}})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if p.Name != "Pro" || p.Title != "Plumber" {
		t.Fatalf("unexpected profile %+v", p)
	}
	if len(p.Skills) != 2 || p.Skills[0] != "pipes" || p.Skills[1] != "drains" {
		t.Fatalf("expected cleaned skills, got %q", p.Skills)
	}
	if p.Rating != 0 || p.ReviewCount != 0 {
		t.Fatalf("expected empty aggregate, got %v/%d", p.Rating, p.ReviewCount)
	}

	if _, err := s.CreateProfessionalProfile(pro.ID, ProfileInput{}); !errors.Is(err, ErrProfileAlreadyExists) {
		t.Fatalf("expected profile already exists, got %v", err)
	}
}

func TestUpdateProfessionalProfileMergesOnlyGivenFields(t *testing.T) {
	s := newTestStore(t)
	_, p := mustProfessional(t, s, "pat", 40)
	if _, err := s.RecordReview(p.ID, 5, "great", ReviewInput{}); err != nil {
		t.Fatalf("review: %v", err)
	}

	bio := "Twenty years on the tools"
	rate := 55.0
	got, err := s.UpdateProfessionalProfile(p.ID, ProfileUpdate{Bio: &bio, HourlyRate: &rate})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.ID != p.ID || got.UserID != p.UserID {
		t.Fatalf("identity changed: %+v", got)
	}
	if got.Title != p.Title {
		t.Fatalf("title should be untouched, got %q", got.Title)
	}
	if got.Bio != bio || got.HourlyRate != rate {
		t.Fatalf("fields not merged: %+v", got)
	}
	if got.Rating != 5 || got.ReviewCount != 1 {
		t.Fatalf("aggregate should survive update, got %v/%d", got.Rating, got.ReviewCount)
	}

	neg := -3.0
	if _, err := s.UpdateProfessionalProfile(p.ID, ProfileUpdate{HourlyRate: &neg}); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected invalid value, got %v", err)
	}
	if _, err := s.UpdateProfessionalProfile("nope", ProfileUpdate{Bio: &bio}); !errors.Is(err, ErrUnknownProfessional) {
		t.Fatalf("expected unknown professional, got %v", err)
	}
}

func TestAddAndRemoveService(t *testing.T) {
	s := newTestStore(t)
	_, p := mustProfessional(t, s, "pat", 40)

	a, err := s.AddService(p.ID, ServiceInput{Name: "Fix tap", Category: "Plumbing", Price: 10, Duration: models.Duration{Hours: 1}})
	if err != nil {
		t.Fatalf("add A: %v", err)
	}
	b, err := s.AddService(p.ID, ServiceInput{Name: "Unblock drain", Category: "Plumbing", Price: 20})
	if err != nil {
		t.Fatalf("add B: %v", err)
	}
	if _, err := s.AddService(p.ID, ServiceInput{Name: " "}); !errors.Is(err, ErrMissingRequiredField) {
		t.Fatalf("expected missing field, got %v", err)
	}
	if _, err := s.AddService(p.ID, ServiceInput{Name: "Free?", Price: -1}); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected invalid value, got %v", err)
	}

	got, _ := s.GetProfessional(p.ID)
	if len(got.Services) != 2 || got.Services[0].ID != a.ID || got.Services[1].ID != b.ID {
		t.Fatalf("expected services in insertion order, got %+v", got.Services)
	}

	if err := s.RemoveService(p.ID, "not-there"); err != nil {
		t.Fatalf("removing an absent service should be a no-op, got %v", err)
	}
	if err := s.RemoveService(p.ID, a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, _ = s.GetProfessional(p.ID)
	if len(got.Services) != 1 || got.Services[0].ID != b.ID {
		t.Fatalf("expected only B left, got %+v", got.Services)
	}
}

func TestRemovedServiceKeepsBookings(t *testing.T) {
	s := newTestStore(t)
	client := mustUser(t, s, "Cli", "cli@example.com", models.RoleUser)
	_, p := mustProfessional(t, s, "pat", 40)
	svc, _ := s.AddService(p.ID, ServiceInput{Name: "Fix tap", Price: 10})
	b, err := s.CreateBooking(client.ID, p.ID, svc.ID, fixedTime.Add(24*time.Hour), "")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if err := s.RemoveService(p.ID, svc.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := s.GetBooking(b.ID); err != nil {
		t.Fatalf("booking should survive service removal: %v", err)
	}
	if _, err := s.CreateBooking(client.ID, p.ID, svc.ID, fixedTime, ""); !errors.Is(err, ErrUnknownService) {
		t.Fatalf("expected unknown service for removed offering, got %v", err)
	}
}

func TestRecordReviewAggregate(t *testing.T) {
	s := newTestStore(t)
	_, p := mustProfessional(t, s, "pat", 40)

	if _, err := s.RecordReview(p.ID, 4, "good", ReviewInput{}); err != nil {
		t.Fatalf("review 1: %v", err)
	}
	if _, err := s.RecordReview(p.ID, 2, "meh", ReviewInput{}); err != nil {
		t.Fatalf("review 2: %v", err)
	}
	got, _ := s.GetProfessional(p.ID)
	if got.Rating != 3.0 || got.ReviewCount != 2 {
		t.Fatalf("expected 3.0 over 2 reviews, got %v over %d", got.Rating, got.ReviewCount)
	}

	for _, bad := range []int{0, 6, -1} {
		if _, err := s.RecordReview(p.ID, bad, "", ReviewInput{}); !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("rating %d: expected invalid rating, got %v", bad, err)
		}
	}
	if _, err := s.RecordReview("nope", 3, "", ReviewInput{}); !errors.Is(err, ErrUnknownProfessional) {
		t.Fatalf("expected unknown professional, got %v", err)
	}
}

func TestRecordReviewIsOrderIndependent(t *testing.T) {
	ratings := []int{5, 4, 4, 1, 3, 5, 2}
	want := models.AverageRating(ratings)

	orders := [][]int{
		ratings,
		{2, 5, 3, 1, 4, 4, 5},
		{1, 2, 3, 4, 4, 5, 5},
		{5, 5, 4, 4, 3, 2, 1},
	}
	for _, order := range orders {
		s := newTestStore(t)
		_, p := mustProfessional(t, s, "pat", 40)
		for _, r := range order {
			if _, err := s.RecordReview(p.ID, r, "", ReviewInput{}); err != nil {
				t.Fatalf("review: %v", err)
			}
		}
		got, _ := s.GetProfessional(p.ID)
		if got.Rating != want || got.ReviewCount != len(order) {
			t.Fatalf("order %v: expected %v/%d, got %v/%d", order, want, len(order), got.Rating, got.ReviewCount)
		}
	}
	if want != 3.4 {
		t.Fatalf("expected mean 24/7 rounded to 3.4, got %v", want)
	}
}

func TestRecordReviewOnlyCountsOwnProfile(t *testing.T) {
	s := newTestStore(t)
	_, p1 := mustProfessional(t, s, "pat", 40)
	_, p2 := mustProfessional(t, s, "sam", 40)
	s.RecordReview(p1.ID, 5, "", ReviewInput{})
	s.RecordReview(p2.ID, 1, "", ReviewInput{})
	s.RecordReview(p1.ID, 4, "", ReviewInput{UserID: "u", BookingID: "b"})

	got1, _ := s.GetProfessional(p1.ID)
	got2, _ := s.GetProfessional(p2.ID)
	if got1.Rating != 4.5 || got1.ReviewCount != 2 {
		t.Fatalf("p1: got %v/%d", got1.Rating, got1.ReviewCount)
	}
	if got2.Rating != 1 || got2.ReviewCount != 1 {
		t.Fatalf("p2: got %v/%d", got2.Rating, got2.ReviewCount)
	}
}

func TestFailedMutationLeavesStateUntouched(t *testing.T) {
	s := newTestStore(t)
	mustUser(t, s, "Ada", "ada@example.com", models.RoleUser)
	before := s.Snapshot()

	if _, err := s.CreateUser(CreateUserInput{Name: "Ada2", Email: "ADA@example.com", Role: models.RoleUser}); err == nil {
		t.Fatal("expected failure")
	}
	after := s.Snapshot()
	if len(before.Users) != len(after.Users) {
		t.Fatalf("user count changed from %d to %d", len(before.Users), len(after.Users))
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := newTestStore(t)
	_, p := mustProfessional(t, s, "pat", 40)
	s.AddService(p.ID, ServiceInput{Name: "Fix tap", Price: 10})

	snap := s.Snapshot()
	snap.Professionals[0].Services[0].Name = "tampered"
	snap.Professionals[0].Skills = append(snap.Professionals[0].Skills, "tampered")

	got, _ := s.GetProfessional(p.ID)
	if got.Services[0].Name != "Fix tap" {
		t.Fatalf("snapshot mutation leaked into store: %q", got.Services[0].Name)
	}
	if len(got.Skills) != 0 {
		t.Fatalf("snapshot mutation leaked skills: %q", got.Skills)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	client := mustUser(t, s, "Cli", "cli@example.com", models.RoleUser)
	_, p := mustProfessional(t, s, "pat", 40)
	svc, _ := s.AddService(p.ID, ServiceInput{Name: "Fix tap", Price: 10})
	s.CreateBooking(client.ID, p.ID, svc.ID, fixedTime, "")
	s.CreateTicket(client.ID, "Help", "Where is my pro?", models.PriorityHigh)
	snap := s.Snapshot()

	restored := newTestStore(t)
	if err := restored.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got := restored.Snapshot()
	if len(got.Users) != 2 || len(got.Professionals) != 1 || len(got.Bookings) != 1 || len(got.Tickets) != 1 {
		t.Fatalf("unexpected restored sizes: %+v", got)
	}
	if _, err := restored.CreateUser(CreateUserInput{Name: "x", Email: "CLI@example.com", Role: models.RoleUser}); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("restored email index should reject duplicates, got %v", err)
	}
}

func TestRestoreRejectsInconsistentSnapshot(t *testing.T) {
	s := newTestStore(t)
	mustUser(t, s, "Ada", "ada@example.com", models.RoleUser)

	pro := models.User{ID: "u1", Name: "A", Email: "a@x.io", Role: models.RoleProfessional}
	agent := models.User{ID: "u2", Name: "B", Email: "b@x.io", Role: models.RoleSupport}
	client := models.User{ID: "u3", Name: "C", Email: "c@x.io", Role: models.RoleUser}
	ghost := "ghost"
	clientID := client.ID

	tests := []struct {
		name string
		snap Snapshot
		want error
	}{
		{
			name: "profile of missing user",
			snap: Snapshot{Users: []models.User{pro}, Professionals: []models.ProfessionalProfile{{ID: "p1", UserID: "ghost"}}},
			want: ErrUnknownUser,
		},
		{
			name: "repeated user id",
			snap: Snapshot{Users: []models.User{pro, {ID: "u1", Name: "Z", Email: "z@x.io", Role: models.RoleUser}}},
			want: ErrInvalidValue,
		},
		{
			name: "duplicate email",
			snap: Snapshot{Users: []models.User{pro, {ID: "u9", Name: "Z", Email: " A@X.io", Role: models.RoleUser}}},
			want: ErrDuplicateEmail,
		},
		{
			name: "unknown role",
			snap: Snapshot{Users: []models.User{{ID: "u1", Name: "A", Email: "a@x.io", Role: "wizard"}}},
			want: ErrInvalidValue,
		},
		{
			name: "profile owned by a client",
			snap: Snapshot{Users: []models.User{client}, Professionals: []models.ProfessionalProfile{{ID: "p1", UserID: client.ID}}},
			want: ErrRoleNotPermitted,
		},
		{
			name: "repeated service id",
			snap: Snapshot{Users: []models.User{pro}, Professionals: []models.ProfessionalProfile{{ID: "p1", UserID: pro.ID, Services: []models.Service{{ID: "s1"}, {ID: "s1"}}}}},
			want: ErrInvalidValue,
		},
		{
			name: "unknown booking status",
			snap: Snapshot{Bookings: []models.Booking{{ID: "b1", Status: "lost"}}},
			want: ErrInvalidValue,
		},
		{
			name: "repeated booking id",
			snap: Snapshot{Bookings: []models.Booking{{ID: "b1", Status: models.BookingPending}, {ID: "b1", Status: models.BookingPending}}},
			want: ErrInvalidValue,
		},
		{
			name: "rating out of range",
			snap: Snapshot{Reviews: []models.Review{{ID: "r1", Rating: 6}}},
			want: ErrInvalidRating,
		},
		{
			name: "unknown ticket status",
			snap: Snapshot{Tickets: []models.SupportTicket{{ID: "t1", Status: "bogus", Priority: models.PriorityLow}}},
			want: ErrInvalidValue,
		},
		{
			name: "ticket assigned to missing user",
			snap: Snapshot{Users: []models.User{agent}, Tickets: []models.SupportTicket{{ID: "t1", Status: models.TicketInProgress, Priority: models.PriorityLow, AssignedTo: &ghost}}},
			want: ErrUnknownUser,
		},
		{
			name: "ticket assigned to a client",
			snap: Snapshot{Users: []models.User{client}, Tickets: []models.SupportTicket{{ID: "t1", Status: models.TicketInProgress, Priority: models.PriorityLow, AssignedTo: &clientID}}},
			want: ErrRoleNotPermitted,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Restore(tt.snap); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if got := s.ListUsers(); len(got) != 1 || got[0].Email != "ada@example.com" {
				t.Fatalf("store should be unchanged, got %+v", got)
			}
		})
	}
}

func TestObserversSeeCommittedEventsOnly(t *testing.T) {
	s := newTestStore(t)
	var seen []Event
	s.Subscribe(func(ev Event) { seen = append(seen, ev) })

	u := mustUser(t, s, "Ada", "ada@example.com", models.RoleUser)
	s.CreateUser(CreateUserInput{Name: "Dup", Email: "ada@example.com", Role: models.RoleUser})

	if len(seen) != 1 {
		t.Fatalf("expected 1 event, got %d: %+v", len(seen), seen)
	}
	if seen[0].Kind != EventUserCreated || seen[0].EntityID != u.ID || !seen[0].At.Equal(fixedTime) {
		t.Fatalf("unexpected event %+v", seen[0])
	}
}

func TestObserverMayReadStore(t *testing.T) {
	s := newTestStore(t)
	var users int
	s.Subscribe(func(Event) { users = len(s.ListUsers()) })
	mustUser(t, s, "Ada", "ada@example.com", models.RoleUser)
	if users != 1 {
		t.Fatalf("observer should run after commit, saw %d users", users)
	}
}
