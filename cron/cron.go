// Package cron runs the marketplace's scheduled jobs: booking reminders and
// the periodic persistence flush.
package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/meinhoongagan/taskr/models"
	"github.com/meinhoongagan/taskr/query"
	"github.com/meinhoongagan/taskr/store"
	"github.com/meinhoongagan/taskr/utils"
)

// ReminderWindow is how far ahead reminders look on each run.
const ReminderWindow = time.Hour

// SnapshotSaver persists a store snapshot.
type SnapshotSaver interface {
	SaveSnapshot(ctx context.Context, snap store.Snapshot) error
}

type Scheduler struct {
	cron  *cron.Cron
	store *store.Store
	now   func() time.Time
}

func New(s *store.Store) *Scheduler {
	return &Scheduler{
		cron:  cron.New(),
		store: s,
		now:   time.Now,
	}
}

// AddReminders schedules reminder emails for confirmed bookings starting
// within the current ReminderWindow. spec should fire once per window.
func (sch *Scheduler) AddReminders(spec string, sender utils.Sender) error {
	_, err := sch.cron.AddFunc(spec, func() {
		from, to := ReminderWindowAt(sch.now())
		sent, failed := SendBookingReminders(sch.store.Snapshot(), sender, from, to)
		log.Printf("Booking reminders: %d sent, %d failed", sent, failed)
	})
	if err != nil {
		return fmt.Errorf("failed to add reminder job: %w", err)
	}
	return nil
}

// AddSnapshotFlush schedules a periodic save of the whole store.
func (sch *Scheduler) AddSnapshotFlush(spec string, saver SnapshotSaver) error {
	_, err := sch.cron.AddFunc(spec, func() {
		if err := FlushSnapshot(context.Background(), sch.store, saver); err != nil {
			log.Printf("Snapshot flush failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add snapshot job: %w", err)
	}
	return nil
}

func (sch *Scheduler) Start() {
	sch.cron.Start()
	log.Println("Cron job scheduler started")
}

// Stop halts scheduling and waits for running jobs to finish.
func (sch *Scheduler) Stop() {
	<-sch.cron.Stop().Done()
}

// ReminderWindowAt anchors the window to the start of the current
// ReminderWindow, so consecutive runs of an hourly job cover adjacent,
// non-overlapping ranges however late each run fires.
func ReminderWindowAt(now time.Time) (from, to time.Time) {
	from = now.Truncate(ReminderWindow)
	return from, from.Add(ReminderWindow)
}

// FlushSnapshot saves the current store contents.
func FlushSnapshot(ctx context.Context, s *store.Store, saver SnapshotSaver) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	return saver.SaveSnapshot(ctx, s.Snapshot())
}

// SendBookingReminders emails the client of every confirmed booking dated in
// [from, to). It returns how many reminders were sent and how many failed.
func SendBookingReminders(snap store.Snapshot, sender utils.Sender, from, to time.Time) (sent, failed int) {
	for _, v := range query.BookingViews(snap, query.UpcomingBookings(snap, from, to)) {
		client, ok := snap.User(v.UserID)
		if !ok {
			continue
		}
		if err := sender.SendEmail(client.Email, reminderSubject(v), reminderBody(v)); err != nil {
			log.Printf("Failed to send reminder for booking %s: %v", v.ID, err)
			failed++
			continue
		}
		sent++
	}
	return sent, failed
}

func reminderSubject(v query.BookingView) string {
	return fmt.Sprintf("Reminder: Upcoming booking with %s", v.ProfessionalName)
}

func reminderBody(v query.BookingView) string {
	service := query.UnknownName
	duration := models.Duration{}
	if v.Service != nil {
		service = v.Service.Name
		duration = v.Service.Duration
	}
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming booking.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Professional:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
			<li><strong>Duration:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>If you need to cancel, please do so as soon as possible.</p>
		<p>Best regards,</p>
		<p>The Taskr Team</p>
	`, v.ClientName, service, v.ProfessionalName,
		v.Date.Format("2006-01-02 15:04"),
		v.Date.Add(duration.ToDuration()).Format("2006-01-02 15:04"),
		duration, v.Status)
}
