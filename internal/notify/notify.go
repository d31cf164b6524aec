// Package notify schedules the single parking-expiry reminder.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ReminderSlotID identifies the one parking reminder slot. Scheduling always
// replaces whatever occupies the slot, so duplicates cannot accumulate.
const ReminderSlotID = 1001

// Reminder is a pending expiry notification.
type Reminder struct {
	SlotID int       `json:"slotId"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	FireAt time.Time `json:"fireAt"`
}

// Delivery is the platform notification channel.
type Delivery interface {
	Schedule(ctx context.Context, r Reminder) error
	Cancel(ctx context.Context, slotID int) error
}

// Scheduler manages the parking reminder through a Delivery channel.
type Scheduler struct {
	delivery Delivery
	now      func() time.Time
}

func NewScheduler(delivery Delivery) *Scheduler {
	return &Scheduler{delivery: delivery, now: time.Now}
}

// ScheduleParkingReminder arranges a reminder reminderMins before expiresAt
// (unix milliseconds). The existing reminder is always cancelled first. A zero
// reminderMins, a fire time already in the past, a missing delivery channel,
// or a failed cancel all make this a no-op. Delivery failures are logged,
// never propagated.
func (s *Scheduler) ScheduleParkingReminder(ctx context.Context, expiresAtMs int64, reminderMins int) {
	if reminderMins == 0 {
		return
	}
	if s.delivery == nil {
		return
	}

	fireAt := time.UnixMilli(expiresAtMs - int64(reminderMins)*int64(time.Minute/time.Millisecond))
	if !fireAt.After(s.now()) {
		return
	}

	// A failed cancel could leave two live reminders, so the new one is
	// skipped rather than scheduled alongside the old.
	if err := s.delivery.Cancel(ctx, ReminderSlotID); err != nil {
		slog.WarnContext(ctx, "Failed to cancel previous parking reminder", "error", err)
		return
	}

	plural := "s"
	if reminderMins == 1 {
		plural = ""
	}
	r := Reminder{
		SlotID: ReminderSlotID,
		Title:  "Parking Reminder",
		Body:   fmt.Sprintf("Your parking expires in %d min%s.", reminderMins, plural),
		FireAt: fireAt,
	}
	if err := s.delivery.Schedule(ctx, r); err != nil {
		slog.WarnContext(ctx, "Failed to schedule parking reminder", "error", err)
	}
}

// CancelParkingReminder drops the pending reminder, for example when the
// session ends early. Failures are logged, never propagated.
func (s *Scheduler) CancelParkingReminder(ctx context.Context) {
	if s.delivery == nil {
		return
	}
	if err := s.delivery.Cancel(ctx, ReminderSlotID); err != nil {
		slog.WarnContext(ctx, "Failed to cancel parking reminder", "error", err)
	}
}
