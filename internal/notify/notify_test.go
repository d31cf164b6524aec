package notify

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestScheduleParkingReminder(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	expiresAt := now.Add(2 * time.Hour).UnixMilli()

	d := NewMemoryDelivery()
	s := NewScheduler(d)
	s.now = fixedClock(now)

	s.ScheduleParkingReminder(context.Background(), expiresAt, 15)

	r, ok := d.Pending(ReminderSlotID)
	if !ok {
		t.Fatal("expected a pending reminder")
	}
	wantFire := time.UnixMilli(expiresAt).Add(-15 * time.Minute)
	if !r.FireAt.Equal(wantFire) {
		t.Errorf("FireAt = %v, want %v", r.FireAt, wantFire)
	}
	if r.Body != "Your parking expires in 15 mins." {
		t.Errorf("Body = %q", r.Body)
	}
}

func TestScheduleSingularMinute(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	d := NewMemoryDelivery()
	s := NewScheduler(d)
	s.now = fixedClock(now)

	s.ScheduleParkingReminder(context.Background(), now.Add(time.Hour).UnixMilli(), 1)

	r, ok := d.Pending(ReminderSlotID)
	if !ok {
		t.Fatal("expected a pending reminder")
	}
	if r.Body != "Your parking expires in 1 min." {
		t.Errorf("Body = %q", r.Body)
	}
}

func TestScheduleReplacesExisting(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	d := NewMemoryDelivery()
	s := NewScheduler(d)
	s.now = fixedClock(now)

	s.ScheduleParkingReminder(context.Background(), now.Add(time.Hour).UnixMilli(), 10)
	s.ScheduleParkingReminder(context.Background(), now.Add(3*time.Hour).UnixMilli(), 30)

	r, ok := d.Pending(ReminderSlotID)
	if !ok {
		t.Fatal("expected a pending reminder")
	}
	wantFire := now.Add(3*time.Hour - 30*time.Minute)
	if !r.FireAt.Equal(wantFire) {
		t.Errorf("second schedule should replace the first, FireAt = %v, want %v", r.FireAt, wantFire)
	}
}

func TestScheduleSkipsPastFireTime(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	d := NewMemoryDelivery()
	s := NewScheduler(d)
	s.now = fixedClock(now)

	// Expires in 5 minutes, reminder wanted 15 before: already passed.
	s.ScheduleParkingReminder(context.Background(), now.Add(5*time.Minute).UnixMilli(), 15)

	if _, ok := d.Pending(ReminderSlotID); ok {
		t.Fatal("reminder in the past must not be scheduled")
	}
}

func TestScheduleZeroMinutesIsNoop(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	d := NewMemoryDelivery()
	s := NewScheduler(d)
	s.now = fixedClock(now)

	s.ScheduleParkingReminder(context.Background(), now.Add(time.Hour).UnixMilli(), 0)

	if _, ok := d.Pending(ReminderSlotID); ok {
		t.Fatal("zero reminder minutes must not schedule")
	}
}

func TestCancelParkingReminder(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	d := NewMemoryDelivery()
	s := NewScheduler(d)
	s.now = fixedClock(now)

	s.ScheduleParkingReminder(context.Background(), now.Add(time.Hour).UnixMilli(), 10)
	s.CancelParkingReminder(context.Background())

	if _, ok := d.Pending(ReminderSlotID); ok {
		t.Fatal("cancel should remove the pending reminder")
	}
}

type failingDelivery struct{}

func (failingDelivery) Schedule(context.Context, Reminder) error {
	return errors.New("channel down")
}
func (failingDelivery) Cancel(context.Context, int) error {
	return errors.New("channel down")
}

func TestDeliveryFailuresNeverPropagate(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	s := NewScheduler(failingDelivery{})
	s.now = fixedClock(now)

	// Neither call may panic or surface the error.
	s.ScheduleParkingReminder(context.Background(), now.Add(time.Hour).UnixMilli(), 10)
	s.CancelParkingReminder(context.Background())
}

type cancelFailDelivery struct {
	scheduled []Reminder
}

func (d *cancelFailDelivery) Schedule(_ context.Context, r Reminder) error {
	d.scheduled = append(d.scheduled, r)
	return nil
}
func (*cancelFailDelivery) Cancel(context.Context, int) error {
	return errors.New("channel down")
}

func TestFailedCancelSkipsSchedule(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	d := &cancelFailDelivery{}
	s := NewScheduler(d)
	s.now = fixedClock(now)

	// When the old reminder cannot be cancelled, scheduling a new one
	// could leave two live reminders, so nothing is scheduled.
	s.ScheduleParkingReminder(context.Background(), now.Add(time.Hour).UnixMilli(), 10)

	if len(d.scheduled) != 0 {
		t.Fatalf("scheduled %d reminders, want 0 after failed cancel", len(d.scheduled))
	}
}

func TestNilDeliveryIsNoop(t *testing.T) {
	s := NewScheduler(nil)
	s.ScheduleParkingReminder(context.Background(), time.Now().Add(time.Hour).UnixMilli(), 10)
	s.CancelParkingReminder(context.Background())
}
