package core

import (
	"testing"
	"time"
)

func TestNewSpendRecordNormalizes(t *testing.T) {
	r := NewSpendRecord("", "", "", 12.345, 2.34, 1754790600000, 1754799000000)
	if r.CarparkName != DefaultCarparkName {
		t.Fatalf("expected default name, got %q", r.CarparkName)
	}
	if r.Agency != DefaultAgency {
		t.Fatalf("expected default agency, got %q", r.Agency)
	}
	if r.Cost != 12.35 {
		t.Fatalf("expected cost 12.35, got %v", r.Cost)
	}
	if r.DurationHours != 2.3 {
		t.Fatalf("expected duration 2.3, got %v", r.DurationHours)
	}
	if r.ID != "spend_1754790600000" {
		t.Fatalf("unexpected id %q", r.ID)
	}
}

func TestSpendRecordValidate(t *testing.T) {
	good := NewSpendRecord("Blk 123", "", "HDB", 4.5, 1.5, 1754790600000, 1754796000000)
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		rec  SpendRecord
	}{
		{"negative cost", SpendRecord{Cost: -1, ParkedAt: 1}},
		{"negative duration", SpendRecord{DurationHours: -0.5, ParkedAt: 1}},
		{"zero parkedAt", SpendRecord{Cost: 1}},
	}
	for _, tc := range cases {
		if err := tc.rec.Validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{12.345, 12.35},
		{12.344, 12.34},
		{0, 0},
		{2.675, 2.68},
		{5.005, 5.01},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if got := Round1(2.34); got != 2.3 {
		t.Errorf("Round1(2.34) = %v, want 2.3", got)
	}
	if got := Round1(2.35); got != 2.4 {
		t.Errorf("Round1(2.35) = %v, want 2.4", got)
	}
}

func TestLocalDateKeyUsesLocalDay(t *testing.T) {
	// 2025-08-09 23:30 UTC is already 2025-08-10 07:30 in Singapore.
	ts := time.Date(2025, 8, 9, 23, 30, 0, 0, time.UTC).UnixMilli()
	if got := LocalDateKey(ts); got != "2025-08-10" {
		t.Fatalf("LocalDateKey = %q, want 2025-08-10", got)
	}
}

func TestMinutesOfDay(t *testing.T) {
	// 14:30 UTC = 22:30 SGT.
	ts := time.Date(2025, 8, 11, 14, 30, 0, 0, time.UTC).UnixMilli()
	if got := MinutesOfDay(ts); got != 22*60+30 {
		t.Fatalf("MinutesOfDay = %d, want %d", got, 22*60+30)
	}
}
