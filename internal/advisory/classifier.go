// Package advisory evaluates which parking rate regimes are active or
// imminent and reduces the result to a single recommendation.
package advisory

import (
	"parksmart/internal/core"
	"parksmart/internal/holiday"
)

// Windows holds the fixed clock boundaries of the rate regimes, as
// minutes since local midnight. The night window wraps past 24:00.
type Windows struct {
	FreeStart       int // Free Parking Scheme daily start
	FreeEnd         int // Free Parking Scheme daily end (exclusive)
	NightStart      int // night rate start; also the free-scheme end
	NightEnd        int // night rate end (exclusive, next morning)
	EarlyBirdCutoff int // latest early-bird entry time (exclusive)
	EveningLead     int // minutes of advance notice before night rates
}

// DefaultWindows returns the standing Singapore boundaries: free scheme
// 07:00-22:30, night rates 22:30-07:00, early-bird entry before 10:00,
// one hour of evening lead time.
func DefaultWindows() Windows {
	return Windows{
		FreeStart:       core.ClockMinutes(7, 0),
		FreeEnd:         core.ClockMinutes(22, 30),
		NightStart:      core.ClockMinutes(22, 30),
		NightEnd:        core.ClockMinutes(7, 0),
		EarlyBirdCutoff: core.ClockMinutes(10, 0),
		EveningLead:     60,
	}
}

// Classifier evaluates the four rate regime signals for an instant and
// a set of already-ranked candidate carparks. Each signal is an
// independent predicate; co-occurring signals are all emitted and
// suppression to one is the selector's job.
type Classifier struct {
	calendar *holiday.Calendar
	windows  Windows
}

func NewClassifier(calendar *holiday.Calendar, windows Windows) *Classifier {
	return &Classifier{calendar: calendar, windows: windows}
}

// Classify returns zero to four signals, at most one of each type, in
// priority order. Any finite timestamp yields a deterministic result;
// an empty candidate set only rules out the count-based signals.
func (c *Classifier) Classify(nowMs int64, candidates []core.CandidateCarpark) []Signal {
	minute := core.MinutesOfDay(nowMs)
	night := c.nightActive(minute)

	var signals []Signal

	if c.calendar.IsNonChargeableDay(nowMs) && minute >= c.windows.FreeStart && minute < c.windows.FreeEnd {
		free := 0
		for _, cp := range candidates {
			if cp.IsFreeSchemeMember {
				free++
			}
		}
		if free > 0 {
			signals = append(signals, FreeDay{FreeCount: free})
		}
	}

	if !night && minute >= c.windows.NightStart-c.windows.EveningLead && minute < c.windows.NightStart {
		sig := EveningSoon{WaitMinutes: c.windows.NightStart - minute}
		if best := cheapestByDayRate(candidates); best != nil {
			sig.BestCarpark = best
			if savings := best.DayRate - best.NightCapRate; savings > 0 {
				sig.SavingsAmount = core.Round2(savings)
			}
		}
		signals = append(signals, sig)
	}

	if night {
		signals = append(signals, NightActive{})
	}

	if minute < c.windows.EarlyBirdCutoff {
		eligible := 0
		for _, cp := range candidates {
			if cp.IsEarlyBirdEligible {
				eligible++
			}
		}
		if eligible > 0 {
			signals = append(signals, EarlyBird{EligibleCount: eligible})
		}
	}

	return signals
}

// nightActive tests the wrap-around window on wall-clock minutes. A
// window whose start exceeds its end spans midnight.
func (c *Classifier) nightActive(minute int) bool {
	start, end := c.windows.NightStart, c.windows.NightEnd
	if start > end {
		return minute >= start || minute < end
	}
	return minute >= start && minute < end
}

func cheapestByDayRate(candidates []core.CandidateCarpark) *core.CandidateCarpark {
	var best *core.CandidateCarpark
	for i := range candidates {
		if best == nil || candidates[i].DayRate < best.DayRate {
			best = &candidates[i]
		}
	}
	if best == nil {
		return nil
	}
	cp := *best
	return &cp
}
