// Package holiday answers whether an instant falls on a non-chargeable
// calendar day (Sunday or Singapore public holiday) for the Free
// Parking Scheme. The calendar only knows about days; the daily
// operating-hours window is layered on top by the advisory classifier.
package holiday

import (
	"time"

	"parksmart/internal/core"
)

// Calendar resolves non-chargeable days against an immutable set of
// local dates. The set is injected and externally maintained; it must
// be refreshed at least yearly.
type Calendar struct {
	dates map[string]struct{}
}

// NewCalendar builds a calendar from YYYY-MM-DD local date keys.
// Unknown or malformed keys are kept verbatim; they simply never match.
func NewCalendar(dates []string) *Calendar {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return &Calendar{dates: set}
}

// Default returns a calendar preloaded with the compiled-in Singapore
// public holiday dataset.
func Default() *Calendar {
	return NewCalendar(PublicHolidays)
}

// IsNonChargeableDay reports whether the instant falls on a Sunday or a
// public holiday in Singapore local time. Any finite timestamp is valid
// input. The lookup key is the local calendar date, not the UTC date.
func (c *Calendar) IsNonChargeableDay(tsMs int64) bool {
	local := core.ToSGT(tsMs)
	if local.Weekday() == time.Sunday {
		return true
	}
	_, ok := c.dates[local.Format("2006-01-02")]
	return ok
}

// Contains reports whether the given local date key is in the holiday set.
func (c *Calendar) Contains(dateKey string) bool {
	_, ok := c.dates[dateKey]
	return ok
}

// Len returns the number of holiday dates loaded.
func (c *Calendar) Len() int {
	return len(c.dates)
}
