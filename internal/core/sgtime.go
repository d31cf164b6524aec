package core

import "time"

// Singapore keeps a fixed UTC+8 offset with no daylight saving, so a
// fixed zone is correct and avoids a tzdata dependency.
var SGT = time.FixedZone("SGT", 8*3600)

// MinutesPerDay is the number of wall-clock minutes in a local day.
const MinutesPerDay = 24 * 60

// ToSGT converts a Unix millisecond timestamp to Singapore local time.
func ToSGT(tsMs int64) time.Time {
	return time.UnixMilli(tsMs).In(SGT)
}

// LocalDateKey returns the Singapore local calendar date as YYYY-MM-DD.
// The key must be the local date, not the UTC date: an instant just
// after UTC midnight may already be the next day in Singapore.
func LocalDateKey(tsMs int64) string {
	return ToSGT(tsMs).Format("2006-01-02")
}

// MinutesOfDay returns wall-clock minutes since local midnight in
// Singapore for the given instant. Window comparisons that cross 24:00
// must use this rather than absolute timestamp ordering.
func MinutesOfDay(tsMs int64) int {
	t := ToSGT(tsMs)
	return t.Hour()*60 + t.Minute()
}

// ClockMinutes converts an HH:MM pair to minutes since midnight.
func ClockMinutes(hour, minute int) int {
	return hour*60 + minute
}
