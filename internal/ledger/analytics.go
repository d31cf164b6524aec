package ledger

import (
	"sort"
	"time"

	"parksmart/internal/core"
)

const weekMillis = 7 * 24 * int64(time.Hour/time.Millisecond)

// MonthlyTotal sums the cost of records whose session start falls in
// the given Singapore-local year and month. The sum is accumulated
// unrounded and rounded once at the end.
func (l *Ledger) MonthlyTotal(year int, month time.Month) float64 {
	var total float64
	for _, r := range l.MonthEntries(year, month) {
		total += r.Cost
	}
	return core.Round2(total)
}

// MonthEntries returns the records for the given Singapore-local year
// and month in stored (newest-first) order.
func (l *Ledger) MonthEntries(year int, month time.Month) []core.SpendRecord {
	var out []core.SpendRecord
	for _, r := range l.Records() {
		local := core.ToSGT(r.ParkedAt)
		if local.Year() == year && local.Month() == month {
			out = append(out, r)
		}
	}
	return out
}

// WeeklyTotals builds `weeks` contiguous 7-day windows ending at call
// time, oldest first. Windows roll with the clock rather than aligning
// to calendar weeks, so two calls at different times may bucket the
// same record differently; intentional. Labels are the window-start
// date in Singapore short form.
func (l *Ledger) WeeklyTotals(weeks int) []core.WeeklyBucket {
	records := l.Records()
	now := l.now().UnixMilli()

	buckets := make([]core.WeeklyBucket, 0, weeks)
	for i := weeks - 1; i >= 0; i-- {
		start := now - int64(i+1)*weekMillis
		end := now - int64(i)*weekMillis
		var total float64
		for _, r := range records {
			if r.ParkedAt >= start && r.ParkedAt < end {
				total += r.Cost
			}
		}
		buckets = append(buckets, core.WeeklyBucket{
			Label: core.ToSGT(start).Format("2 Jan"),
			Total: core.Round2(total),
		})
	}
	return buckets
}

// TopCarparks groups records by display name and returns the `limit`
// groups with the highest total spend. Two physically distinct
// carparks sharing a name collapse into one group; known limitation.
// The running total is rounded after each addition, matching the
// display contract the aggregates were built against. Ties keep
// first-seen order.
func (l *Ledger) TopCarparks(limit int) []core.CarparkSpend {
	index := make(map[string]int)
	var groups []core.CarparkSpend
	for _, r := range l.Records() {
		i, ok := index[r.CarparkName]
		if !ok {
			i = len(groups)
			index[r.CarparkName] = i
			groups = append(groups, core.CarparkSpend{CarparkName: r.CarparkName, Agency: r.Agency})
		}
		groups[i].TotalCost = core.Round2(groups[i].TotalCost + r.Cost)
		groups[i].Visits++
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].TotalCost > groups[b].TotalCost
	})
	if limit >= 0 && limit < len(groups) {
		groups = groups[:limit]
	}
	return groups
}
