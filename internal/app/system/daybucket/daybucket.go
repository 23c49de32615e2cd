// Package daybucket handles calendar-day bucketing for view analytics.
//
// All bucketing is in UTC. A view that lands near midnight is attributed to
// the UTC day of its timestamp, so results are stable across server time
// zones.
package daybucket

import "time"

// Layout is the bucket key format (e.g. "2026-08-28").
const Layout = "2006-01-02"

// Key returns the UTC day bucket for t.
func Key(t time.Time) string {
	return t.UTC().Format(Layout)
}

// WindowStart returns the start of the trailing window of `days` days ending
// at now. Events at or after this instant belong to the window.
func WindowStart(now time.Time, days int) time.Time {
	return now.UTC().AddDate(0, 0, -days)
}

// DayCount is one entry of a densified day series.
type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// Densify expands a sparse day→count map into exactly `days` entries covering
// [today−days+1 … today] in ascending order, zero-filling absent days. Days in
// the sparse map outside that range are ignored.
func Densify(now time.Time, days int, sparse map[string]int64) []DayCount {
	out := make([]DayCount, 0, days)
	start := now.UTC().AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		day := Key(start.AddDate(0, 0, i))
		out = append(out, DayCount{Day: day, Count: sparse[day]})
	}
	return out
}
