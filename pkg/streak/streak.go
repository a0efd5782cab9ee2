// Package streak counts runs of consecutive calendar days.
//
// Days are compared by calendar date in their own location; the time of day
// is discarded before any comparison.
package streak

import (
	"sort"
	"time"
)

// Normalize truncates t to midnight in t's location.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Distinct normalizes days, removes duplicates and sorts them ascending.
func Distinct(days []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(days))
	out := make([]time.Time, 0, len(days))
	for _, day := range days {
		n := Normalize(day)
		key := dayKey(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Current returns the length of the unbroken run of days ending exactly at
// reference. It is 0 when reference itself was not recorded.
func Current(days []time.Time, reference time.Time) int {
	if len(days) == 0 {
		return 0
	}
	set := make(map[time.Time]struct{}, len(days))
	for _, day := range days {
		set[dayKey(Normalize(day))] = struct{}{}
	}

	count := 0
	cursor := Normalize(reference)
	for {
		if _, ok := set[dayKey(cursor)]; !ok {
			return count
		}
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

// TrailingRun scans the recorded history ascending and returns the length of
// the run of consecutive days that ends at the last recorded day. A gap resets
// the running count to 1. Unlike Current it does not care whether the last
// recorded day is today.
func TrailingRun(days []time.Time) int {
	sorted := Distinct(days)
	if len(sorted) == 0 {
		return 0
	}
	run := 1
	for i := 1; i < len(sorted); i++ {
		switch diff := daysBetween(sorted[i-1], sorted[i]); {
		case diff == 1:
			run++
		case diff > 1:
			run = 1
		}
	}
	return run
}

// daysBetween counts calendar days from a to b, both at midnight.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// dayKey maps a day onto a location-free key so that equal calendar dates
// from different *time.Location values collapse.
func dayKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
