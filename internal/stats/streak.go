package stats

import (
	"slices"
	"time"
)

// date is a calendar day without a time or location.
type date struct {
	y int
	m time.Month
	d int
}

func dateOf(t time.Time) date {
	y, m, d := t.Date()
	return date{y, m, d}
}

func (d date) time() time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC)
}

// CurrentStreak counts consecutive calendar days ending at the most recent
// active day. today is always counted as active. The walk goes backwards
// one day at a time and stops at the first gap, so older runs are ignored.
// The result is at least 1.
func CurrentStreak(today time.Time, days []time.Time) int {
	seen := map[date]bool{dateOf(today): true}
	sorted := []time.Time{dateOf(today).time()}
	for _, d := range days {
		k := dateOf(d)
		if seen[k] {
			continue
		}
		seen[k] = true
		sorted = append(sorted, k.time())
	}
	slices.SortFunc(sorted, func(a, b time.Time) int { return b.Compare(a) })

	streak := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Sub(sorted[i]) != 24*time.Hour {
			break
		}
		streak++
	}
	return streak
}
