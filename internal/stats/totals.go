// Package stats derives the dashboard numbers, awards and streaks from a
// session snapshot. Everything here is a pure function of its input.
package stats

import (
	"slices"

	"github.com/sadopc/stitchr/internal/store"
)

// Totals are the aggregate counts over one snapshot.
type Totals struct {
	CompletedStitches int
	TargetStitches    int
	StitchRatio       float64 // 0 when TargetStitches is 0

	Goals          int
	CompletedGoals int // goals with completed >= target
	Rows           int
	Photos         int
	YarnEntries    int
	YarnTypes      int
	YarnTypeNames  []string // distinct, case-sensitive, sorted
}

// Aggregate counts everything the dashboard and awards report.
func Aggregate(snap store.Snapshot) Totals {
	t := Totals{
		Goals:       len(snap.Goals),
		Rows:        len(snap.Rows),
		Photos:      len(snap.Photos),
		YarnEntries: len(snap.Yarn),
	}

	for _, r := range snap.Rows {
		t.CompletedStitches += r.Completed
		t.TargetStitches += r.Target
	}
	t.StitchRatio = Progress(t.CompletedStitches, t.TargetStitches)

	for _, g := range snap.Goals {
		if g.Done() {
			t.CompletedGoals++
		}
	}

	seen := make(map[string]bool)
	for _, y := range snap.Yarn {
		if seen[y.Type] {
			continue
		}
		seen[y.Type] = true
		t.YarnTypeNames = append(t.YarnTypeNames, y.Type)
	}
	slices.Sort(t.YarnTypeNames)
	t.YarnTypes = len(t.YarnTypeNames)

	return t
}

// Progress returns done/target as a fraction, or 0 for a zero target.
func Progress(done, target int) float64 {
	if target <= 0 {
		return 0
	}
	return float64(done) / float64(target)
}

// Percent is Progress truncated to a whole percentage.
func Percent(done, target int) int {
	return int(Progress(done, target) * 100)
}
