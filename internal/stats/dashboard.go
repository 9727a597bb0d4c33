package stats

import (
	"time"

	"github.com/sadopc/stitchr/internal/store"
)

// GoalProgress is one line of the dashboard's goal list.
type GoalProgress struct {
	Name      string
	Completed int
	Target    int
	Percent   int
	Fraction  float64
}

// Dashboard is everything the dashboard view renders.
type Dashboard struct {
	Totals Totals
	Streak int
	Awards []string
	Goals  []GoalProgress
}

// Compute builds the dashboard for snap as seen on today.
func Compute(snap store.Snapshot, today time.Time) Dashboard {
	totals := Aggregate(snap)
	streak := CurrentStreak(today, snap.ActiveDays)

	d := Dashboard{
		Totals: totals,
		Streak: streak,
		Awards: Awards(totals, streak),
	}
	for _, g := range snap.Goals {
		d.Goals = append(d.Goals, GoalProgress{
			Name:      g.Name,
			Completed: g.Completed,
			Target:    g.Target,
			Percent:   Percent(g.Completed, g.Target),
			Fraction:  Progress(g.Completed, g.Target),
		})
	}
	return d
}
