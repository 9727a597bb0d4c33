package store

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// MarkActive records day (in its own location) as an active day. Marking
// the same calendar date twice is a no-op.
func (s *Store) MarkActive(day time.Time) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO activity_days (day) VALUES (?)`, day.Format(dayLayout))
	if err != nil {
		return fmt.Errorf("mark active: %w", err)
	}
	return nil
}

// ActiveDays returns every active date, oldest first, at midnight UTC.
func (s *Store) ActiveDays() ([]time.Time, error) {
	rows, err := s.db.Query(`SELECT day FROM activity_days ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("list active days: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		d, err := time.Parse(dayLayout, v)
		if err != nil {
			return nil, fmt.Errorf("parse active day %q: %w", v, err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}
