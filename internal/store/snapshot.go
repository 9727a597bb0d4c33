package store

import (
	"fmt"
	"time"
)

// Snapshot reads every collection.
func (s *Store) Snapshot() (Snapshot, error) {
	var snap Snapshot
	var err error
	if snap.Rows, err = s.ListRows(); err != nil {
		return Snapshot{}, err
	}
	if snap.Patterns, err = s.ListPatterns(); err != nil {
		return Snapshot{}, err
	}
	if snap.Goals, err = s.ListGoals(); err != nil {
		return Snapshot{}, err
	}
	if snap.Yarn, err = s.ListYarn(); err != nil {
		return Snapshot{}, err
	}
	if snap.Photos, err = s.ListPhotos(); err != nil {
		return Snapshot{}, err
	}
	if snap.ActiveDays, err = s.ActiveDays(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Restore replaces every collection with the content of snap. Record IDs
// are reassigned; creation times are kept. Nothing changes if any record
// is rejected.
func (s *Store) Restore(snap Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin restore: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"stitch_rows", "patterns", "goals", "yarn", "photos", "activity_days"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	stamp := func(t time.Time) string {
		if t.IsZero() {
			return s.timestamp()
		}
		return formatTime(t)
	}

	for _, r := range snap.Rows {
		if err := validateRow(r.Name, r.Target); err != nil {
			return fmt.Errorf("restore row %q: %w", r.Name, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO stitch_rows (name, target, completed, pattern, notes, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			r.Name, r.Target, r.Completed, r.Pattern, r.Notes, stamp(r.CreatedAt),
		); err != nil {
			return fmt.Errorf("restore row %q: %w", r.Name, err)
		}
	}
	for _, p := range snap.Patterns {
		if err := validatePattern(p.Name, p.Text); err != nil {
			return fmt.Errorf("restore pattern %q: %w", p.Name, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO patterns (name, body, created_at) VALUES (?, ?, ?)`,
			p.Name, p.Text, stamp(p.CreatedAt),
		); err != nil {
			return fmt.Errorf("restore pattern %q: %w", p.Name, err)
		}
	}
	for _, g := range snap.Goals {
		if err := validateGoal(g.Name, g.Target); err != nil {
			return fmt.Errorf("restore goal %q: %w", g.Name, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO goals (name, target, completed, created_at) VALUES (?, ?, ?, ?)`,
			g.Name, g.Target, g.Completed, stamp(g.CreatedAt),
		); err != nil {
			return fmt.Errorf("restore goal %q: %w", g.Name, err)
		}
	}
	for _, y := range snap.Yarn {
		if err := validateYarn(y); err != nil {
			return fmt.Errorf("restore yarn %q: %w", y.Type, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO yarn (type, brand, color, quantity, project, notes, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			y.Type, y.Brand, y.Color, y.Quantity, y.Project, y.Notes, stamp(y.CreatedAt),
		); err != nil {
			return fmt.Errorf("restore yarn %q: %w", y.Type, err)
		}
	}
	for _, p := range snap.Photos {
		if err := validatePhoto(p); err != nil {
			return fmt.Errorf("restore photo %q: %w", p.Caption, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO photos (image, caption, tag, created_at) VALUES (?, ?, ?, ?)`,
			p.Image, p.Caption, p.Tag, stamp(p.CreatedAt),
		); err != nil {
			return fmt.Errorf("restore photo %q: %w", p.Caption, err)
		}
	}
	for _, d := range snap.ActiveDays {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO activity_days (day) VALUES (?)`, d.Format(dayLayout)); err != nil {
			return fmt.Errorf("restore active day: %w", err)
		}
	}

	return tx.Commit()
}
