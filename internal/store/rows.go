package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

func validateRow(name string, target int) error {
	if strings.TrimSpace(name) == "" {
		return invalid("row name", "is empty")
	}
	if target < 1 {
		return invalid("row target", "must be at least 1")
	}
	return nil
}

func (s *Store) AddRow(name string, target int, pattern, notes string) (*Row, error) {
	if err := validateRow(name, target); err != nil {
		return nil, err
	}
	res, err := s.db.Exec(
		`INSERT INTO stitch_rows (name, target, pattern, notes, created_at) VALUES (?, ?, ?, ?, ?)`,
		name, target, pattern, notes, s.timestamp(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert row: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetRow(id)
}

func (s *Store) GetRow(id int64) (*Row, error) {
	r := &Row{}
	var createdAt string
	err := s.db.QueryRow(
		`SELECT id, name, target, completed, pattern, notes, created_at FROM stitch_rows WHERE id = ?`, id,
	).Scan(&r.ID, &r.Name, &r.Target, &r.Completed, &r.Pattern, &r.Notes, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get row %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get row %d: %w", id, err)
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// ListRows returns rows in insertion order.
func (s *Store) ListRows() ([]Row, error) {
	rows, err := s.db.Query(
		`SELECT id, name, target, completed, pattern, notes, created_at FROM stitch_rows ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Name, &r.Target, &r.Completed, &r.Pattern, &r.Notes, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// SetRowCompleted moves the row's slider. The value is clamped to [0, target].
func (s *Store) SetRowCompleted(id int64, completed int) (*Row, error) {
	res, err := s.db.Exec(
		`UPDATE stitch_rows SET completed = MAX(0, MIN(?, target)) WHERE id = ?`, completed, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update row %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("update row %d: %w", id, ErrNotFound)
	}
	return s.GetRow(id)
}

func (s *Store) DeleteRow(id int64) error {
	return s.deleteByID("stitch_rows", id)
}
