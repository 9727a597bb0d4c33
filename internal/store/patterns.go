package store

import (
	"fmt"
	"strings"
)

func validatePattern(name, text string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("pattern name", "is empty")
	}
	if strings.TrimSpace(text) == "" {
		return invalid("pattern text", "is empty")
	}
	return nil
}

func (s *Store) AddPattern(name, text string) (*Pattern, error) {
	if err := validatePattern(name, text); err != nil {
		return nil, err
	}
	createdAt := s.timestamp()
	res, err := s.db.Exec(
		`INSERT INTO patterns (name, body, created_at) VALUES (?, ?, ?)`,
		name, text, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert pattern: %w", err)
	}
	id, _ := res.LastInsertId()
	return &Pattern{ID: id, Name: name, Text: text, CreatedAt: parseTime(createdAt)}, nil
}

func (s *Store) ListPatterns() ([]Pattern, error) {
	rows, err := s.db.Query(`SELECT id, name, body, created_at FROM patterns ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}
	defer rows.Close()

	var patterns []Pattern
	for rows.Next() {
		var p Pattern
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.Text, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt = parseTime(createdAt)
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

func (s *Store) DeletePattern(id int64) error {
	return s.deleteByID("patterns", id)
}
