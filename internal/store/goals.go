package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

func validateGoal(name string, target int) error {
	if strings.TrimSpace(name) == "" {
		return invalid("goal name", "is empty")
	}
	if target < 1 {
		return invalid("goal target", "must be at least 1")
	}
	return nil
}

func (s *Store) AddGoal(name string, target int) (*Goal, error) {
	if err := validateGoal(name, target); err != nil {
		return nil, err
	}
	res, err := s.db.Exec(
		`INSERT INTO goals (name, target, created_at) VALUES (?, ?, ?)`,
		name, target, s.timestamp(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetGoal(id)
}

func (s *Store) GetGoal(id int64) (*Goal, error) {
	g := &Goal{}
	var createdAt string
	err := s.db.QueryRow(
		`SELECT id, name, target, completed, created_at FROM goals WHERE id = ?`, id,
	).Scan(&g.ID, &g.Name, &g.Target, &g.Completed, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get goal %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get goal %d: %w", id, err)
	}
	g.CreatedAt = parseTime(createdAt)
	return g, nil
}

func (s *Store) ListGoals() ([]Goal, error) {
	rows, err := s.db.Query(`SELECT id, name, target, completed, created_at FROM goals ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		var g Goal
		var createdAt string
		if err := rows.Scan(&g.ID, &g.Name, &g.Target, &g.Completed, &createdAt); err != nil {
			return nil, err
		}
		g.CreatedAt = parseTime(createdAt)
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// SetGoalCompleted is clamped to [0, target] like SetRowCompleted.
func (s *Store) SetGoalCompleted(id int64, completed int) (*Goal, error) {
	res, err := s.db.Exec(
		`UPDATE goals SET completed = MAX(0, MIN(?, target)) WHERE id = ?`, completed, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update goal %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("update goal %d: %w", id, ErrNotFound)
	}
	return s.GetGoal(id)
}

func (s *Store) DeleteGoal(id int64) error {
	return s.deleteByID("goals", id)
}
