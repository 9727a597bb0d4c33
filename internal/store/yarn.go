package store

import "fmt"

// AddYarn stores y; its ID and CreatedAt are ignored.
func (s *Store) AddYarn(y Yarn) (*Yarn, error) {
	if err := validateYarn(y); err != nil {
		return nil, err
	}
	createdAt := s.timestamp()
	res, err := s.db.Exec(
		`INSERT INTO yarn (type, brand, color, quantity, project, notes, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		y.Type, y.Brand, y.Color, y.Quantity, y.Project, y.Notes, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert yarn: %w", err)
	}
	y.ID, _ = res.LastInsertId()
	y.CreatedAt = parseTime(createdAt)
	return &y, nil
}

func (s *Store) ListYarn() ([]Yarn, error) {
	rows, err := s.db.Query(
		`SELECT id, type, brand, color, quantity, project, notes, created_at FROM yarn ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list yarn: %w", err)
	}
	defer rows.Close()

	var out []Yarn
	for rows.Next() {
		var y Yarn
		var createdAt string
		if err := rows.Scan(&y.ID, &y.Type, &y.Brand, &y.Color, &y.Quantity, &y.Project, &y.Notes, &createdAt); err != nil {
			return nil, err
		}
		y.CreatedAt = parseTime(createdAt)
		out = append(out, y)
	}
	return out, rows.Err()
}

func (s *Store) DeleteYarn(id int64) error {
	return s.deleteByID("yarn", id)
}

func validateYarn(y Yarn) error {
	if y.Quantity < 0 {
		return invalid("yarn quantity", "is negative")
	}
	return nil
}
