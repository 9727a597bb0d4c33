package store

import (
	"encoding/base64"
	"time"
)

// Row is one line of the stitch counter.
type Row struct {
	ID        int64
	Name      string
	Target    int
	Completed int
	Pattern   string // linked pattern name, optional
	Notes     string
	CreatedAt time.Time
}

type Pattern struct {
	ID        int64
	Name      string
	Text      string
	CreatedAt time.Time
}

type Goal struct {
	ID        int64
	Name      string
	Target    int
	Completed int
	CreatedAt time.Time
}

// Done reports whether the goal has reached its target.
func (g Goal) Done() bool {
	return g.Completed >= g.Target
}

type Yarn struct {
	ID        int64
	Type      string
	Brand     string
	Color     string
	Quantity  int // skeins
	Project   string
	Notes     string
	CreatedAt time.Time
}

// Photo keeps the uploaded image base64-encoded.
type Photo struct {
	ID        int64
	Image     string
	Caption   string
	Tag       string
	CreatedAt time.Time
}

// Decode returns the raw image bytes.
func (p Photo) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(p.Image)
}

type Setting struct {
	Key   string
	Value string
}

// Snapshot is a copy of every collection in a session.
type Snapshot struct {
	Rows       []Row
	Patterns   []Pattern
	Goals      []Goal
	Yarn       []Yarn
	Photos     []Photo
	ActiveDays []time.Time
}
