package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/stitchr/internal/store"
)

const dayLayout = "2006-01-02"

type jsonSession struct {
	ExportedAt   string        `json:"exported_at"`
	Rows         []jsonRow     `json:"rows"`
	Patterns     []jsonPattern `json:"patterns"`
	Goals        []jsonGoal    `json:"goals"`
	Yarn         []jsonYarn    `json:"yarn"`
	Photos       []jsonPhoto   `json:"photos"`
	ActivityDays []string      `json:"activity_days"`
}

type jsonRow struct {
	Name      string    `json:"name"`
	Target    int       `json:"target"`
	Completed int       `json:"done"`
	Pattern   string    `json:"pattern,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"timestamp"`
}

type jsonPattern struct {
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"timestamp"`
}

type jsonGoal struct {
	Name      string    `json:"goal"`
	Target    int       `json:"target"`
	Completed int       `json:"done"`
	CreatedAt time.Time `json:"timestamp"`
}

type jsonYarn struct {
	Type      string    `json:"type"`
	Brand     string    `json:"brand"`
	Color     string    `json:"color"`
	Quantity  int       `json:"qty"`
	Project   string    `json:"project,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"timestamp"`
}

type jsonPhoto struct {
	Image     string    `json:"img"`
	Caption   string    `json:"caption"`
	Tag       string    `json:"tag,omitempty"`
	CreatedAt time.Time `json:"timestamp"`
}

// ToJSON writes every collection of snap to path. Photos stay base64.
func ToJSON(snap store.Snapshot, now time.Time, path string) error {
	out := jsonSession{
		ExportedAt:   now.UTC().Format(time.RFC3339),
		Rows:         []jsonRow{},
		Patterns:     []jsonPattern{},
		Goals:        []jsonGoal{},
		Yarn:         []jsonYarn{},
		Photos:       []jsonPhoto{},
		ActivityDays: []string{},
	}
	for _, r := range snap.Rows {
		out.Rows = append(out.Rows, jsonRow{r.Name, r.Target, r.Completed, r.Pattern, r.Notes, r.CreatedAt})
	}
	for _, p := range snap.Patterns {
		out.Patterns = append(out.Patterns, jsonPattern{p.Name, p.Text, p.CreatedAt})
	}
	for _, g := range snap.Goals {
		out.Goals = append(out.Goals, jsonGoal{g.Name, g.Target, g.Completed, g.CreatedAt})
	}
	for _, y := range snap.Yarn {
		out.Yarn = append(out.Yarn, jsonYarn{y.Type, y.Brand, y.Color, y.Quantity, y.Project, y.Notes, y.CreatedAt})
	}
	for _, p := range snap.Photos {
		out.Photos = append(out.Photos, jsonPhoto{p.Image, p.Caption, p.Tag, p.CreatedAt})
	}
	for _, d := range snap.ActiveDays {
		out.ActivityDays = append(out.ActivityDays, d.Format(dayLayout))
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// FromJSON reads a file written by ToJSON. Record IDs are left zero.
func FromJSON(path string) (store.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("read json file: %w", err)
	}
	var in jsonSession
	if err := json.Unmarshal(data, &in); err != nil {
		return store.Snapshot{}, fmt.Errorf("parse json file: %w", err)
	}

	var snap store.Snapshot
	for _, r := range in.Rows {
		snap.Rows = append(snap.Rows, store.Row{Name: r.Name, Target: r.Target, Completed: r.Completed, Pattern: r.Pattern, Notes: r.Notes, CreatedAt: r.CreatedAt})
	}
	for _, p := range in.Patterns {
		snap.Patterns = append(snap.Patterns, store.Pattern{Name: p.Name, Text: p.Text, CreatedAt: p.CreatedAt})
	}
	for _, g := range in.Goals {
		snap.Goals = append(snap.Goals, store.Goal{Name: g.Name, Target: g.Target, Completed: g.Completed, CreatedAt: g.CreatedAt})
	}
	for _, y := range in.Yarn {
		snap.Yarn = append(snap.Yarn, store.Yarn{Type: y.Type, Brand: y.Brand, Color: y.Color, Quantity: y.Quantity, Project: y.Project, Notes: y.Notes, CreatedAt: y.CreatedAt})
	}
	for _, p := range in.Photos {
		snap.Photos = append(snap.Photos, store.Photo{Image: p.Image, Caption: p.Caption, Tag: p.Tag, CreatedAt: p.CreatedAt})
	}
	for _, v := range in.ActivityDays {
		d, err := time.Parse(dayLayout, v)
		if err != nil {
			return store.Snapshot{}, fmt.Errorf("parse activity day %q: %w", v, err)
		}
		snap.ActiveDays = append(snap.ActiveDays, d)
	}
	return snap, nil
}
