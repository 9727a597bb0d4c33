// Package session ties one user's store, identity and clock together. A
// Session is created when the app starts and everything it holds is
// discarded by Close.
package session

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/stitchr/internal/export"
	"github.com/sadopc/stitchr/internal/stats"
	"github.com/sadopc/stitchr/internal/store"
)

// Session holds one user's data: its own store, logger and clock.
type Session struct {
	ID    string
	Store *store.Store

	log       *slog.Logger
	now       func() time.Time
	exportDir string
}

// Option configures a Session in New.
type Option func(*Session)

// WithClock sets the clock used for "today" and record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithExportDir sets where Save and the CSV exports write their files.
func WithExportDir(dir string) Option {
	return func(s *Session) { s.exportDir = dir }
}

// New starts a session on a fresh in-memory store.
func New(log *slog.Logger, opts ...Option) (*Session, error) {
	st, err := store.NewMemory()
	if err != nil {
		return nil, fmt.Errorf("new session store: %w", err)
	}
	s := &Session{
		ID:    uuid.NewString(),
		Store: st,
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	if s.exportDir == "" {
		s.exportDir, _ = os.UserHomeDir()
	}
	st.SetClock(s.now)
	s.log = log.With("session", s.ID)
	s.log.Info("session started")
	return s, nil
}

func (s *Session) Logger() *slog.Logger { return s.log }

func (s *Session) Close() error {
	s.log.Info("session ended")
	return s.Store.Close()
}

// Dashboard marks today as active and computes the dashboard view model.
func (s *Session) Dashboard() (stats.Dashboard, error) {
	today := s.now()
	if err := s.Store.MarkActive(today); err != nil {
		return stats.Dashboard{}, err
	}
	snap, err := s.Store.Snapshot()
	if err != nil {
		return stats.Dashboard{}, err
	}
	d := stats.Compute(snap, today)
	s.log.Debug("dashboard computed", "stitches", d.Totals.CompletedStitches, "streak", d.Streak, "awards", len(d.Awards))
	return d, nil
}

func (s *Session) exportPath(kind, ext string) string {
	name := fmt.Sprintf("stitchr-%s-%s.%s", kind, s.now().Format("2006-01-02"), ext)
	return filepath.Join(s.exportDir, name)
}

// Save writes the whole session as JSON and returns the file path.
func (s *Session) Save() (string, error) {
	snap, err := s.Store.Snapshot()
	if err != nil {
		return "", err
	}
	path := s.exportPath("session", "json")
	if err := export.ToJSON(snap, s.now(), path); err != nil {
		return "", err
	}
	s.log.Info("session saved", "path", path)
	return path, nil
}

// Load replaces the session content with a file written by Save.
func (s *Session) Load(path string) error {
	snap, err := export.FromJSON(path)
	if err != nil {
		return err
	}
	if err := s.Store.Restore(snap); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	s.log.Info("session loaded", "path", path, "rows", len(snap.Rows), "photos", len(snap.Photos))
	return nil
}

// ExportRows writes the stitch counter as CSV and returns the file path.
func (s *Session) ExportRows() (string, error) {
	rows, err := s.Store.ListRows()
	if err != nil {
		return "", err
	}
	path := s.exportPath("rows", "csv")
	if err := export.RowsToCSV(rows, path); err != nil {
		return "", err
	}
	s.log.Info("rows exported", "path", path, "count", len(rows))
	return path, nil
}

// ExportYarn writes the yarn inventory as CSV and returns the file path.
func (s *Session) ExportYarn() (string, error) {
	yarn, err := s.Store.ListYarn()
	if err != nil {
		return "", err
	}
	path := s.exportPath("yarn", "csv")
	if err := export.YarnToCSV(yarn, path); err != nil {
		return "", err
	}
	s.log.Info("yarn exported", "path", path, "count", len(yarn))
	return path, nil
}
