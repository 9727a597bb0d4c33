package store

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// stepClock returns a clock that advances one second per call.
func stepClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		t := start.Add(time.Duration(n) * time.Second)
		n++
		return t
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestStoresAreIsolated(t *testing.T) {
	a := newTestStore(t)
	b := newTestStore(t)

	if _, err := a.AddRow("Row 1", 10, "", ""); err != nil {
		t.Fatal(err)
	}
	rows, err := b.ListRows()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("second session sees %d rows of the first", len(rows))
	}
}

func TestFreshStoreIsEmpty(t *testing.T) {
	s := newTestStore(t)
	snap, err := s.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if snap.Rows != nil || snap.Patterns != nil || snap.Goals != nil || snap.Yarn != nil || snap.Photos != nil || snap.ActiveDays != nil {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

// ============================================================
// Rows
// ============================================================

func TestAddAndGetRow(t *testing.T) {
	s := newTestStore(t)
	r, err := s.AddRow("Row 1", 12, "Granny square", "chain 3 first")
	if err != nil {
		t.Fatal(err)
	}
	if r.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if r.Name != "Row 1" || r.Target != 12 || r.Completed != 0 || r.Pattern != "Granny square" || r.Notes != "chain 3 first" {
		t.Fatalf("unexpected row: %+v", r)
	}
	if r.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set")
	}
}

func TestAddRowValidation(t *testing.T) {
	s := newTestStore(t)
	tests := []struct {
		name   string
		target int
	}{
		{"", 10},
		{"   ", 10},
		{"Row", 0},
		{"Row", -4},
	}
	for _, tt := range tests {
		if _, err := s.AddRow(tt.name, tt.target, "", ""); !errors.Is(err, ErrInvalid) {
			t.Errorf("AddRow(%q, %d) = %v, want ErrInvalid", tt.name, tt.target, err)
		}
	}
}

func TestGetRowNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetRow(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetRowCompletedClamps(t *testing.T) {
	s := newTestStore(t)
	r, _ := s.AddRow("Row", 20, "", "")

	tests := []struct {
		in, want int
	}{
		{5, 5},
		{20, 20},
		{25, 20},
		{-3, 0},
		{0, 0},
	}
	for _, tt := range tests {
		got, err := s.SetRowCompleted(r.ID, tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if got.Completed != tt.want {
			t.Errorf("SetRowCompleted(%d) = %d, want %d", tt.in, got.Completed, tt.want)
		}
	}
}

func TestSetRowCompletedNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.SetRowCompleted(42, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCompletedNeverExceedsTarget(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.AddRow("A", 10, "", "")
	b, _ := s.AddRow("B", 3, "", "")
	for _, n := range []int{4, 100, -1, 9, 11} {
		s.SetRowCompleted(a.ID, n)
		s.SetRowCompleted(b.ID, n)
	}
	rows, _ := s.ListRows()
	var done, target int
	for _, r := range rows {
		done += r.Completed
		target += r.Target
	}
	if done > target {
		t.Fatalf("completed %d > target %d", done, target)
	}
}

func TestDeleteRowRemovesExactlyOne(t *testing.T) {
	s := newTestStore(t)
	s.SetClock(stepClock(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)))
	first, _ := s.AddRow("Row", 10, "", "")
	second, _ := s.AddRow("Row", 10, "", "")
	s.AddRow("Other", 5, "", "")

	if err := s.DeleteRow(first.ID); err != nil {
		t.Fatal(err)
	}
	rows, _ := s.ListRows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows left, got %d", len(rows))
	}
	if rows[0].ID != second.ID {
		t.Fatalf("duplicate with a different timestamp should survive, got %+v", rows[0])
	}
	if err := s.DeleteRow(first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

// ============================================================
// Patterns
// ============================================================

func TestAddPattern(t *testing.T) {
	s := newTestStore(t)
	p, err := s.AddPattern("Granny square", "ch 4, sl st to join")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID == 0 || p.Name != "Granny square" || p.Text != "ch 4, sl st to join" {
		t.Fatalf("unexpected pattern: %+v", p)
	}

	patterns, _ := s.ListPatterns()
	if len(patterns) != 1 || patterns[0].ID != p.ID {
		t.Fatalf("unexpected list: %+v", patterns)
	}
}

func TestAddPatternRequiresNameAndText(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddPattern("", "text"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty name, got %v", err)
	}
	if _, err := s.AddPattern("name", " "); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty text, got %v", err)
	}
}

func TestDeletePattern(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.AddPattern("A", "a")
	if err := s.DeletePattern(p.ID); err != nil {
		t.Fatal(err)
	}
	patterns, _ := s.ListPatterns()
	if len(patterns) != 0 {
		t.Fatal("pattern should be gone")
	}
}

// ============================================================
// Goals
// ============================================================

func TestGoalLifecycle(t *testing.T) {
	s := newTestStore(t)
	g, err := s.AddGoal("Blanket", 4)
	if err != nil {
		t.Fatal(err)
	}
	if g.Done() {
		t.Fatal("new goal should not be done")
	}

	g, err = s.SetGoalCompleted(g.ID, 9)
	if err != nil {
		t.Fatal(err)
	}
	if g.Completed != 4 || !g.Done() {
		t.Fatalf("expected clamped, done goal, got %+v", g)
	}

	if err := s.DeleteGoal(g.ID); err != nil {
		t.Fatal(err)
	}
	goals, _ := s.ListGoals()
	if len(goals) != 0 {
		t.Fatal("goal should be deleted")
	}
}

func TestAddGoalValidation(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddGoal("", 3); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, err := s.AddGoal("Hat", 0); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

// ============================================================
// Yarn
// ============================================================

func TestAddYarn(t *testing.T) {
	s := newTestStore(t)
	y, err := s.AddYarn(Yarn{Type: "Cotton", Brand: "Drops", Color: "Red", Quantity: 3, Project: "Hat"})
	if err != nil {
		t.Fatal(err)
	}
	if y.ID == 0 || y.CreatedAt.IsZero() {
		t.Fatalf("ID and CreatedAt should be set: %+v", y)
	}

	list, _ := s.ListYarn()
	if len(list) != 1 || list[0].Brand != "Drops" || list[0].Quantity != 3 {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestAddYarnRejectsNegativeQuantity(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddYarn(Yarn{Type: "Wool", Quantity: -1}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestAddYarnAllowsZeroQuantity(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddYarn(Yarn{Type: "Wool"}); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteYarnKeepsIdenticalEntry(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.AddYarn(Yarn{Type: "Wool", Brand: "X"})
	b, _ := s.AddYarn(Yarn{Type: "Wool", Brand: "X"})

	if err := s.DeleteYarn(a.ID); err != nil {
		t.Fatal(err)
	}
	list, _ := s.ListYarn()
	if len(list) != 1 || list[0].ID != b.ID {
		t.Fatalf("expected only the second entry, got %+v", list)
	}
}

// ============================================================
// Photos
// ============================================================

func TestAddPhotoRoundTrip(t *testing.T) {
	s := newTestStore(t)
	data := pngBytes(t, 3, 2)

	p, err := s.AddPhoto(data, "First hat", "hat")
	if err != nil {
		t.Fatal(err)
	}
	photos, _ := s.ListPhotos()
	if len(photos) != 1 || photos[0].ID != p.ID {
		t.Fatalf("unexpected photos: %d", len(photos))
	}

	got, err := photos[0].Decode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("decoded bytes differ from upload")
	}

	info, err := InspectImage(got)
	if err != nil {
		t.Fatal(err)
	}
	if info.Format != "png" || info.Width != 3 || info.Height != 2 {
		t.Fatalf("unexpected image info: %+v", info)
	}
}

func TestAddPhotoRejectsNonImage(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddPhoto([]byte("not an image"), "", ""); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestDeletePhoto(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.AddPhoto(pngBytes(t, 1, 1), "c", "")
	if err := s.DeletePhoto(p.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DeletePhoto(p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ============================================================
// Activity days
// ============================================================

func TestMarkActiveIsASet(t *testing.T) {
	s := newTestStore(t)
	day := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	s.MarkActive(day)
	s.MarkActive(day.Add(5 * time.Hour))
	s.MarkActive(day.AddDate(0, 0, -1))

	days, err := s.ActiveDays()
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 distinct days, got %d", len(days))
	}
	if !days[0].Equal(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected oldest first, got %v", days[0])
	}
}

// ============================================================
// Settings
// ============================================================

func TestDefaultSettings(t *testing.T) {
	s := newTestStore(t)
	if v, _ := s.GetSetting(SettingRowSort); v != "newest" {
		t.Fatalf("row_sort = %q, want newest", v)
	}
	if v := s.SettingOr(SettingPhotoFilter, "all"); v != "all" {
		t.Fatalf("empty setting should fall back, got %q", v)
	}
}

func TestSetSetting(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting(SettingYarnSort, "brand"); err != nil {
		t.Fatal(err)
	}
	if v := s.SettingOr(SettingYarnSort, ""); v != "brand" {
		t.Fatalf("yarn_sort = %q, want brand", v)
	}
	settings, _ := s.GetAllSettings()
	if len(settings) != 3 {
		t.Fatalf("expected 3 settings, got %d", len(settings))
	}
}

func TestGetSettingMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetSetting("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ============================================================
// Snapshot / Restore
// ============================================================

func TestRestoreReplacesContent(t *testing.T) {
	src := newTestStore(t)
	created := time.Date(2024, 12, 24, 18, 30, 0, 0, time.UTC)
	src.SetClock(func() time.Time { return created })
	r, _ := src.AddRow("Row 1", 10, "", "")
	src.SetRowCompleted(r.ID, 7)
	src.AddPattern("P", "text")
	src.AddGoal("G", 2)
	src.AddYarn(Yarn{Type: "Wool", Quantity: 1})
	src.AddPhoto(pngBytes(t, 1, 1), "cap", "tag")
	src.MarkActive(created)

	snap, err := src.Snapshot()
	if err != nil {
		t.Fatal(err)
	}

	dst := newTestStore(t)
	dst.AddRow("stale", 1, "", "")
	if err := dst.Restore(snap); err != nil {
		t.Fatal(err)
	}

	got, _ := dst.Snapshot()
	if len(got.Rows) != 1 || got.Rows[0].Name != "Row 1" || got.Rows[0].Completed != 7 {
		t.Fatalf("unexpected rows: %+v", got.Rows)
	}
	if !got.Rows[0].CreatedAt.Equal(created) {
		t.Fatalf("CreatedAt = %v, want %v", got.Rows[0].CreatedAt, created)
	}
	if len(got.Patterns) != 1 || len(got.Goals) != 1 || len(got.Yarn) != 1 || len(got.Photos) != 1 || len(got.ActiveDays) != 1 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestRestoreRejectsInvalidAndKeepsOldContent(t *testing.T) {
	good := Row{Name: "fine", Target: 2}
	tests := []struct {
		name    string
		snap    Snapshot
		invalid bool
	}{
		{"completed over target", Snapshot{Rows: []Row{{Name: "bad", Target: 3, Completed: 9}}}, false},
		{"blank row name", Snapshot{Rows: []Row{good, {Name: "   ", Target: 5}}}, true},
		{"blank goal name", Snapshot{Goals: []Goal{{Name: " \t", Target: 1}}}, true},
		{"blank pattern text", Snapshot{Patterns: []Pattern{{Name: "P", Text: "  \n"}}}, true},
		{"negative yarn", Snapshot{Yarn: []Yarn{{Type: "Wool", Quantity: -1}}}, true},
		{"photo not base64", Snapshot{Rows: []Row{good}, Photos: []Photo{{Image: "%%%"}}}, true},
		{"photo not an image", Snapshot{Photos: []Photo{{Image: base64.StdEncoding.EncodeToString([]byte("plain text"))}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			s.AddRow("keep", 5, "", "")

			err := s.Restore(tt.snap)
			if err == nil {
				t.Fatal("expected restore to fail")
			}
			if tt.invalid && !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}

			rows, _ := s.ListRows()
			if len(rows) != 1 || rows[0].Name != "keep" {
				t.Fatalf("failed restore should roll back, got %+v", rows)
			}
			photos, _ := s.ListPhotos()
			if len(photos) != 0 {
				t.Fatalf("failed restore left photos: %d", len(photos))
			}
		})
	}
}

// ============================================================
// Close / double-close safety
// ============================================================

func TestCloseTwice(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	// database/sql tolerates a second Close.
	s.Close()
}
