package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sadopc/stitchr/internal/store"
)

func sampleSnapshot() store.Snapshot {
	created := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	return store.Snapshot{
		Rows: []store.Row{
			{ID: 7, Name: "Row 1", Target: 20, Completed: 5, Pattern: "Granny", Notes: "tight", CreatedAt: created},
			{ID: 8, Name: "Row 2", Target: 3, Completed: 3, CreatedAt: created.Add(time.Minute)},
		},
		Patterns: []store.Pattern{{ID: 1, Name: "Granny", Text: "ch 4", CreatedAt: created}},
		Goals:    []store.Goal{{ID: 2, Name: "Blanket", Target: 10, Completed: 2, CreatedAt: created}},
		Yarn: []store.Yarn{
			{ID: 3, Type: "Cotton", Brand: "Drops", Color: "Red", Quantity: 2, Project: "Hat", Notes: "soft, warm", CreatedAt: created},
		},
		Photos:     []store.Photo{{ID: 4, Image: "aGVsbG8=", Caption: "Done!", Tag: "hat", CreatedAt: created}},
		ActiveDays: []time.Time{time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return records
}

// ============================================================
// CSV
// ============================================================

func TestRowsToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	if err := RowsToCSV(sampleSnapshot().Rows, path); err != nil {
		t.Fatalf("RowsToCSV: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != 3 {
		t.Fatalf("expected 3 rows (1 header + 2 data), got %d", len(records))
	}
	wantHeader := []string{"Row", "Done", "Target", "Progress", "Pattern", "Notes", "Added"}
	if diff := cmp.Diff(wantHeader, records[0]); diff != "" {
		t.Fatalf("header (-want +got):\n%s", diff)
	}
	row := records[1]
	if row[0] != "Row 1" || row[1] != "5" || row[2] != "20" || row[3] != "25%" || row[4] != "Granny" {
		t.Fatalf("unexpected first row: %v", row)
	}
	if records[2][3] != "100%" {
		t.Fatalf("Progress = %q, want 100%%", records[2][3])
	}
}

func TestRowsToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := RowsToCSV(nil, path); err != nil {
		t.Fatal(err)
	}
	if records := readCSV(t, path); len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}

func TestYarnToCSVQuotesCommas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yarn.csv")
	if err := YarnToCSV(sampleSnapshot().Yarn, path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if len(records) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(records))
	}
	if records[1][5] != "soft, warm" {
		t.Fatalf("Notes = %q", records[1][5])
	}
	if records[1][3] != "2" {
		t.Fatalf("Skeins = %q, want 2", records[1][3])
	}
}

func TestCSVBadPath(t *testing.T) {
	if err := RowsToCSV(nil, "/nonexistent/dir/out.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		done, target int
		want         string
	}{
		{0, 0, "0%"},
		{1, 3, "33%"},
		{3, 3, "100%"},
	}
	for _, tt := range tests {
		if got := formatPercent(tt.done, tt.target); got != tt.want {
			t.Errorf("formatPercent(%d, %d) = %q, want %q", tt.done, tt.target, got, tt.want)
		}
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSONShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	now := time.Date(2025, 2, 3, 12, 0, 0, 0, time.UTC)
	if err := ToJSON(sampleSnapshot(), now, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["exported_at"] != "2025-02-03T12:00:00Z" {
		t.Fatalf("exported_at = %v", raw["exported_at"])
	}
	for _, key := range []string{"rows", "patterns", "goals", "yarn", "photos", "activity_days"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("missing key %q", key)
		}
	}
	photo := raw["photos"].([]any)[0].(map[string]any)
	if photo["img"] != "aGVsbG8=" {
		t.Fatalf("photo should stay base64, got %v", photo["img"])
	}
}

func TestToJSONEmptyUsesArrays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := ToJSON(store.Snapshot{}, time.Now(), path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	var raw map[string]any
	json.Unmarshal(data, &raw)
	if rows, ok := raw["rows"].([]any); !ok || len(rows) != 0 {
		t.Fatalf("rows should be an empty array, got %v", raw["rows"])
	}
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	want := sampleSnapshot()
	if err := ToJSON(want, time.Now(), path); err != nil {
		t.Fatal(err)
	}
	got, err := FromJSON(path)
	if err != nil {
		t.Fatal(err)
	}

	// IDs are not part of the file.
	for i := range want.Rows {
		want.Rows[i].ID = 0
	}
	want.Patterns[0].ID = 0
	want.Goals[0].ID = 0
	want.Yarn[0].ID = 0
	want.Photos[0].ID = 0

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestFromJSONErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := FromJSON(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0o644)
	if _, err := FromJSON(bad); err == nil {
		t.Fatal("expected error for invalid json")
	}

	badDay := filepath.Join(dir, "day.json")
	os.WriteFile(badDay, []byte(`{"activity_days": ["yesterday"]}`), 0o644)
	if _, err := FromJSON(badDay); err == nil {
		t.Fatal("expected error for invalid activity day")
	}
}
