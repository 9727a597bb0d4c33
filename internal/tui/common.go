package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/sadopc/stitchr/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewCounter viewState = iota
	viewPatterns
	viewGoals
	viewYarn
	viewPhotos
	viewDashboard
	viewReports
)

var viewNames = []string{"Counter", "Patterns", "Goals", "Yarn", "Photos", "Dashboard", "Reports"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

type sessionLoadedMsg struct {
	path string
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}

// --- Form validation ---

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func minInt(label string, lo int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%s must be a whole number", label)
		}
		if n < lo {
			return fmt.Errorf("%s must be at least %d", label, lo)
		}
		return nil
	}
}

// atoi parses a field that already passed minInt.
func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

// --- Helpers ---

func formatCount(n int) string {
	return humanize.Comma(int64(n))
}

func formatBytes(n int) string {
	return humanize.Bytes(uint64(n))
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

// clampCursor keeps a list cursor inside [0, n).
func clampCursor(cursor, n int) int {
	return max(0, min(cursor, n-1))
}

// moveCursor applies up/down navigation.
func moveCursor(cursor, delta, n int) int {
	return clampCursor(cursor+delta, n)
}

func truncate(s string, w int) string {
	if w <= 1 || len([]rune(s)) <= w {
		return s
	}
	r := []rune(s)
	return string(r[:w-1]) + "…"
}
