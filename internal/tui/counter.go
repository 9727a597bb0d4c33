package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/stitchr/internal/stats"
	"github.com/sadopc/stitchr/internal/store"
)

// counterModel is the stitch counter: one slider per row.
type counterModel struct {
	store  *store.Store
	width  int
	height int

	rows   []store.Row // in display order
	order  stats.SortOrder
	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName    *string
	formTarget  *string
	formPattern *string
	formNotes   *string
}

func newCounterModel(s *store.Store) counterModel {
	name, target, pattern, notes := "", "10", "", ""
	return counterModel{
		store:       s,
		order:       stats.SortNewest,
		formName:    &name,
		formTarget:  &target,
		formPattern: &pattern,
		formNotes:   &notes,
	}
}

func (c *counterModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type counterDataMsg struct {
	rows  []store.Row
	order stats.SortOrder
	err   error
}

func (c counterModel) refresh() tea.Cmd {
	return func() tea.Msg {
		order := stats.ParseSort(stats.RowSorts, c.store.SettingOr(store.SettingRowSort, ""))
		rows, err := c.store.ListRows()
		return counterDataMsg{rows: stats.SortRows(rows, order), order: order, err: err}
	}
}

func (c counterModel) update(msg tea.Msg) (counterModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case counterDataMsg:
		if msg.err != nil {
			return c, errorCmd(msg.err)
		}
		c.rows = msg.rows
		c.order = msg.order
		c.cursor = clampCursor(c.cursor, len(c.rows))
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			c.cursor = moveCursor(c.cursor, -1, len(c.rows))
		case key.Matches(msg, keys.Down):
			c.cursor = moveCursor(c.cursor, 1, len(c.rows))
		case key.Matches(msg, keys.Increment):
			return c.step(1)
		case key.Matches(msg, keys.Decrement):
			return c.step(-1)
		case key.Matches(msg, keys.IncrementTen):
			return c.step(10)
		case key.Matches(msg, keys.DecrementTen):
			return c.step(-10)
		case key.Matches(msg, keys.Sort):
			next := stats.Next(stats.RowSorts, c.order)
			if err := c.store.SetSetting(store.SettingRowSort, string(next)); err != nil {
				return c, errorCmd(err)
			}
			return c, c.refresh()
		case key.Matches(msg, keys.New):
			return c.showForm()
		case key.Matches(msg, keys.Delete):
			if len(c.rows) > 0 {
				row := c.rows[c.cursor]
				if err := c.store.DeleteRow(row.ID); err != nil && !isNotFound(err) {
					return c, errorCmd(err)
				}
				return c, tea.Batch(c.refresh(), statusCmd("Removed "+row.Name))
			}
		}
	}
	return c, nil
}

// step moves the selected row's slider by delta, clamped to [0, target].
func (c counterModel) step(delta int) (counterModel, tea.Cmd) {
	if len(c.rows) == 0 {
		return c, nil
	}
	row := c.rows[c.cursor]
	updated, err := c.store.SetRowCompleted(row.ID, row.Completed+delta)
	if err != nil {
		return c, errorCmd(err)
	}
	c.rows[c.cursor] = *updated
	return c, nil
}

func (c counterModel) showForm() (counterModel, tea.Cmd) {
	*c.formName = ""
	*c.formTarget = "10"
	*c.formPattern = ""
	*c.formNotes = ""

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Row Name (e.g. Row 1)").Value(c.formName).Validate(required("Row name")),
			huh.NewInput().Title("Stitches in this row").Value(c.formTarget).Validate(minInt("Stitches", 1)),
			huh.NewInput().Title("Linked Pattern (optional)").Value(c.formPattern),
			huh.NewText().Title("Row Notes (optional)").Value(c.formNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c counterModel) updateForm(msg tea.Msg) (counterModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		c.formActive = false
		c.form = nil
		return c, nil
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		c.form = nil
		row, err := c.store.AddRow(strings.TrimSpace(*c.formName), atoi(*c.formTarget), strings.TrimSpace(*c.formPattern), *c.formNotes)
		if err != nil {
			return c, errorCmd(err)
		}
		return c, tea.Batch(c.refresh(), statusCmd(fmt.Sprintf("Added %s with %d stitches", row.Name, row.Target)))
	}

	return c, cmd
}

func (c counterModel) totals() (done, target int) {
	for _, r := range c.rows {
		done += r.Completed
		target += r.Target
	}
	return done, target
}

func (c counterModel) view() string {
	w := c.width - 4

	if c.formActive && c.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Add Row"), "", c.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Stitch Counter")
	if len(c.rows) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Add a row to start tracking your stitches. Press n."),
		)
		return panelStyle.Width(w).Render(content)
	}

	bar := newProgressBar(w - 30)

	var lines []string
	lines = append(lines, title+"  "+mutedStyle.Render("sorted: "+c.order.Label()))
	lines = append(lines, "")

	for i, r := range c.rows {
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		pattern := r.Pattern
		if pattern == "" {
			pattern = "No linked pattern"
		}
		lines = append(lines, style.Render(cursor+r.Name)+mutedStyle.Render(" - "+pattern))
		lines = append(lines, fmt.Sprintf("    %s %s", bar.ViewAs(stats.Progress(r.Completed, r.Target)),
			highlightStyle.Render(fmt.Sprintf("%d/%d", r.Completed, r.Target))))
		if i == c.cursor {
			lines = append(lines, mutedStyle.Render("    🕒 Added: "+r.CreatedAt.Local().Format("2006-01-02 15:04:05")))
			if r.Notes != "" {
				lines = append(lines, accentStyle.Render("    📝 "+r.Notes))
			}
		}
	}

	done, target := c.totals()
	lines = append(lines, "")
	lines = append(lines, subtitleStyle.Render("Overall Stitch Progress"))
	lines = append(lines, "  "+bar.ViewAs(stats.Progress(done, target)))
	lines = append(lines, successStyle.Render(fmt.Sprintf("  🧵 %s stitches completed out of %s total", formatCount(done), formatCount(target))))
	lines = append(lines, "")
	lines = append(lines, mutedStyle.Render("  n: new  ←/→: ±1  H/L: ±10  o: sort  d: remove"))

	return panelStyle.Width(w).Render(strings.Join(lines, "\n"))
}
