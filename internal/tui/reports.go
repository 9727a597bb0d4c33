package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/stitchr/internal/store"
)

type reportMode int

const (
	reportRows reportMode = iota
	reportYarn
)

// skeinTotal is the summed quantity for one yarn type.
type skeinTotal struct {
	Type   string
	Skeins int
}

type reportsModel struct {
	store  *store.Store
	width  int
	height int

	mode   reportMode
	rows   []store.Row
	skeins []skeinTotal

	chart barchart.Model
}

func newReportsModel(s *store.Store) reportsModel {
	return reportsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	rows   []store.Row
	skeins []skeinTotal
	err    error
}

// skeinsByType sums quantities per yarn type in first-seen order.
func skeinsByType(yarn []store.Yarn) []skeinTotal {
	idx := make(map[string]int)
	var out []skeinTotal
	for _, y := range yarn {
		i, ok := idx[y.Type]
		if !ok {
			i = len(out)
			idx[y.Type] = i
			out = append(out, skeinTotal{Type: y.Type})
		}
		out[i].Skeins += y.Quantity
	}
	return out
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		rows, err := r.store.ListRows()
		if err != nil {
			return reportsDataMsg{err: err}
		}
		yarn, err := r.store.ListYarn()
		if err != nil {
			return reportsDataMsg{err: err}
		}
		return reportsDataMsg{rows: rows, skeins: skeinsByType(yarn)}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		if msg.err != nil {
			return r, errorCmd(msg.err)
		}
		r.rows = msg.rows
		r.skeins = msg.skeins
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Mode) {
			if r.mode == reportRows {
				r.mode = reportYarn
			} else {
				r.mode = reportRows
			}
			r.buildChart()
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := max(20, r.width-8)
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	switch r.mode {
	case reportYarn:
		style := lipgloss.NewStyle().Foreground(colorSecondary)
		for _, s := range r.skeins {
			label := s.Type
			if label == "" {
				label = "(untyped)"
			}
			bars = append(bars, barchart.BarData{
				Label:  truncate(label, 10),
				Values: []barchart.BarValue{{Name: "Skeins", Value: float64(s.Skeins), Style: style}},
			})
		}
	default:
		done := lipgloss.NewStyle().Foreground(colorPrimary)
		left := lipgloss.NewStyle().Foreground(colorSubtle)
		for _, row := range r.rows {
			bars = append(bars, barchart.BarData{
				Label: truncate(row.Name, 10),
				Values: []barchart.BarValue{
					{Name: "Completed", Value: float64(row.Completed), Style: done},
					{Name: "Remaining", Value: float64(row.Target - row.Completed), Style: left},
				},
			})
		}
	}

	if len(bars) == 0 {
		return
	}
	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) empty() bool {
	if r.mode == reportYarn {
		return len(r.skeins) == 0
	}
	return len(r.rows) == 0
}

func (r reportsModel) view() string {
	w := r.width - 4

	rowsTab := inactiveTabStyle.Render("Stitches")
	yarnTab := inactiveTabStyle.Render("Yarn")
	if r.mode == reportRows {
		rowsTab = activeTabStyle.Render("Stitches")
	} else {
		yarnTab = activeTabStyle.Render("Yarn")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", lipgloss.JoinHorizontal(lipgloss.Bottom, rowsTab, yarnTab),
	)

	nav := mutedStyle.Render("  m: switch chart")

	if r.empty() {
		msg := "No rows to chart yet"
		if r.mode == reportYarn {
			msg = "No yarn to chart yet"
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header, "", mutedStyle.Render("  "+msg), "", nav,
		))
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", r.renderLegend(), "", r.renderTable(w), "", nav,
		),
	)
}

func (r reportsModel) renderLegend() string {
	if r.mode == reportYarn {
		return "  " + lipgloss.NewStyle().Foreground(colorSecondary).Render("●") + " Skeins"
	}
	return "  " + lipgloss.NewStyle().Foreground(colorPrimary).Render("●") + " Completed  " +
		lipgloss.NewStyle().Foreground(colorSubtle).Render("●") + " Remaining"
}

func (r reportsModel) renderTable(w int) string {
	var rows []string
	rule := mutedStyle.Render("  " + strings.Repeat("─", min(w-6, 44)))

	if r.mode == reportYarn {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-28s %8s", "Yarn Type", "Skeins")), rule)
		for _, s := range r.skeins {
			rows = append(rows, fmt.Sprintf("  %-28s %8d", truncate(s.Type, 28), s.Skeins))
		}
		return strings.Join(rows, "\n")
	}

	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-20s %10s %10s", "Row", "Done", "Stitches")), rule)
	for _, row := range r.rows {
		rows = append(rows, fmt.Sprintf("  %-20s %10s %10s",
			truncate(row.Name, 20), formatCount(row.Completed), formatCount(row.Target)))
	}
	return strings.Join(rows, "\n")
}
