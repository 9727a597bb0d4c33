package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/stitchr/internal/session"
	"github.com/sadopc/stitchr/internal/stats"
)

type dashboardModel struct {
	sess   *session.Session
	width  int
	height int

	data   stats.Dashboard
	loaded bool
}

func newDashboardModel(s *session.Session) dashboardModel {
	return dashboardModel{sess: s}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	data stats.Dashboard
	err  error
}

// refresh also marks today as an active day.
func (d dashboardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		data, err := d.sess.Dashboard()
		return dashboardDataMsg{data: data, err: err}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(dashboardDataMsg); ok {
		if msg.err != nil {
			return d, errorCmd(msg.err)
		}
		d.data = msg.data
		d.loaded = true
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	w := d.width - 4
	if !d.loaded {
		return panelStyle.Width(w).Render(mutedStyle.Render("Loading dashboard..."))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderProgressPanel(w),
		d.renderAwardsPanel(w),
		d.renderGoalsPanel(w),
		d.renderStashPanel(w),
	)
}

func (d dashboardModel) renderProgressPanel(w int) string {
	t := d.data.Totals
	bar := newProgressBar(w - 12)

	stitches := fmt.Sprintf("%s  %s",
		metricStyle.Render(formatCount(t.CompletedStitches)),
		mutedStyle.Render(fmt.Sprintf("of %s stitches", formatCount(t.TargetStitches))))

	days := "days"
	if d.data.Streak == 1 {
		days = "day"
	}
	streak := accentStyle.Render(fmt.Sprintf("🔥 Current streak: %d %s", d.data.Streak, days))

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Total Progress"),
		"",
		stitches,
		bar.ViewAs(t.StitchRatio),
		"",
		streak,
	)
	return activePanelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderAwardsPanel(w int) string {
	rows := []string{titleStyle.Render("🏆 Awards")}
	if len(d.data.Awards) == 0 {
		rows = append(rows, mutedStyle.Render("No awards yet. Keep stitching!"))
	}
	for _, a := range d.data.Awards {
		rows = append(rows, badgeStyle.Render(a))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderGoalsPanel(w int) string {
	t := d.data.Totals
	header := fmt.Sprintf("%s  %s", titleStyle.Render("Goal Progress"),
		mutedStyle.Render(fmt.Sprintf("%d of %d complete", t.CompletedGoals, t.Goals)))

	if len(d.data.Goals) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header, mutedStyle.Render("No goals yet"),
		))
	}

	bar := newProgressBar(w / 2)
	rows := []string{header}
	for _, g := range d.data.Goals {
		rows = append(rows, fmt.Sprintf("  %s: %d / %d (%d%%)", g.Name, g.Completed, g.Target, g.Percent))
		rows = append(rows, "  "+bar.ViewAs(g.Fraction))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderStashPanel(w int) string {
	t := d.data.Totals
	rows := []string{
		fmt.Sprintf("%s  %s", titleStyle.Render("Yarn Types"), highlightStyle.Render(fmt.Sprint(t.YarnTypes))),
	}
	if len(t.YarnTypeNames) == 0 {
		rows = append(rows, mutedStyle.Render("No yarn in the stash"))
	}
	for _, name := range t.YarnTypeNames {
		if name == "" {
			name = "(untyped)"
		}
		rows = append(rows, "  • "+name)
	}
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("%s  %s", titleStyle.Render("Photos"), highlightStyle.Render(fmt.Sprint(t.Photos))))
	rows = append(rows, fmt.Sprintf("%s  %s", titleStyle.Render("Rows"), highlightStyle.Render(fmt.Sprint(t.Rows))))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
