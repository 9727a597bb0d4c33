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

type goalsModel struct {
	store  *store.Store
	width  int
	height int

	goals  []store.Goal
	cursor int

	formActive bool
	form       *huh.Form
	formName   *string
	formTarget *string
}

func newGoalsModel(s *store.Store) goalsModel {
	name, target := "", "1"
	return goalsModel{
		store:      s,
		formName:   &name,
		formTarget: &target,
	}
}

func (g *goalsModel) setSize(w, h int) {
	g.width = w
	g.height = h
}

type goalsDataMsg struct {
	goals []store.Goal
	err   error
}

func (g goalsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		goals, err := g.store.ListGoals()
		return goalsDataMsg{goals: goals, err: err}
	}
}

func (g goalsModel) update(msg tea.Msg) (goalsModel, tea.Cmd) {
	if g.formActive && g.form != nil {
		return g.updateForm(msg)
	}

	switch msg := msg.(type) {
	case goalsDataMsg:
		if msg.err != nil {
			return g, errorCmd(msg.err)
		}
		g.goals = msg.goals
		g.cursor = clampCursor(g.cursor, len(g.goals))
		return g, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			g.cursor = moveCursor(g.cursor, -1, len(g.goals))
		case key.Matches(msg, keys.Down):
			g.cursor = moveCursor(g.cursor, 1, len(g.goals))
		case key.Matches(msg, keys.Increment):
			return g.step(1)
		case key.Matches(msg, keys.Decrement):
			return g.step(-1)
		case key.Matches(msg, keys.IncrementTen):
			return g.step(10)
		case key.Matches(msg, keys.DecrementTen):
			return g.step(-10)
		case key.Matches(msg, keys.New):
			return g.showForm()
		case key.Matches(msg, keys.Delete):
			if len(g.goals) > 0 {
				if err := g.store.DeleteGoal(g.goals[g.cursor].ID); err != nil && !isNotFound(err) {
					return g, errorCmd(err)
				}
				return g, g.refresh()
			}
		}
	}
	return g, nil
}

func (g goalsModel) step(delta int) (goalsModel, tea.Cmd) {
	if len(g.goals) == 0 {
		return g, nil
	}
	goal := g.goals[g.cursor]
	updated, err := g.store.SetGoalCompleted(goal.ID, goal.Completed+delta)
	if err != nil {
		return g, errorCmd(err)
	}
	g.goals[g.cursor] = *updated
	if !goal.Done() && updated.Done() {
		return g, statusCmd("🏁 Finished " + updated.Name + "!")
	}
	return g, nil
}

func (g goalsModel) showForm() (goalsModel, tea.Cmd) {
	*g.formName = ""
	*g.formTarget = "1"

	g.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("New Goal").Value(g.formName).Validate(required("Goal")),
			huh.NewInput().Title("Target Count").Value(g.formTarget).Validate(minInt("Target", 1)),
		),
	).WithShowHelp(true).WithShowErrors(true)

	g.formActive = true
	return g, g.form.Init()
}

func (g goalsModel) updateForm(msg tea.Msg) (goalsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		g.formActive = false
		g.form = nil
		return g, nil
	}

	form, cmd := g.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.form = f
	}

	if g.form.State == huh.StateCompleted {
		g.formActive = false
		g.form = nil
		if _, err := g.store.AddGoal(strings.TrimSpace(*g.formName), atoi(*g.formTarget)); err != nil {
			return g, errorCmd(err)
		}
		return g, g.refresh()
	}

	return g, cmd
}

func (g goalsModel) view() string {
	w := g.width - 4

	if g.formActive && g.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Add Goal"), "", g.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("🎯 Goal Tracker")
	if len(g.goals) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No goals yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	bar := newProgressBar(w - 30)

	var rows []string
	rows = append(rows, title, "")
	for i, goal := range g.goals {
		cursor := "  "
		style := normalItemStyle
		if i == g.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		name := style.Render(cursor + goal.Name)
		if goal.Done() {
			name += successStyle.Render(" ✓")
		}
		rows = append(rows, name)
		rows = append(rows, fmt.Sprintf("    %s %s", bar.ViewAs(stats.Progress(goal.Completed, goal.Target)),
			highlightStyle.Render(fmt.Sprintf("%d/%d", goal.Completed, goal.Target))))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  ←/→: ±1  H/L: ±10  d: remove"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
