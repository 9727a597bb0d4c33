package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/stitchr/internal/store"
)

type patternsModel struct {
	store  *store.Store
	width  int
	height int

	patterns []store.Pattern
	cursor   int
	expanded int64 // ID of the pattern whose text is shown, 0 for none

	// Instructions are markdown; nil until the first setSize.
	renderer *glamour.TermRenderer

	formActive bool
	form       *huh.Form
	formName   *string
	formText   *string
}

func newPatternsModel(s *store.Store) patternsModel {
	name, text := "", ""
	return patternsModel{
		store:    s,
		formName: &name,
		formText: &text,
	}
}

func (p *patternsModel) setSize(w, h int) {
	p.width = w
	p.height = h
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(max(20, w-14)),
	)
	if err == nil {
		p.renderer = r
	}
}

// renderBody renders pattern instructions, falling back to plain text.
func (p patternsModel) renderBody(text string) string {
	if p.renderer != nil {
		if out, err := p.renderer.Render(text); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return lipgloss.NewStyle().PaddingLeft(6).Width(p.width - 10).Render(text)
}

type patternsDataMsg struct {
	patterns []store.Pattern
	err      error
}

func (p patternsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		patterns, err := p.store.ListPatterns()
		return patternsDataMsg{patterns: patterns, err: err}
	}
}

func (p patternsModel) update(msg tea.Msg) (patternsModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case patternsDataMsg:
		if msg.err != nil {
			return p, errorCmd(msg.err)
		}
		p.patterns = msg.patterns
		p.cursor = clampCursor(p.cursor, len(p.patterns))
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			p.cursor = moveCursor(p.cursor, -1, len(p.patterns))
		case key.Matches(msg, keys.Down):
			p.cursor = moveCursor(p.cursor, 1, len(p.patterns))
		case key.Matches(msg, keys.Enter):
			if len(p.patterns) > 0 {
				id := p.patterns[p.cursor].ID
				if p.expanded == id {
					p.expanded = 0
				} else {
					p.expanded = id
				}
			}
		case key.Matches(msg, keys.New):
			return p.showForm()
		case key.Matches(msg, keys.Delete):
			if len(p.patterns) > 0 {
				pat := p.patterns[p.cursor]
				if err := p.store.DeletePattern(pat.ID); err != nil && !isNotFound(err) {
					return p, errorCmd(err)
				}
				return p, p.refresh()
			}
		}
	}
	return p, nil
}

func (p patternsModel) showForm() (patternsModel, tea.Cmd) {
	*p.formName = ""
	*p.formText = ""

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Pattern Name").Value(p.formName).Validate(required("Pattern name")),
			huh.NewText().Title("Pattern Instructions").Value(p.formText).Validate(required("Instructions")),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p patternsModel) updateForm(msg tea.Msg) (patternsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		p.formActive = false
		p.form = nil
		return p, nil
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		p.form = nil
		if _, err := p.store.AddPattern(strings.TrimSpace(*p.formName), *p.formText); err != nil {
			return p, errorCmd(err)
		}
		return p, tea.Batch(p.refresh(), statusCmd("Pattern saved!"))
	}

	return p, cmd
}

func (p patternsModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("New Pattern"), "", p.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("📖 Pattern Library")
	if len(p.patterns) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No patterns yet. Press n to save one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")

	for i, pat := range p.patterns {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		marker := "▸"
		if p.expanded == pat.ID {
			marker = "▾"
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, marker, pat.Name))+
			mutedStyle.Render(" ("+pat.CreatedAt.Local().Format("2006-01-02")+")"))
		if p.expanded == pat.ID {
			rows = append(rows, p.renderBody(pat.Text))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: show/hide  d: remove"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
