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

type yarnModel struct {
	store  *store.Store
	width  int
	height int

	yarn   []store.Yarn // in display order
	order  stats.SortOrder
	cursor int

	formActive   bool
	form         *huh.Form
	formType     *string
	formBrand    *string
	formColor    *string
	formProject  *string
	formQuantity *string
	formNotes    *string
}

func newYarnModel(s *store.Store) yarnModel {
	typ, brand, color, project, qty, notes := "", "", "", "", "0", ""
	return yarnModel{
		store:        s,
		order:        stats.SortNewest,
		formType:     &typ,
		formBrand:    &brand,
		formColor:    &color,
		formProject:  &project,
		formQuantity: &qty,
		formNotes:    &notes,
	}
}

func (y *yarnModel) setSize(w, h int) {
	y.width = w
	y.height = h
}

type yarnDataMsg struct {
	yarn  []store.Yarn
	order stats.SortOrder
	err   error
}

func (y yarnModel) refresh() tea.Cmd {
	return func() tea.Msg {
		order := stats.ParseSort(stats.YarnSorts, y.store.SettingOr(store.SettingYarnSort, ""))
		yarn, err := y.store.ListYarn()
		return yarnDataMsg{yarn: stats.SortYarn(yarn, order), order: order, err: err}
	}
}

func (y yarnModel) update(msg tea.Msg) (yarnModel, tea.Cmd) {
	if y.formActive && y.form != nil {
		return y.updateForm(msg)
	}

	switch msg := msg.(type) {
	case yarnDataMsg:
		if msg.err != nil {
			return y, errorCmd(msg.err)
		}
		y.yarn = msg.yarn
		y.order = msg.order
		y.cursor = clampCursor(y.cursor, len(y.yarn))
		return y, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			y.cursor = moveCursor(y.cursor, -1, len(y.yarn))
		case key.Matches(msg, keys.Down):
			y.cursor = moveCursor(y.cursor, 1, len(y.yarn))
		case key.Matches(msg, keys.Sort):
			next := stats.Next(stats.YarnSorts, y.order)
			if err := y.store.SetSetting(store.SettingYarnSort, string(next)); err != nil {
				return y, errorCmd(err)
			}
			return y, y.refresh()
		case key.Matches(msg, keys.New):
			return y.showForm()
		case key.Matches(msg, keys.Delete):
			if len(y.yarn) > 0 {
				if err := y.store.DeleteYarn(y.yarn[y.cursor].ID); err != nil && !isNotFound(err) {
					return y, errorCmd(err)
				}
				return y, y.refresh()
			}
		}
	}
	return y, nil
}

func (y yarnModel) showForm() (yarnModel, tea.Cmd) {
	*y.formType = ""
	*y.formBrand = ""
	*y.formColor = ""
	*y.formProject = ""
	*y.formQuantity = "0"
	*y.formNotes = ""

	y.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Yarn Type").Value(y.formType),
			huh.NewInput().Title("Brand").Value(y.formBrand),
			huh.NewInput().Title("Color").Value(y.formColor),
		),
		huh.NewGroup(
			huh.NewInput().Title("Allocated to Project").Value(y.formProject),
			huh.NewInput().Title("Amount (skeins)").Value(y.formQuantity).Validate(minInt("Amount", 0)),
			huh.NewText().Title("Notes").Value(y.formNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	y.formActive = true
	return y, y.form.Init()
}

func (y yarnModel) updateForm(msg tea.Msg) (yarnModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		y.formActive = false
		y.form = nil
		return y, nil
	}

	form, cmd := y.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		y.form = f
	}

	if y.form.State == huh.StateCompleted {
		y.formActive = false
		y.form = nil
		_, err := y.store.AddYarn(store.Yarn{
			Type:     strings.TrimSpace(*y.formType),
			Brand:    strings.TrimSpace(*y.formBrand),
			Color:    strings.TrimSpace(*y.formColor),
			Quantity: atoi(*y.formQuantity),
			Project:  strings.TrimSpace(*y.formProject),
			Notes:    *y.formNotes,
		})
		if err != nil {
			return y, errorCmd(err)
		}
		return y, tea.Batch(y.refresh(), statusCmd("Yarn entry added!"))
	}

	return y, cmd
}

func (y yarnModel) view() string {
	w := y.width - 4

	if y.formActive && y.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Add Yarn"), "", y.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("🧶 Yarn Stash")
	if len(y.yarn) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No yarn yet. Press n to add some."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title+"  "+mutedStyle.Render("sorted: "+y.order.Label()), "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-18s %-14s %-12s %6s", "Brand", "Type", "Color", "Skeins")))

	for i, item := range y.yarn {
		cursor := "  "
		style := normalItemStyle
		if i == y.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-18s %-14s %-12s %6d", cursor,
			truncate(item.Brand, 18), truncate(item.Type, 14), truncate(item.Color, 12), item.Quantity)))
	}

	sel := y.yarn[y.cursor]
	project := sel.Project
	if project == "" {
		project = "Unassigned"
	}
	rows = append(rows, "")
	rows = append(rows, subtitleStyle.Render(fmt.Sprintf("%s %s (%s)", sel.Brand, sel.Type, sel.Color)))
	rows = append(rows, fmt.Sprintf("  Quantity: %s skeins", highlightStyle.Render(fmt.Sprint(sel.Quantity))))
	rows = append(rows, "  Allocated to: "+project)
	if sel.Notes != "" {
		rows = append(rows, "  Notes: "+sel.Notes)
	}
	rows = append(rows, mutedStyle.Render("  🕒 Added: "+sel.CreatedAt.Local().Format("2006-01-02 15:04:05")))

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  o: sort  d: remove"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
