package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/stitchr/internal/config"
	"github.com/sadopc/stitchr/internal/session"
)

var exportChoices = []string{"Save session (JSON)", "Stitch rows (CSV)", "Yarn stash (CSV)"}

// App is the root Bubble Tea model.
type App struct {
	sess   *session.Session
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	loadActive bool
	loadForm   *huh.Form
	loadPath   *string

	counter   counterModel
	patterns  patternsModel
	goals     goalsModel
	yarn      yarnModel
	photos    photosModel
	dashboard dashboardModel
	reports   reportsModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *session.Session) App {
	h := help.New()
	h.ShowAll = false
	path := ""

	return App{
		sess:       s,
		activeView: viewCounter,
		loadPath:   &path,
		counter:    newCounterModel(s.Store),
		patterns:   newPatternsModel(s.Store),
		goals:      newGoalsModel(s.Store),
		yarn:       newYarnModel(s.Store),
		photos:     newPhotosModel(s.Store),
		dashboard:  newDashboardModel(s),
		reports:    newReportsModel(s.Store),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.counter.refresh()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.counter.setSize(a.width, contentHeight)
		a.patterns.setSize(a.width, contentHeight)
		a.goals.setSize(a.width, contentHeight)
		a.yarn.setSize(a.width, contentHeight)
		a.photos.setSize(a.width, contentHeight)
		a.dashboard.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		if a.activeView == viewReports {
			return a, a.reports.refresh()
		}
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if a.loadActive {
			return a.updateLoadForm(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Import):
			return a.showLoadForm()
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewCounter)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewPatterns)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewGoals)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewYarn)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewPhotos)
		case key.Matches(msg, keys.Tab6):
			return a.switchTo(viewDashboard)
		case key.Matches(msg, keys.Tab7):
			return a.switchTo(viewReports)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		if msg.isError {
			a.sess.Logger().Warn("ui error", "view", viewNames[a.activeView], "msg", msg.text)
		}
		return a, nil

	case exportDoneMsg:
		a.status = "Saved to " + msg.path
		a.statusErr = false
		return a, nil

	case sessionLoadedMsg:
		a.status = "Loaded " + msg.path
		a.statusErr = false
		return a, a.refreshAll()

	// Data messages go to their owner even if the user has moved on.
	case counterDataMsg:
		var cmd tea.Cmd
		a.counter, cmd = a.counter.update(msg)
		return a, cmd
	case patternsDataMsg:
		var cmd tea.Cmd
		a.patterns, cmd = a.patterns.update(msg)
		return a, cmd
	case goalsDataMsg:
		var cmd tea.Cmd
		a.goals, cmd = a.goals.update(msg)
		return a, cmd
	case yarnDataMsg:
		var cmd tea.Cmd
		a.yarn, cmd = a.yarn.update(msg)
		return a, cmd
	case photosDataMsg:
		var cmd tea.Cmd
		a.photos, cmd = a.photos.update(msg)
		return a, cmd
	case dashboardDataMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd
	case reportsDataMsg:
		var cmd tea.Cmd
		a.reports, cmd = a.reports.update(msg)
		return a, cmd
	}

	if a.loadActive {
		return a.updateLoadForm(msg)
	}
	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	a.status = ""
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewCounter:
		a.counter, cmd = a.counter.update(msg)
	case viewPatterns:
		a.patterns, cmd = a.patterns.update(msg)
	case viewGoals:
		a.goals, cmd = a.goals.update(msg)
	case viewYarn:
		a.yarn, cmd = a.yarn.update(msg)
	case viewPhotos:
		a.photos, cmd = a.photos.update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewCounter:
		return a.counter.formActive
	case viewPatterns:
		return a.patterns.formActive
	case viewGoals:
		return a.goals.formActive
	case viewYarn:
		return a.yarn.formActive
	case viewPhotos:
		return a.photos.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewCounter:
		return a.counter.refresh()
	case viewPatterns:
		return a.patterns.refresh()
	case viewGoals:
		return a.goals.refresh()
	case viewYarn:
		return a.yarn.refresh()
	case viewPhotos:
		return a.photos.refresh()
	case viewDashboard:
		return a.dashboard.refresh()
	case viewReports:
		return a.reports.refresh()
	}
	return nil
}

// refreshAll reloads every list view. The dashboard is left to its own tab
// so that loading a file does not count as a day of activity.
func (a App) refreshAll() tea.Cmd {
	return tea.Batch(
		a.counter.refresh(),
		a.patterns.refresh(),
		a.goals.refresh(),
		a.yarn.refresh(),
		a.photos.refresh(),
		a.reports.refresh(),
		a.refreshCurrentView(),
	)
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewCounter:
		content = a.counter.view()
	case viewPatterns:
		content = a.patterns.view()
	case viewGoals:
		content = a.goals.view()
	case viewYarn:
		content = a.yarn.view()
	case viewPhotos:
		content = a.photos.view()
	case viewDashboard:
		content = a.dashboard.view()
	case viewReports:
		content = a.reports.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	switch {
	case a.exportPicking:
		content = a.renderExportPicker()
	case a.loadActive && a.loadForm != nil:
		content = activePanelStyle.Width(a.width - 4).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Load Session"), "", a.loadForm.View()),
		)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("🧶 stitchr")
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = successStyle.Render(" " + a.status)
		}
	}

	left := footerStyle.Render(helpView)
	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(status)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Save & Export"), ""}
	for i, f := range exportChoices {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	return activePanelStyle.Width(a.width - 4).Render(strings.Join(rows, "\n"))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		a.exportCursor = moveCursor(a.exportCursor, -1, len(exportChoices))
	case key.Matches(msg, keys.Down):
		a.exportCursor = moveCursor(a.exportCursor, 1, len(exportChoices))
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(choice int) tea.Cmd {
	return func() tea.Msg {
		var (
			path string
			err  error
		)
		switch choice {
		case 0:
			path, err = a.sess.Save()
		case 1:
			path, err = a.sess.ExportRows()
		default:
			path, err = a.sess.ExportYarn()
		}
		if err != nil {
			return statusMsg{text: "Export error: " + err.Error(), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

func (a App) showLoadForm() (tea.Model, tea.Cmd) {
	*a.loadPath = ""
	a.loadForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Session file").
				Description("A .json file written by Save session").
				Placeholder("~/stitchr-session-2006-01-02.json").
				Value(a.loadPath).
				Validate(required("Path")),
		),
	).WithShowHelp(true).WithShowErrors(true)
	a.loadActive = true
	return a, a.loadForm.Init()
}

func (a App) updateLoadForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		a.loadActive = false
		a.loadForm = nil
		return a, nil
	}

	form, cmd := a.loadForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.loadForm = f
	}

	if a.loadForm.State == huh.StateCompleted {
		a.loadActive = false
		a.loadForm = nil
		return a, a.loadSession(strings.TrimSpace(*a.loadPath))
	}
	return a, cmd
}

func (a App) loadSession(path string) tea.Cmd {
	return func() tea.Msg {
		if err := a.sess.Load(config.ExpandHome(path)); err != nil {
			return statusMsg{text: "Load error: " + err.Error(), isError: true}
		}
		return sessionLoadedMsg{path: path}
	}
}
