package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/stitchr/internal/stats"
	"github.com/sadopc/stitchr/internal/store"
)

var photoTypes = []string{".jpg", ".jpeg", ".png"}

// photoItem is a photo plus what we learned by decoding it.
type photoItem struct {
	photo store.Photo
	info  string
}

type photosModel struct {
	store  *store.Store
	width  int
	height int

	items  []photoItem
	total  int // before filtering
	filter string
	cursor int

	formActive  bool
	form        *huh.Form
	formType    string // "photo", "filter"
	formPath    *string
	formCaption *string
	formTag     *string
	formFilter  *string
}

func newPhotosModel(s *store.Store) photosModel {
	path, caption, tag, filter := "", "", "", ""
	return photosModel{
		store:       s,
		formPath:    &path,
		formCaption: &caption,
		formTag:     &tag,
		formFilter:  &filter,
	}
}

func (p *photosModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type photosDataMsg struct {
	items  []photoItem
	total  int
	filter string
	err    error
}

func describePhoto(ph store.Photo) string {
	data, err := ph.Decode()
	if err != nil {
		return "unreadable image"
	}
	info, err := store.InspectImage(data)
	if err != nil {
		return "unreadable image"
	}
	return fmt.Sprintf("%s %d×%d, %s", strings.ToUpper(info.Format), info.Width, info.Height, formatBytes(len(data)))
}

func (p photosModel) refresh() tea.Cmd {
	return func() tea.Msg {
		filter := p.store.SettingOr(store.SettingPhotoFilter, "")
		photos, err := p.store.ListPhotos()
		if err != nil {
			return photosDataMsg{err: err}
		}
		var items []photoItem
		for _, ph := range stats.FilterPhotos(photos, filter) {
			items = append(items, photoItem{photo: ph, info: describePhoto(ph)})
		}
		return photosDataMsg{items: items, total: len(photos), filter: filter}
	}
}

func (p photosModel) update(msg tea.Msg) (photosModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case photosDataMsg:
		if msg.err != nil {
			return p, errorCmd(msg.err)
		}
		p.items = msg.items
		p.total = msg.total
		p.filter = msg.filter
		p.cursor = clampCursor(p.cursor, len(p.items))
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			p.cursor = moveCursor(p.cursor, -1, len(p.items))
		case key.Matches(msg, keys.Down):
			p.cursor = moveCursor(p.cursor, 1, len(p.items))
		case key.Matches(msg, keys.New):
			return p.showPhotoForm()
		case key.Matches(msg, keys.Filter):
			return p.showFilterForm()
		case key.Matches(msg, keys.Delete):
			if len(p.items) > 0 {
				if err := p.store.DeletePhoto(p.items[p.cursor].photo.ID); err != nil && !isNotFound(err) {
					return p, errorCmd(err)
				}
				return p, p.refresh()
			}
		}
	}
	return p, nil
}

func (p photosModel) showPhotoForm() (photosModel, tea.Cmd) {
	*p.formPath = ""
	*p.formCaption = ""
	*p.formTag = ""
	p.formType = "photo"

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewFilePicker().
				Title("Upload a project photo").
				AllowedTypes(photoTypes).
				Value(p.formPath).
				Validate(required("Photo")),
			huh.NewInput().Title("Caption for this photo").Value(p.formCaption),
			huh.NewInput().Title("Tag/Project Name (optional)").Value(p.formTag),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p photosModel) showFilterForm() (photosModel, tea.Cmd) {
	*p.formFilter = p.filter
	p.formType = "filter"

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Filter by Tag").
				Description("Leave blank to show all").
				Value(p.formFilter),
		),
	).WithShowHelp(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p photosModel) updateForm(msg tea.Msg) (photosModel, tea.Cmd) {
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
		switch p.formType {
		case "photo":
			return p, tea.Batch(p.savePhoto(), p.refresh())
		case "filter":
			if err := p.store.SetSetting(store.SettingPhotoFilter, strings.TrimSpace(*p.formFilter)); err != nil {
				return p, errorCmd(err)
			}
			p.cursor = 0
			return p, p.refresh()
		}
	}

	return p, cmd
}

// savePhoto runs synchronously so the refresh batched after it sees the
// new photo.
func (p photosModel) savePhoto() tea.Cmd {
	data, err := os.ReadFile(*p.formPath)
	if err != nil {
		return errorCmd(fmt.Errorf("read photo: %w", err))
	}
	if _, err := p.store.AddPhoto(data, strings.TrimSpace(*p.formCaption), strings.TrimSpace(*p.formTag)); err != nil {
		return errorCmd(err)
	}
	return statusCmd("Photo saved!")
}

func (p photosModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		title := titleStyle.Render("Add Photo")
		if p.formType == "filter" {
			title = titleStyle.Render("Filter Gallery")
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View()))
	}

	title := titleStyle.Render("📸 Project Photos")
	if p.filter != "" {
		title += "  " + mutedStyle.Render(fmt.Sprintf("tag: %q (%d of %d)", p.filter, len(p.items), p.total))
	}

	if len(p.items) == 0 {
		hint := "No photos yet. Press n to add one."
		if p.total > 0 {
			hint = "No photos match this tag. Press f to change the filter."
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", mutedStyle.Render(hint))
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")
	for i, item := range p.items {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		caption := item.photo.Caption
		if caption == "" {
			caption = "(no caption)"
		}
		line := style.Render(cursor + caption)
		if item.photo.Tag != "" {
			line += accentStyle.Render(" - " + item.photo.Tag)
		}
		rows = append(rows, line+mutedStyle.Render("  "+item.info))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  f: filter by tag  d: remove"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
