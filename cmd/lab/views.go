package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/synthetic-data-lab/internal/preset"
	"github.com/rxtech-lab/synthetic-data-lab/internal/schema"
	"github.com/rxtech-lab/synthetic-data-lab/internal/theme"
	"github.com/shopspring/decimal"
)

// listItem implements list.Item interface for the preset list.
type listItem struct {
	name        string
	description string
}

func (i listItem) Title() string       { return i.name }
func (i listItem) Description() string { return i.description }
func (i listItem) FilterValue() string { return i.name }

// NewPresetList creates the preset list of a catalog with active selected.
func NewPresetList(catalog *preset.Catalog, active string) list.Model {
	presets := catalog.Presets()
	items := make([]list.Item, 0, len(presets))
	selected := 0

	for i, p := range presets {
		items = append(items, listItem{name: p.Name, description: p.Description})
		if p.Name == active {
			selected = i
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = "Presets"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Select(selected)

	return l
}

// NewFieldTable creates the table of parameters.
func NewFieldTable(styles theme.Styles) table.Model {
	columns := []table.Column{
		{Title: "Parameter", Width: 20},
		{Title: "Value", Width: 14},
		{Title: "Allowed", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(10),
	)
	t.SetStyles(styles.Table)

	return t
}

// UpdateFieldRows fills the table with the values of group.
func UpdateFieldRows(t table.Model, group *schema.Group, values schema.Bundle) table.Model {
	fields := group.Fields()
	rows := make([]table.Row, 0, len(fields))

	for _, f := range fields {
		rows = append(rows, table.Row{
			f.Label,
			group.Format(f.Key, values[f.Key]),
			FieldHint(f),
		})
	}

	t.SetRows(rows)

	return t
}

// FieldHint describes the values a field accepts.
func FieldHint(f schema.Field) string {
	if f.Kind == schema.KindCategorical {
		return strings.Join(f.Choices, " | ")
	}

	r, err := f.Range.Take()
	if err != nil {
		return ""
	}

	places := f.Precision
	if f.Kind == schema.KindInteger {
		places = 0
	}

	return fmt.Sprintf("%s to %s",
		decimal.NewFromFloat(r.Min).StringFixed(places),
		decimal.NewFromFloat(r.Max).StringFixed(places),
	)
}

// NewFieldInput creates the text input used to edit a value.
func NewFieldInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 32
	ti.Width = 30
	ti.Prompt = "> "

	return ti
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(m.styles.Title.Render("Synthetic Data Lab"))
	s.WriteString("\n\n")
	s.WriteString(m.tabsView())
	s.WriteString("\n\n")

	switch m.state {
	case StateBrowse:
		s.WriteString(m.browseView())
		s.WriteString("\n")
		s.WriteString(m.statusView())
		s.WriteString("\n")
		s.WriteString(m.styles.Help.Render("tab: group | ←/→: presets/fields | enter: apply/edit | e: edit | r: reset | t: theme | q: quit"))

	case StateEditField:
		applier, _ := m.session.Applier(m.activeGroup())
		label := m.editKey
		if applier != nil {
			if f, err := applier.Group().Field(m.editKey); err == nil {
				label = f.Label
			}
		}

		s.WriteString(m.styles.Label.Render(fmt.Sprintf("Edit %s (%s)", label, m.fieldInput.Placeholder)))
		s.WriteString("\n\n")
		s.WriteString(m.fieldInput.View())
		s.WriteString("\n\n")
		if m.err != nil {
			s.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		}
		s.WriteString(m.styles.Help.Render("Press Enter to confirm, Esc to cancel"))

	case StateConfirmQuit:
		s.WriteString(m.styles.Dialog.Render("Are you sure you want to quit?\n\n(y) Yes   (n) No"))
	}

	return s.String()
}

func (m Model) tabsView() string {
	tabs := make([]string, 0, len(m.groups))
	for i, name := range m.groups {
		if i == m.group {
			tabs = append(tabs, m.styles.ActiveTab.Render(string(name)))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(string(name)))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) browseView() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Panel.Render(m.presetList.View()),
		" ",
		m.styles.Panel.Render(m.fieldTable.View()),
	)
}

func (m Model) statusView() string {
	state := m.states[m.activeGroup()]

	var s strings.Builder
	s.WriteString(m.styles.Label.Render("Active preset: "))
	s.WriteString(m.styles.Value.Render(state.ActivePreset))

	if m.status != "" {
		s.WriteString("  ")
		s.WriteString(m.styles.Status.Render(m.status))
	}

	if m.err != nil {
		s.WriteString("\n")
		s.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return s.String()
}
