package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/synthetic-data-lab/internal/config"
	"github.com/rxtech-lab/synthetic-data-lab/internal/logger"
	"github.com/rxtech-lab/synthetic-data-lab/internal/schema"
	"github.com/rxtech-lab/synthetic-data-lab/internal/settings"
	"github.com/rxtech-lab/synthetic-data-lab/internal/theme"
	"go.uber.org/zap"
)

// Application states.
const (
	StateBrowse = iota
	StateEditField
	StateConfirmQuit
)

// Focus targets inside the browse state.
const (
	FocusPresets = iota
	FocusFields
)

// changeFeed collects the changes announced by the session. It is shared by
// every copy of the model.
type changeFeed struct {
	pending []config.Change
	total   int
}

func (f *changeFeed) OnConfigurationChanged(change config.Change) {
	f.pending = append(f.pending, change)
	f.total++
}

func (f *changeFeed) drain() []config.Change {
	changes := f.pending
	f.pending = nil
	return changes
}

// Model is the main Bubble Tea model of the lab terminal UI.
type Model struct {
	state      int
	focus      int
	session    *config.Session
	settings   *settings.Settings
	log        *logger.Logger
	feed       *changeFeed
	styles     theme.Styles
	groups     []schema.GroupName
	group      int
	states     map[schema.GroupName]config.State
	presetList list.Model
	fieldTable table.Model
	fieldInput textinput.Model
	editKey    string
	status     string
	err        error
	width      int
	height     int
}

// NewModel creates a model for session. The model subscribes to the session
// and keeps its own copy of every group's state up to date from the changes.
func NewModel(session *config.Session, prefs *settings.Settings, log *logger.Logger) Model {
	if log == nil {
		log = logger.NewNopLogger()
	}

	feed := &changeFeed{}
	session.Subscribe(feed)

	m := Model{
		state:      StateBrowse,
		focus:      FocusPresets,
		session:    session,
		settings:   prefs,
		log:        log,
		feed:       feed,
		styles:     theme.NewStyles(theme.ForName(prefs.Theme())),
		groups:     session.Groups(),
		group:      0,
		states:     make(map[schema.GroupName]config.State),
		fieldInput: NewFieldInput(),
	}

	for _, name := range m.groups {
		state, err := session.GetState(name)
		if err != nil {
			m.err = err
			continue
		}
		m.states[name] = state
	}

	return m.rebuild()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// activeGroup returns the name of the group shown on screen.
func (m Model) activeGroup() schema.GroupName {
	return m.groups[m.group]
}

// rebuild recreates the preset list and the field table for the active group.
func (m Model) rebuild() Model {
	applier, err := m.session.Applier(m.activeGroup())
	if err != nil {
		m.err = err
		return m
	}

	state := m.states[m.activeGroup()]

	m.presetList = NewPresetList(applier.Catalog(), state.ActivePreset)
	m.fieldTable = NewFieldTable(m.styles)
	m.fieldTable = UpdateFieldRows(m.fieldTable, applier.Group(), state.Values)
	m.resize()

	if m.focus == FocusFields {
		m.fieldTable.Focus()
	} else {
		m.fieldTable.Blur()
	}

	return m
}

func (m *Model) resize() {
	if m.width == 0 {
		return
	}

	listWidth := m.width / 3
	m.presetList.SetSize(listWidth, m.height-8)
	m.fieldTable.SetWidth(m.width - listWidth - 4)
	m.fieldTable.SetHeight(m.height - 10)
}

// sync applies the changes the session announced since the last call.
func (m Model) sync() Model {
	changes := m.feed.drain()
	if len(changes) == 0 {
		return m
	}

	for _, change := range changes {
		m.states[change.Group] = change.State()
		m.log.Debug("change received",
			zap.Stringer("id", change.ID),
			zap.String("group", string(change.Group)),
			zap.String("cause", string(change.Cause)),
		)
	}

	last := changes[len(changes)-1]
	switch last.Cause {
	case config.CausePreset:
		m.status = fmt.Sprintf("Applied %s", last.ActivePreset)
	case config.CauseEdit:
		m.status = fmt.Sprintf("Set %s", last.Key)
	case config.CauseReset:
		m.status = "Restored defaults"
	}

	cursor := m.fieldTable.Cursor()
	m = m.rebuild()
	m.fieldTable.SetCursor(cursor)

	return m
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.state == StateConfirmQuit {
				return m, tea.Quit
			}
			m.state = StateConfirmQuit
			return m, nil
		case "q":
			// q is a normal character while editing a field
			if m.state == StateBrowse {
				m.state = StateConfirmQuit
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	}

	// Delegate to state-specific update
	switch m.state {
	case StateBrowse:
		return m.updateBrowse(msg)
	case StateEditField:
		return m.updateEditField(msg)
	case StateConfirmQuit:
		return m.updateConfirmQuit(msg)
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "shift+tab":
			step := 1
			if msg.String() == "shift+tab" {
				step = len(m.groups) - 1
			}
			m.group = (m.group + step) % len(m.groups)
			m.err = nil
			m.status = ""
			return m.rebuild(), nil
		case "left", "h":
			m.focus = FocusPresets
			m.fieldTable.Blur()
			return m, nil
		case "right", "l":
			m.focus = FocusFields
			m.fieldTable.Focus()
			return m, nil
		case "r":
			m.err = m.session.Reset(m.activeGroup())
			return m.sync(), nil
		case "t":
			return m.toggleTheme(), nil
		case "enter":
			if m.focus == FocusPresets {
				return m.applySelectedPreset(), nil
			}
			return m.startEdit()
		case "e":
			if m.focus == FocusFields {
				return m.startEdit()
			}
		}
	}

	var cmd tea.Cmd
	if m.focus == FocusPresets {
		m.presetList, cmd = m.presetList.Update(msg)
	} else {
		m.fieldTable, cmd = m.fieldTable.Update(msg)
	}
	return m, cmd
}

func (m Model) applySelectedPreset() Model {
	item, ok := m.presetList.SelectedItem().(listItem)
	if !ok {
		return m
	}

	m.err = m.session.SelectPreset(m.activeGroup(), item.name)
	if m.err != nil {
		m.log.Warn("preset rejected", zap.String("preset", item.name), zap.Error(m.err))
	}

	return m.sync()
}

// selectedField returns the field under the table cursor.
func (m Model) selectedField() (schema.Field, bool) {
	applier, err := m.session.Applier(m.activeGroup())
	if err != nil {
		return schema.Field{}, false
	}

	fields := applier.Group().Fields()
	cursor := m.fieldTable.Cursor()
	if cursor < 0 || cursor >= len(fields) {
		return schema.Field{}, false
	}

	return fields[cursor], true
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	field, ok := m.selectedField()
	if !ok {
		return m, nil
	}

	applier, _ := m.session.Applier(m.activeGroup())
	current := m.states[m.activeGroup()].Values[field.Key]

	m.editKey = field.Key
	m.err = nil
	m.fieldInput.Reset()
	m.fieldInput.Placeholder = FieldHint(field)
	m.fieldInput.SetValue(applier.Group().Format(field.Key, current))
	m.fieldInput.CursorEnd()
	m.fieldInput.Focus()
	m.state = StateEditField

	return m, textinput.Blink
}

func (m Model) updateEditField(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.fieldInput.Blur()
			m.state = StateBrowse
			m.err = nil
			return m, nil
		case "enter":
			value := strings.TrimSpace(m.fieldInput.Value())
			if err := m.session.EditField(m.activeGroup(), m.editKey, value); err != nil {
				// stay in the editor so the value can be corrected
				m.err = err
				return m, nil
			}

			m.err = nil
			m.fieldInput.Blur()
			m.state = StateBrowse
			return m.sync(), nil
		}
	}

	var cmd tea.Cmd
	m.fieldInput, cmd = m.fieldInput.Update(msg)
	return m, cmd
}

func (m Model) updateConfirmQuit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y", "enter":
			return m, tea.Quit
		case "n", "N", "esc":
			m.state = StateBrowse
			return m, nil
		}
	}

	return m, nil
}

func (m Model) toggleTheme() Model {
	next := m.settings.Theme().Toggle()
	if err := m.settings.SetTheme(next); err != nil {
		m.err = err
		m.log.Warn("failed to save theme", zap.Error(err))
		return m
	}

	m.styles = theme.NewStyles(theme.ForName(next))
	m.status = fmt.Sprintf("Theme: %s", next)

	return m.rebuild()
}
