// Package theme maps the light and dark themes to terminal colours and styles.
package theme

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/synthetic-data-lab/internal/settings"
)

// Palette holds the colours of one theme.
type Palette struct {
	Name            settings.Theme
	Window          lipgloss.Color
	WindowText      lipgloss.Color
	Base            lipgloss.Color
	AlternateBase   lipgloss.Color
	ToolTipBase     lipgloss.Color
	ToolTipText     lipgloss.Color
	Text            lipgloss.Color
	Button          lipgloss.Color
	ButtonText      lipgloss.Color
	BrightText      lipgloss.Color
	Link            lipgloss.Color
	Highlight       lipgloss.Color
	HighlightedText lipgloss.Color
	GroupTitle      lipgloss.Color
}

// Dark is the default palette.
var Dark = Palette{
	Name:            settings.ThemeDark,
	Window:          "#2D2D2D",
	WindowText:      "#C8C8C8",
	Base:            "#1E1E1E",
	AlternateBase:   "#2D2D2D",
	ToolTipBase:     "#4B4B4B",
	ToolTipText:     "#C8C8C8",
	Text:            "#C8C8C8",
	Button:          "#373737",
	ButtonText:      "#C8C8C8",
	BrightText:      "#FF0000",
	Link:            "#6495ED",
	Highlight:       "#6495ED",
	HighlightedText: "#FFFFFF",
	GroupTitle:      "#CCCCCC",
}

// Light is the palette for bright terminals.
var Light = Palette{
	Name:            settings.ThemeLight,
	Window:          "#FAFAFA",
	WindowText:      "#1E1E1E",
	Base:            "#FFFFFF",
	AlternateBase:   "#F5F5F5",
	ToolTipBase:     "#FFFFDC",
	ToolTipText:     "#000000",
	Text:            "#323232",
	Button:          "#EBEBEB",
	ButtonText:      "#1E1E1E",
	BrightText:      "#FF0000",
	Link:            "#0066CC",
	Highlight:       "#3399FF",
	HighlightedText: "#FFFFFF",
	GroupTitle:      "#000000",
}

// ForName returns the palette of t. Unknown names get the dark palette.
func ForName(t settings.Theme) Palette {
	if t == settings.ThemeLight {
		return Light
	}
	return Dark
}

// Styles are the lipgloss styles the terminal UI draws with.
type Styles struct {
	Palette   Palette
	App       lipgloss.Style
	Title     lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
	Status    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Panel     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Dialog    lipgloss.Style
	Table     table.Styles
}

// NewStyles builds the styles for p.
func NewStyles(p Palette) Styles {
	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Button).
		BorderBottom(true).
		Foreground(p.GroupTitle).
		Bold(true)
	tableStyles.Cell = tableStyles.Cell.Foreground(p.Text)
	tableStyles.Selected = tableStyles.Selected.
		Foreground(p.HighlightedText).
		Background(p.Highlight).
		Bold(false)

	return Styles{
		Palette: p,
		App:     lipgloss.NewStyle().Foreground(p.WindowText).Background(p.Window),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(p.GroupTitle),
		Help:    lipgloss.NewStyle().Faint(true).Foreground(p.WindowText),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(p.BrightText),
		Status:  lipgloss.NewStyle().Foreground(p.Link),
		Tab: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(p.ButtonText).
			Background(p.Button),
		ActiveTab: lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(p.HighlightedText).
			Background(p.Highlight),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Button).
			Padding(0, 1),
		Label: lipgloss.NewStyle().Foreground(p.GroupTitle),
		Value: lipgloss.NewStyle().Foreground(p.Text),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Highlight).
			Foreground(p.ToolTipText).
			Background(p.ToolTipBase).
			Padding(1, 3),
		Table: tableStyles,
	}
}
