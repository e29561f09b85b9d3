package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name          string
	Base          lipgloss.Style
	Border        lipgloss.Color
	Header        lipgloss.Style
	Day           lipgloss.Style
	Task          lipgloss.Style
	CompletedTask lipgloss.Style
	Special       lipgloss.Style
	Journal       lipgloss.Style
	Input         lipgloss.Style
	Error         lipgloss.Style
	Focused       lipgloss.Style
	Dim           lipgloss.Style
	Highlight     lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:          "Default",
		Base:          lipgloss.NewStyle().Margin(1, 2),
		Border:        lipgloss.Color("63"),
		Header:        lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Day:           lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		Task:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		CompletedTask: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		Special:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Journal:       lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Italic(true),
		Input:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1).Width(50),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Focused:       lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:           lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	},
	"dracula": {
		Name:          "Dracula",
		Base:          lipgloss.NewStyle().Margin(1, 2),
		Border:        lipgloss.Color("62"),
		Header:        lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true),
		Day:           lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true),
		Task:          lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		CompletedTask: lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Strikethrough(true),
		Special:       lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
		Journal:       lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Italic(true),
		Input:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1).Width(50),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Focused:       lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Dim:           lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	},
}

// CurrentTheme holds the active theme.
var CurrentTheme = Themes["default"]

func SetTheme(name string) {
	if t, ok := Themes[name]; ok {
		CurrentTheme = t
	}
}
