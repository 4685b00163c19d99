package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Filter        lipgloss.Style
	Prompt        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Header        lipgloss.Style
	Highlight     lipgloss.Style
	SelectionBg   lipgloss.Style
	ErrorBanner   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	Chip          lipgloss.Style
	ChipSelected  lipgloss.Style
	Page          lipgloss.Style
	PageCurrent   lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Help:   lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Underline(true),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg: lipgloss.NewStyle().
			Background(lipgloss.Color("238")),
		ErrorBanner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")).
			Padding(0, 1),
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Chip: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Padding(0, 1),
		ChipSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true).
			Padding(0, 1),
		Page:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		PageCurrent: lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("62")).Bold(true),
	}
}

// ChipStyle returns the style of a facet chip. Selected chips are filled
// with the facet color, unselected ones use it for the text only.
func (s *Styles) ChipStyle(color string, selected bool) lipgloss.Style {
	if selected {
		style := s.ChipSelected
		if color != "" {
			style = style.Background(lipgloss.Color(color))
		} else {
			style = style.Background(lipgloss.Color("62"))
		}
		return style
	}
	if color != "" {
		return s.Chip.Foreground(lipgloss.Color(color))
	}
	return s.Chip
}
