package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpInfo is the screen-specific part of the help page
type HelpInfo struct {
	Title       string
	SortOptions []string
	FilterKeys  []string
	Facets      []string
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Navigation", []helpEntry{
		{"↑/↓, j/k", "Move up/down"},
		{"PgUp/PgDn", "Scroll a screen"},
		{"gg/G", "Go to top/bottom"},
		{"←/→, h/l", "Previous/next result page"},
		{"<, >", "First/last result page"},
		{"Enter", "Show details"},
	}},
	{"Search & Filter", []helpEntry{
		{"/", "Search (results update as you type)"},
		{"f", "Edit filters as key:value pairs"},
		{"1-9", "Toggle facet chip"},
		{"c", "Clear search, filters and sort"},
	}},
	{"Sort", []helpEntry{
		{"s", "Choose sort field"},
		{"o", "Reverse sort direction"},
	}},
	{"Other", []helpEntry{
		{"r, Ctrl+R", "Reload current page"},
		{"?", "Show this help"},
		{"q", "Quit"},
	}},
}

// RenderHelp renders the help page shown in the pager
func (r *Renderer) RenderHelp(info HelpInfo) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	noteStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))

	var help strings.Builder
	help.WriteString(titleStyle.Render(info.Title + " Help"))
	help.WriteString("\n")

	for _, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.entries {
			fmt.Fprintf(&help, "  %s %s\n", keyStyle.Render(e.keys), descStyle.Render(e.desc))
		}
	}

	help.WriteString("\n")
	if len(info.Facets) > 0 {
		help.WriteString(noteStyle.Render("  Facets: " + strings.Join(info.Facets, ", ")))
		help.WriteString("\n")
	}
	if len(info.FilterKeys) > 0 {
		help.WriteString(noteStyle.Render(fmt.Sprintf("  Filter keys: %s (e.g. %s:value)", strings.Join(info.FilterKeys, ", "), info.FilterKeys[0])))
		help.WriteString("\n")
	}
	if len(info.SortOptions) > 0 {
		help.WriteString(noteStyle.Render("  Sort fields: " + strings.Join(info.SortOptions, ", ")))
		help.WriteString("\n")
	}
	help.WriteString(noteStyle.Render("  Press q to close this page"))
	return help.String()
}
