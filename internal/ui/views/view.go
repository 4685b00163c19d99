package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"querydeck/internal/domain"
)

// SpinnerFrames animate the loading indicator
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Chip is one facet toggle with its per-page count
type Chip struct {
	Key      string // digit that toggles it
	Label    string
	Count    int
	Color    string
	Selected bool
}

// Column is a table column header
type Column struct {
	Title string
	Width int
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int
	Title  string

	// Input
	InputMode        string // "normal", "search", "filter" or "sort"
	TextInput        string // rendered text input while editing
	SearchText       string
	FilterExpression string
	FilterKeys       []string
	ActiveFilters    int

	// Sort
	SortOptions    []string
	SortIndex      int // active sort option, -1 when unknown
	SortHighlight  int // option under the cursor in sort mode
	SortDescending bool

	// Results
	Chips           []Chip
	Columns         []Column
	Rows            [][]string
	Cursor          int
	ViewportOffset  int
	ViewportHeight  int
	TotalCount      int
	Page            int
	TotalPages      int
	PageTokens      []domain.PageToken
	Loading         bool
	SpinnerFrame    int
	HasSearchedOnce bool
	Error           *domain.ErrorKind
	StatusMessage   string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n\n")
	content.WriteString(r.renderInputLine(state))
	content.WriteString("\n")

	if chips := r.renderChips(state.Chips); chips != "" {
		content.WriteString(chips)
		content.WriteString("\n")
	}
	if state.Error != nil {
		content.WriteString(r.styles.ErrorBanner.Render(errorText(*state.Error)))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	switch {
	case !state.HasSearchedOnce && state.Error == nil:
		content.WriteString(r.styles.Dim.Render("Loading..."))
	case len(state.Rows) == 0:
		content.WriteString(r.renderEmpty(state))
	default:
		content.WriteString(r.renderSummary(state))
		content.WriteString("\n")
		content.WriteString(r.renderTable(state))
		if bar := r.renderPagination(state); bar != "" {
			content.WriteString("\n\n")
			content.WriteString(bar)
		}
	}

	footer := r.renderFooter(state)

	// Push the footer to the bottom
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22
	}
	if padding := availableLines - currentLines - 1; padding > 0 {
		content.WriteString(strings.Repeat("\n", padding))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render(state.Title)

	var indicators []string
	if state.Loading {
		frame := SpinnerFrames[state.SpinnerFrame%len(SpinnerFrames)]
		indicators = append(indicators, r.styles.StatusLoading.Render(frame+" Loading"))
	}
	if state.ActiveFilters > 0 {
		indicators = append(indicators, r.styles.Filter.Render(fmt.Sprintf("[Filters: %d]", state.ActiveFilters)))
	}
	if len(indicators) == 0 {
		return logo
	}

	rightContent := strings.Join(indicators, "  ")
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	availableWidth := termWidth - 4 // main container padding
	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth > 0 {
		return logo + strings.Repeat(" ", paddingWidth) + rightContent
	}
	return logo + "  " + rightContent
}

func (r *Renderer) renderInputLine(state ViewState) string {
	switch state.InputMode {
	case "search":
		return r.styles.Prompt.Render("Search: ") + state.TextInput
	case "filter":
		line := r.styles.Prompt.Render("Filter: ") + state.TextInput
		if len(state.FilterKeys) > 0 {
			line += "\n" + r.styles.Dim.Render("keys: "+strings.Join(state.FilterKeys, ", ")+" • Enter to apply • Esc to cancel")
		}
		return line
	case "sort":
		return r.renderSortOptions(state)
	}

	parts := []string{}
	if state.SearchText != "" {
		parts = append(parts, "Search: "+r.styles.Highlight.Render(state.SearchText))
	} else {
		parts = append(parts, r.styles.Dim.Render("Press / to search"))
	}
	if state.FilterExpression != "" {
		parts = append(parts, r.styles.Filter.Render(state.FilterExpression))
	}
	return strings.Join(parts, "   ")
}

// renderSortOptions renders the sort mode selection interface
func (r *Renderer) renderSortOptions(state ViewState) string {
	options := make([]string, len(state.SortOptions))
	for i, label := range state.SortOptions {
		if i == state.SortHighlight {
			label = r.styles.PageCurrent.Render(" " + label + arrow(state.SortDescending) + " ")
		}
		options[i] = label
	}
	sortLine := "Sort by: " + strings.Join(options, "  ")
	helpLine := r.styles.Dim.Render("↑/↓ or j/k to change • o to reverse • Enter to accept • Esc to cancel")
	return sortLine + "\n" + helpLine
}

func (r *Renderer) renderChips(chips []Chip) string {
	if len(chips) == 0 {
		return ""
	}
	rendered := make([]string, len(chips))
	for i, chip := range chips {
		text := fmt.Sprintf("%s %s (%d)", chip.Key, chip.Label, chip.Count)
		rendered[i] = r.styles.ChipStyle(chip.Color, chip.Selected).Render(text)
	}
	return strings.Join(rendered, " ")
}

func (r *Renderer) renderSummary(state ViewState) string {
	parts := []string{r.styles.StatusSuccess.Render(resultCount(state.TotalCount) + " found")}
	if state.SortIndex >= 0 && state.SortIndex < len(state.SortOptions) {
		parts = append(parts, "sorted by "+state.SortOptions[state.SortIndex]+arrow(state.SortDescending))
	}
	if state.TotalPages > 1 {
		parts = append(parts, fmt.Sprintf("page %d of %d", state.Page, state.TotalPages))
	}
	return strings.Join(parts, r.styles.Dim.Render(" · "))
}

func (r *Renderer) renderEmpty(state ViewState) string {
	if state.Error != nil {
		return r.styles.Dim.Render("Press r to retry")
	}
	msg := "No results found"
	if state.SearchText != "" || state.ActiveFilters > 0 {
		msg += ". Press c to clear search and filters."
	}
	return r.styles.Dim.Render(msg)
}

func (r *Renderer) renderFooter(state ViewState) string {
	help := r.styles.Help.Render("Press ? for help")
	if state.StatusMessage == "" {
		return help
	}
	return r.styles.Status.Render(state.StatusMessage) + r.styles.Dim.Render(" • ") + help
}

func resultCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}

func arrow(descending bool) string {
	if descending {
		return " ↓"
	}
	return " ↑"
}

func errorText(kind domain.ErrorKind) string {
	switch kind.Category {
	case domain.NetworkError:
		return "Could not reach the server: " + kind.Message
	case domain.ValidationError:
		return kind.Message
	default:
		if kind.StatusCode != 0 {
			return fmt.Sprintf("Server error %d: %s", kind.StatusCode, kind.Message)
		}
		return "Server error: " + kind.Message
	}
}
