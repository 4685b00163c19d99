package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"querydeck/internal/domain"
)

func baseState() ViewState {
	return ViewState{
		Width:           100,
		Height:          30,
		Title:           "Projects",
		InputMode:       "normal",
		SortOptions:     []string{"Name", "Status", "Updated"},
		SortIndex:       2,
		SortDescending:  true,
		Columns:         []Column{{Title: "Name", Width: 20}, {Title: "Status", Width: 10}},
		Rows:            [][]string{{"Sales Dashboard", "Active"}, {"Churn", "Draft"}},
		ViewportHeight:  10,
		TotalCount:      42,
		Page:            2,
		TotalPages:      3,
		PageTokens:      []domain.PageToken{domain.PageNumber(1), domain.PageNumber(2), domain.PageNumber(3)},
		HasSearchedOnce: true,
	}
}

func TestRenderResults(t *testing.T) {
	out := NewRenderer().Render(baseState())

	assert.Contains(t, out, "Projects")
	assert.Contains(t, out, "42 results found")
	assert.Contains(t, out, "sorted by Updated ↓")
	assert.Contains(t, out, "page 2 of 3")
	assert.Contains(t, out, "Sales Dashboard")
	assert.Contains(t, out, "▸ Sales Dashboard")
	assert.Contains(t, out, "[2]")
	assert.Contains(t, out, "‹ prev")
	assert.Contains(t, out, "Press / to search")
	assert.Contains(t, out, "Press ? for help")
}

func TestRenderBeforeFirstResult(t *testing.T) {
	s := baseState()
	s.HasSearchedOnce = false
	s.Rows = nil
	s.Loading = true

	out := NewRenderer().Render(s)
	assert.Contains(t, out, "Loading...")
	assert.Contains(t, out, SpinnerFrames[0]+" Loading")
	assert.NotContains(t, out, "results found")
}

func TestRenderEmptyWithFilters(t *testing.T) {
	s := baseState()
	s.Rows = nil
	s.TotalCount = 0
	s.SearchText = "zzz"
	s.ActiveFilters = 1
	s.FilterExpression = "status:Archived"

	out := NewRenderer().Render(s)
	assert.Contains(t, out, "No results found. Press c to clear")
	assert.Contains(t, out, "[Filters: 1]")
	assert.Contains(t, out, "Search: zzz")
	assert.Contains(t, out, "status:Archived")
}

func TestRenderErrorKeepsRows(t *testing.T) {
	s := baseState()
	s.Error = &domain.ErrorKind{Category: domain.ServerError, StatusCode: 500, Message: "boom"}

	out := NewRenderer().Render(s)
	assert.Contains(t, out, "Server error 500: boom")
	assert.Contains(t, out, "Sales Dashboard")
}

func TestRenderNetworkErrorBeforeFirstResult(t *testing.T) {
	s := baseState()
	s.HasSearchedOnce = false
	s.Rows = nil
	s.Error = &domain.ErrorKind{Category: domain.NetworkError, Message: "connection refused"}

	out := NewRenderer().Render(s)
	assert.Contains(t, out, "Could not reach the server: connection refused")
	assert.Contains(t, out, "Press r to retry")
	assert.NotContains(t, out, "No results found")
}

func TestRenderChips(t *testing.T) {
	s := baseState()
	s.Chips = []Chip{
		{Key: "1", Label: "Projects", Count: 3, Selected: true, Color: "#3b82f6"},
		{Key: "2", Label: "Forms", Count: 1},
	}
	out := NewRenderer().Render(s)
	assert.Contains(t, out, "1 Projects (3)")
	assert.Contains(t, out, "2 Forms (1)")
}

func TestRenderInputModes(t *testing.T) {
	r := NewRenderer()

	s := baseState()
	s.InputMode = "search"
	s.TextInput = "sal"
	assert.Contains(t, r.Render(s), "Search: sal")

	s.InputMode = "filter"
	s.TextInput = "status:"
	s.FilterKeys = []string{"status", "tag"}
	out := r.Render(s)
	assert.Contains(t, out, "Filter: status:")
	assert.Contains(t, out, "keys: status, tag")

	s.InputMode = "sort"
	s.SortHighlight = 1
	out = r.Render(s)
	assert.Contains(t, out, "Sort by:")
	assert.Contains(t, out, "Status ↓")
}

func TestRenderStatusMessage(t *testing.T) {
	s := baseState()
	s.StatusMessage = "Loaded 42 results in 12ms"
	assert.Contains(t, NewRenderer().Render(s), "Loaded 42 results in 12ms")
}

func TestTableScrollIndicators(t *testing.T) {
	s := baseState()
	s.Rows = nil
	for i := 0; i < 20; i++ {
		s.Rows = append(s.Rows, []string{"row", "x"})
	}
	s.ViewportHeight = 5
	s.ViewportOffset = 5
	s.Cursor = 6

	out := NewRenderer().renderTable(s)
	assert.Contains(t, out, "↑ 5 more above ↑")
	assert.Contains(t, out, "↓ 10 more below ↓")
	assert.Equal(t, 1, strings.Count(out, "▸"))
}

func TestPaginationGaps(t *testing.T) {
	s := baseState()
	s.Page = 1
	s.TotalPages = 20
	s.PageTokens = []domain.PageToken{domain.PageNumber(1), domain.PageNumber(2), domain.Gap, domain.PageNumber(20)}

	out := NewRenderer().renderPagination(s)
	assert.Contains(t, out, "[1] 2 … 20")
	assert.Contains(t, out, "next ›")
}

func TestColumnWidthsShrinkToFit(t *testing.T) {
	cols := []Column{{Title: "Name", Width: 40}, {Title: "Email", Width: 40}, {Title: "Active", Width: 6}}
	widths := columnWidths(cols, 60)
	total := 0
	for _, w := range widths {
		total += w
	}
	assert.LessOrEqual(t, total, 60-4-2-4)
	assert.Equal(t, 6, widths[2])

	assert.Equal(t, []int{40, 40, 6}, columnWidths(cols, 0))
}

func TestCell(t *testing.T) {
	assert.Equal(t, "abc  ", cell("abc", 5))
	assert.Equal(t, "abcd…", cell("abcdefgh", 5))
	assert.Equal(t, "a b  ", cell("a\nb", 5))
}

func TestRenderHelp(t *testing.T) {
	out := NewRenderer().RenderHelp(HelpInfo{
		Title:       "Reports",
		SortOptions: []string{"Name", "Status"},
		FilterKeys:  []string{"status", "type"},
		Facets:      []string{"Table", "Chart"},
	})
	assert.Contains(t, out, "Reports Help")
	assert.Contains(t, out, "Filter keys: status, type (e.g. status:value)")
	assert.Contains(t, out, "Sort fields: Name, Status")
	assert.Contains(t, out, "Facets: Table, Chart")
	assert.Contains(t, out, "Toggle facet chip")
}
