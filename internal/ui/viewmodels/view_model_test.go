package viewmodels

import (
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/stretchr/testify/assert"

	"querydeck/internal/domain"
	"querydeck/internal/ui/input/types"
	"querydeck/internal/ui/screens"
	"querydeck/internal/ui/state"
)

type report struct {
	Name string
	Kind string
}

func reportScreen() screens.Screen[report] {
	return screens.Screen[report]{
		Name:       "reports",
		Title:      "Reports",
		FacetKey:   "type",
		Category:   func(r report) string { return r.Kind },
		FacetOrder: []string{"Table", "Chart"},
		FacetColor: func(key string) string {
			if key == "Chart" {
				return "#10b981"
			}
			return ""
		},
		SortOptions: []screens.SortOption{{Field: "name", Label: "Name"}, {Field: "updatedat", Label: "Updated"}},
		Filters:     []string{"status", "tag"},
		Columns: []screens.Column[report]{
			{Title: "Name", Width: 20, Value: func(r report) string { return r.Name }},
			{Title: "Type", Width: 8, Value: func(r report) string { return r.Kind }},
		},
	}
}

func data(query domain.QueryState, items ...report) domain.ViewModel[report] {
	page := domain.NewResultPage(items, 45, query.Page, query.PageSize)
	return domain.ViewModel[report]{
		ResultPage:      &page,
		FacetCounts:     map[string]int{"Chart": 1, "Table": 2},
		PageTokens:      []domain.PageToken{domain.PageNumber(1), domain.PageNumber(2), domain.PageNumber(3)},
		HasSearchedOnce: true,
		Query:           query,
	}
}

func TestBuildViewState(t *testing.T) {
	s := state.NewScreenState(2)
	s.Resize(100, 30)
	vm := NewViewModel(reportScreen(), s)

	q := domain.QueryState{
		FreeText: "sales", SortBy: "updatedat", SortDescending: true, Page: 2, PageSize: 20,
		Filters: map[string]string{"type": "Chart", "status": "Active"},
	}
	vm.Update(data(q, report{"A", "Table"}, report{"B", "Chart"}, report{"C", "Table"}))

	vs := vm.BuildViewState()
	assert.Equal(t, "Reports", vs.Title)
	assert.Equal(t, "normal", vs.InputMode)
	assert.Equal(t, "sales", vs.SearchText)
	assert.Equal(t, "status:Active type:Chart", vs.FilterExpression)
	assert.Equal(t, 2, vs.ActiveFilters)
	assert.Equal(t, []string{"type", "status", "tag"}, vs.FilterKeys)
	assert.Equal(t, []string{"Name", "Updated"}, vs.SortOptions)
	assert.Equal(t, 1, vs.SortIndex)
	assert.True(t, vs.SortDescending)
	assert.Equal(t, 2, vs.Page)
	assert.Equal(t, 3, vs.TotalPages)
	assert.Equal(t, 45, vs.TotalCount)
	assert.Equal(t, [][]string{{"A", "Table"}, {"B", "Chart"}, {"C", "Table"}}, vs.Rows)
	assert.Len(t, vs.Columns, 2)

	if assert.Len(t, vs.Chips, 2) {
		assert.Equal(t, "1", vs.Chips[0].Key)
		assert.Equal(t, "Table", vs.Chips[0].Label)
		assert.Equal(t, 2, vs.Chips[0].Count)
		assert.False(t, vs.Chips[0].Selected)
		assert.Equal(t, "Chart", vs.Chips[1].Label)
		assert.True(t, vs.Chips[1].Selected)
		assert.Equal(t, "#10b981", vs.Chips[1].Color)
	}
	assert.Equal(t, 2, s.ChipCount)
	assert.Equal(t, 1, s.SortIndex)
}

func TestChipValueAndItemAt(t *testing.T) {
	vm := NewViewModel(reportScreen(), state.NewScreenState(2))
	vm.Update(data(domain.QueryState{Page: 1, PageSize: 20}, report{"A", "Table"}))

	v, ok := vm.ChipValue(1)
	assert.True(t, ok)
	assert.Equal(t, "Chart", v)
	_, ok = vm.ChipValue(5)
	assert.False(t, ok)

	item, ok := vm.ItemAt(0)
	assert.True(t, ok)
	assert.Equal(t, "A", item.Name)
	_, ok = vm.ItemAt(1)
	assert.False(t, ok)
}

func TestChipsAreCappedAtNine(t *testing.T) {
	screen := reportScreen()
	screen.FacetOrder = nil
	vm := NewViewModel(screen, state.NewScreenState(2))

	d := data(domain.QueryState{Page: 1, PageSize: 20})
	d.FacetCounts = map[string]int{}
	for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"} {
		d.FacetCounts[k] = 1
	}
	vm.Update(d)
	assert.Len(t, vm.BuildViewState().Chips, 9)
}

func TestInputModes(t *testing.T) {
	vm := NewViewModel(reportScreen(), state.NewScreenState(2))
	vm.Update(data(domain.QueryState{Page: 1, PageSize: 20}))

	ti := textinput.New()
	ti.Prompt = ""
	ti.SetValue("status:Dr")
	vm.SetInputMode(types.ModeFilter, &ti, -1)
	vs := vm.BuildViewState()
	assert.Equal(t, "filter", vs.InputMode)
	assert.Contains(t, vs.TextInput, "status:Dr")

	vm.SetInputMode(types.ModeSort, nil, 1)
	vs = vm.BuildViewState()
	assert.Equal(t, "sort", vs.InputMode)
	assert.Empty(t, vs.TextInput)
	assert.Equal(t, 1, vs.SortHighlight)
}

func TestSpinnerWraps(t *testing.T) {
	vm := NewViewModel(reportScreen(), state.NewScreenState(2))
	for i := 0; i < 10; i++ {
		vm.AdvanceSpinner()
	}
	assert.Equal(t, 0, vm.BuildViewState().SpinnerFrame)
}

func TestHelpInfo(t *testing.T) {
	vm := NewViewModel(reportScreen(), state.NewScreenState(2))
	info := vm.HelpInfo()
	assert.Equal(t, "Reports", info.Title)
	assert.Equal(t, []string{"Name", "Updated"}, info.SortOptions)
	assert.Equal(t, []string{"type", "status", "tag"}, info.FilterKeys)
	assert.Equal(t, []string{"Table", "Chart"}, info.Facets)
}
