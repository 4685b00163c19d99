package viewmodels

import (
	"slices"

	"github.com/charmbracelet/bubbles/textinput"

	"querydeck/internal/domain"
	"querydeck/internal/ui/input/types"
	"querydeck/internal/ui/screens"
	"querydeck/internal/ui/services/filter"
	"querydeck/internal/ui/state"
	"querydeck/internal/ui/views"
)

// maxChips is the number of facet chips reachable with the digit keys
const maxChips = 9

// ViewModel transforms a screen's coordinator output into view-ready data
type ViewModel[T any] struct {
	screen           screens.Screen[T]
	state            *state.ScreenState
	data             domain.ViewModel[T]
	chips            []string
	spinnerFrame     int
	inputTransformer *InputTransformer
}

// NewViewModel creates a new view model
func NewViewModel[T any](screen screens.Screen[T], screenState *state.ScreenState) *ViewModel[T] {
	return &ViewModel[T]{
		screen:           screen,
		state:            screenState,
		inputTransformer: NewInputTransformer(),
	}
}

// Update stores a fresh coordinator view model and mirrors it into the screen state
func (vm *ViewModel[T]) Update(data domain.ViewModel[T]) {
	vm.data = data
	state.Apply(vm.state, data)

	selected := filter.FacetValues(data.Query, vm.screen.FacetKey)
	vm.chips = nil
	if vm.screen.FacetKey != "" {
		vm.chips = vm.screen.Chips(data.FacetCounts, selected)
		if len(vm.chips) > maxChips {
			vm.chips = vm.chips[:maxChips]
		}
	}
	vm.state.ChipCount = len(vm.chips)
	vm.state.SortIndex = vm.screen.SortIndex(data.Query.SortBy)
}

// Data returns the last view model received
func (vm *ViewModel[T]) Data() domain.ViewModel[T] {
	return vm.data
}

// ChipValue returns the facet value behind chip i
func (vm *ViewModel[T]) ChipValue(i int) (string, bool) {
	if i < 0 || i >= len(vm.chips) {
		return "", false
	}
	return vm.chips[i], true
}

// ItemAt returns the item on row i of the shown page
func (vm *ViewModel[T]) ItemAt(i int) (T, bool) {
	var zero T
	if vm.data.ResultPage == nil || i < 0 || i >= len(vm.data.ResultPage.Items) {
		return zero, false
	}
	return vm.data.ResultPage.Items[i], true
}

// SetInputMode records the input handler's mode for rendering
func (vm *ViewModel[T]) SetInputMode(mode types.Mode, ti *textinput.Model, sortHighlight int) {
	vm.inputTransformer.SetMode(mode, ti, sortHighlight)
}

// AdvanceSpinner moves the loading animation one frame
func (vm *ViewModel[T]) AdvanceSpinner() {
	vm.spinnerFrame = (vm.spinnerFrame + 1) % len(views.SpinnerFrames)
}

// HelpInfo describes the screen for the help page
func (vm *ViewModel[T]) HelpInfo() views.HelpInfo {
	info := views.HelpInfo{Title: vm.screen.Title}
	for _, o := range vm.screen.SortOptions {
		info.SortOptions = append(info.SortOptions, o.Label)
	}
	info.FilterKeys = vm.filterKeys()
	for _, key := range vm.screen.FacetOrder {
		info.Facets = append(info.Facets, vm.screen.Label(key))
	}
	return info
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel[T]) BuildViewState() views.ViewState {
	s := vm.state
	query := vm.data.Query

	vs := views.ViewState{
		Width:            s.Width,
		Height:           s.Height,
		Title:            vm.screen.Title,
		InputMode:        vm.inputTransformer.GetInputModeString(),
		TextInput:        vm.inputTransformer.GetInputText(),
		SearchText:       query.FreeText,
		FilterExpression: filter.FormatExpression(query.Filters),
		FilterKeys:       vm.filterKeys(),
		ActiveFilters:    filter.ActiveFilterCount(query),
		SortIndex:        s.SortIndex,
		SortHighlight:    vm.inputTransformer.SortHighlight(),
		SortDescending:   query.SortDescending,
		Cursor:           s.Navigation.Cursor(),
		ViewportOffset:   s.Navigation.ViewportOffset(),
		ViewportHeight:   s.Navigation.ViewportHeight(),
		TotalCount:       s.TotalCount,
		Page:             query.Page,
		TotalPages:       s.TotalPages,
		PageTokens:       vm.data.PageTokens,
		Loading:          vm.data.Loading,
		SpinnerFrame:     vm.spinnerFrame,
		HasSearchedOnce:  vm.data.HasSearchedOnce,
		Error:            vm.data.Error,
		StatusMessage:    s.StatusMessage,
	}

	for _, o := range vm.screen.SortOptions {
		vs.SortOptions = append(vs.SortOptions, o.Label)
	}

	selected := filter.FacetValues(query, vm.screen.FacetKey)
	for i, key := range vm.chips {
		vs.Chips = append(vs.Chips, views.Chip{
			Key:      string(rune('1' + i)),
			Label:    vm.screen.Label(key),
			Count:    vm.data.FacetCounts[key],
			Color:    vm.screen.Color(key),
			Selected: slices.Contains(selected, key),
		})
	}

	for _, col := range vm.screen.Columns {
		vs.Columns = append(vs.Columns, views.Column{Title: col.Title, Width: col.Width})
	}
	if vm.data.ResultPage != nil {
		vs.Page = vm.data.ResultPage.Page
		for _, item := range vm.data.ResultPage.Items {
			row := make([]string, len(vm.screen.Columns))
			for i, col := range vm.screen.Columns {
				row[i] = col.Value(item)
			}
			vs.Rows = append(vs.Rows, row)
		}
	}
	return vs
}

func (vm *ViewModel[T]) filterKeys() []string {
	var keys []string
	if vm.screen.FacetKey != "" {
		keys = append(keys, vm.screen.FacetKey)
	}
	for _, k := range vm.screen.Filters {
		if k != vm.screen.FacetKey {
			keys = append(keys, k)
		}
	}
	return keys
}
