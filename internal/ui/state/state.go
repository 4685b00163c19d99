package state

import (
	"maps"

	"querydeck/internal/domain"
	"querydeck/internal/ui/services/navigation"
)

// ScreenState is the UI-side state of one list screen: what the input
// handler needs to decide on actions, mirrored from the latest view model.
type ScreenState struct {
	// Mirrored from the coordinator
	Query           domain.QueryState
	ItemCount       int // items on the shown page
	TotalCount      int
	TotalPages      int
	Loading         bool
	HasSearchedOnce bool
	Error           *domain.ErrorKind

	// Screen shape
	SortIndex       int // index into the screen's sort options, -1 when unknown
	SortOptionCount int
	ChipCount       int

	// UI state
	Navigation    *navigation.Service
	StatusMessage string // status bar message
	Width         int
	Height        int
	Paused        bool // rendering paused while the pager owns the terminal
}

// NewScreenState creates the state for a screen with the given number of sort options
func NewScreenState(sortOptions int) *ScreenState {
	return &ScreenState{
		SortIndex:       -1,
		SortOptionCount: sortOptions,
		Navigation:      navigation.NewService(),
	}
}

// Apply mirrors a view model. The cursor returns to the top whenever the
// query changed, and is clamped otherwise.
func Apply[T any](s *ScreenState, vm domain.ViewModel[T]) {
	queryChanged := !SameQuery(s.Query, vm.Query)
	s.Query = vm.Query
	s.Loading = vm.Loading
	s.HasSearchedOnce = vm.HasSearchedOnce
	s.Error = vm.Error

	s.ItemCount, s.TotalCount, s.TotalPages = 0, 0, 0
	if vm.ResultPage != nil {
		s.ItemCount = len(vm.ResultPage.Items)
		s.TotalCount = vm.ResultPage.TotalCount
		s.TotalPages = vm.ResultPage.TotalPages
	}

	if queryChanged {
		s.Navigation.Reset()
	}
	s.Navigation.SetCount(s.ItemCount)
}

// SetStatus replaces the status bar message
func (s *ScreenState) SetStatus(msg string) {
	s.StatusMessage = msg
}

// Resize records the terminal size and resizes the list viewport
func (s *ScreenState) Resize(width, height int) {
	s.Width = width
	s.Height = height
	s.Navigation.SetWindowHeight(height)
}

// SameQuery reports whether two query states ask the server for the same thing
func SameQuery(a, b domain.QueryState) bool {
	return a.FreeText == b.FreeText &&
		a.SortBy == b.SortBy &&
		a.SortDescending == b.SortDescending &&
		a.Page == b.Page &&
		a.PageSize == b.PageSize &&
		maps.Equal(nonEmpty(a.Filters), nonEmpty(b.Filters))
}

func nonEmpty(filters map[string]string) map[string]string {
	out := make(map[string]string, len(filters))
	for k, v := range filters {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
