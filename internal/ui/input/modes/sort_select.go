package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"querydeck/internal/ui/input/types"
)

// SortSelectMode cycles through the screen's sort fields, applying each one
// as it is highlighted. Esc restores the sort that was active on entry.
type SortSelectMode struct {
	sortIndex     int
	originalIndex int
	count         int
}

func NewSortSelectMode() *SortSelectMode {
	return &SortSelectMode{}
}

func (m *SortSelectMode) Name() string {
	return "sort"
}

func (m *SortSelectMode) Enter(ctx types.Context) []types.Action {
	m.count = ctx.SortOptionCount()
	m.sortIndex = max(ctx.SortIndex(), 0)
	m.originalIndex = m.sortIndex
	return []types.Action{types.UpdateSortIndexAction{Index: m.sortIndex}}
}

func (m *SortSelectMode) Exit(ctx types.Context) []types.Action {
	return nil
}

// HandleKey processes key messages for sort selection
func (m *SortSelectMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "esc", "q":
		actions := []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}
		if m.sortIndex != m.originalIndex {
			actions = append([]types.Action{types.SortByAction{Index: m.originalIndex}}, actions...)
		}
		return actions, true

	case "enter":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true

	case "up", "k":
		return m.move(-1), true

	case "down", "j":
		return m.move(1), true

	case "o":
		return []types.Action{types.ReverseSortAction{}}, true
	}

	return nil, false
}

// GetCurrentIndex returns the highlighted sort option
func (m *SortSelectMode) GetCurrentIndex() int {
	return m.sortIndex
}

func (m *SortSelectMode) move(delta int) []types.Action {
	if m.count == 0 {
		return nil
	}
	m.sortIndex = (m.sortIndex + delta + m.count) % m.count
	return []types.Action{
		types.UpdateSortIndexAction{Index: m.sortIndex},
		types.SortByAction{Index: m.sortIndex},
	}
}
