package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querydeck/internal/ui/input/types"
	"querydeck/internal/ui/state"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newContext() *ModelContext {
	s := state.NewScreenState(2)
	s.Query.FreeText = "old"
	s.Query.Filters = map[string]string{"status": "Active"}
	return &ModelContext{State: s}
}

func TestSearchModeTyping(t *testing.T) {
	h := New()
	ctx := newContext()

	h.HandleKey(runes("/"), ctx)
	require.Equal(t, types.ModeSearch, h.CurrentMode())
	require.NotNil(t, h.TextInput())
	assert.Equal(t, "old", h.TextInput().Value())

	actions, _ := h.HandleKey(runes("x"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "oldx", Mode: types.ModeSearch}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, []types.Action{
		types.SubmitTextAction{Text: "oldx", Mode: types.ModeSearch},
		types.ChangeModeAction{Mode: types.ModeNormal},
	}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestCursorMovesWithoutTextChange(t *testing.T) {
	h := New()
	ctx := newContext()
	h.HandleKey(runes("/"), ctx)

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyLeft}, ctx)
	assert.Empty(t, actions)
}

func TestFilterModeStartsFromActiveFilters(t *testing.T) {
	h := New()
	ctx := newContext()

	h.HandleKey(runes("f"), ctx)
	require.Equal(t, types.ModeFilter, h.CurrentMode())
	assert.Equal(t, "status:Active", h.TextInput().Value())

	actions, _ := h.HandleKey(runes(" "), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "status:Active ", Mode: types.ModeFilter}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, []types.Action{
		types.CancelTextAction{Mode: types.ModeFilter},
		types.ChangeModeAction{Mode: types.ModeNormal},
	}, actions)
}

func TestSortModeIndex(t *testing.T) {
	h := New()
	ctx := newContext()
	assert.Equal(t, -1, h.SortIndex())

	actions, _ := h.HandleKey(runes("s"), ctx)
	assert.Equal(t, []types.Action{
		types.UpdateSortIndexAction{Index: 0},
		types.ChangeModeAction{Mode: types.ModeSort},
	}, actions)
	assert.Equal(t, 0, h.SortIndex())

	h.HandleKey(runes("j"), ctx)
	assert.Equal(t, 1, h.SortIndex())

	h.Reset()
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Equal(t, -1, h.SortIndex())
}

func TestUnhandledKeyInNormalMode(t *testing.T) {
	actions, cmd := New().HandleKey(runes("z"), newContext())
	assert.Nil(t, actions)
	assert.Nil(t, cmd)
}
