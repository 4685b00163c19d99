package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"querydeck/internal/ui/input/types"
	"querydeck/internal/ui/services/pagination"
)

const doubleKeyTimeout = 500 * time.Millisecond

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
	now         func() time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{now: time.Now}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	key := msg.String()
	if key != "g" {
		m.lastKeyWasG = false
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyCtrlR:
		return []types.Action{types.RefreshAction{}}, true

	case tea.KeyUp:
		return navigate("up"), true

	case tea.KeyDown:
		return navigate("down"), true

	case tea.KeyPgUp:
		return navigate("pageup"), true

	case tea.KeyPgDown:
		return navigate("pagedown"), true

	case tea.KeyHome:
		return navigate("home"), true

	case tea.KeyEnd:
		return navigate("end"), true

	case tea.KeyLeft:
		return m.previousPage(ctx), true

	case tea.KeyRight:
		return m.nextPage(ctx), true

	case tea.KeyEnter:
		if ctx.TotalItems() > 0 {
			return []types.Action{types.OpenDetailAction{Index: ctx.CurrentIndex()}}, true
		}
		return nil, true
	}

	switch key {
	case "j":
		return navigate("down"), true

	case "k":
		return navigate("up"), true

	case "h", "p":
		return m.previousPage(ctx), true

	case "l", "n":
		return m.nextPage(ctx), true

	case "<":
		if ctx.CurrentPage() != 1 {
			return []types.Action{types.PageAction{Page: 1}}, true
		}
		return nil, true

	case ">":
		last := pagination.Clamp(ctx.TotalPages(), ctx.TotalPages())
		if ctx.CurrentPage() != last {
			return []types.Action{types.PageAction{Page: last}}, true
		}
		return nil, true

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchText()}}, true

	case "f", "F":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter, Data: ctx.FilterExpression()}}, true

	case "s":
		if ctx.SortOptionCount() > 0 {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeSort}}, true
		}
		return nil, true

	case "o":
		if ctx.SortOptionCount() > 0 {
			return []types.Action{types.ReverseSortAction{}}, true
		}
		return nil, true

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		index := int(key[0] - '1')
		if index < ctx.ChipCount() {
			return []types.Action{types.ToggleFacetAction{Index: index}}, true
		}
		return nil, true

	case "c":
		return []types.Action{types.ClearAllAction{}}, true

	case "r":
		return []types.Action{types.RefreshAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		now := m.now()
		if m.lastKeyWasG && now.Sub(m.lastGTime) < doubleKeyTimeout {
			// gg
			m.lastKeyWasG = false
			return navigate("home"), true
		}
		m.lastKeyWasG = true
		m.lastGTime = now
		return nil, true

	case "G":
		return navigate("end"), true
	}

	return nil, false
}

func (m *NormalMode) previousPage(ctx types.Context) []types.Action {
	if !pagination.HasPrev(ctx.CurrentPage()) {
		return nil
	}
	return []types.Action{types.PageAction{Page: ctx.CurrentPage() - 1}}
}

func (m *NormalMode) nextPage(ctx types.Context) []types.Action {
	if !pagination.HasNext(ctx.CurrentPage(), ctx.TotalPages()) {
		return nil
	}
	return []types.Action{types.PageAction{Page: ctx.CurrentPage() + 1}}
}

func navigate(direction string) []types.Action {
	return []types.Action{types.NavigateAction{Direction: direction}}
}
