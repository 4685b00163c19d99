package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"querydeck/internal/ui/input/modes"
	"querydeck/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
}

func New() *Handler {
	ti := textinput.New()
	ti.CharLimit = 200

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeSearch] = modes.NewSearchMode(h.textInput)
	h.modes[types.ModeFilter] = modes.NewFilterMode(h.textInput)
	h.modes[types.ModeSort] = modes.NewSortSelectMode()

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if !consumed && !isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action
	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}

		if current := h.modes[h.currentMode]; current != nil {
			allActions = append(allActions, current.Exit(ctx)...)
		}
		oldMode := h.currentMode
		h.currentMode = changeMode.Mode
		if next := h.modes[h.currentMode]; next != nil {
			allActions = append(allActions, next.Enter(ctx)...)
		}

		if isTextMode(h.currentMode) {
			h.textInput.SetValue(changeMode.Data)
			h.textInput.CursorEnd()
			h.textInput.Focus()
			cmd = textinput.Blink
		} else if isTextMode(oldMode) {
			h.textInput.Blur()
		}
		allActions = append(allActions, changeMode)
	}

	// Keys the text mode did not claim go to the text input
	if isTextMode(h.currentMode) && !consumed {
		before := h.textInput.Value()
		*h.textInput, cmd = h.textInput.Update(msg)
		if after := h.textInput.Value(); after != before {
			allActions = append(allActions, types.UpdateTextAction{Text: after, Mode: h.currentMode})
		}
	}

	return allActions, cmd
}

// CurrentMode returns the active input mode
func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// TextInput returns the shared text input while a text mode is active
func (h *Handler) TextInput() *textinput.Model {
	if h == nil || !isTextMode(h.currentMode) {
		return nil
	}
	return h.textInput
}

// SortIndex returns the option highlighted in sort mode, or -1 outside it
func (h *Handler) SortIndex() int {
	if h == nil || h.currentMode != types.ModeSort {
		return -1
	}
	if m, ok := h.modes[types.ModeSort].(*modes.SortSelectMode); ok {
		return m.GetCurrentIndex()
	}
	return -1
}

func (h *Handler) RegisterMode(mode types.Mode, handler types.ModeHandler) {
	h.modes[mode] = handler
}

// Update handles non-keyboard messages for text input, such as cursor blink
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

func isTextMode(mode types.Mode) bool {
	switch mode {
	case types.ModeSearch, types.ModeFilter:
		return true
	default:
		return false
	}
}
