package viewmodels

import (
	"github.com/charmbracelet/bubbles/textinput"

	"querydeck/internal/ui/input/types"
)

// InputTransformer turns the input handler's mode into view data
type InputTransformer struct {
	mode          types.Mode
	textInput     *textinput.Model
	sortHighlight int
}

// NewInputTransformer creates a new input transformer
func NewInputTransformer() *InputTransformer {
	return &InputTransformer{mode: types.ModeNormal, sortHighlight: -1}
}

// SetMode sets the current input mode, the shared text input (nil outside
// text modes) and the highlighted sort option (-1 outside sort mode)
func (it *InputTransformer) SetMode(mode types.Mode, ti *textinput.Model, sortHighlight int) {
	it.mode = mode
	it.textInput = ti
	it.sortHighlight = sortHighlight
}

// GetInputText returns the rendered text input, empty outside text modes
func (it *InputTransformer) GetInputText() string {
	if it.textInput == nil {
		return ""
	}
	switch it.mode {
	case types.ModeSearch, types.ModeFilter:
		return it.textInput.View()
	default:
		return ""
	}
}

// GetInputModeString returns the string representation of the input mode
func (it *InputTransformer) GetInputModeString() string {
	return it.mode.String()
}

// SortHighlight returns the option under the cursor in sort mode
func (it *InputTransformer) SortHighlight() int {
	return it.sortHighlight
}
