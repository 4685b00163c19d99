package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"querydeck/internal/ui/input/types"
)

// FilterMode edits structured filters as "key:value" pairs, e.g.
// "status:Active tag:finance". Nothing is sent until enter.
type FilterMode struct {
	TextInputMode
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	return &FilterMode{
		TextInputMode: NewTextInputMode(types.ModeFilter, "filter", "key:value ...", ti),
	}
}
