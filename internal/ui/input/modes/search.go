package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"querydeck/internal/ui/input/types"
)

// SearchMode edits the free-text query. Every keystroke is sent as a text
// change; enter sends the pending text without waiting for the debounce.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "type to search", ti),
	}
}
