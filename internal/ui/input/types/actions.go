package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// PageAction requests a result page from the backend
type PageAction struct {
	Page int
}

func (a PageAction) Type() string { return "page" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // Prefilled text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
	Mode Mode
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Query actions
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

// ToggleFacetAction flips the facet chip at Index
type ToggleFacetAction struct {
	Index int
}

func (a ToggleFacetAction) Type() string { return "toggle_facet" }

type ClearAllAction struct{}

func (a ClearAllAction) Type() string { return "clear_all" }

// Sort actions
type SortByAction struct {
	Index int
}

func (a SortByAction) Type() string { return "sort_by" }

type ReverseSortAction struct{}

func (a ReverseSortAction) Type() string { return "reverse_sort" }

type UpdateSortIndexAction struct {
	Index int
}

func (a UpdateSortIndexAction) Type() string { return "update_sort_index" }

// View actions
type OpenDetailAction struct {
	Index int
}

func (a OpenDetailAction) Type() string { return "open_detail" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
