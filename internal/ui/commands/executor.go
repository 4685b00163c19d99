package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"querydeck/internal/eventbus"
	"querydeck/internal/ui/services/filter"
	"querydeck/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(state *state.ScreenState, query Query, bus eventbus.EventBus) *Executor {
	return &Executor{
		ctx: &CommandContext{
			State: state,
			Query: query,
			Bus:   bus,
		},
	}
}

// ExecuteSearchText sends a free-text change, subject to the debounce
func (e *Executor) ExecuteSearchText(text string) tea.Cmd {
	return NewEditCommand(e.ctx, "search", filter.TextChanged{Text: text}).Execute()
}

// ExecuteSubmitSearch sends the final text immediately
func (e *Executor) ExecuteSubmitSearch(text string) tea.Cmd {
	return tea.Batch(
		NewEditCommand(e.ctx, "search", filter.TextChanged{Text: text}).Execute(),
		NewFlushCommand(e.ctx).Execute(),
	)
}

// ExecuteFilterExpression parses "key:value" pairs and applies them as filter
// edits. Keys not named in the expression are cleared.
func (e *Executor) ExecuteFilterExpression(expr string, accept func(key string) bool) tea.Cmd {
	sets, err := filter.ParseExpression(expr, e.ctx.State.Query.Filters, accept)
	if err != nil {
		e.ctx.reportError("filter", err)
		return nil
	}
	edits := make([]filter.Edit, 0, len(sets))
	for _, set := range sets {
		edits = append(edits, set)
	}
	return NewEditCommand(e.ctx, "filter", edits...).Execute()
}

// ExecuteFilter sets or clears a single filter
func (e *Executor) ExecuteFilter(edit filter.FilterSet) tea.Cmd {
	return NewEditCommand(e.ctx, "filter", edit).Execute()
}

// ExecuteSort changes the sort field and direction
func (e *Executor) ExecuteSort(field string, descending bool) tea.Cmd {
	return NewEditCommand(e.ctx, "sort", filter.SortChanged{Field: field, Descending: descending}).Execute()
}

// ExecutePage navigates to page n
func (e *Executor) ExecutePage(n int) tea.Cmd {
	return NewEditCommand(e.ctx, "page", filter.PageRequested{Page: n}).Execute()
}

// ExecuteClearAll resets text, filters and sort
func (e *Executor) ExecuteClearAll() tea.Cmd {
	e.ctx.State.SetStatus("")
	return NewEditCommand(e.ctx, "clear", filter.ClearAll{}).Execute()
}

// ExecuteRefresh re-sends the current query
func (e *Executor) ExecuteRefresh() tea.Cmd {
	return NewRefreshCommand(e.ctx).Execute()
}
