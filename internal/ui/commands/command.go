package commands

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"querydeck/internal/eventbus"
	"querydeck/internal/ui/coordinator"
	"querydeck/internal/ui/services/filter"
	"querydeck/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// Query is the part of a coordinator commands drive
type Query interface {
	SubmitAll(edits ...filter.Edit) error
	Flush()
	Refresh() error
}

// CommandContext provides context for command execution
type CommandContext struct {
	State *state.ScreenState
	Query Query
	Bus   eventbus.EventBus
}

// reportError puts err on the status bar. Edits on a closed screen are dropped quietly.
func (ctx *CommandContext) reportError(action string, err error) {
	if errors.Is(err, coordinator.ErrDisposed) {
		return
	}
	ctx.State.SetStatus(fmt.Sprintf("Error: %s: %v", action, err))
	if ctx.Bus != nil {
		ctx.Bus.Publish(eventbus.ErrorEvent{Message: action, Err: err})
	}
}

// EditCommand submits one or more edits as a single change. If any edit is
// refused none of them apply.
type EditCommand struct {
	ctx    *CommandContext
	action string
	edits  []filter.Edit
}

// NewEditCommand creates a new edit command
func NewEditCommand(ctx *CommandContext, action string, edits ...filter.Edit) *EditCommand {
	return &EditCommand{
		ctx:    ctx,
		action: action,
		edits:  edits,
	}
}

// Execute submits the edits
func (c *EditCommand) Execute() tea.Cmd {
	if err := c.ctx.Query.SubmitAll(c.edits...); err != nil {
		c.ctx.reportError(c.action, err)
	}
	return nil
}

// FlushCommand sends a pending free-text edit without waiting for the debounce
type FlushCommand struct {
	ctx *CommandContext
}

// NewFlushCommand creates a new flush command
func NewFlushCommand(ctx *CommandContext) *FlushCommand {
	return &FlushCommand{ctx: ctx}
}

// Execute performs the flush
func (c *FlushCommand) Execute() tea.Cmd {
	c.ctx.Query.Flush()
	return nil
}

// RefreshCommand re-sends the current query
type RefreshCommand struct {
	ctx *CommandContext
}

// NewRefreshCommand creates a new refresh command
func NewRefreshCommand(ctx *CommandContext) *RefreshCommand {
	return &RefreshCommand{ctx: ctx}
}

// Execute performs the refresh
func (c *RefreshCommand) Execute() tea.Cmd {
	if err := c.ctx.Query.Refresh(); err != nil {
		c.ctx.reportError("refresh", err)
		return nil
	}
	c.ctx.State.SetStatus("Refreshing...")
	return nil
}
