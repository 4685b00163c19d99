package input

import (
	"querydeck/internal/ui/services/filter"
	"querydeck/internal/ui/state"
)

// ModelContext implements the Context interface over a screen's UI state
type ModelContext struct {
	State *state.ScreenState
}

func (c *ModelContext) CurrentIndex() int {
	return c.State.Navigation.Cursor()
}

func (c *ModelContext) TotalItems() int {
	return c.State.ItemCount
}

func (c *ModelContext) CurrentPage() int {
	return max(c.State.Query.Page, 1)
}

func (c *ModelContext) TotalPages() int {
	return c.State.TotalPages
}

func (c *ModelContext) SearchText() string {
	return c.State.Query.FreeText
}

// FilterExpression renders the active filters the way filter mode parses them
func (c *ModelContext) FilterExpression() string {
	return filter.FormatExpression(c.State.Query.Filters)
}

func (c *ModelContext) SortIndex() int {
	return c.State.SortIndex
}

func (c *ModelContext) SortOptionCount() int {
	return c.State.SortOptionCount
}

func (c *ModelContext) ChipCount() int {
	return c.State.ChipCount
}
