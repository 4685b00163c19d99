// Package screens describes each list screen: which endpoint feeds it, how
// its rows render, which sorts and filters it offers and which facet its
// chips toggle.
package screens

import (
	"slices"

	"querydeck/internal/client"
	"querydeck/internal/domain"
	"querydeck/internal/ui/coordinator"
	"querydeck/internal/ui/services/filter"
)

// Column renders one table column
type Column[T any] struct {
	Title string
	Width int
	Value func(T) string
}

// SortOption is a sort field the endpoint understands
type SortOption struct {
	Field string
	Label string
}

// Screen is the static description of one list screen
type Screen[T any] struct {
	Name  string
	Title string

	// Path is the resource under /api; TextParam names its free-text parameter
	Path      string
	TextParam string
	Defaults  filter.Defaults

	// FacetKey is the filter the chip keys toggle and Category the item
	// attribute counted per chip. MultiFacet endpoints accept a comma-joined
	// list, the others a single value.
	FacetKey   string
	MultiFacet bool
	Category   func(T) string
	FacetLabel func(key string) string
	FacetColor func(key string) string
	FacetOrder []string

	SortOptions []SortOption
	Filters     []string
	Columns     []Column[T]
	Detail      func(T) string

	// Local marks endpoints that return a plain array; the query is then
	// applied client-side with these options
	Local      bool
	Collection []client.CollectionOption[T]
}

// Fetcher builds the coordinator's data source for the screen
func (s Screen[T]) Fetcher(c *client.Client) coordinator.Fetcher[T] {
	if s.Local {
		return client.NewCollection(c, s.Path, s.Collection...)
	}
	return client.NewLister[T](c, s.Path, s.TextParam)
}

// SortIndex returns the position of field in SortOptions, or -1
func (s Screen[T]) SortIndex(field string) int {
	return slices.IndexFunc(s.SortOptions, func(o SortOption) bool { return o.Field == field })
}

// AcceptsFilter reports whether key can be set from the filter prompt
func (s Screen[T]) AcceptsFilter(key string) bool {
	return key == s.FacetKey || slices.Contains(s.Filters, key)
}

// Chips returns the facet values to show, in display order: FacetOrder first,
// then any other counted or selected values alphabetically
func (s Screen[T]) Chips(counts map[string]int, selected []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, k := range s.FacetOrder {
		if counts[k] > 0 || slices.Contains(selected, k) {
			out = append(out, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range counts {
		if !seen[k] {
			rest = append(rest, k)
			seen[k] = true
		}
	}
	for _, k := range selected {
		if !seen[k] {
			rest = append(rest, k)
			seen[k] = true
		}
	}
	slices.Sort(rest)
	return append(out, rest...)
}

// Label renders a facet value for display
func (s Screen[T]) Label(key string) string {
	if s.FacetLabel != nil {
		return s.FacetLabel(key)
	}
	return key
}

// Color returns the chip color for a facet value, empty for the default
func (s Screen[T]) Color(key string) string {
	if s.FacetColor != nil {
		return s.FacetColor(key)
	}
	return ""
}

// ToggleChip returns the edit selecting or deselecting value on the facet
func (s Screen[T]) ToggleChip(q domain.QueryState, value string) filter.FilterSet {
	if s.MultiFacet {
		return filter.ToggleFacet(q, s.FacetKey, value)
	}
	if current, ok := q.Filter(s.FacetKey); ok && current == value {
		return filter.FilterSet{Key: s.FacetKey}
	}
	return filter.FilterSet{Key: s.FacetKey, Value: value}
}
