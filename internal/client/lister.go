package client

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"querydeck/internal/domain"
	"querydeck/internal/ui/services/filter"
)

// Lister fetches one page from an endpoint that pages server-side and
// answers with {items, totalCount, page, pageSize, totalPages}
type Lister[T any] struct {
	client    *Client
	path      string
	textParam string
}

// NewLister creates a Lister for path. textParam names the free-text query
// parameter, which differs between endpoints ("q" for search, "search"
// elsewhere).
func NewLister[T any](c *Client, path, textParam string) *Lister[T] {
	return &Lister[T]{client: c, path: path, textParam: textParam}
}

// Fetch implements coordinator.Fetcher
func (l *Lister[T]) Fetch(ctx context.Context, q filter.SerializedQuery) (domain.ResultPage[T], error) {
	params, err := q.Values(l.textParam)
	if err != nil {
		return domain.ResultPage[T]{}, fmt.Errorf("encoding query: %w", err)
	}
	var page domain.ResultPage[T]
	if err := l.client.Get(ctx, l.path, params, &page); err != nil {
		return domain.ResultPage[T]{}, err
	}
	return page, nil
}

// Collection fetches an endpoint that returns a plain array and applies the
// query locally: text match, filters, sort and paging.
type Collection[T any] struct {
	client *Client
	path   string
	match  func(item T, text string) bool
	keep   func(item T, key, value string) bool
	sorts  map[string]func(a, b T) int
}

// CollectionOption configures a Collection
type CollectionOption[T any] func(*Collection[T])

// WithMatch sets how free text is matched. The text is passed lower-cased.
func WithMatch[T any](fn func(item T, text string) bool) CollectionOption[T] {
	return func(c *Collection[T]) { c.match = fn }
}

// WithFilter sets the predicate used for each present filter
func WithFilter[T any](fn func(item T, key, value string) bool) CollectionOption[T] {
	return func(c *Collection[T]) { c.keep = fn }
}

// WithSort registers a comparison for a sort field
func WithSort[T any](field string, compare func(a, b T) int) CollectionOption[T] {
	return func(c *Collection[T]) { c.sorts[field] = compare }
}

// NewCollection creates a Collection for path
func NewCollection[T any](c *Client, path string, opts ...CollectionOption[T]) *Collection[T] {
	col := &Collection[T]{client: c, path: path, sorts: make(map[string]func(a, b T) int)}
	for _, opt := range opts {
		opt(col)
	}
	return col
}

// Fetch implements coordinator.Fetcher
func (c *Collection[T]) Fetch(ctx context.Context, q filter.SerializedQuery) (domain.ResultPage[T], error) {
	var all []T
	if err := c.client.Get(ctx, c.path, nil, &all); err != nil {
		return domain.ResultPage[T]{}, err
	}
	return c.apply(all, q), nil
}

func (c *Collection[T]) apply(all []T, q filter.SerializedQuery) domain.ResultPage[T] {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	matched := make([]T, 0, len(all))
	for _, item := range all {
		if text != "" && c.match != nil && !c.match(item, text) {
			continue
		}
		if !c.keepAll(item, q.Filters) {
			continue
		}
		matched = append(matched, item)
	}

	if less, ok := c.sorts[q.SortBy]; ok {
		slices.SortStableFunc(matched, func(a, b T) int {
			if q.SortDesc {
				return less(b, a)
			}
			return less(a, b)
		})
	}

	size := q.PageSize
	if size <= 0 {
		size = filter.DefaultPageSize
	}
	page := max(q.Page, 1)
	start := min((page-1)*size, len(matched))
	end := min(start+size, len(matched))
	return domain.NewResultPage(slices.Clone(matched[start:end]), len(matched), page, size)
}

func (c *Collection[T]) keepAll(item T, filters map[string]string) bool {
	if c.keep == nil {
		return true
	}
	for key, value := range filters {
		if !c.keep(item, key, value) {
			return false
		}
	}
	return true
}

// Contains reports whether any field contains text, case-insensitively.
// text must already be lower-cased.
func Contains(text string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), text) {
			return true
		}
	}
	return false
}

// CompareFold orders strings case-insensitively
func CompareFold(a, b string) int {
	return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
}
