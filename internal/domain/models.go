package domain

import (
	"maps"
	"time"
)

// QueryState is a snapshot of what a list screen is asking the server for.
// Values are never mutated after construction; every edit produces a new one.
type QueryState struct {
	FreeText       string
	Filters        map[string]string // facet key -> value, absent keys are not filtered on
	SortBy         string
	SortDescending bool
	Page           int // 1-based
	PageSize       int
}

// Clone returns a copy that shares no mutable data with s
func (s QueryState) Clone() QueryState {
	c := s
	c.Filters = make(map[string]string, len(s.Filters))
	maps.Copy(c.Filters, s.Filters)
	return c
}

// Filter returns the value of a filter and whether it is set
func (s QueryState) Filter(key string) (string, bool) {
	v, ok := s.Filters[key]
	return v, ok && v != ""
}

// DispatchedRequest is a QueryState stamped with the sequence id it was issued under
type DispatchedRequest struct {
	SequenceID uint64
	Snapshot   QueryState
	IssuedAt   time.Time
}

// ResultPage is one page of a paged listing as returned by the server
type ResultPage[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// NewResultPage builds a page and derives TotalPages from the count and page size
func NewResultPage[T any](items []T, totalCount, page, pageSize int) ResultPage[T] {
	return ResultPage[T]{
		Items:      items,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(totalCount, pageSize),
	}
}

// Normalize fills fields the server left empty from the request that produced the page
func (p ResultPage[T]) Normalize(req QueryState) ResultPage[T] {
	if p.Page < 1 {
		p.Page = req.Page
	}
	if p.PageSize < 1 {
		p.PageSize = req.PageSize
	}
	if p.TotalPages == 0 && p.TotalCount > 0 {
		p.TotalPages = TotalPages(p.TotalCount, p.PageSize)
	}
	if p.Items == nil {
		p.Items = []T{}
	}
	return p
}

// TotalPages returns ceil(totalCount / pageSize)
func TotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 || totalCount <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}

// PageToken is one entry of a pagination control: a page number or a gap marker
type PageToken struct {
	Page int
	Gap  bool
}

// Gap is the marker placed between non-adjacent page numbers
var Gap = PageToken{Gap: true}

// PageNumber returns the token for page n
func PageNumber(n int) PageToken {
	return PageToken{Page: n}
}

// SearchStatus is the lifecycle state of a query coordinator
type SearchStatus int

const (
	StatusIdle SearchStatus = iota
	StatusSearching
	StatusSettled
	StatusDisposed
)

func (s SearchStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSearching:
		return "searching"
	case StatusSettled:
		return "settled"
	case StatusDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// ViewModel is everything a list screen renders. The presentation layer only
// ever sees copies of it.
type ViewModel[T any] struct {
	ResultPage      *ResultPage[T]
	FacetCounts     map[string]int
	PageTokens      []PageToken
	Loading         bool
	Error           *ErrorKind
	HasSearchedOnce bool

	// Query is the composed state the screen is currently showing or waiting on
	Query  QueryState
	Status SearchStatus
}

// Clone returns a deep enough copy for handing to another goroutine.
// Items are shared; result pages are read-only once applied.
func (vm ViewModel[T]) Clone() ViewModel[T] {
	c := vm
	if vm.ResultPage != nil {
		p := *vm.ResultPage
		c.ResultPage = &p
	}
	if vm.FacetCounts != nil {
		c.FacetCounts = maps.Clone(vm.FacetCounts)
	}
	if vm.PageTokens != nil {
		c.PageTokens = append([]PageToken(nil), vm.PageTokens...)
	}
	if vm.Error != nil {
		e := *vm.Error
		c.Error = &e
	}
	c.Query = vm.Query.Clone()
	return c
}
