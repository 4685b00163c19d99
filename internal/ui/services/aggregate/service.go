package aggregate

import (
	"querydeck/internal/domain"
	"querydeck/internal/ui/services/pagination"
)

// Aggregator owns the result side of a list screen's view model and only lets
// the response to the current request change it.
//
// It is not safe for concurrent use; the coordinator serializes calls.
type Aggregator[T any] struct {
	gate     Gate
	category CategoryFunc[T]
	radius   int
	vm       domain.ViewModel[T]
}

// New creates an aggregator. category may be nil when a screen has no facets.
func New[T any](gate Gate, category CategoryFunc[T], radius int) *Aggregator[T] {
	return &Aggregator[T]{
		gate:     gate,
		category: category,
		radius:   radius,
		vm:       domain.ViewModel[T]{FacetCounts: map[string]int{}},
	}
}

// BeginLoading marks a request as in flight
func (a *Aggregator[T]) BeginLoading() {
	a.vm.Loading = true
}

// Accept applies resp if id is the current request and reports what happened.
// A stale response, successful or not, leaves the view model untouched.
func (a *Aggregator[T]) Accept(id uint64, resp Response[T]) Outcome {
	if !a.gate.IsCurrent(id) {
		return Ignored
	}

	a.vm.Loading = false

	if resp.Failure != nil {
		kind := *resp.Failure
		a.vm.Error = &kind
		return Failed
	}

	page := resp.Page
	a.vm.ResultPage = &page
	a.vm.HasSearchedOnce = true
	a.vm.Error = nil
	a.vm.FacetCounts = FacetCounts(page.Items, a.category)
	a.vm.PageTokens = pagination.Window(page.Page, page.TotalPages, a.radius)
	return Applied
}

// Reject records a failure that never reached the server, such as an edit
// the composer refused. Loading and the shown page are left alone so an
// in-flight request can still settle normally.
func (a *Aggregator[T]) Reject(kind domain.ErrorKind) Outcome {
	a.vm.Error = &kind
	return Failed
}

// ViewModel returns a copy of the current view model
func (a *Aggregator[T]) ViewModel() domain.ViewModel[T] {
	return a.vm.Clone()
}

// FacetCounts groups items by category. The counts describe the page at hand
// only; categories missing from the page are absent, not zero.
func FacetCounts[T any](items []T, category CategoryFunc[T]) map[string]int {
	counts := make(map[string]int)
	if category == nil {
		return counts
	}
	for _, item := range items {
		if c := category(item); c != "" {
			counts[c]++
		}
	}
	return counts
}
