package aggregate

import "querydeck/internal/domain"

// Outcome is what Accept did with a response
type Outcome int

const (
	Ignored Outcome = iota
	Applied
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	default:
		return "ignored"
	}
}

// Response is either a page or a failure, never both
type Response[T any] struct {
	Page    domain.ResultPage[T]
	Failure *domain.ErrorKind
}

// Success wraps a page
func Success[T any](page domain.ResultPage[T]) Response[T] {
	return Response[T]{Page: page}
}

// Failure wraps an error kind
func Failure[T any](kind domain.ErrorKind) Response[T] {
	return Response[T]{Failure: &kind}
}

// Gate decides whether a sequence id is still the one being waited on
type Gate interface {
	IsCurrent(id uint64) bool
}

// CategoryFunc names the facet an item is counted under
type CategoryFunc[T any] func(T) string
