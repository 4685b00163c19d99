package filter

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/gorilla/schema"

	"querydeck/internal/domain"
)

// DefaultPageSize is used when a screen does not configure one
const DefaultPageSize = 20

var encoder = schema.NewEncoder()

// reservedKeys name the paging and sort parameters; a filter may not use them
var reservedKeys = []string{"page", "pageSize", "sortBy", "sortDesc"}

// Initial returns the state a screen starts from
func Initial(d Defaults) domain.QueryState {
	return domain.QueryState{
		Filters:        map[string]string{},
		SortBy:         d.SortBy,
		SortDescending: d.SortDescending,
		Page:           1,
		PageSize:       pageSize(d),
	}
}

// Compose applies one edit to prev and returns the resulting state. prev is
// not modified. Every edit except PageRequested puts the query back on page 1.
// The page number is not clamped here; callers clamp against the last known
// page count before asking.
func Compose(prev domain.QueryState, edit Edit, d Defaults) (domain.QueryState, error) {
	next := prev.Clone()
	if next.PageSize <= 0 {
		next.PageSize = pageSize(d)
	}

	switch e := edit.(type) {
	case TextChanged:
		next.FreeText = e.Text
		next.Page = 1

	case FilterSet:
		if e.Key == "" {
			return prev, fmt.Errorf("%w: filter without a key", domain.ErrValidation)
		}
		if slices.Contains(reservedKeys, e.Key) {
			return prev, fmt.Errorf("%w: %q is not a filter", domain.ErrValidation, e.Key)
		}
		if e.Value == "" {
			delete(next.Filters, e.Key)
		} else {
			next.Filters[e.Key] = e.Value
		}
		next.Page = 1

	case SortChanged:
		if e.Field == "" {
			return prev, fmt.Errorf("%w: empty sort field", domain.ErrValidation)
		}
		next.SortBy = e.Field
		next.SortDescending = e.Descending
		next.Page = 1

	case PageRequested:
		if e.Page < 1 {
			return prev, fmt.Errorf("%w: page %d", domain.ErrValidation, e.Page)
		}
		next.Page = e.Page

	case ClearAll:
		next = Initial(d)

	case nil:
		return prev, fmt.Errorf("%w: nil edit", domain.ErrValidation)

	default:
		return prev, fmt.Errorf("%w: unsupported edit %s", domain.ErrValidation, edit.Kind())
	}

	return next, nil
}

// Serialize drops absent values and produces the wire form of s
func Serialize(s domain.QueryState) SerializedQuery {
	q := SerializedQuery{
		Text:     strings.TrimSpace(s.FreeText),
		Filters:  make(map[string]string, len(s.Filters)),
		SortBy:   s.SortBy,
		SortDesc: s.SortDescending,
		Page:     s.Page,
		PageSize: s.PageSize,
	}
	for k, v := range s.Filters {
		if v = strings.TrimSpace(v); v != "" {
			q.Filters[k] = v
		}
	}
	return q
}

// Values encodes q as URL query parameters. textParam is the name the
// endpoint uses for the free-text term ("q" for search, "search" elsewhere).
// A filter named like one of the other parameters is refused.
func (q SerializedQuery) Values(textParam string) (url.Values, error) {
	for k := range q.Filters {
		if k == textParam || slices.Contains(reservedKeys, k) {
			return nil, fmt.Errorf("%w: filter %q clashes with a query parameter", domain.ErrValidation, k)
		}
	}
	values := url.Values{}
	if err := encoder.Encode(q, values); err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	if q.Text != "" {
		values.Set(textParam, q.Text)
	}
	for k, v := range q.Filters {
		values.Set(k, v)
	}
	return values, nil
}

// FacetValues splits a multi-valued filter ("project,dataset") into its parts
func FacetValues(s domain.QueryState, key string) []string {
	raw, ok := s.Filter(key)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ToggleFacet adds value to a multi-valued filter or removes it when already
// selected. The returned edit clears the filter once nothing is left.
func ToggleFacet(s domain.QueryState, key, value string) FilterSet {
	selected := FacetValues(s, key)
	if i := slices.Index(selected, value); i >= 0 {
		selected = slices.Delete(selected, i, i+1)
	} else {
		selected = append(selected, value)
	}
	return FilterSet{Key: key, Value: strings.Join(selected, ",")}
}

// ActiveFilterCount is the number of filters currently narrowing the results
func ActiveFilterCount(s domain.QueryState) int {
	n := 0
	for k := range s.Filters {
		if _, ok := s.Filter(k); ok {
			n++
		}
	}
	return n
}

func pageSize(d Defaults) int {
	if d.PageSize > 0 {
		return d.PageSize
	}
	return DefaultPageSize
}
