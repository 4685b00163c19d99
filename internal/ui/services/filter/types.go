package filter

// Edit is a single user change to a list screen's query
type Edit interface {
	Kind() string
}

// TextChanged replaces the free-text search term
type TextChanged struct {
	Text string
}

func (e TextChanged) Kind() string { return "text_changed" }

// FilterSet sets or clears one facet filter. An empty Value clears it.
type FilterSet struct {
	Key   string
	Value string
}

func (e FilterSet) Kind() string { return "filter_set" }

// SortChanged picks the sort field and direction
type SortChanged struct {
	Field      string
	Descending bool
}

func (e SortChanged) Kind() string { return "sort_changed" }

// PageRequested navigates to page n without touching anything else
type PageRequested struct {
	Page int
}

func (e PageRequested) Kind() string { return "page_requested" }

// ClearAll resets text, filters and sort to the screen defaults
type ClearAll struct{}

func (e ClearAll) Kind() string { return "clear_all" }

// Defaults are the per-screen starting values a ClearAll returns to
type Defaults struct {
	SortBy         string
	SortDescending bool
	PageSize       int
}

// SerializedQuery is the wire form of a QueryState: everything the REST
// endpoint receives, with absent values already dropped.
type SerializedQuery struct {
	Text     string            `schema:"-"`
	Filters  map[string]string `schema:"-"`
	SortBy   string            `schema:"sortBy,omitempty"`
	SortDesc bool              `schema:"sortDesc"`
	Page     int               `schema:"page"`
	PageSize int               `schema:"pageSize"`
}
