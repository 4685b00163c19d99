package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querydeck/internal/domain"
)

var searchDefaults = Defaults{SortBy: "relevance", SortDescending: true, PageSize: 20}

func onPage(t *testing.T, page int) domain.QueryState {
	t.Helper()
	s, err := Compose(Initial(searchDefaults), TextChanged{Text: "sales"}, searchDefaults)
	require.NoError(t, err)
	s, err = Compose(s, FilterSet{Key: "status", Value: "Active"}, searchDefaults)
	require.NoError(t, err)
	s, err = Compose(s, PageRequested{Page: page}, searchDefaults)
	require.NoError(t, err)
	return s
}

func TestInitial(t *testing.T) {
	s := Initial(searchDefaults)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 20, s.PageSize)
	assert.Equal(t, "relevance", s.SortBy)
	assert.True(t, s.SortDescending)
	assert.Empty(t, s.Filters)

	assert.Equal(t, DefaultPageSize, Initial(Defaults{}).PageSize)
}

func TestEditsResetPage(t *testing.T) {
	edits := []Edit{
		TextChanged{Text: "revenue"},
		FilterSet{Key: "tag", Value: "finance"},
		FilterSet{Key: "status"},
		SortChanged{Field: "name"},
		ClearAll{},
	}
	for _, edit := range edits {
		t.Run(edit.Kind(), func(t *testing.T) {
			prev := onPage(t, 4)
			next, err := Compose(prev, edit, searchDefaults)
			require.NoError(t, err)
			assert.Equal(t, 1, next.Page)
			assert.Equal(t, 4, prev.Page, "previous state must be untouched")
		})
	}
}

func TestPageRequestedKeepsEverythingElse(t *testing.T) {
	prev := onPage(t, 1)
	next, err := Compose(prev, PageRequested{Page: 3}, searchDefaults)
	require.NoError(t, err)

	assert.Equal(t, 3, next.Page)
	assert.Equal(t, prev.FreeText, next.FreeText)
	assert.Equal(t, prev.Filters, next.Filters)
	assert.Equal(t, prev.SortBy, next.SortBy)
}

func TestPageRequestedIsNotClamped(t *testing.T) {
	next, err := Compose(Initial(searchDefaults), PageRequested{Page: 999}, searchDefaults)
	require.NoError(t, err)
	assert.Equal(t, 999, next.Page)
}

func TestInvalidEdits(t *testing.T) {
	prev := onPage(t, 2)
	for _, edit := range []Edit{PageRequested{Page: 0}, PageRequested{Page: -3}, FilterSet{Value: "x"}, SortChanged{}, nil} {
		next, err := Compose(prev, edit, searchDefaults)
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, prev, next)
	}
}

func TestFilterSetRemovesEmptyValue(t *testing.T) {
	prev := onPage(t, 1)
	next, err := Compose(prev, FilterSet{Key: "status", Value: ""}, searchDefaults)
	require.NoError(t, err)
	assert.NotContains(t, next.Filters, "status")
	assert.Contains(t, prev.Filters, "status")
}

func TestClearAllRestoresDefaults(t *testing.T) {
	prev := onPage(t, 5)
	prev, err := Compose(prev, SortChanged{Field: "name", Descending: false}, searchDefaults)
	require.NoError(t, err)

	next, err := Compose(prev, ClearAll{}, searchDefaults)
	require.NoError(t, err)
	assert.Equal(t, Initial(searchDefaults), next)
}

func TestSerializeOmitsAbsentValues(t *testing.T) {
	s := domain.QueryState{
		FreeText: "   ",
		Filters:  map[string]string{"status": "", "tag": "pii", "workspace": " "},
		SortBy:   "name",
		Page:     2,
		PageSize: 25,
	}
	q := Serialize(s)
	assert.Empty(t, q.Text)
	assert.Equal(t, map[string]string{"tag": "pii"}, q.Filters)

	values, err := q.Values("search")
	require.NoError(t, err)
	assert.Equal(t, "page=2&pageSize=25&sortBy=name&sortDesc=false&tag=pii", values.Encode())
}

func TestValuesUsesEndpointTextParam(t *testing.T) {
	s := Initial(searchDefaults)
	s.FreeText = "churn model"

	values, err := Serialize(s).Values("q")
	require.NoError(t, err)
	assert.Equal(t, "churn model", values.Get("q"))
	assert.Equal(t, "relevance", values.Get("sortBy"))
	assert.Equal(t, "true", values.Get("sortDesc"))
	assert.Equal(t, "1", values.Get("page"))
	assert.Equal(t, "20", values.Get("pageSize"))
}

func TestFilterCannotUseWireParams(t *testing.T) {
	prev := onPage(t, 3)
	for _, key := range []string{"page", "pageSize", "sortBy", "sortDesc"} {
		next, err := Compose(prev, FilterSet{Key: key, Value: "1"}, searchDefaults)
		require.ErrorIs(t, err, domain.ErrValidation, key)
		assert.Equal(t, prev, next, key)
	}
}

func TestValuesRefusesClashingFilters(t *testing.T) {
	s := Initial(searchDefaults)
	s.FreeText = "churn"
	s.Filters["q"] = "other"

	_, err := Serialize(s).Values("q")
	require.ErrorIs(t, err, domain.ErrValidation)

	// The same filter is fine where the text term is sent as "search"
	values, err := Serialize(s).Values("search")
	require.NoError(t, err)
	assert.Equal(t, "churn", values.Get("search"))
	assert.Equal(t, "other", values.Get("q"))

	s.Filters = map[string]string{"pageSize": "500"}
	_, err = Serialize(s).Values("search")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestToggleFacet(t *testing.T) {
	s := Initial(searchDefaults)

	edit := ToggleFacet(s, "entityType", "project")
	assert.Equal(t, FilterSet{Key: "entityType", Value: "project"}, edit)
	s, _ = Compose(s, edit, searchDefaults)

	edit = ToggleFacet(s, "entityType", "dataset")
	assert.Equal(t, "project,dataset", edit.Value)
	s, _ = Compose(s, edit, searchDefaults)
	assert.Equal(t, []string{"project", "dataset"}, FacetValues(s, "entityType"))

	edit = ToggleFacet(s, "entityType", "project")
	assert.Equal(t, "dataset", edit.Value)
	s, _ = Compose(s, edit, searchDefaults)

	edit = ToggleFacet(s, "entityType", "dataset")
	assert.Empty(t, edit.Value)
	s, _ = Compose(s, edit, searchDefaults)
	assert.Nil(t, FacetValues(s, "entityType"))
}

func TestActiveFilterCount(t *testing.T) {
	s := domain.QueryState{Filters: map[string]string{"status": "Active", "tag": "", "containsPii": "true"}}
	assert.Equal(t, 2, ActiveFilterCount(s))
	assert.Equal(t, 0, ActiveFilterCount(domain.QueryState{}))
}
