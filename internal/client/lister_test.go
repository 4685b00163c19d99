package client

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querydeck/internal/domain"
	"querydeck/internal/ui/services/filter"
)

func TestListerSendsSerializedQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "sales", q.Get("q"))
		assert.Equal(t, "project,dataset", q.Get("entityType"))
		assert.Equal(t, "relevance", q.Get("sortBy"))
		assert.Equal(t, "true", q.Get("sortDesc"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "20", q.Get("pageSize"))
		assert.False(t, q.Has("search"))

		w.Write([]byte(`{"items":[{"id":"6f1c8a8e-4f7c-4b8e-9a55-2d8f0c1e9b10","entityType":"project","name":"Sales","createdAt":"2024-03-01T10:15:00"}],
			"totalCount":21,"page":2,"pageSize":20,"totalPages":2}`))
	})

	lister := NewLister[domain.SearchResult](c, "/search", "q")
	page, err := lister.Fetch(context.Background(), filter.SerializedQuery{
		Text:     "sales",
		Filters:  map[string]string{"entityType": "project,dataset"},
		SortBy:   "relevance",
		SortDesc: true,
		Page:     2,
		PageSize: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, 21, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Sales", page.Items[0].Name)
	assert.Equal(t, 2024, page.Items[0].CreatedAt.Year())
}

func TestListerPropagatesErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"bad sort"}`))
	})

	_, err := NewLister[domain.DataProject](c, "/projects", "search").Fetch(context.Background(), filter.SerializedQuery{Page: 1, PageSize: 25})
	assert.EqualError(t, err, "HTTP 400: bad sort")
}

func users() []domain.User {
	return []domain.User{
		{Username: "carol", FirstName: "Carol", Roles: []string{"Admin"}, IsActive: true},
		{Username: "alice", FirstName: "Alice", Roles: []string{"Viewer"}, IsActive: true},
		{Username: "bob", FirstName: "Bob", Roles: []string{"Viewer"}},
	}
}

func userCollection() *Collection[domain.User] {
	return NewCollection[domain.User](nil, "/users",
		WithMatch(func(u domain.User, text string) bool {
			return Contains(text, u.Username, u.FullName(), u.Email)
		}),
		WithFilter(func(u domain.User, key, value string) bool {
			switch key {
			case "role":
				return slices.Contains(u.Roles, value)
			default:
				return true
			}
		}),
		WithSort("username", func(a, b domain.User) int { return CompareFold(a.Username, b.Username) }),
	)
}

func names(p domain.ResultPage[domain.User]) []string {
	var out []string
	for _, u := range p.Items {
		out = append(out, u.Username)
	}
	return out
}

func TestCollectionSortsAndPages(t *testing.T) {
	col := userCollection()

	p := col.apply(users(), filter.SerializedQuery{SortBy: "username", Page: 1, PageSize: 2})
	assert.Equal(t, []string{"alice", "bob"}, names(p))
	assert.Equal(t, 3, p.TotalCount)
	assert.Equal(t, 2, p.TotalPages)

	p = col.apply(users(), filter.SerializedQuery{SortBy: "username", Page: 2, PageSize: 2})
	assert.Equal(t, []string{"carol"}, names(p))

	p = col.apply(users(), filter.SerializedQuery{SortBy: "username", SortDesc: true, Page: 1, PageSize: 2})
	assert.Equal(t, []string{"carol", "bob"}, names(p))
}

func TestCollectionMatchesAndFilters(t *testing.T) {
	col := userCollection()

	p := col.apply(users(), filter.SerializedQuery{Text: "AL", Page: 1, PageSize: 10})
	assert.Equal(t, []string{"alice"}, names(p))

	p = col.apply(users(), filter.SerializedQuery{Filters: map[string]string{"role": "Viewer"}, SortBy: "username", Page: 1, PageSize: 10})
	assert.Equal(t, []string{"alice", "bob"}, names(p))
}

func TestCollectionPageBeyondEndIsEmpty(t *testing.T) {
	p := userCollection().apply(users(), filter.SerializedQuery{Page: 9, PageSize: 2})
	assert.Empty(t, p.Items)
	assert.Equal(t, 3, p.TotalCount)
	assert.Equal(t, 9, p.Page)
}

func TestCollectionFetch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/roles", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		w.Write([]byte(`[{"name":"Viewer"},{"name":"Admin"},{"name":"Editor"}]`))
	})

	col := NewCollection[domain.Role](c, "/roles",
		WithMatch(func(r domain.Role, text string) bool { return Contains(text, r.Name, r.Description) }),
		WithSort("name", func(a, b domain.Role) int { return strings.Compare(a.Name, b.Name) }),
	)
	p, err := col.Fetch(context.Background(), filter.SerializedQuery{SortBy: "name", Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, "Admin", p.Items[0].Name)
	assert.Equal(t, 3, p.TotalCount)
	assert.Equal(t, 1, p.TotalPages)
}
