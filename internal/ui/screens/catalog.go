package screens

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"querydeck/internal/client"
	"querydeck/internal/domain"
	"querydeck/internal/ui/services/filter"
)

// Names lists the screens in the order the CLI offers them
var Names = []string{"search", "projects", "queries", "users", "workspaces", "reports", "roles"}

func entityLabel(key string) string {
	et := domain.LookupEntityType(key)
	return et.Icon + " " + et.Label
}

func entityColor(key string) string {
	return domain.LookupEntityType(key).Color
}

func entityOrder() []string {
	keys := make([]string, len(domain.EntityTypes))
	for i, et := range domain.EntityTypes {
		keys[i] = et.Key
	}
	return keys
}

func tags(t []string) string {
	return strings.Join(t, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// detail renders label/value pairs for the pager
func detail(title string, pairs ...string) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(len(title), 20)))
	b.WriteString("\n\n")
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		fmt.Fprintf(&b, "%-16s %s\n", pairs[i]+":", pairs[i+1])
	}
	return b.String()
}

// Search is the cross-entity search screen
func Search() Screen[domain.SearchResult] {
	return Screen[domain.SearchResult]{
		Name:       "search",
		Title:      "Advanced Search",
		Path:       "/search",
		TextParam:  "q",
		Defaults:   filter.Defaults{SortBy: "relevance", SortDescending: true, PageSize: 20},
		FacetKey:   "entityType",
		MultiFacet: true,
		Category:   func(r domain.SearchResult) string { return r.EntityType },
		FacetLabel: entityLabel,
		FacetColor: entityColor,
		FacetOrder: entityOrder(),
		SortOptions: []SortOption{
			{Field: "relevance", Label: "Relevance"},
			{Field: "name", Label: "Name"},
			{Field: "type", Label: "Type"},
			{Field: "createdat", Label: "Created"},
			{Field: "updatedat", Label: "Updated"},
		},
		Filters: []string{"status", "workspace", "tag", "createdBy", "classification", "containsPii", "dateFrom", "dateTo"},
		Columns: []Column[domain.SearchResult]{
			{Title: "Type", Width: 16, Value: func(r domain.SearchResult) string { return entityLabel(r.EntityType) }},
			{Title: "Name", Width: 32, Value: func(r domain.SearchResult) string { return r.Name }},
			{Title: "Status", Width: 12, Value: func(r domain.SearchResult) string { return r.Status }},
			{Title: "Owner", Width: 16, Value: func(r domain.SearchResult) string { return r.CreatedBy }},
			{Title: "Updated", Width: 10, Value: func(r domain.SearchResult) string { return r.UpdatedAt.Short() }},
		},
		Detail: func(r domain.SearchResult) string {
			return detail(r.Name,
				"Type", entityLabel(r.EntityType),
				"Description", r.Description,
				"Status", r.Status,
				"Project", r.ParentProjectName,
				"Classification", r.Classification,
				"Contains PII", yesNo(r.ContainsPii),
				"Data owner", r.DataOwner,
				"Created by", r.CreatedBy,
				"Created", r.CreatedAt.Short(),
				"Updated", r.UpdatedAt.Short(),
				"Tags", tags(r.Tags),
				"ID", r.ID.String(),
			)
		},
	}
}

// Projects lists data projects
func Projects() Screen[domain.DataProject] {
	return Screen[domain.DataProject]{
		Name:       "projects",
		Title:      "Data Projects",
		Path:       "/projects",
		TextParam:  "search",
		Defaults:   filter.Defaults{SortBy: "updatedat", SortDescending: true, PageSize: 25},
		FacetKey:   "status",
		Category:   func(p domain.DataProject) string { return p.Status },
		FacetOrder: []string{"Active", "Draft", "Archived"},
		SortOptions: []SortOption{
			{Field: "updatedat", Label: "Updated"},
			{Field: "name", Label: "Name"},
			{Field: "status", Label: "Status"},
			{Field: "createdat", Label: "Created"},
		},
		Filters: []string{"tag", "workspaceId"},
		Columns: []Column[domain.DataProject]{
			{Title: "Name", Width: 32, Value: func(p domain.DataProject) string { return p.Name }},
			{Title: "Status", Width: 10, Value: func(p domain.DataProject) string { return p.Status }},
			{Title: "Datasets", Width: 8, Value: func(p domain.DataProject) string { return strconv.Itoa(p.DatasetCount) }},
			{Title: "Forms", Width: 6, Value: func(p domain.DataProject) string { return strconv.Itoa(p.FormCount) }},
			{Title: "Rules", Width: 6, Value: func(p domain.DataProject) string { return strconv.Itoa(p.QualityRuleCount) }},
			{Title: "Updated", Width: 10, Value: func(p domain.DataProject) string { return p.UpdatedAt.Short() }},
		},
		Detail: func(p domain.DataProject) string {
			return detail(p.Name,
				"Description", p.Description,
				"Status", p.Status,
				"Datasets", strconv.Itoa(p.DatasetCount),
				"Forms", strconv.Itoa(p.FormCount),
				"Quality rules", strconv.Itoa(p.QualityRuleCount),
				"Created by", p.CreatedBy,
				"Created", p.CreatedAt.Short(),
				"Updated", p.UpdatedAt.Short(),
				"Tags", tags(p.Tags),
				"Workspace", p.WorkspaceID.String(),
				"ID", p.ID.String(),
			)
		},
	}
}

// Queries lists saved SQL queries
func Queries() Screen[domain.SavedQuery] {
	return Screen[domain.SavedQuery]{
		Name:      "queries",
		Title:     "Saved Queries",
		Path:      "/queries",
		TextParam: "search",
		Defaults:  filter.Defaults{SortBy: "updatedat", SortDescending: true, PageSize: 25},
		FacetKey:  "database",
		Category:  func(q domain.SavedQuery) string { return q.Database },
		SortOptions: []SortOption{
			{Field: "updatedat", Label: "Updated"},
			{Field: "name", Label: "Name"},
			{Field: "database", Label: "Database"},
			{Field: "createdat", Label: "Created"},
		},
		Filters: []string{"tag", "createdBy", "workspaceId"},
		Columns: []Column[domain.SavedQuery]{
			{Title: "Name", Width: 32, Value: func(q domain.SavedQuery) string { return q.Name }},
			{Title: "Database", Width: 14, Value: func(q domain.SavedQuery) string { return q.Database }},
			{Title: "Owner", Width: 16, Value: func(q domain.SavedQuery) string { return q.CreatedBy }},
			{Title: "Public", Width: 6, Value: func(q domain.SavedQuery) string { return yesNo(q.IsPublic) }},
			{Title: "Updated", Width: 10, Value: func(q domain.SavedQuery) string { return q.UpdatedAt.Short() }},
		},
		Detail: func(q domain.SavedQuery) string {
			return detail(q.Name,
				"Description", q.Description,
				"Database", q.Database,
				"Public", yesNo(q.IsPublic),
				"Created by", q.CreatedBy,
				"Updated", q.UpdatedAt.Short(),
				"Tags", tags(q.Tags),
				"ID", q.ID.String(),
			) + "\n" + q.SQLText + "\n"
		},
	}
}

// Users lists platform accounts. /users returns a plain array.
func Users() Screen[domain.User] {
	return Screen[domain.User]{
		Name:      "users",
		Title:     "Users",
		Path:      "/users",
		TextParam: "search",
		Defaults:  filter.Defaults{SortBy: "username", PageSize: 50},
		FacetKey:  "role",
		Category: func(u domain.User) string {
			if len(u.Roles) == 0 {
				return ""
			}
			return u.Roles[0]
		},
		SortOptions: []SortOption{
			{Field: "username", Label: "Username"},
			{Field: "email", Label: "Email"},
			{Field: "createdat", Label: "Created"},
		},
		Filters: []string{"isActive"},
		Columns: []Column[domain.User]{
			{Title: "Username", Width: 16, Value: func(u domain.User) string { return u.Username }},
			{Title: "Name", Width: 22, Value: func(u domain.User) string { return u.FullName() }},
			{Title: "Email", Width: 28, Value: func(u domain.User) string { return u.Email }},
			{Title: "Roles", Width: 16, Value: func(u domain.User) string { return tags(u.Roles) }},
			{Title: "Active", Width: 6, Value: func(u domain.User) string { return yesNo(u.IsActive) }},
		},
		Detail: func(u domain.User) string {
			return detail(u.FullName(),
				"Username", u.Username,
				"Email", u.Email,
				"Roles", tags(u.Roles),
				"Active", yesNo(u.IsActive),
				"Created", u.CreatedAt.Short(),
				"ID", u.ID.String(),
			)
		},
		Local: true,
		Collection: []client.CollectionOption[domain.User]{
			client.WithMatch(func(u domain.User, text string) bool {
				return client.Contains(text, u.Username, u.Email, u.FirstName, u.LastName)
			}),
			client.WithFilter(func(u domain.User, key, value string) bool {
				switch key {
				case "role":
					return slices.ContainsFunc(u.Roles, func(r string) bool { return strings.EqualFold(r, value) })
				case "isActive":
					active, err := strconv.ParseBool(value)
					return err != nil || u.IsActive == active
				default:
					return true
				}
			}),
			client.WithSort("username", func(a, b domain.User) int { return client.CompareFold(a.Username, b.Username) }),
			client.WithSort("email", func(a, b domain.User) int { return client.CompareFold(a.Email, b.Email) }),
			client.WithSort("createdat", func(a, b domain.User) int { return a.CreatedAt.Compare(b.CreatedAt.Time) }),
		},
	}
}

// Workspaces lists department workspaces
func Workspaces() Screen[domain.Workspace] {
	return Screen[domain.Workspace]{
		Name:      "workspaces",
		Title:     "Workspaces",
		Path:      "/workspaces",
		TextParam: "search",
		Defaults:  filter.Defaults{SortBy: "name", PageSize: 25},
		FacetKey:  "department",
		Category:  func(w domain.Workspace) string { return w.Department },
		SortOptions: []SortOption{
			{Field: "name", Label: "Name"},
			{Field: "department", Label: "Department"},
			{Field: "createdat", Label: "Created"},
			{Field: "updatedat", Label: "Updated"},
		},
		Columns: []Column[domain.Workspace]{
			{Title: "Name", Width: 28, Value: func(w domain.Workspace) string { return w.Icon + " " + w.Name }},
			{Title: "Department", Width: 16, Value: func(w domain.Workspace) string { return w.Department }},
			{Title: "Projects", Width: 8, Value: func(w domain.Workspace) string { return strconv.Itoa(w.ProjectCount) }},
			{Title: "Queries", Width: 8, Value: func(w domain.Workspace) string { return strconv.Itoa(w.QueryCount) }},
			{Title: "Members", Width: 8, Value: func(w domain.Workspace) string { return strconv.Itoa(len(w.Members)) }},
		},
		Detail: func(w domain.Workspace) string {
			return detail(w.Name,
				"Description", w.Description,
				"Department", w.Department,
				"Default", yesNo(w.IsDefault),
				"Projects", strconv.Itoa(w.ProjectCount),
				"Queries", strconv.Itoa(w.QueryCount),
				"Members", tags(w.Members),
				"Created by", w.CreatedBy,
				"Updated", w.UpdatedAt.Short(),
				"ID", w.ID.String(),
			)
		},
	}
}

// Reports lists scheduled and ad-hoc reports
func Reports() Screen[domain.Report] {
	return Screen[domain.Report]{
		Name:       "reports",
		Title:      "Reports",
		Path:       "/reports",
		TextParam:  "search",
		Defaults:   filter.Defaults{SortBy: "updatedat", SortDescending: true, PageSize: 25},
		FacetKey:   "type",
		Category:   func(r domain.Report) string { return r.Type },
		FacetOrder: []string{"Table", "Chart", "Summary", "Dashboard"},
		SortOptions: []SortOption{
			{Field: "updatedat", Label: "Updated"},
			{Field: "name", Label: "Name"},
			{Field: "status", Label: "Status"},
			{Field: "type", Label: "Type"},
			{Field: "createdat", Label: "Created"},
		},
		Filters: []string{"status", "tag", "workspaceId"},
		Columns: []Column[domain.Report]{
			{Title: "Name", Width: 30, Value: func(r domain.Report) string { return r.Name }},
			{Title: "Type", Width: 10, Value: func(r domain.Report) string { return r.Type }},
			{Title: "Status", Width: 10, Value: func(r domain.Report) string { return r.Status }},
			{Title: "Schedule", Width: 14, Value: func(r domain.Report) string { return r.Schedule }},
			{Title: "Last run", Width: 10, Value: func(r domain.Report) string { return r.LastRunAt.Short() }},
		},
		Detail: func(r domain.Report) string {
			return detail(r.Name,
				"Description", r.Description,
				"Type", r.Type,
				"Status", r.Status,
				"Schedule", r.Schedule,
				"Last run", r.LastRunAt.Short(),
				"Created by", r.CreatedBy,
				"Updated", r.UpdatedAt.Short(),
				"Tags", tags(r.Tags),
				"ID", r.ID.String(),
			) + "\n" + r.QuerySQL + "\n"
		},
	}
}

// Roles lists permission sets. /roles returns a plain array.
func Roles() Screen[domain.Role] {
	return Screen[domain.Role]{
		Name:      "roles",
		Title:     "Roles",
		Path:      "/roles",
		TextParam: "search",
		Defaults:  filter.Defaults{SortBy: "name", PageSize: 25},
		SortOptions: []SortOption{
			{Field: "name", Label: "Name"},
		},
		Columns: []Column[domain.Role]{
			{Title: "Name", Width: 20, Value: func(r domain.Role) string { return r.Name }},
			{Title: "Description", Width: 50, Value: func(r domain.Role) string { return r.Description }},
		},
		Detail: func(r domain.Role) string {
			return detail(r.Name, "Description", r.Description)
		},
		Local: true,
		Collection: []client.CollectionOption[domain.Role]{
			client.WithMatch(func(r domain.Role, text string) bool { return client.Contains(text, r.Name, r.Description) }),
			client.WithSort("name", func(a, b domain.Role) int { return client.CompareFold(a.Name, b.Name) }),
		},
	}
}
