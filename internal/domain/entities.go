package domain

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Timestamp accepts the date formats the API emits, with or without a zone
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("timestamp %s: %w", data, err)
	}
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp %q: unrecognised format", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.Format(time.RFC3339))), nil
}

// Short renders the date part only
func (t Timestamp) Short() string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// SearchResult is one hit of the cross-entity search endpoint
type SearchResult struct {
	ID                uuid.UUID  `json:"id"`
	EntityType        string     `json:"entityType"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Status            string     `json:"status"`
	CreatedBy         string     `json:"createdBy"`
	CreatedAt         Timestamp  `json:"createdAt"`
	UpdatedAt         Timestamp  `json:"updatedAt"`
	Tags              []string   `json:"tags"`
	ParentProjectID   *uuid.UUID `json:"parentProjectId"`
	ParentProjectName string     `json:"parentProjectName"`
	WorkspaceID       *uuid.UUID `json:"workspaceId"`
	Classification    string     `json:"classification"`
	ContainsPii       bool       `json:"containsPii"`
	DataOwner         string     `json:"dataOwner"`
}

// DataProject is a container of datasets, forms and quality rules
type DataProject struct {
	ID               uuid.UUID `json:"id"`
	WorkspaceID      uuid.UUID `json:"workspaceId"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Status           string    `json:"status"`
	CreatedBy        string    `json:"createdBy"`
	CreatedAt        Timestamp `json:"createdAt"`
	UpdatedAt        Timestamp `json:"updatedAt"`
	Tags             []string  `json:"tags"`
	DatasetCount     int       `json:"datasetCount"`
	FormCount        int       `json:"formCount"`
	QualityRuleCount int       `json:"qualityRuleCount"`
}

// SavedQuery is a stored SQL statement
type SavedQuery struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspaceId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SQLText     string    `json:"sqlText"`
	Database    string    `json:"database"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
	Tags        []string  `json:"tags"`
	IsPublic    bool      `json:"isPublic"`
}

// User is a platform account
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	IsActive  bool      `json:"isActive"`
	CreatedAt Timestamp `json:"createdAt"`
	Roles     []string  `json:"roles"`
}

// FullName joins first and last name, falling back to the username
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Workspace groups projects and queries of one department
type Workspace struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Department   string    `json:"department"`
	Color        string    `json:"color"`
	Icon         string    `json:"icon"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    Timestamp `json:"createdAt"`
	UpdatedAt    Timestamp `json:"updatedAt"`
	Members      []string  `json:"members"`
	IsDefault    bool      `json:"isDefault"`
	ProjectCount int       `json:"projectCount"`
	QueryCount   int       `json:"queryCount"`
}

// Report is a scheduled or ad-hoc rendering of a query
type Report struct {
	ID          uuid.UUID  `json:"id"`
	WorkspaceID *uuid.UUID `json:"workspaceId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	CreatedBy   string     `json:"createdBy"`
	QuerySQL    string     `json:"querySql"`
	Schedule    string     `json:"schedule"`
	LastRunAt   Timestamp  `json:"lastRunAt"`
	CreatedAt   Timestamp  `json:"createdAt"`
	UpdatedAt   Timestamp  `json:"updatedAt"`
	Tags        []string   `json:"tags"`
}

// Role is a named permission set
type Role struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
