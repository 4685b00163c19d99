package domain

// EntityType describes how a search category is labelled on screen
type EntityType struct {
	Key   string
	Label string
	Icon  string
	Color string // hex, used for facet chips
}

// EntityTypes lists the categories the search endpoint can return, in display order
var EntityTypes = []EntityType{
	{Key: "project", Label: "Projects", Icon: "📂", Color: "#3b82f6"},
	{Key: "dataset", Label: "Datasets", Icon: "📊", Color: "#10b981"},
	{Key: "form", Label: "Forms", Icon: "📝", Color: "#8b5cf6"},
	{Key: "rule", Label: "Quality Rules", Icon: "✅", Color: "#f59e0b"},
	{Key: "query", Label: "Queries", Icon: "🔎", Color: "#06b6d4"},
	{Key: "user", Label: "Users", Icon: "👤", Color: "#ec4899"},
	{Key: "workspace", Label: "Workspaces", Icon: "🏢", Color: "#6366f1"},
}

// LookupEntityType returns the metadata for key. Unknown keys get a neutral
// entry labelled with the key itself.
func LookupEntityType(key string) EntityType {
	for _, et := range EntityTypes {
		if et.Key == key {
			return et
		}
	}
	return EntityType{Key: key, Label: key, Icon: "•", Color: "#9ca3af"}
}
