package mcp

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// Resource URIs
const (
	uriShortlist = "perfumex://shortlist"
	uriFavorites = "perfumex://favorites"
	uriFamilies  = "perfumex://families"
	uriProfile   = "perfumex://preferences"
)

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         uriShortlist,
		Name:        "Current Shortlist",
		Description: "The perfumes currently recommended, with scores and explanations",
		MimeType:    "text/plain",
	},
	{
		URI:         uriFavorites,
		Name:        "Favorites",
		Description: "Perfumes marked as favorite, most recent first",
		MimeType:    "text/plain",
	},
	{
		URI:         uriFamilies,
		Name:        "Scent Families",
		Description: "Scent families in the catalog with perfume counts",
		MimeType:    "text/plain",
	},
	{
		URI:         uriProfile,
		Name:        "Preference Profile",
		Description: "The configured preference profile used when a tool call gives no overrides",
		MimeType:    "text/plain",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}
