package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

func stringList(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": description,
	}
}

// preferenceProperties are the optional overrides every ranking tool accepts.
// A property that is present replaces the configured value.
func preferenceProperties() map[string]any {
	return map[string]any{
		"liked_families":    stringList("Scent families to keep, e.g. Floral, Woody. Empty means any family."),
		"disliked_families": stringList("Scent families to drop"),
		"favorite_notes":    stringList("Notes that raise the score, e.g. Rose, Vanilla"),
		"disliked_notes":    stringList("Notes that drop a perfume when found in its notes, family or name"),
		"preferred_brands":  stringList("Brands that raise the score"),
		"preferred_gender": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string", "enum": []string{"Male", "Female", "Unisex"}},
			"description": "Genders to keep. Empty means any gender.",
		},
		"preferred_concentration": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string", "enum": []string{"EDP", "EDT", "EDC", "Parfum", "Cologne", "Extrait"}},
			"description": "Concentrations that raise the score",
		},
		"max_price": map[string]any{
			"type":        "number",
			"description": "Price ceiling",
		},
		"min_longevity": map[string]any{
			"type":        "integer",
			"description": "Minimum longevity 1-5, 0 disables the check",
		},
	}
}

func withPreferences(props map[string]any) map[string]any {
	merged := preferenceProperties()
	for k, v := range props {
		merged[k] = v
	}
	return merged
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "recommend",
		Description: "Rank the perfume catalog against the preference profile and return the best matches with a 0-99 score and a short explanation. The result becomes the shortlist that replace_recommendation works on.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": withPreferences(map[string]any{
				"count": map[string]any{
					"type":        "integer",
					"description": "Number of perfumes to return (default: recommend.display_count, 0 for all)",
				},
				"exclude": stringList("Perfume IDs to leave out"),
				"save": map[string]any{
					"type":        "boolean",
					"description": "Store the result as the shortlist (default: true)",
				},
			}),
		},
	},
	{
		Name:        "get_alternatives",
		Description: "List every perfume that passes the preference filters and is not on the current shortlist, ranked by score.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": preferenceProperties(),
		},
	},
	{
		Name:        "replace_recommendation",
		Description: "Replace one perfume on the shortlist. Without 'with', the best perfume not already displayed takes the slot.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": withPreferences(map[string]any{
				"perfume_id": map[string]any{
					"type":        "string",
					"description": "ID of the shortlisted perfume to replace",
				},
				"with": map[string]any{
					"type":        "string",
					"description": "ID of the perfume to put in the slot instead",
				},
			}),
			"required": []string{"perfume_id"},
		},
	},
	{
		Name:        "explain_perfume",
		Description: "Explain how one perfume fares against the preferences: the filter that rejects it, or its score breakdown and explanation.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": withPreferences(map[string]any{
				"perfume_id": map[string]any{
					"type":        "string",
					"description": "Perfume ID",
				},
			}),
			"required": []string{"perfume_id"},
		},
	},
	{
		Name:        "list_perfumes",
		Description: "List catalog perfumes in catalog order with optional family filter.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"family": map[string]any{
					"type":        "string",
					"description": "Only list this scent family",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 20)",
				},
			},
		},
	},
	{
		Name:        "get_perfume",
		Description: "Get the full catalog record of one perfume, including whether it is a favorite.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"perfume_id": map[string]any{
					"type":        "string",
					"description": "Perfume ID",
				},
			},
			"required": []string{"perfume_id"},
		},
	},
	{
		Name:        "search_perfumes",
		Description: "Search the catalog by name, brand, scent family or note.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Search query text",
				},
			},
			"required": []string{"query"},
		},
	},
	{
		Name:        "set_favorite",
		Description: "Mark or unmark a perfume as favorite.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"perfume_id": map[string]any{
					"type":        "string",
					"description": "Perfume ID",
				},
				"favorite": map[string]any{
					"type":        "boolean",
					"description": "true to add, false to remove (default: true)",
				},
			},
			"required": []string{"perfume_id"},
		},
	},
	{
		Name:        "get_stats",
		Description: "Get catalog statistics: perfume and brand counts, price range and perfumes per scent family.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	},
}
