package config

import "github.com/vijay-prabhu/perfumex/internal/perfume"

// Config represents the application configuration
type Config struct {
	Database    DatabaseConfig    `toml:"database"`
	Recommend   RecommendConfig   `toml:"recommend"`
	Preferences PreferencesConfig `toml:"preferences"`
	Logging     LoggingConfig     `toml:"logging"`
	MCP         MCPConfig         `toml:"mcp"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// RecommendConfig contains recommendation display settings
type RecommendConfig struct {
	DisplayCount int    `toml:"display_count"`
	Language     string `toml:"language"`
}

// PreferencesConfig is the default preference profile.
// Command-line flags are layered on top of it.
type PreferencesConfig struct {
	LikedFamilies          []string   `toml:"liked_families"`
	DislikedFamilies       []string   `toml:"disliked_families"`
	PriceRange             [2]float64 `toml:"price_range"`
	PreferredGender        []string   `toml:"preferred_gender"`
	FavoriteNotes          []string   `toml:"favorite_notes"`
	DislikedNotes          []string   `toml:"disliked_notes"`
	PreferredBrands        []string   `toml:"preferred_brands"`
	MinLongevity           int        `toml:"min_longevity"`
	PreferredConcentration []string   `toml:"preferred_concentration"`
}

// Profile converts the configured preferences into an engine profile
func (p PreferencesConfig) Profile() perfume.Preferences {
	return perfume.Preferences{
		LikedFamilies:          perfume.CleanList(p.LikedFamilies),
		DislikedFamilies:       perfume.CleanList(p.DislikedFamilies),
		PriceRange:             p.PriceRange,
		PreferredGender:        perfume.CleanList(p.PreferredGender),
		FavoriteNotes:          perfume.CleanList(p.FavoriteNotes),
		DislikedNotes:          perfume.CleanList(p.DislikedNotes),
		PreferredBrands:        perfume.CleanList(p.PreferredBrands),
		MinLongevity:           p.MinLongevity,
		PreferredConcentration: perfume.CleanList(p.PreferredConcentration),
	}
}

// LoggingConfig contains log output settings
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/perfumex/perfumex.db",
		},
		Recommend: RecommendConfig{
			DisplayCount: 3,
			Language:     "uk",
		},
		Preferences: PreferencesConfig{
			LikedFamilies:          []string{"Floral", "Citrus"},
			DislikedFamilies:       []string{},
			PriceRange:             [2]float64{1000, 15000},
			PreferredGender:        []string{"Female", "Unisex"},
			FavoriteNotes:          []string{"Rose", "Bergamot"},
			DislikedNotes:          []string{},
			PreferredBrands:        []string{},
			MinLongevity:           3,
			PreferredConcentration: []string{"EDP"},
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
