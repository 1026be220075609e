package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/vijay-prabhu/perfumex/internal/expert"
	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	// Expand path
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	// Read file
	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run 'perfumex config init' to create)", expandedPath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// LoadOrDefault loads the config file, falling back to defaults when it does not exist
func LoadOrDefault(path string) (*Config, error) {
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	if _, err := os.Stat(expandedPath); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.expandPaths(); err != nil {
			return nil, fmt.Errorf("failed to expand paths: %w", err)
		}
		return cfg, nil
	}

	return Load(path)
}

// Parse decodes TOML over the defaults, expands paths and validates
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Expand paths in config
	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Database.Path, err = expandPath(c.Database.Path)
	if err != nil {
		return err
	}

	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	// Recommend validation
	if c.Recommend.DisplayCount < 1 || c.Recommend.DisplayCount > 50 {
		errs = append(errs, errors.New("recommend.display_count must be between 1 and 50"))
	}
	if !expert.SupportedLanguage(expert.Language(c.Recommend.Language)) {
		errs = append(errs, fmt.Errorf("recommend.language must be 'uk' or 'en', got '%s'", c.Recommend.Language))
	}

	errs = append(errs, c.Preferences.validate()...)

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "disabled": true}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Errorf("logging.level must be debug, info, warn, error or disabled, got '%s'", c.Logging.Level))
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		errs = append(errs, fmt.Errorf("logging.format must be 'console' or 'json', got '%s'", c.Logging.Format))
	}

	// MCP validation
	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// validate checks the preference section
func (p PreferencesConfig) validate() []error {
	var errs []error
	if p.PriceRange[0] < 0 || p.PriceRange[1] < 0 {
		errs = append(errs, errors.New("preferences.price_range must not be negative"))
	}
	if p.MinLongevity < 0 || p.MinLongevity > 5 {
		errs = append(errs, errors.New("preferences.min_longevity must be between 0 and 5"))
	}
	for _, g := range p.PreferredGender {
		if !slices.Contains([]string{"Male", "Female", "Unisex"}, g) {
			errs = append(errs, fmt.Errorf("preferences.preferred_gender contains unknown gender '%s'", g))
		}
	}
	for _, conc := range p.PreferredConcentration {
		if !isConcentration(conc) {
			errs = append(errs, fmt.Errorf("preferences.preferred_concentration contains unknown concentration '%s'", conc))
		}
	}
	return errs
}

// ValidateProfile applies the preference checks to a profile built outside
// the config file, e.g. from command-line or MCP overrides
func ValidateProfile(p perfume.Preferences) error {
	pc := PreferencesConfig{
		PriceRange:             p.PriceRange,
		PreferredGender:        p.PreferredGender,
		MinLongevity:           p.MinLongevity,
		PreferredConcentration: p.PreferredConcentration,
	}
	return errors.Join(pc.validate()...)
}

func isConcentration(s string) bool {
	switch perfume.Concentration(s) {
	case perfume.ConcentrationEDP, perfume.ConcentrationEDT, perfume.ConcentrationEDC,
		perfume.ConcentrationParfum, perfume.ConcentrationCologne, perfume.ConcentrationExtrait:
		return true
	}
	return false
}

// EnsureDirectories creates necessary directories for the database
func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
