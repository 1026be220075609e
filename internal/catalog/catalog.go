// Package catalog reads and writes perfume catalog files and carries the
// built-in seed catalog.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

//go:embed seed.json
var seedData []byte

// Format is a catalog file encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Seed returns a fresh copy of the built-in catalog
func Seed() ([]perfume.Perfume, error) {
	perfumes, err := Decode(bytes.NewReader(seedData), FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode seed catalog: %w", err)
	}
	return perfumes, nil
}

// FormatFromPath picks the format from a file extension, defaulting to JSON
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat validates a user-supplied format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown catalog format '%s' (use json or yaml)", s)
	}
}

// LoadFile reads and validates a catalog file
func LoadFile(path string) ([]perfume.Perfume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	perfumes, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, err
	}

	if err := ValidateAll(perfumes); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return perfumes, nil
}

// Decode reads a list of perfumes without validating them
func Decode(r io.Reader, format Format) ([]perfume.Perfume, error) {
	perfumes := []perfume.Perfume{}

	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&perfumes)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		err = json.NewDecoder(r).Decode(&perfumes)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s catalog: %w", format, err)
	}
	return perfumes, nil
}

// Write encodes perfumes in the given format
func Write(w io.Writer, format Format, perfumes []perfume.Perfume) error {
	if perfumes == nil {
		perfumes = []perfume.Perfume{}
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(perfumes); err != nil {
			return fmt.Errorf("failed to encode yaml catalog: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(perfumes); err != nil {
			return fmt.Errorf("failed to encode json catalog: %w", err)
		}
		return nil
	}
}

// ValidateAll validates every record and rejects duplicate IDs.
// Records without an ID are allowed; the store assigns one.
func ValidateAll(perfumes []perfume.Perfume) error {
	var errs []error
	seen := make(map[string]int, len(perfumes))

	for i := range perfumes {
		p := &perfumes[i]
		label := p.ID
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}

		if p.ID != "" {
			if first, dup := seen[p.ID]; dup {
				errs = append(errs, fmt.Errorf("%s: duplicate id (first at #%d)", label, first+1))
			} else {
				seen[p.ID] = i
			}
		}

		// Validation requires an ID; check the rest with a placeholder
		check := *p
		if check.ID == "" {
			check.ID = "pending"
		}
		if err := perfume.Validate(&check); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", label, err))
		}
	}

	return errors.Join(errs...)
}
