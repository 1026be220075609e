package database

import (
	"database/sql"

	"github.com/goccy/go-json"
)

// Meta keys
const (
	MetaSeeded = "seeded"
)

// FamilyCount is the number of perfumes in one scent family
type FamilyCount struct {
	Family string `json:"family"`
	Count  int    `json:"count"`
}

// Stats represents aggregate catalog statistics
type Stats struct {
	TotalPerfumes int           `json:"total_perfumes"`
	Favorites     int           `json:"favorites"`
	Brands        int           `json:"brands"`
	MinPrice      float64       `json:"min_price"`
	MaxPrice      float64       `json:"max_price"`
	AvgPrice      float64       `json:"avg_price"`
	ByFamily      []FamilyCount `json:"by_family"`
}

// ListOptions contains options for listing perfumes
type ListOptions struct {
	Family string // exact scent family, empty for all
	Limit  int
	Offset int
}

// encodeList stores a string slice as a JSON array column
func encodeList[T ~string](values []T) (string, error) {
	if values == nil {
		values = []T{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeList reads a JSON array column
func decodeList[T ~string](column string) ([]T, error) {
	values := []T{}
	if column == "" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(column), &values); err != nil {
		return nil, err
	}
	return values, nil
}

// NullString converts an empty string to SQL NULL
func NullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
