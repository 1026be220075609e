package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

const perfumeColumns = `
	id, name, brand, gender, concentration, scent_family,
	top_notes, middle_notes, base_notes, longevity, sillage, intensity,
	price, season, occasion, image
`

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerfume(row rowScanner) (*perfume.Perfume, error) {
	p := &perfume.Perfume{}
	var top, middle, base, season string
	var image sql.NullString

	if err := row.Scan(
		&p.ID, &p.Name, &p.Brand, &p.Gender, &p.Concentration, &p.ScentFamily,
		&top, &middle, &base, &p.Longevity, &p.Sillage, &p.Intensity,
		&p.Price, &season, &p.Occasion, &image,
	); err != nil {
		return nil, err
	}

	var err error
	if p.TopNotes, err = decodeList[string](top); err != nil {
		return nil, fmt.Errorf("failed to decode top notes of %s: %w", p.ID, err)
	}
	if p.MiddleNotes, err = decodeList[string](middle); err != nil {
		return nil, fmt.Errorf("failed to decode middle notes of %s: %w", p.ID, err)
	}
	if p.BaseNotes, err = decodeList[string](base); err != nil {
		return nil, fmt.Errorf("failed to decode base notes of %s: %w", p.ID, err)
	}
	if p.Season, err = decodeList[perfume.Season](season); err != nil {
		return nil, fmt.Errorf("failed to decode seasons of %s: %w", p.ID, err)
	}
	p.Image = image.String
	return p, nil
}

// perfumeArgs returns the encoded list columns in column order
func perfumeArgs(p *perfume.Perfume) (top, middle, base, season string, err error) {
	if top, err = encodeList(p.TopNotes); err != nil {
		return
	}
	if middle, err = encodeList(p.MiddleNotes); err != nil {
		return
	}
	if base, err = encodeList(p.BaseNotes); err != nil {
		return
	}
	season, err = encodeList(p.Season)
	return
}

// insertPerfume inserts p with position given as an SQL expression
func insertPerfume(ctx context.Context, ex execer, p *perfume.Perfume, position string) error {
	top, middle, base, season, err := perfumeArgs(p)
	if err != nil {
		return fmt.Errorf("failed to encode perfume %s: %w", p.ID, err)
	}

	now := time.Now()
	_, err = ex.ExecContext(ctx, `
		INSERT INTO perfumes (
			id, position, name, brand, gender, concentration, scent_family,
			top_notes, middle_notes, base_notes, longevity, sillage, intensity,
			price, season, occasion, image, created_at, updated_at
		) VALUES (?, `+position+`, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID, p.Name, p.Brand, p.Gender, p.Concentration, p.ScentFamily,
		top, middle, base, p.Longevity, p.Sillage, p.Intensity,
		p.Price, season, p.Occasion, NullString(p.Image), now, now,
	)
	return err
}

// CreatePerfume inserts a perfume at the front of the catalog.
// An empty ID is replaced with a new UUID.
func (db *DB) CreatePerfume(ctx context.Context, p *perfume.Perfume) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return insertPerfume(ctx, db, p, "(SELECT COALESCE(MIN(position), 0) - 1 FROM perfumes)")
}

// GetPerfume retrieves a perfume by ID
func (db *DB) GetPerfume(ctx context.Context, id string) (*perfume.Perfume, error) {
	p, err := scanPerfume(db.QueryRowContext(ctx,
		`SELECT `+perfumeColumns+` FROM perfumes WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePerfume overwrites an existing perfume, keeping its catalog position
func (db *DB) UpdatePerfume(ctx context.Context, p *perfume.Perfume) error {
	top, middle, base, season, err := perfumeArgs(p)
	if err != nil {
		return fmt.Errorf("failed to encode perfume %s: %w", p.ID, err)
	}

	result, err := db.ExecContext(ctx, `
		UPDATE perfumes SET
			name = ?, brand = ?, gender = ?, concentration = ?, scent_family = ?,
			top_notes = ?, middle_notes = ?, base_notes = ?,
			longevity = ?, sillage = ?, intensity = ?, price = ?,
			season = ?, occasion = ?, image = ?, updated_at = ?
		WHERE id = ?
	`,
		p.Name, p.Brand, p.Gender, p.Concentration, p.ScentFamily,
		top, middle, base,
		p.Longevity, p.Sillage, p.Intensity, p.Price,
		season, p.Occasion, NullString(p.Image), time.Now(), p.ID,
	)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("perfume %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

// DeletePerfume removes a perfume together with its favorite and shortlist entries
func (db *DB) DeletePerfume(ctx context.Context, id string) error {
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM perfumes WHERE id = ?`, id)
		if err != nil {
			return err
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return fmt.Errorf("perfume %s: %w", id, ErrNotFound)
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM shortlist WHERE perfume_id = ?`, id)
		return err
	})
}

// ListPerfumes retrieves perfumes in catalog order
func (db *DB) ListPerfumes(ctx context.Context, opts ListOptions) ([]perfume.Perfume, error) {
	query := `SELECT ` + perfumeColumns + ` FROM perfumes WHERE 1=1`
	args := []any{}

	if opts.Family != "" {
		query += " AND scent_family = ?"
		args = append(args, opts.Family)
	}

	query += " ORDER BY position ASC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
		if opts.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", opts.Offset)
		}
	}

	return db.queryPerfumes(ctx, query, args...)
}

func (db *DB) queryPerfumes(ctx context.Context, query string, args ...any) ([]perfume.Perfume, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perfumes := []perfume.Perfume{}
	for rows.Next() {
		p, err := scanPerfume(rows)
		if err != nil {
			return nil, err
		}
		perfumes = append(perfumes, *p)
	}

	return perfumes, rows.Err()
}

// CountPerfumes returns the catalog size
func (db *DB) CountPerfumes(ctx context.Context) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM perfumes`).Scan(&n)
	return n, err
}

// ReplaceCatalog swaps the whole catalog for the given list, in list order.
// Favorites and the shortlist are cleared.
func (db *DB) ReplaceCatalog(ctx context.Context, perfumes []perfume.Perfume) error {
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM shortlist`,
			`DELETE FROM favorites`,
			`DELETE FROM perfumes`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to clear catalog: %w", err)
			}
		}

		for i := range perfumes {
			p := &perfumes[i]
			if p.ID == "" {
				p.ID = uuid.New().String()
			}
			if err := insertPerfume(ctx, tx, p, strconv.Itoa(i)); err != nil {
				return fmt.Errorf("failed to insert perfume %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

// Search finds perfumes by name, brand, family or note (case-insensitive)
func (db *DB) Search(ctx context.Context, query string) ([]perfume.Perfume, error) {
	pattern := "%" + query + "%"
	return db.queryPerfumes(ctx, `
		SELECT `+perfumeColumns+` FROM perfumes
		WHERE LOWER(name) LIKE LOWER(?)
		   OR LOWER(brand) LIKE LOWER(?)
		   OR LOWER(scent_family) LIKE LOWER(?)
		   OR LOWER(top_notes) LIKE LOWER(?)
		   OR LOWER(middle_notes) LIKE LOWER(?)
		   OR LOWER(base_notes) LIKE LOWER(?)
		ORDER BY position ASC
	`, pattern, pattern, pattern, pattern, pattern, pattern)
}

// AddFavorite marks a perfume as a favorite. Adding twice is a no-op.
func (db *DB) AddFavorite(ctx context.Context, perfumeID string) error {
	p, err := db.GetPerfume(ctx, perfumeID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("perfume %s: %w", perfumeID, ErrNotFound)
	}

	_, err = db.ExecContext(ctx, `
		INSERT OR IGNORE INTO favorites (perfume_id, created_at) VALUES (?, ?)
	`, perfumeID, time.Now())
	return err
}

// RemoveFavorite unmarks a favorite
func (db *DB) RemoveFavorite(ctx context.Context, perfumeID string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM favorites WHERE perfume_id = ?`, perfumeID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("favorite %s: %w", perfumeID, ErrNotFound)
	}
	return nil
}

// ListFavorites returns favorite perfumes, most recently added first
func (db *DB) ListFavorites(ctx context.Context) ([]perfume.Perfume, error) {
	return db.queryPerfumes(ctx, `
		SELECT p.id, p.name, p.brand, p.gender, p.concentration, p.scent_family,
		       p.top_notes, p.middle_notes, p.base_notes, p.longevity, p.sillage, p.intensity,
		       p.price, p.season, p.occasion, p.image
		FROM favorites f JOIN perfumes p ON p.id = f.perfume_id
		ORDER BY f.created_at DESC, p.position ASC
	`)
}

// IsFavorite reports whether a perfume is a favorite
func (db *DB) IsFavorite(ctx context.Context, perfumeID string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM favorites WHERE perfume_id = ?`, perfumeID).Scan(&n)
	return n > 0, err
}

// SaveShortlist replaces the displayed recommendations
func (db *DB) SaveShortlist(ctx context.Context, recs []perfume.Recommendation) error {
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM shortlist`); err != nil {
			return err
		}
		for i, r := range recs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO shortlist (slot, perfume_id, score, explanation) VALUES (?, ?, ?, ?)
			`, i, r.PerfumeID, r.Score, r.Explanation); err != nil {
				return fmt.Errorf("failed to save shortlist slot %d: %w", i, err)
			}
		}
		return nil
	})
}

// GetShortlist returns the displayed recommendations in slot order
func (db *DB) GetShortlist(ctx context.Context) ([]perfume.Recommendation, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT perfume_id, score, explanation FROM shortlist ORDER BY slot ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []perfume.Recommendation{}
	for rows.Next() {
		var r perfume.Recommendation
		if err := rows.Scan(&r.PerfumeID, &r.Score, &r.Explanation); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// GetStats returns catalog statistics
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByFamily: []FamilyCount{}}

	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT LOWER(brand)),
		       COALESCE(MIN(price), 0), COALESCE(MAX(price), 0), COALESCE(AVG(price), 0)
		FROM perfumes
	`).Scan(&stats.TotalPerfumes, &stats.Brands, &stats.MinPrice, &stats.MaxPrice, &stats.AvgPrice)
	if err != nil {
		return nil, err
	}

	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM favorites`).Scan(&stats.Favorites); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT scent_family, COUNT(*) FROM perfumes
		GROUP BY scent_family ORDER BY COUNT(*) DESC, scent_family ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var fc FamilyCount
		if err := rows.Scan(&fc.Family, &fc.Count); err != nil {
			return nil, err
		}
		stats.ByFamily = append(stats.ByFamily, fc)
	}

	return stats, rows.Err()
}

// GetMeta returns a stored metadata value, or "" when unset
func (db *DB) GetMeta(ctx context.Context, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetMeta stores a metadata value
func (db *DB) SetMeta(ctx context.Context, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
