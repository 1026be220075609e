// Package advisor ties the catalog store to the recommendation engine.
// It owns the persisted shortlist that replacement works against.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/vijay-prabhu/perfumex/internal/catalog"
	"github.com/vijay-prabhu/perfumex/internal/database"
	"github.com/vijay-prabhu/perfumex/internal/expert"
	"github.com/vijay-prabhu/perfumex/internal/logging"
	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

var (
	// ErrNoShortlist is returned when replacing before anything was recommended
	ErrNoShortlist = errors.New("no recommendations on display, run 'perfumex recommend' first")

	// ErrNotDisplayed is returned when the slot to replace is not on the shortlist
	ErrNotDisplayed = errors.New("perfume is not on the shortlist")

	// ErrNoReplacement is returned when every remaining perfume is filtered out or displayed
	ErrNoReplacement = errors.New("no replacement left for these preferences")

	// ErrNotCandidate is returned when a manually chosen perfume cannot take the slot
	ErrNotCandidate = errors.New("chosen perfume is filtered out or already displayed")
)

// RecommendationRow is a ranked recommendation joined with its catalog entry
type RecommendationRow struct {
	Rank        int             `json:"rank"`
	Score       int             `json:"score"`
	Explanation string          `json:"explanation"`
	Favorite    bool            `json:"favorite"`
	Perfume     perfume.Perfume `json:"perfume"`
}

// Diagnosis explains why one perfume was or was not recommended
type Diagnosis struct {
	Perfume     perfume.Perfume   `json:"perfume"`
	Verdict     expert.Verdict    `json:"verdict"`
	Breakdown   *expert.Breakdown `json:"breakdown,omitempty"`
	Explanation string            `json:"explanation,omitempty"`
	Notes       []string          `json:"notes,omitempty"`
}

// ReplaceResult is the outcome of swapping one shortlist slot
type ReplaceResult struct {
	Replaced  string              `json:"replaced"`
	New       RecommendationRow   `json:"new"`
	Shortlist []RecommendationRow `json:"shortlist"`
}

// RecommendOptions configures a recommendation run
type RecommendOptions struct {
	Count   int      // Number of results; 0 means all
	Exclude []string // IDs to leave out
	Save    bool     // Persist the result as the shortlist
}

// Advisor orchestrates the catalog store and the engine
type Advisor struct {
	db     *database.DB
	engine *expert.Engine
}

// New creates a new Advisor
func New(db *database.DB, engine *expert.Engine) *Advisor {
	return &Advisor{db: db, engine: engine}
}

// Engine returns the engine the advisor ranks with
func (a *Advisor) Engine() *expert.Engine {
	return a.engine
}

// EnsureCatalog loads the built-in catalog into a database that has never been seeded.
// A catalog the user emptied on purpose stays empty.
func (a *Advisor) EnsureCatalog(ctx context.Context) error {
	seeded, err := a.db.GetMeta(ctx, database.MetaSeeded)
	if err != nil {
		return fmt.Errorf("failed to read seed state: %w", err)
	}
	if seeded != "" {
		return nil
	}

	n, err := a.db.CountPerfumes(ctx)
	if err != nil {
		return fmt.Errorf("failed to count perfumes: %w", err)
	}
	if n == 0 {
		if _, err := a.ResetCatalog(ctx); err != nil {
			return err
		}
		return nil
	}
	return a.db.SetMeta(ctx, database.MetaSeeded, "1")
}

// ResetCatalog replaces the catalog with the built-in one
func (a *Advisor) ResetCatalog(ctx context.Context) (int, error) {
	seed, err := catalog.Seed()
	if err != nil {
		return 0, err
	}
	if err := a.db.ReplaceCatalog(ctx, seed); err != nil {
		return 0, fmt.Errorf("failed to load seed catalog: %w", err)
	}
	if err := a.db.SetMeta(ctx, database.MetaSeeded, "1"); err != nil {
		return 0, fmt.Errorf("failed to record seed state: %w", err)
	}
	logging.Info().Int("perfumes", len(seed)).Msg("catalog reset to seed")
	return len(seed), nil
}

// Recommend ranks the catalog against prefs
func (a *Advisor) Recommend(ctx context.Context, prefs perfume.Preferences, opts RecommendOptions) ([]RecommendationRow, error) {
	items, err := a.catalog(ctx)
	if err != nil {
		return nil, err
	}

	var recs []perfume.Recommendation
	if opts.Count > 0 {
		recs = a.engine.Top(items, prefs, opts.Count, opts.Exclude...)
	} else {
		recs = a.engine.Recommend(items, prefs, opts.Exclude...)
	}

	logging.Debug().
		Int("catalog", len(items)).
		Int("results", len(recs)).
		Strs("excluded", opts.Exclude).
		Msg("recommendations computed")

	if opts.Save {
		if err := a.db.SaveShortlist(ctx, recs); err != nil {
			return nil, fmt.Errorf("failed to save shortlist: %w", err)
		}
	}

	return a.rows(ctx, items, recs)
}

// Shortlist returns the recommendations currently on display
func (a *Advisor) Shortlist(ctx context.Context) ([]RecommendationRow, error) {
	items, err := a.catalog(ctx)
	if err != nil {
		return nil, err
	}
	recs, err := a.db.GetShortlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shortlist: %w", err)
	}
	return a.rows(ctx, items, recs)
}

// Alternatives ranks everything that is not on the shortlist
func (a *Advisor) Alternatives(ctx context.Context, prefs perfume.Preferences) ([]RecommendationRow, error) {
	items, err := a.catalog(ctx)
	if err != nil {
		return nil, err
	}
	shortlist, err := a.db.GetShortlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shortlist: %w", err)
	}

	recs := a.engine.Alternatives(items, prefs, expert.IDs(shortlist))
	return a.rows(ctx, items, recs)
}

// Replace swaps the shortlist slot holding slotID. With an empty chosenID the
// best undisplayed perfume takes the slot; otherwise chosenID does.
func (a *Advisor) Replace(ctx context.Context, prefs perfume.Preferences, slotID, chosenID string) (*ReplaceResult, error) {
	items, err := a.catalog(ctx)
	if err != nil {
		return nil, err
	}
	shortlist, err := a.db.GetShortlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shortlist: %w", err)
	}
	if len(shortlist) == 0 {
		return nil, ErrNoShortlist
	}

	displayed := expert.IDs(shortlist)
	if !slices.Contains(displayed, slotID) {
		return nil, fmt.Errorf("%s: %w", slotID, ErrNotDisplayed)
	}

	var (
		rec perfume.Recommendation
		ok  bool
	)
	if chosenID == "" {
		rec, ok = a.engine.AutoReplace(items, prefs, displayed, slotID)
		if !ok {
			return nil, ErrNoReplacement
		}
	} else {
		rec, ok = a.engine.ManualReplace(items, prefs, displayed, slotID, chosenID)
		if !ok {
			return nil, fmt.Errorf("%s: %w", chosenID, ErrNotCandidate)
		}
	}

	updated := expert.ReplaceSlot(shortlist, slotID, rec)
	if err := a.db.SaveShortlist(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save shortlist: %w", err)
	}

	logging.Info().
		Str("slot", slotID).
		Str("replacement", rec.PerfumeID).
		Bool("manual", chosenID != "").
		Msg("shortlist slot replaced")

	rows, err := a.rows(ctx, items, updated)
	if err != nil {
		return nil, err
	}

	result := &ReplaceResult{Replaced: slotID, Shortlist: rows}
	for _, r := range rows {
		if r.Perfume.ID == rec.PerfumeID {
			result.New = r
			break
		}
	}
	return result, nil
}

// Diagnose reports which filter stage decides a perfume and how it scores
func (a *Advisor) Diagnose(ctx context.Context, prefs perfume.Preferences, id string) (*Diagnosis, error) {
	p, err := a.db.GetPerfume(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get perfume: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("perfume %s: %w", id, database.ErrNotFound)
	}

	d := &Diagnosis{
		Perfume: *p,
		Verdict: a.engine.Evaluate(*p, prefs),
	}

	if d.Verdict.Include {
		b := a.engine.Breakdown(*p, prefs)
		d.Breakdown = &b
		d.Explanation = a.engine.Explain(*p, prefs, b.Final)
	}

	if prefs.MinPrice() > 0 && p.Price < prefs.MinPrice() {
		d.Notes = append(d.Notes, fmt.Sprintf(
			"price %.0f is below the lower bound %.0f; the lower bound is not applied when ranking",
			p.Price, prefs.MinPrice()))
	}

	shortlist, err := a.db.GetShortlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shortlist: %w", err)
	}
	if slices.Contains(expert.IDs(shortlist), id) {
		d.Notes = append(d.Notes, "on the current shortlist, so alternatives and replacement skip it")
	}

	return d, nil
}

// Tally counts how the catalog fares against each filter stage
func (a *Advisor) Tally(ctx context.Context, prefs perfume.Preferences) (expert.Tally, error) {
	items, err := a.catalog(ctx)
	if err != nil {
		return expert.Tally{}, err
	}
	return a.engine.TallyCatalog(items, prefs), nil
}

func (a *Advisor) catalog(ctx context.Context) ([]perfume.Perfume, error) {
	items, err := a.db.ListPerfumes(ctx, database.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return items, nil
}

// rows joins recommendations with catalog entries and favorite flags.
// Recommendations whose perfume has since been deleted are dropped.
func (a *Advisor) rows(ctx context.Context, items []perfume.Perfume, recs []perfume.Recommendation) ([]RecommendationRow, error) {
	favorites, err := a.db.ListFavorites(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	favSet := make(map[string]bool, len(favorites))
	for _, f := range favorites {
		favSet[f.ID] = true
	}

	index := perfume.Index(items)
	rows := make([]RecommendationRow, 0, len(recs))
	for _, r := range recs {
		p, ok := index[r.PerfumeID]
		if !ok {
			continue
		}
		rows = append(rows, RecommendationRow{
			Rank:        len(rows) + 1,
			Score:       r.Score,
			Explanation: r.Explanation,
			Favorite:    favSet[r.PerfumeID],
			Perfume:     *p,
		})
	}
	return rows, nil
}
