package advisor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/vijay-prabhu/perfumex/internal/catalog"
	"github.com/vijay-prabhu/perfumex/internal/database"
	"github.com/vijay-prabhu/perfumex/internal/expert"
	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

func setupTestAdvisor(t *testing.T) (*Advisor, *database.DB) {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return New(db, expert.New(expert.Options{Language: expert.LanguageEnglish})), db
}

func item(id, family string, price float64, longevity int) perfume.Perfume {
	return perfume.Perfume{
		ID:            id,
		Name:          "Perfume " + id,
		Brand:         "House",
		Gender:        perfume.GenderUnisex,
		Concentration: perfume.ConcentrationEDP,
		ScentFamily:   family,
		TopNotes:      []string{"Bergamot"},
		MiddleNotes:   []string{"Rose"},
		BaseNotes:     []string{"Musk"},
		Longevity:     longevity,
		Sillage:       3,
		Intensity:     3,
		Price:         price,
		Season:        []perfume.Season{perfume.SeasonSpring},
		Occasion:      perfume.OccasionDay,
	}
}

// loadCatalog stores five perfumes with strictly decreasing scores a..e
func loadCatalog(t *testing.T, db *database.DB) {
	t.Helper()
	items := []perfume.Perfume{
		item("a", "Floral", 100, 5),
		item("b", "Floral", 100, 4),
		item("c", "Woody", 100, 3),
		item("d", "Woody", 100, 2),
		item("e", "Citrus", 100, 1),
	}
	if err := db.ReplaceCatalog(context.Background(), items); err != nil {
		t.Fatalf("ReplaceCatalog failed: %v", err)
	}
	if err := db.SetMeta(context.Background(), database.MetaSeeded, "1"); err != nil {
		t.Fatalf("SetMeta failed: %v", err)
	}
}

func openPrefs() perfume.Preferences {
	return perfume.Preferences{PriceRange: [2]float64{0, 1000}}
}

func rowIDs(rows []RecommendationRow) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.Perfume.ID
	}
	return ids
}

func TestEnsureCatalog(t *testing.T) {
	a, db := setupTestAdvisor(t)
	ctx := context.Background()

	if err := a.EnsureCatalog(ctx); err != nil {
		t.Fatalf("EnsureCatalog failed: %v", err)
	}
	seed, _ := catalog.Seed()
	n, _ := db.CountPerfumes(ctx)
	if n != len(seed) {
		t.Errorf("expected %d seeded perfumes, got %d", len(seed), n)
	}

	// An emptied catalog is not reseeded
	if err := db.ReplaceCatalog(ctx, nil); err != nil {
		t.Fatalf("ReplaceCatalog failed: %v", err)
	}
	if err := a.EnsureCatalog(ctx); err != nil {
		t.Fatalf("EnsureCatalog failed: %v", err)
	}
	n, _ = db.CountPerfumes(ctx)
	if n != 0 {
		t.Errorf("expected catalog to stay empty, got %d", n)
	}
}

func TestRecommend_SavesShortlist(t *testing.T) {
	a, db := setupTestAdvisor(t)
	ctx := context.Background()
	loadCatalog(t, db)

	if err := db.AddFavorite(ctx, "b"); err != nil {
		t.Fatalf("AddFavorite failed: %v", err)
	}

	rows, err := a.Recommend(ctx, openPrefs(), RecommendOptions{Count: 3, Save: true})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if got := rowIDs(rows); len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("Recommend = %v, want [a b c]", got)
	}
	if !rows[1].Favorite || rows[0].Favorite {
		t.Error("expected only b flagged as favorite")
	}
	if rows[2].Rank != 3 {
		t.Errorf("expected rank 3, got %d", rows[2].Rank)
	}

	shortlist, err := a.Shortlist(ctx)
	if err != nil {
		t.Fatalf("Shortlist failed: %v", err)
	}
	if len(shortlist) != 3 || shortlist[0].Perfume.ID != "a" {
		t.Errorf("unexpected shortlist %v", rowIDs(shortlist))
	}
}

func TestRecommend_WithoutSave(t *testing.T) {
	a, db := setupTestAdvisor(t)
	ctx := context.Background()
	loadCatalog(t, db)

	rows, err := a.Recommend(ctx, openPrefs(), RecommendOptions{Exclude: []string{"a"}})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(rows) != 4 || rows[0].Perfume.ID != "b" {
		t.Errorf("Recommend = %v", rowIDs(rows))
	}

	shortlist, _ := a.Shortlist(ctx)
	if len(shortlist) != 0 {
		t.Errorf("expected no shortlist saved, got %v", rowIDs(shortlist))
	}
}

func TestAlternatives(t *testing.T) {
	a, db := setupTestAdvisor(t)
	ctx := context.Background()
	loadCatalog(t, db)

	if _, err := a.Recommend(ctx, openPrefs(), RecommendOptions{Count: 2, Save: true}); err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	alts, err := a.Alternatives(ctx, openPrefs())
	if err != nil {
		t.Fatalf("Alternatives failed: %v", err)
	}
	got := rowIDs(alts)
	if len(got) != 3 || got[0] != "c" || got[1] != "d" || got[2] != "e" {
		t.Errorf("Alternatives = %v, want [c d e]", got)
	}
}

func TestReplace_Auto(t *testing.T) {
	a, db := setupTestAdvisor(t)
	ctx := context.Background()
	loadCatalog(t, db)

	if _, err := a.Recommend(ctx, openPrefs(), RecommendOptions{Count: 3, Save: true}); err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	result, err := a.Replace(ctx, openPrefs(), "b", "")
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if result.New.Perfume.ID != "d" {
		t.Errorf("replacement = %s, want d", result.New.Perfume.ID)
	}
	if got := rowIDs(result.Shortlist); got[0] != "a" || got[1] != "d" || got[2] != "c" {
		t.Errorf("shortlist = %v, want [a d c]", got)
	}

	persisted, _ := a.Shortlist(ctx)
	if persisted[1].Perfume.ID != "d" {
		t.Errorf("replacement not persisted: %v", rowIDs(persisted))
	}
}

func TestReplace_Manual(t *testing.T) {
	a, db := setupTestAdvisor(t)
	ctx := context.Background()
	loadCatalog(t, db)

	if _, err := a.Recommend(ctx, openPrefs(), RecommendOptions{Count: 3, Save: true}); err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	result, err := a.Replace(ctx, openPrefs(), "a", "e")
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if got := rowIDs(result.Shortlist); got[0] != "e" {
		t.Errorf("shortlist = %v, want e first", got)
	}

	if _, err := a.Replace(ctx, openPrefs(), "e", "b"); !errors.Is(err, ErrNotCandidate) {
		t.Errorf("choosing a displayed perfume: error = %v, want ErrNotCandidate", err)
	}
}

func TestReplace_Errors(t *testing.T) {
	a, db := setupTestAdvisor(t)
	ctx := context.Background()
	loadCatalog(t, db)

	if _, err := a.Replace(ctx, openPrefs(), "a", ""); !errors.Is(err, ErrNoShortlist) {
		t.Errorf("error = %v, want ErrNoShortlist", err)
	}

	if _, err := a.Recommend(ctx, openPrefs(), RecommendOptions{Save: true}); err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if _, err := a.Replace(ctx, openPrefs(), "missing", ""); !errors.Is(err, ErrNotDisplayed) {
		t.Errorf("error = %v, want ErrNotDisplayed", err)
	}
	// Everything is displayed, nothing is left
	if _, err := a.Replace(ctx, openPrefs(), "a", ""); !errors.Is(err, ErrNoReplacement) {
		t.Errorf("error = %v, want ErrNoReplacement", err)
	}
}

func TestDiagnose(t *testing.T) {
	a, db := setupTestAdvisor(t)
	ctx := context.Background()
	loadCatalog(t, db)

	prefs := openPrefs()
	prefs.PriceRange = [2]float64{500, 1000}
	prefs.DislikedFamilies = []string{"Woody"}

	d, err := a.Diagnose(ctx, prefs, "c")
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}
	if d.Verdict.Include || d.Verdict.Stage != expert.StageDislikedFamily {
		t.Errorf("verdict = %+v, want disliked_family rejection", d.Verdict)
	}
	if d.Breakdown != nil {
		t.Error("rejected perfume should have no breakdown")
	}
	if len(d.Notes) != 1 {
		t.Errorf("expected a note about the unapplied lower price bound, got %v", d.Notes)
	}

	d, err = a.Diagnose(ctx, prefs, "a")
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}
	if !d.Verdict.Include || d.Breakdown == nil || d.Explanation == "" {
		t.Errorf("expected passing diagnosis with breakdown, got %+v", d)
	}

	if _, err := a.Diagnose(ctx, prefs, "missing"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestTally(t *testing.T) {
	a, db := setupTestAdvisor(t)
	ctx := context.Background()
	loadCatalog(t, db)

	prefs := openPrefs()
	prefs.LikedFamilies = []string{"Floral"}

	tally, err := a.Tally(ctx, prefs)
	if err != nil {
		t.Fatalf("Tally failed: %v", err)
	}
	if tally.Total != 5 || tally.Passed != 2 || tally.Rejected[expert.StageLikedFamily] != 3 {
		t.Errorf("unexpected tally %+v", tally)
	}
}
