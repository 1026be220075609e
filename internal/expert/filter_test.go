package expert

import (
	"testing"

	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

func TestEvaluate_Stages(t *testing.T) {
	e := New(Options{})

	tests := []struct {
		name      string
		modify    func(*perfume.Perfume, *perfume.Preferences)
		excluded  []string
		wantIncl  bool
		wantStage Stage
	}{
		{
			name:      "passes every stage",
			modify:    func(p *perfume.Perfume, prefs *perfume.Preferences) {},
			wantIncl:  true,
			wantStage: StagePassed,
		},
		{
			name:      "excluded id",
			modify:    func(p *perfume.Perfume, prefs *perfume.Preferences) {},
			excluded:  []string{"x", "a"},
			wantStage: StageExcluded,
		},
		{
			name:      "over price ceiling",
			modify:    func(p *perfume.Perfume, prefs *perfume.Preferences) { p.Price = 20000 },
			wantStage: StagePrice,
		},
		{
			name:      "gender not preferred",
			modify:    func(p *perfume.Perfume, prefs *perfume.Preferences) { p.Gender = perfume.GenderMale },
			wantStage: StageGender,
		},
		{
			name: "empty gender list accepts anyone",
			modify: func(p *perfume.Perfume, prefs *perfume.Preferences) {
				p.Gender = perfume.GenderMale
				prefs.PreferredGender = nil
			},
			wantIncl:  true,
			wantStage: StagePassed,
		},
		{
			name:      "family not liked",
			modify:    func(p *perfume.Perfume, prefs *perfume.Preferences) { p.ScentFamily = "Woody" },
			wantStage: StageLikedFamily,
		},
		{
			name: "family disliked without liked list",
			modify: func(p *perfume.Perfume, prefs *perfume.Preferences) {
				prefs.LikedFamilies = nil
				prefs.DislikedFamilies = []string{"Floral"}
			},
			wantStage: StageDislikedFamily,
		},
		{
			name: "family liked and disliked",
			modify: func(p *perfume.Perfume, prefs *perfume.Preferences) {
				prefs.DislikedFamilies = []string{"Floral"}
			},
			wantStage: StageDislikedFamily,
		},
		{
			name:      "longevity too short",
			modify:    func(p *perfume.Perfume, prefs *perfume.Preferences) { p.Longevity = 2 },
			wantStage: StageLongevity,
		},
		{
			name: "zero minimum longevity disables the check",
			modify: func(p *perfume.Perfume, prefs *perfume.Preferences) {
				p.Longevity = 0
				prefs.MinLongevity = 0
			},
			wantIncl:  true,
			wantStage: StagePassed,
		},
		{
			name:      "disliked note in notes",
			modify:    func(p *perfume.Perfume, prefs *perfume.Preferences) { prefs.DislikedNotes = []string{"BERGA"} },
			wantStage: StageDislikedNote,
		},
		{
			name:      "disliked note in family",
			modify:    func(p *perfume.Perfume, prefs *perfume.Preferences) { prefs.DislikedNotes = []string{"flor"} },
			wantStage: StageDislikedNote,
		},
		{
			name:      "disliked note in name",
			modify:    func(p *perfume.Perfume, prefs *perfume.Preferences) { prefs.DislikedNotes = []string{"petal"} },
			wantStage: StageDislikedNote,
		},
		{
			name:      "disliked note only in brand",
			modify:    func(p *perfume.Perfume, prefs *perfume.Preferences) { prefs.DislikedNotes = []string{"rosae"} },
			wantIncl:  true,
			wantStage: StagePassed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := examplePerfume()
			prefs := examplePreferences()
			tt.modify(&p, &prefs)

			v := e.Evaluate(p, prefs, tt.excluded...)
			if v.Include != tt.wantIncl {
				t.Errorf("Include = %v, want %v (%s)", v.Include, tt.wantIncl, v.Reason)
			}
			if v.Stage != tt.wantStage {
				t.Errorf("Stage = %v, want %v", v.Stage, tt.wantStage)
			}
			if v.Reason == "" {
				t.Error("expected a reason")
			}
		})
	}
}

func TestItemTextContains(t *testing.T) {
	p := examplePerfume()
	p.MiddleNotes = []string{"Oud"}

	tests := []struct {
		text   string
		needle string
		want   bool
	}{
		{filterText(&p), "Velvet", true},
		{filterText(&p), "rosae", false},
		{filterText(&p), "bergamot oud", true},
		{scoringText(&p), "rosae", true},
		{scoringText(&p), "velvet", false},
		{scoringText(&p), "FLORAL", true},
	}

	for _, tt := range tests {
		if got := itemTextContains(tt.text, tt.needle); got != tt.want {
			t.Errorf("itemTextContains(%q, %q) = %v, want %v", tt.text, tt.needle, got, tt.want)
		}
	}
}

func TestNoteMatchesFavorite(t *testing.T) {
	tests := []struct {
		catalogNote  string
		favoriteNote string
		want         bool
	}{
		{"Turkish Rose", "rose", true},
		{"Rose", "Turkish Rose", false},
		{"VANILLA", "vanilla", true},
		{"Amber", "oud", false},
	}

	for _, tt := range tests {
		if got := noteMatchesFavorite(tt.catalogNote, tt.favoriteNote); got != tt.want {
			t.Errorf("noteMatchesFavorite(%q, %q) = %v, want %v", tt.catalogNote, tt.favoriteNote, got, tt.want)
		}
	}
}

func TestTallyCatalog(t *testing.T) {
	e := New(Options{})
	prefs := openPreferences()
	prefs.PriceRange = [2]float64{0, 10000}
	prefs.DislikedFamilies = []string{"Woody"}

	tally := e.TallyCatalog(testCatalog(), prefs, "p1")

	if tally.Total != 6 {
		t.Errorf("Total = %d, want 6", tally.Total)
	}
	if tally.Passed != 3 {
		t.Errorf("Passed = %d, want 3", tally.Passed)
	}
	if tally.Rejected[StageExcluded] != 1 || tally.Rejected[StagePrice] != 1 || tally.Rejected[StageDislikedFamily] != 1 {
		t.Errorf("unexpected rejections: %v", tally.Rejected)
	}
}

func TestBreakdown(t *testing.T) {
	e := New(Options{})
	p := examplePerfume()
	prefs := examplePreferences()
	prefs.PreferredBrands = []string{"rosae"}

	b := e.Breakdown(p, prefs)

	if b.FavoritePoints != 20 || b.Concentration != 25 || b.Brand != 30 || b.Longevity != 20 || b.Sillage != 15 {
		t.Errorf("unexpected components: %+v", b)
	}
	if b.Raw != 110 {
		t.Errorf("Raw = %d, want 110", b.Raw)
	}
	if b.Final != 73 {
		t.Errorf("Final = %d, want 73", b.Final)
	}
	if len(b.MatchedFavorites) != 1 || b.MatchedFavorites[0] != "Rose" {
		t.Errorf("MatchedFavorites = %v, want [Rose]", b.MatchedFavorites)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  int
		want int
	}{
		{0, 0},
		{10, 7},
		{80, 53},
		{149, 99},
		{150, 99},
		{400, 99},
	}

	for _, tt := range tests {
		if got := normalize(tt.raw); got != tt.want {
			t.Errorf("normalize(%d) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}
