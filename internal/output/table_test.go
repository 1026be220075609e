package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vijay-prabhu/perfumex/internal/advisor"
	"github.com/vijay-prabhu/perfumex/internal/database"
	"github.com/vijay-prabhu/perfumex/internal/expert"
	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

func samplePerfume() perfume.Perfume {
	return perfume.Perfume{
		ID:            "p1",
		Name:          "Velvet Rose",
		Brand:         "Maison Test",
		Gender:        perfume.GenderFemale,
		Concentration: perfume.ConcentrationEDP,
		ScentFamily:   "Floral",
		TopNotes:      []string{"Bergamot"},
		MiddleNotes:   []string{"Rose"},
		BaseNotes:     []string{"Musk"},
		Longevity:     4,
		Sillage:       3,
		Intensity:     3,
		Price:         4200,
		Season:        []perfume.Season{perfume.SeasonSpring},
		Occasion:      perfume.OccasionDate,
	}
}

func TestTableTo(t *testing.T) {
	p := samplePerfume()

	tests := []struct {
		name string
		data any
		want []string
	}{
		{"perfume list", []perfume.Perfume{p}, []string{"Velvet Rose", "Maison Test", "4200"}},
		{"empty list", []perfume.Perfume{}, []string{"No perfumes found."}},
		{"perfume detail", &p, []string{"Concentration: EDP", "Middle: Rose"}},
		{
			"recommendations",
			[]advisor.RecommendationRow{{Rank: 1, Score: 53, Explanation: "A fine choice.", Favorite: true, Perfume: p}},
			[]string{"53%", "★", "1. A fine choice."},
		},
		{"no recommendations", []advisor.RecommendationRow{}, []string{"No perfumes match your preferences."}},
		{
			"stats",
			&database.Stats{TotalPerfumes: 2, Brands: 1, MinPrice: 100, MaxPrice: 200, AvgPrice: 150,
				ByFamily: []database.FamilyCount{{Family: "Floral", Count: 2}}},
			[]string{"Total perfumes:         2", "100 - 200", "Floral"},
		},
		{
			"preferences",
			perfume.Preferences{PriceRange: [2]float64{0, 5000}, FavoriteNotes: []string{"Rose", "Oud"}},
			[]string{"Favorite notes:     Rose, Oud", "0 - 5000", "Min longevity:      -"},
		},
		{
			"rejected diagnosis",
			&advisor.Diagnosis{Perfume: p, Verdict: expert.Verdict{Stage: expert.StagePrice, Reason: "too expensive"}},
			[]string{`stage "price"`, "too expensive"},
		},
		{
			"passed diagnosis",
			&advisor.Diagnosis{
				Perfume:     p,
				Verdict:     expert.Verdict{Include: true, Stage: expert.StagePassed},
				Breakdown:   &expert.Breakdown{MatchedFavorites: []string{"Rose"}, FavoritePoints: 20, Raw: 80, Final: 53},
				Explanation: "Nice.",
				Notes:       []string{"lower price bound is not applied"},
			},
			[]string{"Passes all filters", "favorite notes (Rose)", "53%", "Nice.", "note: lower price bound"},
		},
		{
			"replace result",
			&advisor.ReplaceResult{
				Replaced:  "p0",
				New:       advisor.RecommendationRow{Rank: 2, Score: 61, Perfume: p},
				Shortlist: []advisor.RecommendationRow{{Rank: 1, Score: 61, Perfume: p}},
			},
			[]string{"Replaced p0 with p1 (Velvet Rose, 61%)", "61%"},
		},
		{
			"tally",
			expert.Tally{Total: 5, Passed: 2, Rejected: map[expert.Stage]int{expert.StagePrice: 3}},
			[]string{"2 of 5 perfumes pass the filters", "price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := TableTo(&buf, tt.data); err != nil {
				t.Fatalf("TableTo failed: %v", err)
			}
			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestTableTo_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	if err := TableTo(&buf, 42); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestOutputTo(t *testing.T) {
	var buf bytes.Buffer
	recs := []perfume.Recommendation{{PerfumeID: "p1", Score: 53, Explanation: "x"}}
	if err := OutputTo(&buf, "json", recs); err != nil {
		t.Fatalf("OutputTo json failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"perfumeId": "p1"`) {
		t.Errorf("unexpected json: %s", buf.String())
	}

	if err := OutputTo(&buf, "xml", recs); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much too long", 8, "much to…"},
		{"Шанель Номер П'ять", 6, "Шанел…"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
