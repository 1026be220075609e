package expert

import (
	"math"
	"slices"
	"strings"

	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

// Score weights
const (
	FavoriteNoteWeight  = 20
	ConcentrationWeight = 25
	BrandWeight         = 30
	LongevityWeight     = 5
	SillageWeight       = 5

	// NormalizationBase is a fixed approximation of the best raw score.
	// It is not derived from the preference set, so a final score is not a
	// true percentage of what was achievable.
	NormalizationBase = 150

	// MaxScore caps the final score
	MaxScore = 99
)

// Breakdown itemises how a perfume's score was reached
type Breakdown struct {
	MatchedFavorites []string `json:"matched_favorites"`
	FavoritePoints   int      `json:"favorite_points"`
	Concentration    int      `json:"concentration_points"`
	Brand            int      `json:"brand_points"`
	Longevity        int      `json:"longevity_points"`
	Sillage          int      `json:"sillage_points"`
	Raw              int      `json:"raw"`
	Final            int      `json:"final"`
}

// breakdown computes the score components for a perfume that passed filtering
func breakdown(p *perfume.Perfume, prefs *perfume.Preferences) Breakdown {
	var b Breakdown
	text := scoringText(p)

	// Each favorite note counts once, however many notes it matches
	for _, note := range prefs.FavoriteNotes {
		if itemTextContains(text, note) {
			b.MatchedFavorites = append(b.MatchedFavorites, note)
			b.FavoritePoints += FavoriteNoteWeight
		}
	}

	if len(prefs.PreferredConcentration) > 0 && slices.Contains(prefs.PreferredConcentration, string(p.Concentration)) {
		b.Concentration = ConcentrationWeight
	}

	if len(prefs.PreferredBrands) > 0 && brandMatches(p.Brand, prefs.PreferredBrands) {
		b.Brand = BrandWeight
	}

	b.Longevity = p.Longevity * LongevityWeight
	b.Sillage = p.Sillage * SillageWeight

	b.Raw = b.FavoritePoints + b.Concentration + b.Brand + b.Longevity + b.Sillage
	b.Final = normalize(b.Raw)
	return b
}

func brandMatches(brand string, preferred []string) bool {
	brandLower := strings.ToLower(brand)
	for _, b := range preferred {
		if strings.Contains(brandLower, strings.ToLower(b)) {
			return true
		}
	}
	return false
}

// normalize maps a raw score onto 0..99. There is no floor.
func normalize(raw int) int {
	return int(math.Round(math.Min(MaxScore, float64(raw)/NormalizationBase*100)))
}

// Breakdown returns the score components for a perfume. It does not apply
// the filter stages; pair it with Evaluate.
func (e *Engine) Breakdown(p perfume.Perfume, prefs perfume.Preferences) Breakdown {
	return breakdown(&p, &prefs)
}
