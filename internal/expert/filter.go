package expert

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

// Stage identifies which filter stage made the decision
type Stage string

const (
	StageExcluded       Stage = "excluded"
	StagePrice          Stage = "price"
	StageGender         Stage = "gender"
	StageLikedFamily    Stage = "liked_family"
	StageDislikedFamily Stage = "disliked_family"
	StageLongevity      Stage = "longevity"
	StageDislikedNote   Stage = "disliked_note"
	StagePassed         Stage = "passed"
)

// Verdict is the outcome of running one perfume through the filter stages
type Verdict struct {
	Include bool   `json:"include"` // Whether the perfume is a candidate
	Stage   Stage  `json:"stage"`   // Stage that rejected it, or StagePassed
	Reason  string `json:"reason"`  // Human-readable reason
}

// exclusionSet builds a lookup from the caller's excluded IDs
func exclusionSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// evaluate runs the filter stages in order and stops at the first rejection
func evaluate(p *perfume.Perfume, prefs *perfume.Preferences, excluded map[string]struct{}) Verdict {
	if _, ok := excluded[p.ID]; ok {
		return reject(StageExcluded, "Already shown or explicitly excluded")
	}

	// Only the upper bound is checked. PriceRange[0] is accepted but never enforced.
	if p.Price > prefs.MaxPrice() {
		return reject(StagePrice, fmt.Sprintf("Price %.0f above ceiling %.0f", p.Price, prefs.MaxPrice()))
	}

	if len(prefs.PreferredGender) > 0 && !slices.Contains(prefs.PreferredGender, string(p.Gender)) {
		return reject(StageGender, fmt.Sprintf("Gender %s not in %v", p.Gender, prefs.PreferredGender))
	}

	if len(prefs.LikedFamilies) > 0 && !slices.Contains(prefs.LikedFamilies, p.ScentFamily) {
		return reject(StageLikedFamily, fmt.Sprintf("Family %s not among liked families", p.ScentFamily))
	}

	if slices.Contains(prefs.DislikedFamilies, p.ScentFamily) {
		return reject(StageDislikedFamily, fmt.Sprintf("Family %s is disliked", p.ScentFamily))
	}

	if prefs.MinLongevity != 0 && p.Longevity < prefs.MinLongevity {
		return reject(StageLongevity, fmt.Sprintf("Longevity %d below minimum %d", p.Longevity, prefs.MinLongevity))
	}

	text := filterText(p)
	for _, note := range prefs.DislikedNotes {
		if itemTextContains(text, note) {
			return reject(StageDislikedNote, fmt.Sprintf("Contains disliked note %q", note))
		}
	}

	return Verdict{Include: true, Stage: StagePassed, Reason: "Passed all filters"}
}

func reject(stage Stage, reason string) Verdict {
	return Verdict{Include: false, Stage: stage, Reason: reason}
}

// filterText is the haystack disliked notes are checked against:
// all notes, the scent family and the perfume name.
func filterText(p *perfume.Perfume) string {
	parts := append(p.Notes(), p.ScentFamily, p.Name)
	return strings.ToLower(strings.Join(parts, " "))
}

// scoringText is the haystack favorite notes are checked against:
// all notes, the brand and the scent family. Unlike filterText it
// includes the brand and leaves out the name.
func scoringText(p *perfume.Perfume) string {
	parts := append(p.Notes(), p.Brand, p.ScentFamily)
	return strings.ToLower(strings.Join(parts, " "))
}

// itemTextContains reports whether needle occurs in an already lower-cased
// item text. The item text is the haystack.
func itemTextContains(text, needle string) bool {
	return strings.Contains(text, strings.ToLower(needle))
}

// noteMatchesFavorite reports whether favoriteNote occurs inside catalogNote,
// ignoring case. The single catalog note is the haystack.
func noteMatchesFavorite(catalogNote, favoriteNote string) bool {
	return strings.Contains(strings.ToLower(catalogNote), strings.ToLower(favoriteNote))
}

// Tally counts filter outcomes per stage
type Tally struct {
	Total    int           `json:"total"`
	Passed   int           `json:"passed"`
	Rejected map[Stage]int `json:"rejected"`
}

// TallyCatalog runs every perfume through the filter stages and counts the outcomes
func (e *Engine) TallyCatalog(catalog []perfume.Perfume, prefs perfume.Preferences, excluded ...string) Tally {
	set := exclusionSet(excluded)
	t := Tally{Total: len(catalog), Rejected: make(map[Stage]int)}

	for i := range catalog {
		v := evaluate(&catalog[i], &prefs, set)
		if v.Include {
			t.Passed++
			continue
		}
		t.Rejected[v.Stage]++
	}

	return t
}
