package expert

import (
	"slices"

	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

// IDs returns the perfume IDs of a recommendation list in order
func IDs(recs []perfume.Recommendation) []string {
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.PerfumeID
	}
	return ids
}

// Alternatives ranks everything not currently displayed
func (e *Engine) Alternatives(catalog []perfume.Perfume, prefs perfume.Preferences, displayed []string) []perfume.Recommendation {
	return e.Recommend(catalog, prefs, displayed...)
}

// AutoReplace picks the best perfume not already displayed to take slotID's
// place. The slot itself stays excluded. ok is false when nothing is left.
func (e *Engine) AutoReplace(catalog []perfume.Perfume, prefs perfume.Preferences, displayed []string, slotID string) (perfume.Recommendation, bool) {
	excluded := displayed
	if !slices.Contains(excluded, slotID) {
		excluded = append(slices.Clone(displayed), slotID)
	}

	recs := e.Recommend(catalog, prefs, excluded...)
	if len(recs) == 0 {
		return perfume.Recommendation{}, false
	}
	return recs[0], true
}

// ManualReplace scores chosenID as a replacement for slotID. Every displayed
// perfume except the slot being replaced is excluded. ok is false when
// chosenID does not survive filtering.
func (e *Engine) ManualReplace(catalog []perfume.Perfume, prefs perfume.Preferences, displayed []string, slotID, chosenID string) (perfume.Recommendation, bool) {
	excluded := make([]string, 0, len(displayed))
	for _, id := range displayed {
		if id != slotID {
			excluded = append(excluded, id)
		}
	}

	for _, r := range e.Recommend(catalog, prefs, excluded...) {
		if r.PerfumeID == chosenID {
			return r, true
		}
	}
	return perfume.Recommendation{}, false
}

// ReplaceSlot returns a copy of recs with the entry for slotID swapped for rec.
// The input is left untouched.
func ReplaceSlot(recs []perfume.Recommendation, slotID string, rec perfume.Recommendation) []perfume.Recommendation {
	out := slices.Clone(recs)
	for i := range out {
		if out[i].PerfumeID == slotID {
			out[i] = rec
		}
	}
	return out
}
