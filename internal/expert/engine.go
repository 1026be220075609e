// Package expert ranks a perfume catalog against a preference profile and
// explains each match.
//
// The engine is a pure function of its inputs: it never mutates the catalog,
// preferences or exclusion list and allocates a fresh result on every call,
// so one Engine may be shared between goroutines.
package expert

import (
	"sort"

	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

// Options configures an Engine
type Options struct {
	Language Language // Explanation language, defaults to Ukrainian
}

// Engine filters, scores and explains perfumes
type Engine struct {
	lang    Language
	phrases *phrasebook
}

// New creates an Engine. Unknown languages fall back to Ukrainian.
func New(opts Options) *Engine {
	lang := opts.Language
	pb, ok := phrasebooks[lang]
	if !ok {
		lang = LanguageUkrainian
		pb = phrasebooks[lang]
	}
	return &Engine{lang: lang, phrases: pb}
}

// Language returns the language explanations are written in
func (e *Engine) Language() Language {
	return e.lang
}

type scored struct {
	item  *perfume.Perfume
	score int
}

// Recommend filters the catalog, scores the survivors and returns them
// ranked by descending score. Equal scores keep catalog order. The result
// is never nil.
func (e *Engine) Recommend(catalog []perfume.Perfume, prefs perfume.Preferences, excluded ...string) []perfume.Recommendation {
	set := exclusionSet(excluded)

	candidates := make([]scored, 0, len(catalog))
	for i := range catalog {
		item := &catalog[i]
		if !evaluate(item, &prefs, set).Include {
			continue
		}
		candidates = append(candidates, scored{item: item, score: breakdown(item, &prefs).Final})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	recs := make([]perfume.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		recs = append(recs, perfume.Recommendation{
			PerfumeID:   c.item.ID,
			Score:       c.score,
			Explanation: e.phrases.explain(c.item, &prefs, c.score),
		})
	}
	return recs
}

// Evaluate reports which filter stage, if any, rejects a perfume
func (e *Engine) Evaluate(p perfume.Perfume, prefs perfume.Preferences, excluded ...string) Verdict {
	return evaluate(&p, &prefs, exclusionSet(excluded))
}

// Top returns at most n best recommendations
func (e *Engine) Top(catalog []perfume.Perfume, prefs perfume.Preferences, n int, excluded ...string) []perfume.Recommendation {
	recs := e.Recommend(catalog, prefs, excluded...)
	if n >= 0 && len(recs) > n {
		recs = recs[:n]
	}
	return recs
}
