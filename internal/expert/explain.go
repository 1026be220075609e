package expert

import (
	"fmt"
	"strings"

	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

// Language selects the phrasebook explanations are written in
type Language string

const (
	LanguageUkrainian Language = "uk"
	LanguageEnglish   Language = "en"
)

// Score bands for the intro sentence. Both are exclusive lower bounds.
const (
	idealBand = 80
	greatBand = 60
)

// Explanations are capped at this many notes
const (
	maxMatchedNotes = 3
	maxTopNotes     = 2
)

type phrasebook struct {
	introIdeal    string
	introGreat    string
	introOther    string
	longevity     map[int]string
	longevityElse string
	body          string // family, longevity phrase
	matched       string // matched favorites
	matchedSep    string
	topNotes      string // first top notes
	topNotesSep   string
	occasion      map[perfume.Occasion]string
	occasionElse  string
	closer        string // occasion phrase
}

var phrasebooks = map[Language]*phrasebook{
	LanguageUkrainian: {
		introIdeal: "Цей аромат — ваше ідеальне втілення! ",
		introGreat: "Чудовий вибір, що ідеально доповнить ваш образ. ",
		introOther: "Цікавий варіант з багатогранним звучанням. ",
		longevity: map[int]string{
			1: "тонкою та легкою",
			2: "помірною",
			3: "хорошою",
			4: "тривалою",
			5: "вражаючою",
		},
		longevityElse: "приємну",
		body:          "Цей %s аромат має %s стійкість. ",
		matched:       "Ви точно оціните ваші улюблені ноти: %s. ",
		matchedSep:    ", ",
		topNotes:      "Вас може зацікавити поєднання %s у верхніх нотах. ",
		topNotesSep:   " та ",
		occasion: map[perfume.Occasion]string{
			perfume.OccasionOffice: "ділових зустрічей",
			perfume.OccasionDate:   "романтичних вечорів",
			perfume.OccasionNight:  "вечірніх виходів",
		},
		occasionElse: "щоденного використання",
		closer:       "Найкраще підходить для %s.",
	},
	LanguageEnglish: {
		introIdeal: "This fragrance is your ideal match! ",
		introGreat: "A great choice that will complement your style. ",
		introOther: "An interesting option with a multifaceted character. ",
		longevity: map[int]string{
			1: "light and subtle",
			2: "moderate",
			3: "good",
			4: "long-lasting",
			5: "impressive",
		},
		longevityElse: "pleasant",
		body:          "This %s fragrance has %s longevity. ",
		matched:       "You will surely appreciate your favorite notes: %s. ",
		matchedSep:    ", ",
		topNotes:      "You may enjoy the combination of %s in the top notes. ",
		topNotesSep:   " and ",
		occasion: map[perfume.Occasion]string{
			perfume.OccasionOffice: "business meetings",
			perfume.OccasionDate:   "romantic evenings",
			perfume.OccasionNight:  "evening outings",
		},
		occasionElse: "everyday use",
		closer:       "Best suited for %s.",
	},
}

// SupportedLanguage reports whether explanations can be written in lang
func SupportedLanguage(lang Language) bool {
	_, ok := phrasebooks[lang]
	return ok
}

// introFor picks the opening sentence for a score
func (pb *phrasebook) introFor(score int) string {
	switch {
	case score > idealBand:
		return pb.introIdeal
	case score > greatBand:
		return pb.introGreat
	default:
		return pb.introOther
	}
}

// longevityPhrase describes a 1..5 longevity rating
func (pb *phrasebook) longevityPhrase(longevity int) string {
	if phrase, ok := pb.longevity[longevity]; ok {
		return phrase
	}
	return pb.longevityElse
}

// occasionPhrase names the setting a perfume suits
func (pb *phrasebook) occasionPhrase(o perfume.Occasion) string {
	if phrase, ok := pb.occasion[o]; ok {
		return phrase
	}
	return pb.occasionElse
}

// matchedNotes returns favorite notes, in preference order, that occur
// inside at least one of the perfume's notes
func matchedNotes(p *perfume.Perfume, favorites []string) []string {
	notes := p.Notes()
	var matched []string
	for _, fav := range favorites {
		for _, note := range notes {
			if noteMatchesFavorite(note, fav) {
				matched = append(matched, fav)
				break
			}
		}
	}
	return matched
}

// explain builds intro + body + occasion closer
func (pb *phrasebook) explain(p *perfume.Perfume, prefs *perfume.Preferences, score int) string {
	var sb strings.Builder

	sb.WriteString(pb.introFor(score))
	fmt.Fprintf(&sb, pb.body, strings.ToLower(p.ScentFamily), pb.longevityPhrase(p.Longevity))

	if matched := matchedNotes(p, prefs.FavoriteNotes); len(matched) > 0 {
		fmt.Fprintf(&sb, pb.matched, strings.Join(firstN(matched, maxMatchedNotes), pb.matchedSep))
	} else {
		fmt.Fprintf(&sb, pb.topNotes, strings.Join(firstN(p.TopNotes, maxTopNotes), pb.topNotesSep))
	}

	fmt.Fprintf(&sb, pb.closer, pb.occasionPhrase(p.Occasion))
	return sb.String()
}

func firstN(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

// Explain writes the rationale for a scored perfume
func (e *Engine) Explain(p perfume.Perfume, prefs perfume.Preferences, score int) string {
	return e.phrases.explain(&p, &prefs, score)
}
