package perfume

import "strings"

// Gender is the audience a perfume is marketed to
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderUnisex Gender = "Unisex"
)

// Concentration is the aromatic oil density class
type Concentration string

const (
	ConcentrationEDP     Concentration = "EDP"
	ConcentrationEDT     Concentration = "EDT"
	ConcentrationEDC     Concentration = "EDC"
	ConcentrationParfum  Concentration = "Parfum"
	ConcentrationCologne Concentration = "Cologne"
	ConcentrationExtrait Concentration = "Extrait"
)

// Season is a time of year a perfume suits
type Season string

const (
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonAutumn Season = "Autumn"
	SeasonWinter Season = "Winter"
)

// Occasion is the setting a perfume is best worn in
type Occasion string

const (
	OccasionDay     Occasion = "Day"
	OccasionNight   Occasion = "Night"
	OccasionOffice  Occasion = "Office"
	OccasionDate    Occasion = "Date"
	OccasionSpecial Occasion = "Special"
)

// Families lists the scent families the catalog is browsed by.
// ScentFamily itself is an open set; these are only the common ones.
var Families = []string{
	"Floral", "Woody", "Oriental", "Fresh", "Citrus", "Spicy", "Leather", "Gourmand",
}

// Perfume is a single catalog record
type Perfume struct {
	ID            string        `json:"id" yaml:"id" validate:"required"`
	Name          string        `json:"name" yaml:"name" validate:"required"`
	Brand         string        `json:"brand" yaml:"brand" validate:"required"`
	Gender        Gender        `json:"gender" yaml:"gender" validate:"oneof=Male Female Unisex"`
	Concentration Concentration `json:"concentration" yaml:"concentration" validate:"oneof=EDP EDT EDC Parfum Cologne Extrait"`
	ScentFamily   string        `json:"scentFamily" yaml:"scentFamily" validate:"required"`
	TopNotes      []string      `json:"topNotes" yaml:"topNotes"`
	MiddleNotes   []string      `json:"middleNotes" yaml:"middleNotes"`
	BaseNotes     []string      `json:"baseNotes" yaml:"baseNotes"`
	Longevity     int           `json:"longevity" yaml:"longevity" validate:"min=1,max=5"`
	Sillage       int           `json:"sillage" yaml:"sillage" validate:"min=1,max=5"`
	Intensity     int           `json:"intensity" yaml:"intensity" validate:"min=1,max=5"`
	Price         float64       `json:"price" yaml:"price" validate:"gte=0"`
	Season        []Season      `json:"season" yaml:"season" validate:"dive,oneof=Spring Summer Autumn Winter"`
	Occasion      Occasion      `json:"occasion" yaml:"occasion" validate:"oneof=Day Night Office Date Special"`
	Image         string        `json:"image,omitempty" yaml:"image,omitempty"`
}

// Notes returns top, middle and base notes in pyramid order
func (p *Perfume) Notes() []string {
	notes := make([]string, 0, len(p.TopNotes)+len(p.MiddleNotes)+len(p.BaseNotes))
	notes = append(notes, p.TopNotes...)
	notes = append(notes, p.MiddleNotes...)
	notes = append(notes, p.BaseNotes...)
	return notes
}

// Preferences is the profile a catalog is ranked against.
// It carries no state between calls.
type Preferences struct {
	LikedFamilies          []string   `json:"likedFamilies"`
	DislikedFamilies       []string   `json:"dislikedFamilies"`
	PriceRange             [2]float64 `json:"priceRange"`
	PreferredGender        []string   `json:"preferredGender"`
	FavoriteNotes          []string   `json:"favoriteNotes"`
	DislikedNotes          []string   `json:"dislikedNotes"`
	PreferredBrands        []string   `json:"preferredBrands"`
	MinLongevity           int        `json:"minLongevity"`
	PreferredConcentration []string   `json:"preferredConcentration"`
}

// MinPrice returns the lower price bound. The ranking engine does not enforce it.
func (p Preferences) MinPrice() float64 {
	return p.PriceRange[0]
}

// MaxPrice returns the price ceiling
func (p Preferences) MaxPrice() float64 {
	return p.PriceRange[1]
}

// Recommendation is one ranked, explained match
type Recommendation struct {
	PerfumeID   string `json:"perfumeId"`
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// Index maps perfume IDs to catalog entries
func Index(catalog []Perfume) map[string]*Perfume {
	idx := make(map[string]*Perfume, len(catalog))
	for i := range catalog {
		idx[catalog[i].ID] = &catalog[i]
	}
	return idx
}

// CleanList trims entries and drops empty ones. Used on user input before
// it reaches a Preferences value; an empty disliked note would otherwise
// match every perfume.
func CleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
