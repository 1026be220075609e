package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/perfumex/internal/advisor"
	"github.com/vijay-prabhu/perfumex/internal/database"
	"github.com/vijay-prabhu/perfumex/internal/expert"
	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

// Table writes data as a formatted table to stdout
func Table(data any) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data any) error {
	switch v := data.(type) {
	case []perfume.Perfume:
		return perfumesTable(w, v)
	case *perfume.Perfume:
		return perfumeDetail(w, v)
	case []advisor.RecommendationRow:
		return recommendationsTable(w, v)
	case *database.Stats:
		return statsTable(w, v)
	case perfume.Preferences:
		return preferencesDetail(w, v)
	case *advisor.Diagnosis:
		return diagnosisDetail(w, v)
	case *advisor.ReplaceResult:
		return replaceDetail(w, v)
	case expert.Tally:
		return tallyTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func perfumesTable(w io.Writer, perfumes []perfume.Perfume) error {
	if len(perfumes) == 0 {
		fmt.Fprintln(w, "No perfumes found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Brand", "Family", "Conc", "Gender", "Price", "Longevity")
	for _, p := range perfumes {
		if err := table.Append([]string{
			truncate(p.ID, 12),
			truncate(p.Name, 28),
			truncate(p.Brand, 22),
			p.ScentFamily,
			string(p.Concentration),
			string(p.Gender),
			formatPrice(p.Price),
			strconv.Itoa(p.Longevity) + "/5",
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func perfumeDetail(w io.Writer, p *perfume.Perfume) error {
	fmt.Fprintf(w, "Name:          %s\n", p.Name)
	fmt.Fprintf(w, "Brand:         %s\n", p.Brand)
	fmt.Fprintf(w, "ID:            %s\n", p.ID)
	fmt.Fprintf(w, "Family:        %s\n", p.ScentFamily)
	fmt.Fprintf(w, "Concentration: %s\n", p.Concentration)
	fmt.Fprintf(w, "Gender:        %s\n", p.Gender)
	fmt.Fprintf(w, "Price:         %s\n", formatPrice(p.Price))
	fmt.Fprintf(w, "Longevity:     %d/5\n", p.Longevity)
	fmt.Fprintf(w, "Sillage:       %d/5\n", p.Sillage)
	fmt.Fprintf(w, "Intensity:     %d/5\n", p.Intensity)
	fmt.Fprintf(w, "Occasion:      %s\n", p.Occasion)
	if len(p.Season) > 0 {
		seasons := make([]string, len(p.Season))
		for i, s := range p.Season {
			seasons[i] = string(s)
		}
		fmt.Fprintf(w, "Season:        %s\n", strings.Join(seasons, ", "))
	}
	if p.Image != "" {
		fmt.Fprintf(w, "Image:         %s\n", p.Image)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintf(w, "  Top:    %s\n", joinOrDash(p.TopNotes))
	fmt.Fprintf(w, "  Middle: %s\n", joinOrDash(p.MiddleNotes))
	fmt.Fprintf(w, "  Base:   %s\n", joinOrDash(p.BaseNotes))
	return nil
}

func recommendationsTable(w io.Writer, rows []advisor.RecommendationRow) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No perfumes match your preferences.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Score", "Name", "Brand", "Family", "Price", "ID")
	for _, r := range rows {
		name := truncate(r.Perfume.Name, 28)
		if r.Favorite {
			name += " ★"
		}
		if err := table.Append([]string{
			strconv.Itoa(r.Rank),
			strconv.Itoa(r.Score) + "%",
			name,
			truncate(r.Perfume.Brand, 22),
			r.Perfume.ScentFamily,
			formatPrice(r.Perfume.Price),
			truncate(r.Perfume.ID, 12),
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, r := range rows {
		fmt.Fprintf(w, "%d. %s\n", r.Rank, r.Explanation)
	}
	return nil
}

func replaceDetail(w io.Writer, r *advisor.ReplaceResult) error {
	fmt.Fprintf(w, "Replaced %s with %s (%s, %d%%)\n\n", r.Replaced, r.New.Perfume.ID, r.New.Perfume.Name, r.New.Score)
	return recommendationsTable(w, r.Shortlist)
}

// tallyStages is the order filter stages run in
var tallyStages = []expert.Stage{
	expert.StageExcluded,
	expert.StagePrice,
	expert.StageGender,
	expert.StageLikedFamily,
	expert.StageDislikedFamily,
	expert.StageLongevity,
	expert.StageDislikedNote,
}

func tallyTable(w io.Writer, t expert.Tally) error {
	fmt.Fprintf(w, "%d of %d perfumes pass the filters\n", t.Passed, t.Total)
	if t.Passed == t.Total {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Rejected at", "Perfumes")
	for _, stage := range tallyStages {
		if n := t.Rejected[stage]; n > 0 {
			if err := table.Append([]string{string(stage), strconv.Itoa(n)}); err != nil {
				return err
			}
		}
	}
	return table.Render()
}

func statsTable(w io.Writer, s *database.Stats) error {
	fmt.Fprintln(w, "Catalog Statistics")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Total perfumes:         %d\n", s.TotalPerfumes)
	fmt.Fprintf(w, "Brands:                 %d\n", s.Brands)
	fmt.Fprintf(w, "Favorites:              %d\n", s.Favorites)
	if s.TotalPerfumes > 0 {
		fmt.Fprintf(w, "Price range:            %s - %s\n", formatPrice(s.MinPrice), formatPrice(s.MaxPrice))
		fmt.Fprintf(w, "Average price:          %s\n", formatPrice(s.AvgPrice))
	}

	if len(s.ByFamily) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	table := tablewriter.NewWriter(w)
	table.Header("Family", "Perfumes")
	for _, fc := range s.ByFamily {
		if err := table.Append([]string{fc.Family, strconv.Itoa(fc.Count)}); err != nil {
			return err
		}
	}
	return table.Render()
}

func preferencesDetail(w io.Writer, p perfume.Preferences) error {
	fmt.Fprintln(w, "Preferences")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Liked families:     %s\n", joinOrDash(p.LikedFamilies))
	fmt.Fprintf(w, "Disliked families:  %s\n", joinOrDash(p.DislikedFamilies))
	fmt.Fprintf(w, "Price range:        %s - %s\n", formatPrice(p.MinPrice()), formatPrice(p.MaxPrice()))
	fmt.Fprintf(w, "Gender:             %s\n", joinOrDash(p.PreferredGender))
	fmt.Fprintf(w, "Favorite notes:     %s\n", joinOrDash(p.FavoriteNotes))
	fmt.Fprintf(w, "Disliked notes:     %s\n", joinOrDash(p.DislikedNotes))
	fmt.Fprintf(w, "Brands:             %s\n", joinOrDash(p.PreferredBrands))
	fmt.Fprintf(w, "Concentration:      %s\n", joinOrDash(p.PreferredConcentration))
	if p.MinLongevity > 0 {
		fmt.Fprintf(w, "Min longevity:      %d/5\n", p.MinLongevity)
	} else {
		fmt.Fprintln(w, "Min longevity:      -")
	}
	return nil
}

func diagnosisDetail(w io.Writer, d *advisor.Diagnosis) error {
	fmt.Fprintf(w, "%s (%s)\n", d.Perfume.Name, d.Perfume.Brand)
	fmt.Fprintln(w, strings.Repeat("-", 40))

	if !d.Verdict.Include {
		fmt.Fprintf(w, "Filtered out at stage %q: %s\n", d.Verdict.Stage, d.Verdict.Reason)
	} else {
		fmt.Fprintln(w, "Passes all filters")
	}

	if b := d.Breakdown; b != nil {
		fmt.Fprintln(w)
		table := tablewriter.NewWriter(w)
		table.Header("Component", "Points")
		favorites := "favorite notes"
		if len(b.MatchedFavorites) > 0 {
			favorites += " (" + strings.Join(b.MatchedFavorites, ", ") + ")"
		}
		for _, row := range [][]string{
			{favorites, strconv.Itoa(b.FavoritePoints)},
			{"concentration", strconv.Itoa(b.Concentration)},
			{"brand", strconv.Itoa(b.Brand)},
			{"longevity", strconv.Itoa(b.Longevity)},
			{"sillage", strconv.Itoa(b.Sillage)},
			{"raw total", strconv.Itoa(b.Raw)},
			{"score", strconv.Itoa(b.Final) + "%"},
		} {
			if err := table.Append(row); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if d.Explanation != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, d.Explanation)
	}

	if len(d.Notes) > 0 {
		fmt.Fprintln(w)
		for _, n := range d.Notes {
			fmt.Fprintf(w, "note: %s\n", n)
		}
	}
	return nil
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
