package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/perfumex/internal/advisor"
	"github.com/vijay-prabhu/perfumex/internal/output"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend perfumes for your preferences",
	Long: `Rank the catalog against your preferences and show the best matches.

The results become the shortlist that 'replace' and 'alternatives' work on.
Use --all to list every matching perfume without touching the shortlist.

Examples:
  perfumex recommend                       # Top matches from the config profile
  perfumex recommend --top 5               # Show five instead of display_count
  perfumex recommend --like Woody --note Oud --max-price 9000
  perfumex recommend --all -o json         # Full ranking as JSON`,
	RunE: runRecommend,
}

var alternativesCmd = &cobra.Command{
	Use:   "alternatives",
	Short: "List candidates that are not on the shortlist",
	Long: `Rank every perfume that passes your filters and is not currently on
the shortlist. These are the candidates 'replace --with' accepts.

Examples:
  perfumex alternatives
  perfumex alternatives -o json`,
	RunE: runAlternatives,
}

var replaceCmd = &cobra.Command{
	Use:   "replace <perfume-id>",
	Short: "Replace one perfume on the shortlist",
	Long: `Swap one perfume on the shortlist for another.

Without --with, the best perfume that is not already displayed takes the
slot. With --with, the chosen perfume takes it, provided it passes your
filters and is not shown in another slot.

Examples:
  perfumex replace 3
  perfumex replace 3 --with 11`,
	Args: cobra.ExactArgs(1),
	RunE: runReplace,
}

var whyCmd = &cobra.Command{
	Use:   "why <perfume-id>",
	Short: "Explain how one perfume fares against your preferences",
	Long: `Show which filter stage rejects a perfume, or its score breakdown and
explanation when it passes.

Examples:
  perfumex why 4
  perfumex why 4 --max-price 20000`,
	Args: cobra.ExactArgs(1),
	RunE: runWhy,
}

var (
	recommendTop     int
	recommendAll     bool
	recommendExclude []string
	replaceWith      string
)

func init() {
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(alternativesCmd)
	rootCmd.AddCommand(replaceCmd)
	rootCmd.AddCommand(whyCmd)

	recommendCmd.Flags().IntVarP(&recommendTop, "top", "n", 0, "Number of perfumes to show (default: recommend.display_count)")
	recommendCmd.Flags().BoolVar(&recommendAll, "all", false, "Show the full ranking without saving a shortlist")
	recommendCmd.Flags().StringSliceVar(&recommendExclude, "exclude", nil, "Perfume IDs to leave out")
	replaceCmd.Flags().StringVar(&replaceWith, "with", "", "Perfume ID to put in the slot instead of the best remaining one")

	for _, cmd := range []*cobra.Command{recommendCmd, alternativesCmd, replaceCmd, whyCmd} {
		addPreferenceFlags(cmd)
	}
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	prefs, err := resolvePreferences(cmd, a.cfg)
	if err != nil {
		return err
	}

	opts := advisor.RecommendOptions{
		Count:   a.cfg.Recommend.DisplayCount,
		Exclude: recommendExclude,
		Save:    !recommendAll,
	}
	if recommendTop > 0 {
		opts.Count = recommendTop
	}
	if recommendAll {
		opts.Count = 0
	}

	rows, err := a.advisor.Recommend(ctx, prefs, opts)
	if err != nil {
		return fmt.Errorf("failed to recommend: %w", err)
	}

	if err := output.Output(outputFmt, rows); err != nil {
		return err
	}
	if outputFmt == "json" {
		return nil
	}

	t := NewTerminal()
	if len(rows) == 0 {
		tally, err := a.advisor.Tally(ctx, prefs)
		if err != nil {
			return err
		}
		fmt.Println()
		if err := output.Output(outputFmt, tally); err != nil {
			return err
		}
		t.Hint("Loosen a preference, e.g. --max-price or --like, and try again.")
		return nil
	}

	best := rows[0]
	fmt.Println()
	fmt.Printf("Best match: %s %s\n", best.Perfume.Name,
		t.Color(ScoreColor(best.Score), fmt.Sprintf("%d%%", best.Score)))
	if !recommendAll {
		t.Hint("Use 'perfumex replace <id>' to swap a perfume or 'perfumex alternatives' to browse.")
	}
	return nil
}

func runAlternatives(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	prefs, err := resolvePreferences(cmd, a.cfg)
	if err != nil {
		return err
	}

	rows, err := a.advisor.Alternatives(ctx, prefs)
	if err != nil {
		return fmt.Errorf("failed to list alternatives: %w", err)
	}

	return output.Output(outputFmt, rows)
}

func runReplace(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	prefs, err := resolvePreferences(cmd, a.cfg)
	if err != nil {
		return err
	}

	result, err := a.advisor.Replace(ctx, prefs, args[0], replaceWith)
	if err != nil {
		return fmt.Errorf("failed to replace: %w", err)
	}

	return output.Output(outputFmt, result)
}

func runWhy(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	prefs, err := resolvePreferences(cmd, a.cfg)
	if err != nil {
		return err
	}

	d, err := a.advisor.Diagnose(ctx, prefs, args[0])
	if err != nil {
		return err
	}

	return output.Output(outputFmt, d)
}
