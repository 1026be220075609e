package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/perfumex/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Long: `Display aggregate statistics about the catalog.

With --match, also show how many perfumes each filter stage removes for
your preferences.

Examples:
  perfumex stats
  perfumex stats --match
  perfumex stats --match --max-price 5000`,
	RunE: runStats,
}

var statsMatch bool

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsMatch, "match", false, "Include a per-stage filter breakdown for your preferences")
	addPreferenceFlags(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.db.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	if !statsMatch {
		return output.Output(outputFmt, stats)
	}

	prefs, err := resolvePreferences(cmd, a.cfg)
	if err != nil {
		return err
	}
	tally, err := a.advisor.Tally(ctx, prefs)
	if err != nil {
		return err
	}

	if outputFmt == "json" {
		return output.JSON(map[string]any{
			"catalog": stats,
			"match":   tally,
		})
	}

	if err := output.Output(outputFmt, stats); err != nil {
		return err
	}
	fmt.Println()
	return output.Output(outputFmt, tally)
}
