package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/perfumex/internal/output"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog",
	Long: `Search the catalog by name, brand, scent family or note.

Examples:
  perfumex search chanel
  perfumex search "pink pepper"
  perfumex search woody`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.db.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if outputFmt == "json" {
		return output.JSON(results)
	}

	if len(results) == 0 {
		fmt.Printf("No perfumes found matching: %s\n", query)
		return nil
	}

	fmt.Printf("Found %d perfume(s) matching: %s\n\n", len(results), query)
	return output.Output(outputFmt, results)
}
