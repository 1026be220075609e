package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/perfumex/internal/catalog"
	"github.com/vijay-prabhu/perfumex/internal/database"
	"github.com/vijay-prabhu/perfumex/internal/logging"
)

var perfumeExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the catalog to JSON or YAML",
	Long: `Export the catalog in catalog order.

Without a file the catalog is written to stdout. The format follows the
file extension unless --format is given.

Examples:
  perfumex perfume export > catalog.json
  perfumex perfume export catalog.yaml
  perfumex perfume export --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPerfumeExport,
}

var perfumeImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the catalog with a JSON or YAML file",
	Long: `Replace the whole catalog with the perfumes in a file.

Every record is validated before anything is written. Favorites and the
shortlist are cleared because they refer to the old catalog.

Examples:
  perfumex perfume import catalog.json
  perfumex perfume import catalog.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPerfumeImport,
}

var perfumeResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the built-in catalog",
	Long: `Replace the catalog with the built-in one. Favorites and the shortlist
are cleared.`,
	RunE: runPerfumeReset,
}

var (
	transferFormat string
	resetConfirm   bool
)

func init() {
	perfumeCmd.AddCommand(perfumeExportCmd)
	perfumeCmd.AddCommand(perfumeImportCmd)
	perfumeCmd.AddCommand(perfumeResetCmd)

	perfumeExportCmd.Flags().StringVar(&transferFormat, "format", "", "Catalog format (json, yaml)")
	perfumeResetCmd.Flags().BoolVarP(&resetConfirm, "yes", "y", false, "Skip the confirmation prompt")
}

func runPerfumeExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	format, err := catalogFormat(transferFormat, path)
	if err != nil {
		return err
	}

	perfumes, err := a.db.ListPerfumes(ctx, database.ListOptions{})
	if err != nil {
		return fmt.Errorf("failed to list perfumes: %w", err)
	}

	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	if err := catalog.Write(w, format, perfumes); err != nil {
		return err
	}

	if path != "" {
		NewTerminal().Success("Exported %d perfumes to %s", len(perfumes), path)
	}
	return nil
}

func runPerfumeImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	perfumes, err := catalog.LoadFile(args[0])
	if err != nil {
		return err
	}

	if err := a.db.ReplaceCatalog(ctx, perfumes); err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}
	logging.Info().Str("file", args[0]).Int("perfumes", len(perfumes)).Msg("catalog imported")

	NewTerminal().Success("Imported %d perfumes from %s", len(perfumes), args[0])
	return nil
}

func runPerfumeReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := NewTerminal()

	if !resetConfirm {
		if !t.IsTerminal {
			return fmt.Errorf("refusing to reset without --yes when not attached to a terminal")
		}
		fmt.Print("Replace the catalog with the built-in one? Favorites and the shortlist are cleared. [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.advisor.ResetCatalog(ctx)
	if err != nil {
		return err
	}

	t.Success("Catalog reset: %d perfumes", n)
	return nil
}
