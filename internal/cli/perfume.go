package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/perfumex/internal/catalog"
	"github.com/vijay-prabhu/perfumex/internal/database"
	"github.com/vijay-prabhu/perfumex/internal/output"
	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

var perfumeCmd = &cobra.Command{
	Use:     "perfume",
	Aliases: []string{"perfumes", "catalog"},
	Short:   "Manage the perfume catalog",
}

var perfumeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List perfumes in catalog order",
	Long: `List perfumes in catalog order, newest additions first.

Examples:
  perfumex perfume list
  perfumex perfume list --family Floral
  perfumex perfume list --limit 5 -o json`,
	RunE: runPerfumeList,
}

var perfumeShowCmd = &cobra.Command{
	Use:   "show <perfume-id>",
	Short: "Show perfume details",
	Args:  cobra.ExactArgs(1),
	RunE:  runPerfumeShow,
}

var perfumeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a perfume to the front of the catalog",
	Long: `Add a perfume to the front of the catalog.

Examples:
  perfumex perfume add --name "Velvet Rose" --brand "Maison" --gender Female \
    --concentration EDP --family Floral --top Bergamot --middle Rose,Jasmine \
    --base Musk --longevity 4 --sillage 3 --intensity 3 --price 4200 \
    --season Spring,Summer --occasion Date`,
	RunE: runPerfumeAdd,
}

var perfumeEditCmd = &cobra.Command{
	Use:   "edit <perfume-id>",
	Short: "Change fields of a perfume",
	Long: `Change fields of a perfume. Only the flags given are applied.

Examples:
  perfumex perfume edit 4 --price 5100
  perfumex perfume edit 4 --base Vanilla,Patchouli`,
	Args: cobra.ExactArgs(1),
	RunE: runPerfumeEdit,
}

var perfumeDeleteCmd = &cobra.Command{
	Use:     "delete <perfume-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a perfume",
	Args:    cobra.ExactArgs(1),
	RunE:    runPerfumeDelete,
}

var (
	perfumeListFamily string
	perfumeListLimit  int
)

// perfumeFields holds the field flags shared by add and edit
var perfumeFields struct {
	id            string
	name          string
	brand         string
	gender        string
	concentration string
	family        string
	top           []string
	middle        []string
	base          []string
	longevity     int
	sillage       int
	intensity     int
	price         float64
	season        []string
	occasion      string
	image         string
}

func init() {
	rootCmd.AddCommand(perfumeCmd)
	perfumeCmd.AddCommand(perfumeListCmd)
	perfumeCmd.AddCommand(perfumeShowCmd)
	perfumeCmd.AddCommand(perfumeAddCmd)
	perfumeCmd.AddCommand(perfumeEditCmd)
	perfumeCmd.AddCommand(perfumeDeleteCmd)

	perfumeListCmd.Flags().StringVar(&perfumeListFamily, "family", "", "Only list this scent family")
	perfumeListCmd.Flags().IntVar(&perfumeListLimit, "limit", 0, "Maximum number of results")

	addPerfumeFieldFlags(perfumeAddCmd)
	addPerfumeFieldFlags(perfumeEditCmd)
	perfumeAddCmd.Flags().StringVar(&perfumeFields.id, "id", "", "Perfume ID (default: generated)")
}

func addPerfumeFieldFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&perfumeFields.name, "name", "", "Name")
	f.StringVar(&perfumeFields.brand, "brand", "", "Brand")
	f.StringVar(&perfumeFields.gender, "gender", "", "Gender (Male, Female, Unisex)")
	f.StringVar(&perfumeFields.concentration, "concentration", "", "Concentration (EDP, EDT, EDC, Parfum, Cologne, Extrait)")
	f.StringVar(&perfumeFields.family, "family", "", "Scent family")
	f.StringSliceVar(&perfumeFields.top, "top", nil, "Top notes")
	f.StringSliceVar(&perfumeFields.middle, "middle", nil, "Middle notes")
	f.StringSliceVar(&perfumeFields.base, "base", nil, "Base notes")
	f.IntVar(&perfumeFields.longevity, "longevity", 0, "Longevity 1-5")
	f.IntVar(&perfumeFields.sillage, "sillage", 0, "Sillage 1-5")
	f.IntVar(&perfumeFields.intensity, "intensity", 0, "Intensity 1-5")
	f.Float64Var(&perfumeFields.price, "price", 0, "Price")
	f.StringSliceVar(&perfumeFields.season, "season", nil, "Seasons (Spring, Summer, Autumn, Winter)")
	f.StringVar(&perfumeFields.occasion, "occasion", "", "Occasion (Day, Night, Office, Date, Special)")
	f.StringVar(&perfumeFields.image, "image", "", "Image URL")
}

// applyPerfumeFields copies the field flags that were set onto p
func applyPerfumeFields(cmd *cobra.Command, p *perfume.Perfume) {
	f := cmd.Flags()
	if f.Changed("name") {
		p.Name = perfumeFields.name
	}
	if f.Changed("brand") {
		p.Brand = perfumeFields.brand
	}
	if f.Changed("gender") {
		p.Gender = perfume.Gender(perfumeFields.gender)
	}
	if f.Changed("concentration") {
		p.Concentration = perfume.Concentration(perfumeFields.concentration)
	}
	if f.Changed("family") {
		p.ScentFamily = perfumeFields.family
	}
	if f.Changed("top") {
		p.TopNotes = perfume.CleanList(perfumeFields.top)
	}
	if f.Changed("middle") {
		p.MiddleNotes = perfume.CleanList(perfumeFields.middle)
	}
	if f.Changed("base") {
		p.BaseNotes = perfume.CleanList(perfumeFields.base)
	}
	if f.Changed("longevity") {
		p.Longevity = perfumeFields.longevity
	}
	if f.Changed("sillage") {
		p.Sillage = perfumeFields.sillage
	}
	if f.Changed("intensity") {
		p.Intensity = perfumeFields.intensity
	}
	if f.Changed("price") {
		p.Price = perfumeFields.price
	}
	if f.Changed("season") {
		seasons := perfume.CleanList(perfumeFields.season)
		p.Season = make([]perfume.Season, len(seasons))
		for i, s := range seasons {
			p.Season[i] = perfume.Season(s)
		}
	}
	if f.Changed("occasion") {
		p.Occasion = perfume.Occasion(perfumeFields.occasion)
	}
	if f.Changed("image") {
		p.Image = perfumeFields.image
	}
}

func runPerfumeList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	perfumes, err := a.db.ListPerfumes(ctx, database.ListOptions{
		Family: perfumeListFamily,
		Limit:  perfumeListLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to list perfumes: %w", err)
	}

	return output.Output(outputFmt, perfumes)
}

func runPerfumeShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.db.GetPerfume(ctx, args[0])
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if p == nil {
		return fmt.Errorf("perfume not found: %s", args[0])
	}

	return output.Output(outputFmt, p)
}

func runPerfumeAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	p := &perfume.Perfume{ID: perfumeFields.id}
	applyPerfumeFields(cmd, p)

	// Validation requires an ID; the store generates one when it is empty
	check := *p
	if check.ID == "" {
		check.ID = "new"
	}
	if err := perfume.Validate(&check); err != nil {
		return fmt.Errorf("invalid perfume: %w", err)
	}

	if p.ID != "" {
		existing, err := a.db.GetPerfume(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("perfume %s already exists, use 'perfumex perfume edit'", p.ID)
		}
	}

	if err := a.db.CreatePerfume(ctx, p); err != nil {
		return fmt.Errorf("failed to add perfume: %w", err)
	}

	if outputFmt == "json" {
		return output.JSON(p)
	}
	NewTerminal().Success("Added: %s (%s)", p.Name, p.ID)
	return nil
}

func runPerfumeEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.db.GetPerfume(ctx, args[0])
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if p == nil {
		return fmt.Errorf("perfume not found: %s", args[0])
	}

	applyPerfumeFields(cmd, p)
	if err := perfume.Validate(p); err != nil {
		return fmt.Errorf("invalid perfume: %w", err)
	}

	if err := a.db.UpdatePerfume(ctx, p); err != nil {
		return fmt.Errorf("failed to update perfume: %w", err)
	}

	if outputFmt == "json" {
		return output.JSON(p)
	}
	NewTerminal().Success("Updated: %s (%s)", p.Name, p.ID)
	return nil
}

func runPerfumeDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.db.DeletePerfume(ctx, args[0]); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("perfume not found: %s", args[0])
		}
		return fmt.Errorf("failed to delete perfume: %w", err)
	}

	if outputFmt == "json" {
		return output.JSON(map[string]string{"deleted": args[0]})
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", args[0])
	return nil
}

// catalogFormat resolves an explicit --format flag or falls back to the file extension
func catalogFormat(flag, path string) (catalog.Format, error) {
	if flag != "" {
		return catalog.ParseFormat(flag)
	}
	return catalog.FormatFromPath(path), nil
}
