package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/perfumex/internal/config"
	"github.com/vijay-prabhu/perfumex/internal/output"
	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show the effective preference profile",
	Long: `Show the preference profile recommendations are ranked against.

The profile comes from the [preferences] section of the config file,
with any preference flags given on the command line applied on top.

Examples:
  perfumex prefs
  perfumex prefs --like Woody --max-price 8000
  perfumex prefs -o json`,
	RunE: runPrefs,
}

// preferenceFlags holds command-line overrides of the configured profile
var preferenceFlags struct {
	like          []string
	dislike       []string
	note          []string
	avoidNote     []string
	brand         []string
	gender        []string
	concentration []string
	minPrice      float64
	maxPrice      float64
	minLongevity  int
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	addPreferenceFlags(prefsCmd)
}

// addPreferenceFlags registers the preference override flags on a command
func addPreferenceFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceVar(&preferenceFlags.like, "like", nil, "Liked scent families (replaces configured list)")
	f.StringSliceVar(&preferenceFlags.dislike, "dislike", nil, "Disliked scent families")
	f.StringSliceVar(&preferenceFlags.note, "note", nil, "Favorite notes")
	f.StringSliceVar(&preferenceFlags.avoidNote, "avoid-note", nil, "Disliked notes")
	f.StringSliceVar(&preferenceFlags.brand, "brand", nil, "Preferred brands")
	f.StringSliceVar(&preferenceFlags.gender, "gender", nil, "Preferred genders (Male, Female, Unisex)")
	f.StringSliceVar(&preferenceFlags.concentration, "concentration", nil, "Preferred concentrations (EDP, EDT, ...)")
	f.Float64Var(&preferenceFlags.minPrice, "min-price", 0, "Lower price bound (recorded, not applied)")
	f.Float64Var(&preferenceFlags.maxPrice, "max-price", 0, "Price ceiling")
	f.IntVar(&preferenceFlags.minLongevity, "min-longevity", 0, "Minimum longevity 1-5 (0 disables)")
}

// resolvePreferences layers the flags that were set over the configured profile
func resolvePreferences(cmd *cobra.Command, cfg *config.Config) (perfume.Preferences, error) {
	prefs := cfg.Preferences.Profile()
	f := cmd.Flags()

	lists := []struct {
		flag   string
		values []string
		target *[]string
	}{
		{"like", preferenceFlags.like, &prefs.LikedFamilies},
		{"dislike", preferenceFlags.dislike, &prefs.DislikedFamilies},
		{"note", preferenceFlags.note, &prefs.FavoriteNotes},
		{"avoid-note", preferenceFlags.avoidNote, &prefs.DislikedNotes},
		{"brand", preferenceFlags.brand, &prefs.PreferredBrands},
		{"gender", preferenceFlags.gender, &prefs.PreferredGender},
		{"concentration", preferenceFlags.concentration, &prefs.PreferredConcentration},
	}
	for _, l := range lists {
		if f.Changed(l.flag) {
			*l.target = perfume.CleanList(l.values)
		}
	}

	if f.Changed("min-price") {
		prefs.PriceRange[0] = preferenceFlags.minPrice
	}
	if f.Changed("max-price") {
		prefs.PriceRange[1] = preferenceFlags.maxPrice
	}
	if f.Changed("min-longevity") {
		prefs.MinLongevity = preferenceFlags.minLongevity
	}

	if err := config.ValidateProfile(prefs); err != nil {
		return perfume.Preferences{}, fmt.Errorf("invalid preferences: %w", err)
	}

	return prefs, nil
}

func runPrefs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	prefs, err := resolvePreferences(cmd, cfg)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, prefs)
}
