package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/perfumex/internal/database"
	"github.com/vijay-prabhu/perfumex/internal/output"
)

var favoriteCmd = &cobra.Command{
	Use:     "favorite",
	Aliases: []string{"fav"},
	Short:   "Manage favorite perfumes",
	Long: `Mark perfumes you like. Favorites are starred in recommendations.

Examples:
  perfumex favorite add 4
  perfumex favorite list
  perfumex favorite remove 4`,
}

var favoriteAddCmd = &cobra.Command{
	Use:   "add <perfume-id>...",
	Short: "Add perfumes to favorites",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFavoriteAdd,
}

var favoriteRemoveCmd = &cobra.Command{
	Use:     "remove <perfume-id>...",
	Aliases: []string{"rm"},
	Short:   "Remove perfumes from favorites",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runFavoriteRemove,
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite perfumes, most recent first",
	RunE:  runFavoriteList,
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
	favoriteCmd.AddCommand(favoriteAddCmd)
	favoriteCmd.AddCommand(favoriteRemoveCmd)
	favoriteCmd.AddCommand(favoriteListCmd)
}

func runFavoriteAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	t := NewTerminal()
	for _, id := range args {
		if err := a.db.AddFavorite(ctx, id); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return fmt.Errorf("perfume not found: %s", id)
			}
			return fmt.Errorf("failed to add favorite: %w", err)
		}
		t.Success("★ %s", id)
	}
	return nil
}

func runFavoriteRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, id := range args {
		if err := a.db.RemoveFavorite(ctx, id); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return fmt.Errorf("not a favorite: %s", id)
			}
			return fmt.Errorf("failed to remove favorite: %w", err)
		}
		fmt.Printf("Removed: %s\n", id)
	}
	return nil
}

func runFavoriteList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	favorites, err := a.db.ListFavorites(ctx)
	if err != nil {
		return fmt.Errorf("failed to list favorites: %w", err)
	}

	if len(favorites) == 0 && outputFmt != "json" {
		fmt.Println("No favorites yet. Add one with 'perfumex favorite add <perfume-id>'.")
		return nil
	}

	return output.Output(outputFmt, favorites)
}
