package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage the favorites list",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show favorited product ids",
	RunE:  runFavoritesList,
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <productID>",
	Short: "Toggle a product in or out of favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesToggle,
}

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every favorite",
	RunE:  runFavoritesClear,
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(favoritesListCmd, favoritesToggleCmd, favoritesClearCmd)
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	items := app.Favorites.Snapshot()
	if len(items) == 0 {
		fmt.Println("💔 No favorites yet")
		return nil
	}
	fmt.Printf("❤️  %d favorite(s):\n", len(items))
	for _, id := range items {
		fmt.Printf("  %s\n", id)
	}
	return nil
}

func runFavoritesToggle(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	id := args[0]
	if err := app.Favorites.Toggle(id); err != nil {
		return err
	}
	if app.Favorites.Has(id) {
		fmt.Printf("❤️  Added %s (%d total)\n", id, app.Favorites.Count())
	} else {
		fmt.Printf("💔 Removed %s (%d total)\n", id, app.Favorites.Count())
	}
	return nil
}

func runFavoritesClear(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	if err := app.Favorites.Clear(); err != nil {
		return err
	}
	fmt.Println("💔 Favorites cleared")
	return nil
}
