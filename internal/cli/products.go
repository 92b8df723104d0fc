package cli

import (
	"context"
	"fmt"

	"github.com/matthieukhl/shopfront/internal/services"
	"github.com/matthieukhl/shopfront/internal/types"
	"github.com/spf13/cobra"
)

var (
	searchQuery    string
	searchCategory string
	searchMin      float64
	searchMax      float64
	searchSort     string
	searchPage     int
	searchPageSize int
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the store catalog",
	RunE:  runProducts,
}

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show one product in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runProduct,
}

func init() {
	rootCmd.AddCommand(productsCmd, productCmd)

	productsCmd.Flags().StringVar(&searchQuery, "search", "", "Title search term")
	productsCmd.Flags().StringVar(&searchCategory, "category", "", "Category filter")
	productsCmd.Flags().Float64Var(&searchMin, "min", 0, "Minimum price")
	productsCmd.Flags().Float64Var(&searchMax, "max", 0, "Maximum price")
	productsCmd.Flags().StringVar(&searchSort, "sort", "", "Sort: price_asc, price_desc, latest, bestsellers")
	productsCmd.Flags().IntVar(&searchPage, "page", 1, "Page number")
	productsCmd.Flags().IntVar(&searchPageSize, "page-size", 12, "Items per page")
}

func runProducts(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	params := services.SearchParams{
		Query:    searchQuery,
		Category: searchCategory,
		Sort:     services.SortKey(searchSort),
		Page:     searchPage,
		PageSize: searchPageSize,
	}
	if cmd.Flags().Changed("min") {
		params.MinPrice = &searchMin
	}
	if cmd.Flags().Changed("max") {
		params.MaxPrice = &searchMax
	}
	page, err := app.Products.Search(context.Background(), params)
	if err != nil {
		return err
	}
	if len(page.Items) == 0 {
		fmt.Println("📭 No products matched")
		return nil
	}
	fmt.Printf("🛍️  Page %d/%d (%d items total)\n\n", page.Page, page.TotalPages, page.TotalItems)
	for _, p := range page.Items {
		fmt.Printf("  %-36s  %8.2f  %-12s  ⭐ %.1f (%d)\n", p.Title, p.Price, p.Category, p.Rating.Rate, p.Rating.Count)
		fmt.Printf("    id: %s\n", p.ID)
	}
	if page.HasMore {
		fmt.Printf("\n💡 More results: --page %d\n", page.Page+1)
	}
	return nil
}

func runProduct(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	detail, err := app.Products.GetByID(context.Background(), args[0])
	if err != nil {
		return err
	}
	printDetail(detail)
	return nil
}

func printDetail(d types.ProductDetail) {
	fmt.Printf("📦 %s (%.2f)\n", d.Title, d.Price)
	fmt.Printf("   Category: %s\n", d.Category)
	if d.Description != "" {
		fmt.Printf("   %s\n", d.Description)
	}
	fmt.Printf("   Rating: ⭐ %.1f (%d reviews)\n", d.Rating.Rate, d.Rating.Count)
	switch {
	case d.IsOutOfStock:
		fmt.Println("   ❌ Out of stock")
	case d.IsLowStock:
		fmt.Printf("   ⚠️  Low stock: only %d left\n", d.InventoryAvailable)
	default:
		fmt.Printf("   ✅ In stock (%d available)\n", d.InventoryAvailable)
	}
	if d.Status != "" {
		fmt.Printf("   Approval: %s\n", d.Status)
	}
}
