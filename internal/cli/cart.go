package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matthieukhl/shopfront/internal/services"
	"github.com/matthieukhl/shopfront/internal/types"
	"github.com/spf13/cobra"
)

// ErrOutOfStock blocks an add-to-cart whose click-time re-fetch reports no
// available inventory.
var ErrOutOfStock = errors.New("this item is out of stock")

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active cart",
	RunE:  runCartShow,
}

var addQty int

var cartAddCmd = &cobra.Command{
	Use:   "add <productID>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartAdd,
}

var updateQty int

var cartUpdateCmd = &cobra.Command{
	Use:   "update <productID>",
	Short: "Change the quantity of a cart line",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartUpdate,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <productID>",
	Short: "Remove a product from the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var (
	checkoutAddress string
	checkoutPayment string
)

var cartCheckoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Check out the active cart",
	RunE:  runCartCheckout,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the active cart",
	RunE:  runCartClear,
}

var (
	historyOrdersOnly bool
	historyFrom       string
	historyTo         string
)

var cartHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List past carts and orders",
	RunE:  runCartHistory,
}

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartUpdateCmd, cartRemoveCmd, cartCheckoutCmd, cartClearCmd, cartHistoryCmd)

	cartAddCmd.Flags().IntVar(&addQty, "qty", 1, "Quantity to add")
	cartUpdateCmd.Flags().IntVar(&updateQty, "qty", 1, "New quantity")
	_ = cartUpdateCmd.MarkFlagRequired("qty")

	cartCheckoutCmd.Flags().StringVar(&checkoutAddress, "address", "", "Delivery address")
	cartCheckoutCmd.Flags().StringVar(&checkoutPayment, "payment", "card", "Payment method: card, cod or bank")
	_ = cartCheckoutCmd.MarkFlagRequired("address")

	cartHistoryCmd.Flags().BoolVar(&historyOrdersOnly, "orders-only", false, "Hide the still-active cart")
	cartHistoryCmd.Flags().StringVar(&historyFrom, "from", "", "Earliest date (YYYY-MM-DD)")
	cartHistoryCmd.Flags().StringVar(&historyTo, "to", "", "Latest date (YYYY-MM-DD)")
}

// cartApp builds the app and runs the cart store's initialization gate for
// the cart screen. Staff accounts and signed-out visitors end up with an
// empty, inert store.
func cartApp(ctx context.Context) (*App, error) {
	app, err := NewApp()
	if err != nil {
		return nil, err
	}
	if err := app.Cart.Sync(ctx, app.Auth.Snapshot(), "/cart"); err != nil {
		return nil, err
	}
	if !app.Cart.Initialized() {
		return nil, errors.New("cart unavailable: sign in as a shopper first")
	}
	return app, nil
}

func printCart(c *types.Cart) {
	if c == nil || len(c.Items) == 0 {
		fmt.Println("🛒 Cart is empty")
		return
	}
	fmt.Printf("🛒 Cart %s (%s)\n\n", c.ID, c.Status)
	for _, it := range c.Items {
		fmt.Printf("  %dx %-32s %8.2f each %10.2f\n", it.Quantity, it.ProductTitle, it.UnitPrice, it.TotalPrice)
	}
	fmt.Printf("\n  Subtotal: %10.2f\n", c.TotalBeforeDiscount)
	if c.TotalAfterDiscount != c.TotalBeforeDiscount {
		fmt.Printf("  Discounted: %8.2f\n", c.TotalAfterDiscount)
	}
	fmt.Printf("  Shipping: %10.2f\n", c.ShippingCost)
	fmt.Printf("  Total:    %10.2f\n", c.FinalTotal)
}

func runCartShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, err := cartApp(ctx)
	if err != nil {
		return err
	}
	printCart(app.Cart.Snapshot())
	return nil
}

// addToCart re-fetches the product right before mutating: it may have sold
// out since it was listed, and in that case the cart call is never made.
func (a *App) addToCart(ctx context.Context, productID string, qty int) (types.ProductDetail, error) {
	detail, err := a.Products.GetByID(ctx, productID)
	if err != nil {
		return types.ProductDetail{}, err
	}
	if detail.IsOutOfStock {
		return detail, ErrOutOfStock
	}
	if err := a.Cart.AddItem(ctx, productID, qty); err != nil {
		return detail, err
	}
	return detail, nil
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, err := cartApp(ctx)
	if err != nil {
		return err
	}
	detail, err := app.addToCart(ctx, args[0], addQty)
	if err != nil {
		return err
	}
	fmt.Printf("✅ Added %dx %s\n\n", addQty, detail.Title)
	printCart(app.Cart.Snapshot())
	return nil
}

func runCartUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, err := cartApp(ctx)
	if err != nil {
		return err
	}
	if err := app.Cart.UpdateItem(ctx, args[0], updateQty); err != nil {
		return err
	}
	printCart(app.Cart.Snapshot())
	return nil
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, err := cartApp(ctx)
	if err != nil {
		return err
	}
	if err := app.Cart.RemoveItem(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("🗑️  Removed")
	printCart(app.Cart.Snapshot())
	return nil
}

func runCartCheckout(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, err := cartApp(ctx)
	if err != nil {
		return err
	}
	method, err := types.ParsePaymentMethod(checkoutPayment)
	if err != nil {
		return err
	}
	if err := app.Cart.Checkout(ctx, checkoutAddress, method); err != nil {
		return err
	}
	fmt.Printf("🎉 Order placed, paying by %s\n\n", method)
	printCart(app.Cart.Snapshot())
	return nil
}

func runCartClear(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, err := cartApp(ctx)
	if err != nil {
		return err
	}
	if err := app.Cart.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("🛒 Cart cleared")
	return nil
}

func runCartHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, err := cartApp(ctx)
	if err != nil {
		return err
	}
	opts := services.MineOptions{OnlyOrders: historyOrdersOnly}
	if historyFrom != "" {
		t, err := time.Parse("2006-01-02", historyFrom)
		if err != nil {
			return fmt.Errorf("invalid --from date: %w", err)
		}
		opts.From = t
	}
	if historyTo != "" {
		t, err := time.Parse("2006-01-02", historyTo)
		if err != nil {
			return fmt.Errorf("invalid --to date: %w", err)
		}
		opts.To = t
	}
	carts, err := app.CartSvc.GetAllMine(ctx, opts)
	if err != nil {
		return err
	}
	if len(carts) == 0 {
		fmt.Println("📭 No carts found")
		return nil
	}
	for _, c := range carts {
		fmt.Printf("  %s  %-10s  %d items  %8.2f  %s\n",
			c.CreatedAt.Format("2006-01-02"), c.Status, c.ItemCount(), c.FinalTotal, c.ID)
	}
	return nil
}
