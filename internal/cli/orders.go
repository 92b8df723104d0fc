package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your placed orders",
	RunE:  runOrders,
}

var orderShowCmd = &cobra.Command{
	Use:   "show <orderID>",
	Short: "Show one order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderShow,
}

func init() {
	rootCmd.AddCommand(ordersCmd)
	ordersCmd.AddCommand(orderShowCmd)
}

func runOrders(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	orders, err := app.Orders.GetMine(context.Background())
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("📭 No orders yet")
		return nil
	}
	for _, o := range orders {
		fmt.Printf("  #%-10s %s  %-12s %8.2f  %s\n",
			o.OrderNumber, o.CreatedAt.Format("2006-01-02"), o.Status, o.Amount, o.ID)
	}
	return nil
}

func runOrderShow(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	o, err := app.Orders.GetByID(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("📦 Order #%s (%s)\n", o.OrderNumber, o.Status)
	fmt.Printf("   Placed: %s\n", o.CreatedAt.Format("2006-01-02 15:04"))
	if o.Address != "" {
		fmt.Printf("   Ship to: %s\n", o.Address)
	}
	for _, it := range o.Items {
		fmt.Printf("   %dx %-32s %10.2f\n", it.Quantity, it.ProductTitle, it.TotalPrice)
	}
	fmt.Printf("   Total: %10.2f\n", o.Amount)
	return nil
}
