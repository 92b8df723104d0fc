// Package cli contains the shopfront commands: the storefront, cart and
// favorites screens plus the employee/admin back office, each composed
// from the services, stores and guards in the layers below.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shopfront",
	Short: "Shopfront - storefront client for the store API",
	Long: `Shopfront is a command-line storefront client: browse the catalog,
manage a cart and favorites, check out, and run the employee/admin
back office against the store's REST API.

Point it at a backend with SHOPFRONT_API_URL (or api.base_url in
config.yaml). Run a local backend with the mockapi command.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
