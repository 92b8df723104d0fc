package main

import (
	"fmt"
	"os"

	"github.com/matthieukhl/shopfront/internal/config"
	"github.com/matthieukhl/shopfront/internal/mockapi"
)

func main() {
	fmt.Println("🧪 Mock store API starting...")

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	srv := mockapi.NewServer()
	fmt.Printf("🌐 Listening on %s\n", cfg.Mock.Addr)
	fmt.Println("👤 Seeded accounts (password \"password\"):")
	fmt.Println("   shopper@example.com / employee@example.com / admin@example.com")

	if err := srv.Start(cfg.Mock.Addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		os.Exit(1)
	}
}
