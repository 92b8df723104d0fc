package main

import "github.com/matthieukhl/shopfront/internal/cli"

func main() {
	cli.Execute()
}
