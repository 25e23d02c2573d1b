package main

import (
	"github.com/tacogips/sgmtr/internal/cli"
)

func main() {
	// Execute the root command
	cli.Execute()
}
