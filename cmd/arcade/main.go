// Package main is the entry point for the arcade CLI.
package main

import (
	"os"

	"github.com/maxwellsmart84/portfolio-2025/cmd/arcade/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
