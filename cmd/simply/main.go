// Package main is the entry point for the Simply CLI.
// Simply CLI provides command-line access to a Simply wallet account:
// balance, transfers, investments, financing and cards.
package main

import (
	"os"

	"github.com/simply-app/simply-cli/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
