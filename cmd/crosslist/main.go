// Package main is the entry point for the crosslist server.
package main

import (
	"os"

	"github.com/ktnkk/crosslist/cmd/crosslist/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
