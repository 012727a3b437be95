// Package main is the entry point for the clctl CLI.
package main

import (
	"github.com/ktnkk/crosslist/cmd/clctl/cmd"
)

func main() {
	cmd.Execute()
}
