// main is the entry point of the git-summary CLI.
package main

import (
	"github.com/FractalWire/git-tools/cmd"
	"github.com/FractalWire/git-tools/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("git-summary failed", err)
	}
}
