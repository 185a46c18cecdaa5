package main

import (
	"fmt"
	"os"

	"github.com/erraggy/clientdocs/cmd/clientdocs/commands"
)

func main() {
	root := commands.NewRootCmd()
	if err := root.Execute(); err != nil {
		// Cobra is configured to not print errors.
		if msg := err.Error(); msg != "" {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
		}
		os.Exit(1)
	}
}
