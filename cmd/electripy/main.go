// Command electripy builds, prints and serves electripy layouts.
package main

import (
	"fmt"
	"os"

	"github.com/electripy/electripy/cmd/electripy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
