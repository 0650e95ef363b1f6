// Package main provides the entry point for the dialdish CLI.
package main

import (
	"fmt"
	"os"

	"github.com/dialdish/dialdish/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
