// ABOUTME: Main entry point for the rss-finder command
// ABOUTME: Runs a one-shot feed search or, with the serve subcommand, the HTTP API

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
