// Package main provides the larder CLI, a host for inspecting and
// initializing larder store documents.
package main

import (
	"fmt"
	"os"
)

// Exit codes.
const (
	exitSuccess  = 0
	exitUserErr  = 1
	exitSysError = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserErr)
	}
}
