// Package main is the entry point for the game master engine server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gm-engine",
	Short: "AI game master engine",
	Long:  `gm-engine runs the session and turn-resolution server for AI-narrated tabletop adventures.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
