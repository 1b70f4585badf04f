// Package main provides the entry point for the Empowr Credit demo server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "empowr",
	Short: "Empowr Credit demo server",
	Long:  "Empowr Credit serves a mock credit-assessment product: sign-in, a five-step assessment wizard and a score dashboard, backed by simulated calls.",
	// Errors are printed once by main.
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
