// Package main provides the entry point for the TailorCV server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tailorcv",
	Short: "TailorCV CV generation and analysis service",
	Long:  "TailorCV generates tailored HTML CVs from job offers and candidate documents and scores existing CVs against target roles.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
