// Package main provides the pubs CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// configPath overrides pubs.yml discovery
	configPath string
	// sourceOverride replaces the configured bibliography source
	sourceOverride string
	// logLevel overrides the configured log level
	logLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pubs",
	Short: "Publication list builder for an academic homepage",
	Long: `pubs turns a BibTeX file into the publication list of an academic homepage.

It parses the bibliography, recovers custom link fields (talk, slides, video,
code, artifact, poster, pdf, website) that standard parsers drop, merges them
onto each entry, sorts entries newest first and derives the links to show.
All commands output JSON by default for the site build to consume.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to pubs.yml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().StringVar(&sourceOverride, "source", "", "Bibliography path or URL (overrides config and PUBS_SOURCE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Version = Version
}
