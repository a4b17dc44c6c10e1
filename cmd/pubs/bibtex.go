package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(bibtexCmd)
}

var bibtexCmd = &cobra.Command{
	Use:   "bibtex <key>",
	Short: "Print the BibTeX source of a publication",
	Long: `Print the BibTeX source of a publication as written in the bibliography,
with private fields (redact_fields in pubs.yml; slides, talk and pdf by
default) removed.

Example:
  pubs bibtex Ablove2024-ab --human`,
	Args: cobra.ExactArgs(1),
	RunE: runBibtex,
}

func runBibtex(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	cat := mustLoadCatalog(cmd.Context(), cfg, newLogger(cfg))

	key := args[0]
	src := cat.Source(key)
	if src == "" {
		exitWithError(ExitError, "no BibTeX source for: %s", key)
	}

	if humanOutput {
		fmt.Print(src)
	} else {
		outputJSON(SourceResponse{ID: key, BibTeX: src})
	}

	return nil
}
