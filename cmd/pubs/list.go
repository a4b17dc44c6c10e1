package main

import (
	"fmt"

	"github.com/homepage/pubs/internal/enrich"
	"github.com/spf13/cobra"
)

var listLimit int

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List publications, newest first",
	Long: `List all publications in display order (newest first), with their links.

Examples:
  pubs list
  pubs list --limit 5 --human
  pubs list --source https://example.org/publications.bib`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	cat := mustLoadCatalog(cmd.Context(), cfg, newLogger(cfg))

	pubs := cat.Publications()
	if listLimit > 0 && listLimit < len(pubs) {
		pubs = pubs[:listLimit]
	}

	if humanOutput {
		printPublicationsHuman(pubs, cat.Len())
	} else {
		if pubs == nil {
			pubs = []enrich.Publication{}
		}
		outputJSON(pubs)
	}

	return nil
}

func printPublicationsHuman(pubs []enrich.Publication, total int) {
	if len(pubs) == 0 {
		fmt.Println("No publications")
		return
	}
	if len(pubs) < total {
		outputHuman("%d publications (showing first %d):\n\n", total, len(pubs))
	} else {
		outputHuman("%d publications:\n\n", total)
	}

	for _, p := range pubs {
		outputHuman("  %s\n", truncateString(p.Title, ListTitleMaxLen))
		if line := formatCitationLine(p); line != "" {
			outputHuman("    %s\n", line)
		}
		outputHuman("%s", formatLinks(p.Links, "    "))
		outputHuman("    [%s]\n\n", p.ID)
	}
}
