package main

import (
	"github.com/homepage/pubs/internal/enrich"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(linksCmd)
}

var linksCmd = &cobra.Command{
	Use:   "links <key>",
	Short: "Show the links displayed for a publication",
	Long: `Show the links displayed for a publication, in display order.

Links are drawn from the custom pdf, talk, slides, video, code and poster
fields, the DOI, and the custom website and artifact fields. When none of
these exist the entry's url is shown as a plain link.

Example:
  pubs links Ablove2024-ab`,
	Args: cobra.ExactArgs(1),
	RunE: runLinks,
}

func runLinks(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	cat := mustLoadCatalog(cmd.Context(), cfg, newLogger(cfg))

	_, pub, err := lookup(cat, args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	links := pub.Links
	if humanOutput {
		if len(links) == 0 {
			outputHuman("No links for %s\n", pub.ID)
			return nil
		}
		outputHuman("%s", formatLinks(links, ""))
	} else {
		if links == nil {
			links = []enrich.Link{}
		}
		outputJSON(links)
	}

	return nil
}
