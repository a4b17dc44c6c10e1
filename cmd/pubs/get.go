package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/homepage/pubs/internal/enrich"
	"github.com/spf13/cobra"
)

var getWithSource bool

func init() {
	getCmd.Flags().BoolVar(&getWithSource, "bibtex", false, "Include the redacted BibTeX source")
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a single publication by citation key",
	Long: `Get a single publication by its citation key, including the merged record.

Example:
  pubs get Ablove2024-ab
  pubs get Ablove2024-ab --bibtex`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	cat := mustLoadCatalog(cmd.Context(), cfg, newLogger(cfg))

	key := args[0]
	rec, pub, err := lookup(cat, key)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	resp := DetailResponse{Publication: pub, Record: rec}
	if getWithSource {
		resp.BibTeX = cat.Source(key)
	}

	if humanOutput {
		printDetail(resp)
	} else {
		outputJSON(resp)
	}

	return nil
}

// lookup finds a record and its display form by key.
func lookup(cat *enrich.Catalog, key string) (enrich.Record, enrich.Publication, error) {
	rec, err := cat.Get(key)
	if errors.Is(err, enrich.ErrNotFound) {
		return enrich.Record{}, enrich.Publication{}, fmt.Errorf("publication not found: %s", key)
	}
	if err != nil {
		return enrich.Record{}, enrich.Publication{}, err
	}
	pub, err := cat.Publication(key)
	return rec, pub, err
}

func printDetail(d DetailResponse) {
	fmt.Println(d.ID)
	fmt.Println(strings.Repeat("═", 70))
	fmt.Println()

	fmt.Printf("Title:    %s\n", wrapText(d.Title, TextWrapWidth-10, "          "))
	if len(d.Authors) > 0 {
		fmt.Printf("Authors:  %s\n", wrapText(formatAuthors(d.Authors), TextWrapWidth-10, "          "))
	}
	if d.Venue != "" {
		fmt.Printf("Venue:    %s\n", d.Venue)
	}
	if d.Year != 0 {
		fmt.Printf("Year:     %d\n", d.Year)
	}
	if d.Record.DOI != "" {
		fmt.Printf("DOI:      %s\n", d.Record.DOI)
	}

	if len(d.Links) > 0 {
		fmt.Println()
		fmt.Println("Links:")
		fmt.Print(formatLinks(d.Links, "  "))
	}

	if d.BibTeX != "" {
		fmt.Println()
		fmt.Println(d.BibTeX)
	}
}
