package main

import (
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/homepage/pubs/internal/linkcheck"
	"github.com/spf13/cobra"
)

var checkKeys []string

func init() {
	checkCmd.Flags().StringSliceVar(&checkKeys, "keys", nil, "Check only these citation keys (comma-separated)")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify every publication link resolves",
	Long: `Verify that every link shown for each publication resolves.

Remote links receive a rate-limited HEAD request. Site-relative links are
resolved under site_root; PDFs must open and have at least one page.
Exits with status 4 when any link is broken.

Examples:
  pubs check
  pubs check --keys Ablove2024-ab,Doe2020 --human`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	log := newLogger(cfg)
	ctx := cmd.Context()
	cat := mustLoadCatalog(ctx, cfg, log)

	checker := linkcheck.NewChecker(cfg.SiteRootPath(),
		linkcheck.WithRate(cfg.CheckRate),
		linkcheck.WithClient(newCheckClient(cfg.CheckTimeout)),
	)

	pubs := cat.Publications()
	if len(checkKeys) > 0 {
		pubs = pubs[:0]
		for _, key := range checkKeys {
			_, pub, err := lookup(cat, key)
			if err != nil {
				exitWithError(ExitError, "%v", err)
			}
			pubs = append(pubs, pub)
		}
	}

	var results []linkcheck.Result
	for _, p := range pubs {
		log.Debug("checking links", "id", p.ID, "links", len(p.Links))
		results = append(results, checker.CheckPublication(ctx, p)...)
	}
	problems := linkcheck.Problems(results)

	resp := CheckResponse{Checked: len(results), Problems: []CheckResult{}}
	for _, p := range problems {
		resp.Problems = append(resp.Problems, CheckResult{ID: p.ID, Label: p.Label, URL: p.URL, Reason: p.Reason})
	}

	if humanOutput {
		outputHuman("Checked %d links: %d broken\n", resp.Checked, len(resp.Problems))
		for _, p := range resp.Problems {
			outputHuman("  %s %s %s\n    %s\n", p.ID, p.Label, p.URL, p.Reason)
		}
	} else {
		outputJSON(resp)
	}

	if len(problems) > 0 {
		os.Exit(ExitLinkProblems)
	}
	return nil
}

// newCheckClient returns the HTTP client used by check.
func newCheckClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10)).
		SetHeader("User-Agent", "pubs-linkcheck/"+Version)
}
