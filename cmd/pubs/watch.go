package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/homepage/pubs/internal/enrich"
	"github.com/homepage/pubs/internal/source"
	"github.com/homepage/pubs/internal/watch"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-print the publication list whenever the source changes",
	Long: `Watch the bibliography file and print the full publication list after
every change. Each reload replaces the previous output entirely; a failed
reload prints the error and keeps watching.

Only local sources can be watched.

Example:
  pubs watch --human`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	log := newLogger(cfg)

	location := cfg.SourceLocation()
	if source.IsURL(location) {
		exitWithError(ExitConfigError, "cannot watch a remote source: %s", location)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watch.New(location, func(ctx context.Context) (*enrich.Catalog, error) {
		return loadCatalog(ctx, cfg, log)
	}, log)

	w.OnReload = func(cat *enrich.Catalog) {
		pubs := cat.Publications()
		if humanOutput {
			printPublicationsHuman(pubs, cat.Len())
			return
		}
		if pubs == nil {
			pubs = []enrich.Publication{}
		}
		outputJSON(pubs)
	}
	w.OnError = func(err error) {
		if humanOutput {
			outputHuman("failed to load publications: %v\n", err)
			return
		}
		outputJSON(ErrorResponse{Error: "failed to load publications: " + err.Error()})
	}

	if err := w.Run(ctx); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return nil
}
