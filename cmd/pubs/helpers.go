package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/homepage/pubs/internal/bibtex"
	"github.com/homepage/pubs/internal/config"
	"github.com/homepage/pubs/internal/enrich"
	"github.com/homepage/pubs/internal/logger"
	"github.com/homepage/pubs/internal/source"
)

// loadConfig reads pubs.yml (from --config or by discovery) and applies
// command-line overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err == nil {
			if err = config.LoadDotEnv(cfg.Dir()); err == nil {
				cfg.ApplyEnv()
			}
		}
	} else {
		var cwd string
		cwd, err = os.Getwd()
		if err == nil {
			cfg, err = config.Discover(cwd)
		}
	}
	if err != nil {
		return nil, err
	}

	if sourceOverride != "" {
		cfg.Source = sourceOverride
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mustLoadConfig loads the configuration or exits with ExitConfigError.
func mustLoadConfig() *config.Config {
	cfg, err := loadConfig()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return cfg
}

// newLogger builds the stderr logger for cfg.
func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Config{Level: cfg.LogLevel})
}

// loadCatalog fetches and processes the configured source.
func loadCatalog(ctx context.Context, cfg *config.Config, log logger.Logger) (*enrich.Catalog, error) {
	start := time.Now()
	src := source.New(cfg.SourceLocation())
	log.Debug("loading publications", "source", src.Location())

	cat, err := enrich.Load(ctx, src, cfg.Options())
	if err != nil {
		return nil, err
	}
	log.Info("publications loaded", "records", cat.Len(), "took", time.Since(start))
	return cat, nil
}

// mustLoadCatalog loads the catalog or exits. Fetch and parse failures are
// reported as a single load failure with no partial output.
func mustLoadCatalog(ctx context.Context, cfg *config.Config, log logger.Logger) *enrich.Catalog {
	cat, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		code := ExitError
		if errors.Is(err, source.ErrFetch) || errors.Is(err, bibtex.ErrParse) {
			code = ExitDataError
		}
		exitWithError(code, "failed to load publications: %v", err)
	}
	return cat
}
