package main

import (
	"github.com/homepage/pubs/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after pubs.yml, .env, environment
variables (PUBS_SOURCE, PUBS_SITE_ROOT, PUBS_LOG_LEVEL) and flags are applied.

Example:
  pubs config --human`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

// ConfigResponse is the response for config.
type ConfigResponse struct {
	Source       string            `json:"source"`
	SiteRoot     string            `json:"site_root"`
	SelfNames    []string          `json:"self_names"`
	CustomFields []string          `json:"custom_fields"`
	FieldAliases map[string]string `json:"field_aliases,omitempty"`
	RedactFields []string          `json:"redact_fields"`
	CheckRate    float64           `json:"check_rate"`
	CheckTimeout string            `json:"check_timeout"`
	LogLevel     string            `json:"log_level"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	resp := newConfigResponse(cfg)

	if humanOutput {
		outputHuman("source:         %s\n", resp.Source)
		outputHuman("site-root:      %s\n", resp.SiteRoot)
		outputHuman("self-names:     %v\n", resp.SelfNames)
		outputHuman("custom-fields:  %v\n", resp.CustomFields)
		outputHuman("field-aliases:  %v\n", resp.FieldAliases)
		outputHuman("redact-fields:  %v\n", resp.RedactFields)
		outputHuman("check-rate:     %g/s\n", resp.CheckRate)
		outputHuman("check-timeout:  %s\n", resp.CheckTimeout)
		outputHuman("log-level:      %s\n", resp.LogLevel)
	} else {
		outputJSON(resp)
	}
	return nil
}

func newConfigResponse(cfg *config.Config) ConfigResponse {
	nonNil := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return s
	}
	return ConfigResponse{
		Source:       cfg.SourceLocation(),
		SiteRoot:     cfg.SiteRootPath(),
		SelfNames:    nonNil(cfg.SelfNames),
		CustomFields: cfg.Options().Fields.Names(),
		FieldAliases: cfg.FieldAliases,
		RedactFields: nonNil(cfg.RedactFields),
		CheckRate:    cfg.CheckRate,
		CheckTimeout: cfg.CheckTimeout.String(),
		LogLevel:     cfg.LogLevel,
	}
}
