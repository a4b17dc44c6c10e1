// Package config handles pubs configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/homepage/pubs/internal/bibtex"
	"github.com/homepage/pubs/internal/enrich"
	"github.com/homepage/pubs/internal/source"
)

// Config represents the settings stored in pubs.yml.
type Config struct {
	Source       string            `yaml:"source"`                  // Bibliography path or URL
	SiteRoot     string            `yaml:"site_root,omitempty"`     // Directory that site-relative links resolve against
	SelfNames    []string          `yaml:"self_names,omitempty"`    // Author display names to emphasize
	CustomFields []string          `yaml:"custom_fields,omitempty"` // Non-standard fields to extract
	FieldAliases map[string]string `yaml:"field_aliases,omitempty"` // Alternate spelling -> custom field
	RedactFields []string          `yaml:"redact_fields"`           // Fields hidden from displayed source
	CheckRate    float64           `yaml:"check_rate,omitempty"`    // Link check requests per second
	CheckTimeout time.Duration     `yaml:"check_timeout,omitempty"` // Per-request link check timeout
	LogLevel     string            `yaml:"log_level,omitempty"`     // debug, info, warn, error

	// dir is the directory of the loaded config file; relative paths resolve against it.
	dir string
}

const (
	ConfigFile    = "pubs.yml"
	EnvFile       = ".env"
	DefaultSource = "public/publications.bib"

	DefaultCheckRate    = 5.0
	DefaultCheckTimeout = 10 * time.Second
	DefaultLogLevel     = "warn"

	EnvSource   = "PUBS_SOURCE"
	EnvSiteRoot = "PUBS_SITE_ROOT"
	EnvLogLevel = "PUBS_LOG_LEVEL"
)

// ValidLogLevels lists the accepted log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ErrNoConfig indicates no pubs.yml was found.
var ErrNoConfig = errors.New("no " + ConfigFile + " found")

// Default returns the configuration used when no file exists, rooted at dir.
func Default(dir string) *Config {
	return &Config{
		Source:       DefaultSource,
		CustomFields: append([]string(nil), bibtex.DefaultCustomFields...),
		FieldAliases: copyAliases(bibtex.DefaultFieldAliases),
		RedactFields: append([]string(nil), bibtex.DefaultRedactFields...),
		CheckRate:    DefaultCheckRate,
		CheckTimeout: DefaultCheckTimeout,
		LogLevel:     DefaultLogLevel,
		dir:          dir,
	}
}

func copyAliases(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Find walks up from start looking for pubs.yml.
// Returns the file path or ErrNoConfig.
func Find(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		path := filepath.Join(abs, ConfigFile)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNoConfig
		}
		abs = parent
	}
}

// Load reads the configuration file at path. Unset keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := Default(filepath.Dir(abs))
	// yaml.v3 merges into an existing map, so field_aliases replaces the
	// defaults only when decoded into a nil map.
	cfg.FieldAliases = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FieldAliases == nil {
		cfg.FieldAliases = copyAliases(bibtex.DefaultFieldAliases)
	}

	return cfg, nil
}

// Discover loads pubs.yml found from start, or defaults rooted at start when
// there is none. A .env file next to the config (or in start) is loaded into
// the environment first, then environment overrides are applied.
func Discover(start string) (*Config, error) {
	var cfg *Config
	path, err := Find(start)
	switch {
	case err == nil:
		cfg, err = Load(path)
		if err != nil {
			return nil, err
		}
	case errors.Is(err, ErrNoConfig):
		abs, absErr := filepath.Abs(start)
		if absErr != nil {
			return nil, fmt.Errorf("resolving path: %w", absErr)
		}
		cfg = Default(abs)
	default:
		return nil, err
	}

	if err := LoadDotEnv(cfg.dir); err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadDotEnv loads dir/.env into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, EnvFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides file settings with PUBS_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvSource); v != "" {
		c.Source = v
	}
	if v := os.Getenv(EnvSiteRoot); v != "" {
		c.SiteRoot = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Dir returns the directory relative paths resolve against.
func (c *Config) Dir() string {
	return c.dir
}

// SourceLocation returns the source as a URL or an absolute path.
func (c *Config) SourceLocation() string {
	if source.IsURL(c.Source) {
		return c.Source
	}
	return c.resolve(c.Source)
}

// SiteRootPath returns the directory site-relative links resolve against.
// Defaults to the directory holding a local source file.
func (c *Config) SiteRootPath() string {
	if c.SiteRoot != "" {
		return c.resolve(c.SiteRoot)
	}
	if !source.IsURL(c.Source) {
		return filepath.Dir(c.SourceLocation())
	}
	return c.dir
}

func (c *Config) resolve(path string) string {
	path = ExpandPath(path)
	if filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}

// Options returns the pipeline options described by the configuration.
func (c *Config) Options() enrich.Options {
	return enrich.Options{
		Fields:    bibtex.NewFieldNames(c.CustomFields, c.FieldAliases),
		Redact:    append([]string(nil), c.RedactFields...),
		SelfNames: append([]string(nil), c.SelfNames...),
	}
}

// Validate checks the configuration for values the pipeline cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return fmt.Errorf("source is not set")
	}
	if c.CheckRate <= 0 {
		return fmt.Errorf("invalid check_rate: %v (must be positive)", c.CheckRate)
	}
	if c.CheckTimeout <= 0 {
		return fmt.Errorf("invalid check_timeout: %v (must be positive)", c.CheckTimeout)
	}
	return ValidateLogLevel(c.LogLevel)
}

// ValidateLogLevel checks that level is one of ValidLogLevels.
func ValidateLogLevel(level string) error {
	for _, valid := range ValidLogLevels {
		if level == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid log_level: %s (valid: %v)", level, ValidLogLevels)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
