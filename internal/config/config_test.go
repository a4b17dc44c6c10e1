package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default("/site")

	if cfg.Source != DefaultSource {
		t.Errorf("Source = %q, want %q", cfg.Source, DefaultSource)
	}
	if len(cfg.CustomFields) != 8 {
		t.Errorf("CustomFields = %v, want the 8 defaults", cfg.CustomFields)
	}
	if len(cfg.RedactFields) != 3 {
		t.Errorf("RedactFields = %v, want slides, talk, pdf", cfg.RedactFields)
	}
	if cfg.FieldAliases["artifacat"] != "artifact" {
		t.Errorf("FieldAliases = %v", cfg.FieldAliases)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if got := cfg.SourceLocation(); got != filepath.Join("/site", DefaultSource) {
		t.Errorf("SourceLocation() = %q", got)
	}
	if got := cfg.SiteRootPath(); got != "/site/public" {
		t.Errorf("SiteRootPath() = %q, want /site/public", got)
	}
}

func TestFind(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create nested dirs: %v", err)
	}

	if _, err := Find(nested); !errors.Is(err, ErrNoConfig) {
		t.Errorf("Find() error = %v, want ErrNoConfig", err)
	}

	writeFile(t, filepath.Join(tmpDir, ConfigFile), "source: refs.bib\n")
	got, err := Find(nested)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got != filepath.Join(tmpDir, ConfigFile) {
		t.Errorf("Find() = %q", got)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFile)
	writeFile(t, path, `source: data/refs.bib
site_root: static
self_names:
  - Anna Ablove
  - Anna Ablove*
custom_fields: [pdf, talk, preprint]
redact_fields: []
check_rate: 2
check_timeout: 3s
log_level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SourceLocation() != filepath.Join(tmpDir, "data", "refs.bib") {
		t.Errorf("SourceLocation() = %q", cfg.SourceLocation())
	}
	if cfg.SiteRootPath() != filepath.Join(tmpDir, "static") {
		t.Errorf("SiteRootPath() = %q", cfg.SiteRootPath())
	}
	if len(cfg.SelfNames) != 2 || cfg.SelfNames[1] != "Anna Ablove*" {
		t.Errorf("SelfNames = %v", cfg.SelfNames)
	}
	if len(cfg.RedactFields) != 0 {
		t.Errorf("explicit empty redact_fields should disable redaction, got %v", cfg.RedactFields)
	}
	if cfg.CheckRate != 2 || cfg.CheckTimeout != 3*time.Second {
		t.Errorf("check settings = %v/%v", cfg.CheckRate, cfg.CheckTimeout)
	}
	if cfg.FieldAliases["artifacat"] != "artifact" {
		t.Error("unset field_aliases should keep defaults")
	}

	opts := cfg.Options()
	names := opts.Fields.Names()
	if len(names) != 3 || names[2] != "preprint" {
		t.Errorf("Options().Fields = %v", names)
	}
	if len(opts.Redact) != 0 {
		t.Errorf("Options().Redact = %v", opts.Redact)
	}
}

func TestLoad_FieldAliasesReplaceDefaults(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want map[string]string
	}{
		{"replaced", "field_aliases:\n  artefact: artifact\n", map[string]string{"artefact": "artifact"}},
		{"cleared", "field_aliases: {}\n", map[string]string{}},
		{"absent", "log_level: info\n", map[string]string{"artifacat": "artifact"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFile)
			writeFile(t, path, tt.yaml)

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(cfg.FieldAliases) != len(tt.want) {
				t.Fatalf("FieldAliases = %v, want %v", cfg.FieldAliases, tt.want)
			}
			for alias, canonical := range tt.want {
				if cfg.FieldAliases[alias] != canonical {
					t.Errorf("FieldAliases[%q] = %q, want %q", alias, cfg.FieldAliases[alias], canonical)
				}
			}
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	writeFile(t, path, "source: [unterminated\n")

	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on invalid YAML")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("Load() should fail on missing file")
	}
}

func TestDiscover_DefaultsAndEnv(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(EnvSource, "")
	t.Setenv(EnvSiteRoot, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Discover(tmpDir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}

	t.Setenv(EnvSource, "https://example.org/publications.bib")
	cfg, err = Discover(tmpDir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if cfg.SourceLocation() != "https://example.org/publications.bib" {
		t.Errorf("SourceLocation() = %q", cfg.SourceLocation())
	}
	if cfg.SiteRootPath() != tmpDir {
		t.Errorf("SiteRootPath() for URL source = %q, want config dir", cfg.SiteRootPath())
	}
}

func TestDiscover_DotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ConfigFile), "source: file.bib\n")
	writeFile(t, filepath.Join(tmpDir, EnvFile), EnvSiteRoot+"=from-dotenv\n")

	// Register cleanup for the variable godotenv will set.
	t.Setenv(EnvSiteRoot, "")
	os.Unsetenv(EnvSiteRoot)
	t.Setenv(EnvSource, "")

	cfg, err := Discover(tmpDir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if cfg.SiteRootPath() != filepath.Join(tmpDir, "from-dotenv") {
		t.Errorf("SiteRootPath() = %q", cfg.SiteRootPath())
	}
	if cfg.SourceLocation() != filepath.Join(tmpDir, "file.bib") {
		t.Errorf("SourceLocation() = %q", cfg.SourceLocation())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty source", func(c *Config) { c.Source = " " }, true},
		{"zero rate", func(c *Config) { c.CheckRate = 0 }, true},
		{"negative timeout", func(c *Config) { c.CheckTimeout = -time.Second }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("/site")
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandPath("~/refs.bib"); got != filepath.Join(home, "refs.bib") {
		t.Errorf("ExpandPath(~/refs.bib) = %q", got)
	}
	if got := ExpandPath("/abs/refs.bib"); got != "/abs/refs.bib" {
		t.Errorf("ExpandPath(/abs/refs.bib) = %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q", got)
	}
}
