// Package config loads build settings from TOML, a .env file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/tsawler/infobox/format"
	"github.com/tsawler/infobox/model"
	"github.com/tsawler/infobox/resolver"
)

// Config is the full builder configuration, one field per TOML section.
type Config struct {
	Input       InputConfig       `toml:"input"`
	Export      ExportConfig      `toml:"export"`
	ObjectStore ObjectStoreConfig `toml:"object_store"`
	Resolver    ResolverConfig    `toml:"resolver"`
	Builder     BuilderConfig     `toml:"builder"`
	Logging     LoggingConfig     `toml:"logging"`
}

// InputConfig selects the wiki-text corpus and the record kind built from it.
type InputConfig struct {
	WikiText string `toml:"wiki_text"` // page title -> markup JSON
	Kind     string `toml:"kind"`      // "monsters" or "items"
}

// ExportConfig controls where and how built records are written.
type ExportConfig struct {
	Dir    string `toml:"dir"`
	Pretty bool   `toml:"pretty"`
	Format string `toml:"format"` // "json" or "yaml"
}

// ObjectStoreConfig is optional; an empty endpoint disables it.
type ObjectStoreConfig struct {
	Endpoint  string `toml:"endpoint"`
	Region    string `toml:"region"`
	Bucket    string `toml:"bucket"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
	Prefix    string `toml:"prefix"`
}

// Enabled reports whether records are also uploaded.
func (c ObjectStoreConfig) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

// ResolverConfig tunes infobox location and version detection.
type ResolverConfig struct {
	Marker      string   `toml:"marker"`       // overrides the kind's default template marker
	Prefixes    []string `toml:"prefixes"`     // version identifier keys, in probe order
	MaxVersions int      `toml:"max_versions"` // highest version number probed
}

// BuilderConfig controls the batch run.
type BuilderConfig struct {
	ExpandVersions bool   `toml:"expand_versions"`
	Workers        int    `toml:"workers"`
	CacheSize      int    `toml:"cache_size"`
	WikiBaseURL    string `toml:"wiki_base_url"`
}

// LoggingConfig configures the run log.
type LoggingConfig struct {
	Path   string `toml:"path"`
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the monster build settings used when no file is given.
func Defaults() *Config {
	return &Config{
		Input: InputConfig{
			WikiText: "../extraction_tools_wiki/extract_page_text_monsters.json",
			Kind:     string(model.KindMonster),
		},
		Export: ExportConfig{
			Dir:    "../docs/monsters-json/",
			Pretty: false,
			Format: "json",
		},
		ObjectStore: ObjectStoreConfig{
			Region: "us-east-1",
			Prefix: "monsters-json",
		},
		Resolver: ResolverConfig{
			Prefixes:    append([]string(nil), resolver.DefaultPrefixes...),
			MaxVersions: resolver.DefaultMaxVersions,
		},
		Builder: BuilderConfig{
			ExpandVersions: false,
			Workers:        1,
			CacheSize:      256,
			WikiBaseURL:    "https://oldschool.runescape.wiki/w/",
		},
		Logging: LoggingConfig{
			Path:   "builder.log",
			Level:  "debug",
			Format: "console",
		},
	}
}

// ForKind switches the default input and export paths to the given kind.
// Paths set explicitly to something other than the monster defaults are
// kept.
func (c *Config) ForKind(kind model.Kind) {
	c.Input.Kind = string(kind)
	if kind != model.KindItem {
		return
	}
	d := Defaults()
	if c.Input.WikiText == d.Input.WikiText {
		c.Input.WikiText = "../extraction_tools_wiki/extract_page_text_items.json"
	}
	if c.Export.Dir == d.Export.Dir {
		c.Export.Dir = "../docs/items-json/"
	}
	if c.ObjectStore.Prefix == d.ObjectStore.Prefix {
		c.ObjectStore.Prefix = "items-json"
	}
}

// LoadEnv loads a .env file into the process environment. A missing file
// is not an error; variables already set are not overwritten.
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays INFOBOX_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	var errs []error

	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv("INFOBOX_" + name); ok {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := os.LookupEnv("INFOBOX_" + name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("INFOBOX_%s: %w", name, err))
				return
			}
			*dst = b
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := os.LookupEnv("INFOBOX_" + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("INFOBOX_%s: %w", name, err))
				return
			}
			*dst = n
		}
	}

	str("WIKI_TEXT", &c.Input.WikiText)
	str("KIND", &c.Input.Kind)
	str("EXPORT_DIR", &c.Export.Dir)
	boolean("EXPORT_PRETTY", &c.Export.Pretty)
	str("EXPORT_FORMAT", &c.Export.Format)
	str("S3_ENDPOINT", &c.ObjectStore.Endpoint)
	str("S3_REGION", &c.ObjectStore.Region)
	str("S3_BUCKET", &c.ObjectStore.Bucket)
	str("S3_ACCESS_KEY", &c.ObjectStore.AccessKey)
	str("S3_SECRET_KEY", &c.ObjectStore.SecretKey)
	boolean("S3_USE_SSL", &c.ObjectStore.UseSSL)
	str("S3_PREFIX", &c.ObjectStore.Prefix)
	str("MARKER", &c.Resolver.Marker)
	if v, ok := os.LookupEnv("INFOBOX_PREFIXES"); ok {
		c.Resolver.Prefixes = splitList(v)
	}
	integer("MAX_VERSIONS", &c.Resolver.MaxVersions)
	boolean("EXPAND_VERSIONS", &c.Builder.ExpandVersions)
	integer("WORKERS", &c.Builder.Workers)
	integer("CACHE_SIZE", &c.Builder.CacheSize)
	str("WIKI_BASE_URL", &c.Builder.WikiBaseURL)
	str("LOG_PATH", &c.Logging.Path)
	str("LOG_LEVEL", &c.Logging.Level)
	str("LOG_FORMAT", &c.Logging.Format)

	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate rejects settings the build cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Input.WikiText) == "" {
		errs = append(errs, errors.New("input.wiki_text is required"))
	}
	if _, err := model.ParseKind(c.Input.Kind); err != nil {
		errs = append(errs, fmt.Errorf("input.kind: %w", err))
	}
	if strings.TrimSpace(c.Export.Dir) == "" {
		errs = append(errs, errors.New("export.dir is required"))
	}
	if _, err := format.Parse(c.Export.Format); err != nil {
		errs = append(errs, fmt.Errorf("export.format: %w", err))
	}
	if c.ObjectStore.Enabled() {
		if c.ObjectStore.Bucket == "" {
			errs = append(errs, errors.New("object_store.bucket is required with an endpoint"))
		}
		if c.ObjectStore.AccessKey == "" || c.ObjectStore.SecretKey == "" {
			errs = append(errs, errors.New("object_store credentials are required with an endpoint"))
		}
	}
	if len(c.Resolver.Prefixes) == 0 {
		errs = append(errs, errors.New("resolver.prefixes must not be empty"))
	}
	if c.Resolver.MaxVersions < 1 {
		errs = append(errs, fmt.Errorf("resolver.max_versions must be positive, got %d", c.Resolver.MaxVersions))
	}
	if c.Builder.Workers < 1 {
		errs = append(errs, fmt.Errorf("builder.workers must be positive, got %d", c.Builder.Workers))
	}
	if c.Builder.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("builder.cache_size must not be negative, got %d", c.Builder.CacheSize))
	}
	if strings.TrimSpace(c.Logging.Path) == "" {
		errs = append(errs, errors.New("logging.path is required"))
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}
