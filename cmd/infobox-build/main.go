// infobox-build builds monster or item records from an extracted wiki-text
// corpus and writes one JSON file per record.
//
// Usage:
//
//	infobox-build [-config infobox.toml] [monsters|items]
//
// With no arguments it reads ../extraction_tools_wiki/extract_page_text_monsters.json
// and writes ../docs/monsters-json/<id>.json, logging to builder.log.
// INFOBOX_* environment variables, also read from .env, override the file.
//
// Exit codes: 0 success, 1 corpus unreadable, 2 invalid configuration,
// 3 log or export setup failure.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tsawler/infobox"
	"github.com/tsawler/infobox/corpus"
	"github.com/tsawler/infobox/internal/config"
	"github.com/tsawler/infobox/internal/logging"
	"github.com/tsawler/infobox/model"
)

const (
	exitOK     = 0
	exitInput  = 1
	exitConfig = 2
	exitSetup  = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("infobox-build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML config file (defaults apply when empty)")
	envPath := fs.String("env", ".env", "dotenv file loaded before reading INFOBOX_* variables")
	if err := fs.Parse(args); err != nil {
		return exitConfig
	}

	cfg, kind, err := loadConfig(*configPath, *envPath, fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitConfig
	}

	runID := uuid.NewString()
	logger, closeLog, err := logging.Open(logging.Options{
		Path:   cfg.Logging.Path,
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		RunID:  runID,
	})
	if err != nil {
		fmt.Fprintf(stderr, "log: %v\n", err)
		return exitSetup
	}
	defer closeLog()

	entries, err := corpus.LoadWikiText(cfg.Input.WikiText)
	if err != nil {
		logger.Error("read corpus", zap.String("path", cfg.Input.WikiText), zap.Error(err))
		fmt.Fprintf(stderr, "input: %v\n", err)
		return exitInput
	}

	sink, err := newSink(cfg)
	if err != nil {
		logger.Error("export setup", zap.Error(err))
		fmt.Fprintf(stderr, "export: %v\n", err)
		return exitSetup
	}

	report, err := newExtractor(cfg, entries, logger).Export(ctx, kind, sink)
	if err != nil {
		logger.Error("build aborted", zap.Error(err))
		fmt.Fprintf(stderr, "build: %v\n", err)
		if errors.Is(err, context.Canceled) {
			return exitInput
		}
		return exitSetup
	}

	for _, w := range report.Warnings {
		logger.Debug("warning",
			zap.String("entity", w.Entity),
			zap.String("kind", string(w.Kind)),
			zap.String("message", w.Message))
	}

	fmt.Fprintf(stdout, "run %s: built %d %s, exported %d to %s (%d skipped, %d failed, %d warnings)\n",
		runID, report.Built, kind, report.Exported, cfg.Export.Dir,
		report.Skipped, report.Failed, len(report.Warnings))
	return exitOK
}

// loadConfig layers defaults, the TOML file, .env and the environment, then
// the positional kind.
func loadConfig(path, envPath string, args []string) (*config.Config, model.Kind, error) {
	if len(args) > 1 {
		return nil, "", fmt.Errorf("expected at most one argument, got %d", len(args))
	}

	if err := config.LoadEnv(envPath); err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, "", err
	}
	if len(args) == 1 {
		cfg.Input.Kind = args[0]
	}

	kind, err := model.ParseKind(cfg.Input.Kind)
	if err != nil {
		return nil, "", err
	}
	cfg.ForKind(kind)

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, kind, nil
}

func newExtractor(cfg *config.Config, entries []corpus.Entry, logger *zap.Logger) *infobox.Extractor {
	ext := infobox.FromEntries(entries).
		Workers(cfg.Builder.Workers).
		MaxVersions(cfg.Resolver.MaxVersions).
		Prefixes(cfg.Resolver.Prefixes...).
		CacheSize(cfg.Builder.CacheSize).
		WikiBaseURL(cfg.Builder.WikiBaseURL).
		Logger(logger)

	if cfg.Resolver.Marker != "" {
		ext = ext.Marker(cfg.Resolver.Marker)
	}
	if cfg.Builder.ExpandVersions {
		ext = ext.ExpandVersions()
	}
	return ext
}
