package builder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/infobox/corpus"
	"github.com/tsawler/infobox/model"
)

// WarningKind classifies a non-fatal problem found during a run.
type WarningKind string

const (
	WarnMissingTemplate WarningKind = "missing_template"
	WarnMalformedMarkup WarningKind = "malformed_markup"
	WarnInvalidRecord   WarningKind = "invalid_record"
	WarnExportFailed    WarningKind = "export_failed"
)

// Warning is a per-entity problem. The run continues past it.
type Warning struct {
	Entity  string
	Kind    WarningKind
	Message string
	Err     error
}

// String returns a one-line description.
func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Kind, w.Entity, w.Message)
}

// Unwrap returns the underlying error.
func (w Warning) Unwrap() error { return w.Err }

// FormatWarnings joins warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// Sink receives validated records in input order.
type Sink interface {
	Put(ctx context.Context, r model.Record) error
}

// Batch describes one run over a corpus.
type Batch struct {
	Kind model.Kind
	// Workers bounds parallel page builds. Values below 1 mean one.
	Workers int
	// ExpandVersions builds one record per version of a versioned page.
	ExpandVersions bool
	// Sink receives every valid record. Nil only collects them.
	Sink Sink
}

// Report summarizes a run.
type Report struct {
	Records  []model.Record
	Built    int
	Skipped  int
	Failed   int
	Exported int
	Warnings []Warning
}

func (r *Report) warn(entity string, kind WarningKind, err error) {
	r.Warnings = append(r.Warnings, Warning{
		Entity:  entity,
		Kind:    kind,
		Message: err.Error(),
		Err:     err,
	})
}

// built is the outcome of one unit.
type built struct {
	unit   Unit
	record model.Record
	err    error
}

// Run builds every entry and hands valid records to the batch sink. Per
// entity problems become warnings; only context cancellation or an
// unknown kind stop the run.
func (b *Builder) Run(ctx context.Context, batch Batch, entries []corpus.Entry) (*Report, error) {
	if _, ok := b.markers[batch.Kind]; !ok {
		return nil, fmt.Errorf("unknown record kind %q", batch.Kind)
	}

	workers := batch.Workers
	if workers < 1 {
		workers = 1
	}

	b.logger.Info("build started",
		zap.String("kind", string(batch.Kind)),
		zap.Int("entries", len(entries)),
		zap.Int("workers", workers),
		zap.Bool("expand_versions", batch.ExpandVersions))

	// Phase 1: build pages in parallel. Each slot is written by one goroutine.
	results := make([][]built, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, e := range entries {
		i, e := i, e // per-iteration copies (go directive < 1.22)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = b.buildEntry(batch, e)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build %s: %w", batch.Kind, err)
	}

	// Phase 2: validate and export in input order.
	report := &Report{}
	seen := make(map[int]string)
	for _, units := range results {
		for _, res := range units {
			if err := ctx.Err(); err != nil {
				return report, fmt.Errorf("export %s: %w", batch.Kind, err)
			}
			b.collect(ctx, batch, report, seen, res)
		}
	}

	b.logger.Info("build finished",
		zap.String("kind", string(batch.Kind)),
		zap.Int("built", report.Built),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
		zap.Int("exported", report.Exported),
		zap.Int("warnings", len(report.Warnings)))

	return report, nil
}

// buildEntry expands an entry when requested and builds each unit.
func (b *Builder) buildEntry(batch Batch, e corpus.Entry) []built {
	units := []Unit{PageUnit(e.Name, e.Text)}
	if batch.ExpandVersions {
		expanded, err := b.Expand(batch.Kind, e)
		if err != nil {
			return []built{{unit: units[0], err: err}}
		}
		units = expanded
	}

	out := make([]built, 0, len(units))
	for _, u := range units {
		r, err := b.Build(batch.Kind, u)
		out = append(out, built{unit: u, record: r, err: err})
	}
	return out
}

// collect classifies one result and exports it when valid.
func (b *Builder) collect(ctx context.Context, batch Batch, report *Report, seen map[int]string, res built) {
	entity := res.unit.WikiName

	switch {
	case errors.Is(res.err, ErrNoTemplate):
		report.Skipped++
		report.warn(entity, WarnMissingTemplate, res.err)
		return
	case errors.Is(res.err, ErrMalformedMarkup):
		report.Failed++
		report.warn(entity, WarnMalformedMarkup, res.err)
		b.logger.Warn("malformed markup", zap.String("entity", entity), zap.Error(res.err))
		return
	case res.err != nil:
		report.Failed++
		report.warn(entity, WarnMalformedMarkup, res.err)
		b.logger.Error("build failed", zap.String("entity", entity), zap.Error(res.err))
		return
	}

	report.Built++
	report.Records = append(report.Records, res.record)

	// Only the id is required, and only to name the exported file.
	if err := res.record.Validate(); err != nil {
		report.warn(entity, WarnInvalidRecord, err)
		b.logger.Warn("record not exported", zap.String("entity", entity), zap.Error(err))
		return
	}

	id := *res.record.RecordID()
	if first, reused := seen[id]; reused {
		b.logger.Debug("id reused, later record overwrites",
			zap.String("entity", entity), zap.Int("id", id), zap.String("first", first))
	}
	seen[id] = entity

	if batch.Sink == nil {
		return
	}
	if err := batch.Sink.Put(ctx, res.record); err != nil {
		report.warn(entity, WarnExportFailed, err)
		b.logger.Error("export failed", zap.String("entity", entity), zap.Int("id", id), zap.Error(err))
		return
	}
	report.Exported++
}
