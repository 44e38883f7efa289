package infobox

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/infobox/builder"
	"github.com/tsawler/infobox/corpus"
	"github.com/tsawler/infobox/model"
	"github.com/tsawler/infobox/resolver"
)

// Extractor provides a fluent interface for building records from a
// wiki-text corpus. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	entries  []corpus.Entry
	loaded   bool

	// Configuration
	options ExtractOptions
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		entries:  e.entries,
		loaded:   e.loaded,
		options:  e.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Only restricts the build to the named pages. Multiple calls are
// cumulative.
//
// Example:
//
//	monsters, _, err := infobox.Open("pages.json").Only("Goblin", "Cow").Monsters()
func (e *Extractor) Only(pages ...string) *Extractor {
	newExt := e.clone()
	newExt.options.only = append(newExt.options.only, pages...)
	return newExt
}

// ExpandVersions builds one record per version of a versioned infobox,
// named "<page> - <version>".
//
// Example:
//
//	monsters, _, err := infobox.Open("pages.json").ExpandVersions().Monsters()
func (e *Extractor) ExpandVersions() *Extractor {
	newExt := e.clone()
	newExt.options.expandVersions = true
	return newExt
}

// Workers sets how many pages are built in parallel. Output order does not
// change.
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	newExt.options.workers = n
	return newExt
}

// MaxVersions sets the highest version number probed (default: 20).
func (e *Extractor) MaxVersions(n int) *Extractor {
	newExt := e.clone()
	newExt.options.maxVersions = n
	return newExt
}

// Prefixes replaces the version identifier keys, in probe order
// (default: version, name, monstername).
func (e *Extractor) Prefixes(prefixes ...string) *Extractor {
	newExt := e.clone()
	newExt.options.prefixes = append([]string(nil), prefixes...)
	return newExt
}

// Marker overrides the infobox template name marker for the kind being
// built.
//
// Example:
//
//	npcs, _, err := infobox.Open("pages.json").Marker("infobox npc").Monsters()
func (e *Extractor) Marker(marker string) *Extractor {
	newExt := e.clone()
	newExt.options.marker = marker
	return newExt
}

// CacheSize sets how many parsed pages are cached. Zero disables the cache.
func (e *Extractor) CacheSize(n int) *Extractor {
	newExt := e.clone()
	newExt.options.cacheSize = n
	return newExt
}

// WikiBaseURL sets the prefix used to fill wiki_url.
//
// Example:
//
//	monsters, _, err := infobox.Open("pages.json").
//	    WikiBaseURL("https://oldschool.runescape.wiki/w/").
//	    Monsters()
func (e *Extractor) WikiBaseURL(base string) *Extractor {
	newExt := e.clone()
	newExt.options.wikiBaseURL = base
	return newExt
}

// Logger sets the logger used during the build.
func (e *Extractor) Logger(l *zap.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = l
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Entries returns the selected pages of the corpus in file order.
func (e *Extractor) Entries() ([]corpus.Entry, error) {
	entries := e.entries
	if !e.loaded {
		if e.filename == "" {
			return nil, fmt.Errorf("no filename specified")
		}
		loaded, err := corpus.LoadWikiText(e.filename)
		if err != nil {
			return nil, err
		}
		entries = loaded
	}

	if e.options.only == nil {
		return entries, nil
	}

	want := make(map[string]bool, len(e.options.only))
	for _, name := range e.options.only {
		want[name] = true
	}
	var selected []corpus.Entry
	for _, entry := range entries {
		if want[entry.Name] {
			selected = append(selected, entry)
		}
	}
	return selected, nil
}

// Monsters builds every selected page as a monster. Pages without a monster
// infobox are skipped and reported as warnings.
//
// Example:
//
//	monsters, warnings, err := infobox.Open("pages.json").Monsters()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", infobox.FormatWarnings(warnings))
//	}
func (e *Extractor) Monsters() ([]*model.Monster, []Warning, error) {
	report, err := e.run(context.Background(), model.KindMonster, nil)
	if err != nil {
		return nil, nil, err
	}

	monsters := make([]*model.Monster, 0, len(report.Records))
	for _, r := range report.Records {
		monsters = append(monsters, r.(*model.Monster))
	}
	return monsters, report.Warnings, nil
}

// Items builds every selected page as an item, including equipment bonuses
// when the page has them.
func (e *Extractor) Items() ([]*model.Item, []Warning, error) {
	report, err := e.run(context.Background(), model.KindItem, nil)
	if err != nil {
		return nil, nil, err
	}

	items := make([]*model.Item, 0, len(report.Records))
	for _, r := range report.Records {
		items = append(items, r.(*model.Item))
	}
	return items, report.Warnings, nil
}

// Export builds every selected page and puts each valid record into sink,
// in corpus order.
//
// Example:
//
//	sink, _ := export.NewFileSink("../docs/monsters-json/")
//	report, err := infobox.Open("pages.json").Export(ctx, model.KindMonster, sink)
func (e *Extractor) Export(ctx context.Context, kind model.Kind, sink builder.Sink) (*Report, error) {
	return e.run(ctx, kind, sink)
}

func (e *Extractor) run(ctx context.Context, kind model.Kind, sink builder.Sink) (*Report, error) {
	entries, err := e.Entries()
	if err != nil {
		return nil, err
	}

	b, err := e.newBuilder(kind)
	if err != nil {
		return nil, err
	}

	return b.Run(ctx, builder.Batch{
		Kind:           kind,
		Workers:        e.options.workers,
		ExpandVersions: e.options.expandVersions,
		Sink:           sink,
	}, entries)
}

// newBuilder assembles a builder from the options.
func (e *Extractor) newBuilder(kind model.Kind) (*builder.Builder, error) {
	var ropts []resolver.Option
	if e.options.maxVersions > 0 {
		ropts = append(ropts, resolver.WithMaxVersions(e.options.maxVersions))
	}
	if len(e.options.prefixes) > 0 {
		ropts = append(ropts, resolver.WithPrefixes(e.options.prefixes...))
	}

	opts := []builder.Option{
		builder.WithResolver(resolver.NewVersionResolver(ropts...)),
		builder.WithWikiBaseURL(e.options.wikiBaseURL),
		builder.WithLogger(e.options.logger),
	}
	if e.options.cacheSize >= 0 {
		opts = append(opts, builder.WithCacheSize(e.options.cacheSize))
	}
	if e.options.marker != "" {
		switch kind {
		case model.KindMonster:
			opts = append(opts, builder.WithMonsterMarker(e.options.marker))
		case model.KindItem:
			opts = append(opts, builder.WithItemMarker(e.options.marker))
		}
	}

	return builder.New(opts...)
}
