// Package infobox provides a fluent API for building monster and item
// records from wiki page markup.
//
// Basic usage:
//
//	monsters, warnings, err := infobox.Open("extract_page_text_monsters.json").Monsters()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", infobox.FormatWarnings(warnings))
//	}
//
// With options:
//
//	monsters, _, err := infobox.Open("extract_page_text_monsters.json").
//	    Only("Cow", "Goblin").
//	    ExpandVersions().
//	    Workers(4).
//	    Monsters()
//
// For advanced use cases, the lower-level wikitext, resolver and builder
// packages are also available.
package infobox

import (
	"github.com/tsawler/infobox/builder"
	"github.com/tsawler/infobox/corpus"
)

// Warning is a non-fatal, per-entity problem found while building.
type Warning = builder.Warning

// Report summarizes an export run.
type Report = builder.Report

// Open returns an Extractor over a wiki-text corpus file. The file is read
// when a terminal operation runs.
//
// Example:
//
//	monsters, warnings, err := infobox.Open("extract_page_text_monsters.json").Monsters()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromEntries creates an Extractor over pages already in memory.
//
// Example:
//
//	entries := []corpus.Entry{{Name: "Goblin", Text: wikiText}}
//	monsters, _, err := infobox.FromEntries(entries).Monsters()
func FromEntries(entries []corpus.Entry) *Extractor {
	return &Extractor{
		entries: append([]corpus.Entry(nil), entries...),
		loaded:  true,
		options: defaultOptions(),
	}
}

// FormatWarnings joins warnings into a human-readable block, one per line.
func FormatWarnings(warnings []Warning) string {
	return builder.FormatWarnings(warnings)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	entries := infobox.Must(infobox.Open("pages.json").Entries())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRecords is a helper that wraps a call to Monsters() or Items() and
// panics if the error is non-nil. It discards warnings and returns just the
// records.
//
// Example:
//
//	monsters := infobox.MustRecords(infobox.Open("pages.json").Monsters())
func MustRecords[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
