// Package builder turns wiki pages into monster and item records.
//
// Each page goes through the same steps: parse the markup, locate the
// infobox, resolve the version that applies to the entity, then extract and
// clean every known field into a fresh record. A page without an infobox
// yields [ErrNoTemplate]; markup that cannot be parsed yields
// [ErrMalformedMarkup]. Absent fields are never errors.
//
//	b, err := builder.New(builder.WithWikiBaseURL("https://oldschool.runescape.wiki/w/"))
//	if err != nil {
//	    // handle error
//	}
//	m, err := b.BuildMonster("Goblin", wikiText)
//
// [Builder.Run] processes a whole corpus. Pages are built on a bounded
// worker pool and the results are validated and handed to a [Sink] in input
// order, so output does not depend on scheduling.
package builder
