// Package resolver finds an infobox in parsed wiki markup and resolves which
// of its versions applies to a named entity.
//
// # Locating
//
// [Locate] scans every template in a document and keeps the last one whose
// normalized name contains the marker (for example "infobox monster").
// Later templates silently override earlier ones of the same kind.
//
// # Versions
//
// One wiki page often describes several variants of an entity, encoding
// them as numbered keys: version1, version2, hitpoints1, hitpoints2 and so
// on. [VersionResolver.DetectVersions] probes the identifier prefixes in
// order and counts the numbered slots; [VersionResolver.Resolve] then picks
// the slot whose value equals the entity name, defaulting to the first.
//
//	r := resolver.NewVersionResolver(resolver.WithMaxVersions(30))
//	info := r.Resolve(tpl, "Goblin")
//	value, ok := resolver.Extract(tpl, "hitpoints", info)
//
// # Extraction
//
// [Extract] looks up the numbered key and then the bare key. When both are
// present the bare key wins. That precedence looks reversed, but existing
// datasets were produced with it and it is kept for compatibility.
package resolver
