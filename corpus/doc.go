// Package corpus loads build inputs and previously exported records.
//
// A wiki-text corpus is one JSON (or YAML) object mapping page titles to raw
// page markup. [LoadWikiText] keeps the key order of the file, so a build
// processes pages in the order they were extracted.
//
// Exported records can be read back with [LoadMonsters] and [LoadItems],
// either from a directory of per-record files or from one aggregate file
// keyed by id.
package corpus
