package resolver

import (
	"strings"

	"github.com/tsawler/infobox/wikitext"
)

// Extract returns the trimmed value for key. With a resolved version it
// first reads "<key><index>", then reads the bare key, and the bare value
// replaces the numbered one whenever it is non-empty. Empty values count as
// absent.
func Extract(t *wikitext.Template, key string, info VersionInfo) (string, bool) {
	var value string

	if suffix := info.Suffix(); suffix != "" {
		if p, ok := t.Get(key + suffix); ok {
			value = strings.TrimSpace(p.Value)
		}
	}

	// Bare key overrides the numbered one.
	if p, ok := t.Get(key); ok {
		if bare := strings.TrimSpace(p.Value); bare != "" {
			value = bare
		}
	}

	if value == "" {
		return "", false
	}
	return value, true
}
