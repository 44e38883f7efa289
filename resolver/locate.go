package resolver

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsawler/infobox/wikitext"
)

// Locate returns the last template whose trimmed, lowercased name contains
// marker. The scan never stops early. The boolean is false when no template
// matches, which callers treat as a skip rather than a failure.
func Locate(doc *wikitext.Document, marker string) (*wikitext.Template, bool) {
	lower := cases.Lower(language.Und)
	marker = lower.String(strings.TrimSpace(marker))

	var found *wikitext.Template
	for _, t := range doc.Templates() {
		name := lower.String(strings.TrimSpace(t.Name()))
		if strings.Contains(name, marker) {
			found = t
		}
	}
	return found, found != nil
}
