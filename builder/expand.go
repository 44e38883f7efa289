package builder

import (
	"errors"
	"fmt"

	"github.com/tsawler/infobox/corpus"
	"github.com/tsawler/infobox/model"
)

// Unit is one record to build. A page usually yields one unit; a versioned
// page expanded with [Builder.Expand] yields one per version.
type Unit struct {
	// Page is the wiki page title, used for the parse cache and wiki_url.
	Page string
	// Text is the page markup.
	Text string
	// WikiName is the name recorded in wiki_name.
	WikiName string
	// Target is matched against version identifiers.
	Target string
	// Version pins a 1-based version number. Zero resolves by Target.
	Version int
}

// PageUnit returns the unit for a whole page, resolved by its own title.
func PageUnit(page, text string) Unit {
	return Unit{Page: page, Text: text, WikiName: page, Target: page}
}

// Expand returns one unit per version of the page's infobox, named
// "<page> - <version>". Unversioned pages, and pages without an infobox of
// the given kind, yield a single unit for the page.
func (b *Builder) Expand(kind model.Kind, e corpus.Entry) ([]Unit, error) {
	page := PageUnit(e.Name, e.Text)

	_, t, err := b.locate(kind, page)
	if errors.Is(err, ErrNoTemplate) {
		return []Unit{page}, nil
	}
	if err != nil {
		return nil, err
	}

	info := b.resolver.DetectVersions(t)
	if !info.Versioned {
		return []Unit{page}, nil
	}

	labels := b.resolver.Labels(t, info)
	units := make([]Unit, 0, len(labels))
	for i, label := range labels {
		units = append(units, Unit{
			Page:     e.Name,
			Text:     e.Text,
			WikiName: fmt.Sprintf("%s - %s", e.Name, label),
			Target:   label,
			Version:  i + 1,
		})
	}
	return units, nil
}
