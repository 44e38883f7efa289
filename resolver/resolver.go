package resolver

import (
	"strconv"
	"strings"

	"github.com/tsawler/infobox/wikitext"
)

// DefaultMaxVersions is the highest version number probed.
const DefaultMaxVersions = 20

// DefaultPrefixes are the identifier keys that mark a versioned infobox,
// in probe order.
var DefaultPrefixes = []string{"version", "name", "monstername"}

// VersionInfo describes the versions of one infobox and the one selected
// for an entity. Index is 1-based; zero means the infobox is not versioned.
type VersionInfo struct {
	Versioned bool
	Prefix    string
	Count     int
	Index     int
}

// Suffix returns the key suffix for the resolved version, or "" when the
// infobox is not versioned.
func (v VersionInfo) Suffix() string {
	if v.Index <= 0 {
		return ""
	}
	return strconv.Itoa(v.Index)
}

// VersionResolver detects and resolves infobox versions.
type VersionResolver struct {
	prefixes    []string
	maxVersions int
}

// Option configures the resolver
type Option func(*VersionResolver)

// WithMaxVersions sets the highest version number probed (default: 20).
func WithMaxVersions(n int) Option {
	return func(r *VersionResolver) {
		if n > 0 {
			r.maxVersions = n
		}
	}
}

// WithPrefixes replaces the identifier prefixes probed for versions.
func WithPrefixes(prefixes ...string) Option {
	return func(r *VersionResolver) {
		if len(prefixes) > 0 {
			r.prefixes = append([]string(nil), prefixes...)
		}
	}
}

// NewVersionResolver creates a new version resolver
func NewVersionResolver(opts ...Option) *VersionResolver {
	r := &VersionResolver{
		prefixes:    append([]string(nil), DefaultPrefixes...),
		maxVersions: DefaultMaxVersions,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// MaxVersions returns the configured version bound.
func (r *VersionResolver) MaxVersions() int {
	return r.maxVersions
}

// DetectVersions reports whether t is versioned and how many versions it
// has. The first prefix with a "<prefix>1" key wins; counting stops at the
// first missing number.
func (r *VersionResolver) DetectVersions(t *wikitext.Template) VersionInfo {
	for _, prefix := range r.prefixes {
		if !t.Has(prefix + "1") {
			continue
		}

		count := 0
		for i := 1; i <= r.maxVersions; i++ {
			if !t.Has(prefix + strconv.Itoa(i)) {
				break
			}
			count = i
		}
		return VersionInfo{Versioned: true, Prefix: prefix, Count: count}
	}
	return VersionInfo{}
}

// Resolve detects versions and selects the one whose identifier equals
// name. When no slot matches, the first version is used.
func (r *VersionResolver) Resolve(t *wikitext.Template, name string) VersionInfo {
	info := r.DetectVersions(t)
	if !info.Versioned {
		return info
	}

	info.Index = 1
	target := strings.TrimSpace(name)
	for i := 1; i <= info.Count; i++ {
		p, ok := t.Get(info.Prefix + strconv.Itoa(i))
		if ok && strings.TrimSpace(p.Value) == target {
			info.Index = i
			break
		}
	}
	return info
}

// Labels returns the trimmed identifier value of every version, in order.
// It returns nil for an unversioned infobox.
func (r *VersionResolver) Labels(t *wikitext.Template, info VersionInfo) []string {
	if !info.Versioned {
		return nil
	}
	labels := make([]string, 0, info.Count)
	for i := 1; i <= info.Count; i++ {
		p, _ := t.Get(info.Prefix + strconv.Itoa(i))
		labels = append(labels, strings.TrimSpace(p.Value))
	}
	return labels
}
