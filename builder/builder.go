package builder

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/davecgh/go-spew/spew"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tsawler/infobox/model"
	"github.com/tsawler/infobox/resolver"
	"github.com/tsawler/infobox/wikitext"
)

// Default template name markers.
const (
	DefaultMonsterMarker = "infobox monster"
	DefaultItemMarker    = "infobox item"
	DefaultBonusesMarker = "infobox bonuses"
)

// DefaultCacheSize is the number of parsed pages kept by default.
const DefaultCacheSize = 256

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Builder builds records from wiki pages. It is safe for concurrent use.
type Builder struct {
	resolver *resolver.VersionResolver
	markers  map[model.Kind]string
	bonuses  string
	baseURL  string
	logger   *zap.Logger

	cacheSize int
	cache     *lru.Cache[string, *wikitext.Document]
}

// Option configures a Builder.
type Option func(*Builder)

// WithResolver sets the version resolver.
func WithResolver(r *resolver.VersionResolver) Option {
	return func(b *Builder) {
		if r != nil {
			b.resolver = r
		}
	}
}

// WithMonsterMarker sets the template name marker for monster infoboxes.
func WithMonsterMarker(marker string) Option {
	return func(b *Builder) { b.markers[model.KindMonster] = marker }
}

// WithItemMarker sets the template name marker for item infoboxes.
func WithItemMarker(marker string) Option {
	return func(b *Builder) { b.markers[model.KindItem] = marker }
}

// WithBonusesMarker sets the template name marker for item equipment bonuses.
func WithBonusesMarker(marker string) Option {
	return func(b *Builder) { b.bonuses = marker }
}

// WithWikiBaseURL sets the prefix used to build wiki_url. An empty base
// leaves wiki_url null.
func WithWikiBaseURL(base string) Option {
	return func(b *Builder) { b.baseURL = base }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithCacheSize sets how many parsed pages are cached. Zero disables the
// cache.
func WithCacheSize(n int) Option {
	return func(b *Builder) {
		if n >= 0 {
			b.cacheSize = n
		}
	}
}

// New creates a Builder.
func New(opts ...Option) (*Builder, error) {
	b := &Builder{
		resolver: resolver.NewVersionResolver(),
		markers: map[model.Kind]string{
			model.KindMonster: DefaultMonsterMarker,
			model.KindItem:    DefaultItemMarker,
		},
		bonuses:   DefaultBonusesMarker,
		logger:    zap.NewNop(),
		cacheSize: DefaultCacheSize,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.cacheSize > 0 {
		cache, err := lru.New[string, *wikitext.Document](b.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create parse cache: %w", err)
		}
		b.cache = cache
	}

	return b, nil
}

// Resolver returns the version resolver in use.
func (b *Builder) Resolver() *resolver.VersionResolver {
	return b.resolver
}

// parse returns the parsed document for a page. Cached documents are reused
// only when their source matches text.
func (b *Builder) parse(page, text string) (*wikitext.Document, error) {
	if b.cache != nil {
		if doc, ok := b.cache.Get(page); ok && doc.Source() == text {
			return doc, nil
		}
	}

	doc, err := wikitext.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", page, ErrMalformedMarkup, err)
	}

	if b.cache != nil {
		b.cache.Add(page, doc)
	}
	return doc, nil
}

// locate parses the unit's page and finds its infobox.
func (b *Builder) locate(kind model.Kind, u Unit) (*wikitext.Document, *wikitext.Template, error) {
	doc, err := b.parse(u.Page, u.Text)
	if err != nil {
		return nil, nil, err
	}

	marker := b.markers[kind]
	t, ok := resolver.Locate(doc, marker)
	if !ok {
		b.logger.Debug("no infobox found",
			zap.String("entity", u.WikiName),
			zap.String("marker", marker))
		return doc, nil, fmt.Errorf("%s: %w", u.WikiName, ErrNoTemplate)
	}
	return doc, t, nil
}

// resolve selects the version for u. A unit pinned to a version number
// keeps it when the template has that many versions.
func (b *Builder) resolve(t *wikitext.Template, u Unit) resolver.VersionInfo {
	info := b.resolver.Resolve(t, u.Target)
	if info.Versioned && u.Version > 0 && u.Version <= info.Count {
		info.Index = u.Version
	}
	return info
}

// Build builds one unit as a record of the given kind.
func (b *Builder) Build(kind model.Kind, u Unit) (model.Record, error) {
	switch kind {
	case model.KindMonster:
		m, err := b.BuildMonsterUnit(u)
		if err != nil {
			return nil, err
		}
		return m, nil
	case model.KindItem:
		item, err := b.BuildItemUnit(u)
		if err != nil {
			return nil, err
		}
		return item, nil
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}

// BuildMonster builds the monster named name from its page markup.
func (b *Builder) BuildMonster(name, wikiText string) (*model.Monster, error) {
	return b.BuildMonsterUnit(PageUnit(name, wikiText))
}

// BuildMonsterUnit builds a monster from one unit.
func (b *Builder) BuildMonsterUnit(u Unit) (*model.Monster, error) {
	_, t, err := b.locate(model.KindMonster, u)
	if err != nil {
		return nil, err
	}

	info := b.resolve(t, u)
	m := &model.Monster{}
	fill(m, monsterFields, t, info)

	wikiName := u.WikiName
	m.WikiName = &wikiName
	m.WikiURL = b.wikiURL(u.Page)

	b.dump(u, info, m)
	return m, nil
}

// BuildItem builds the item named name from its page markup.
func (b *Builder) BuildItem(name, wikiText string) (*model.Item, error) {
	return b.BuildItemUnit(PageUnit(name, wikiText))
}

// BuildItemUnit builds an item from one unit. Equipment bonuses come from a
// second infobox on the same page, resolved against the same target.
func (b *Builder) BuildItemUnit(u Unit) (*model.Item, error) {
	doc, t, err := b.locate(model.KindItem, u)
	if err != nil {
		return nil, err
	}

	info := b.resolve(t, u)
	item := &model.Item{}
	fill(item, itemFields, t, info)

	if bt, ok := resolver.Locate(doc, b.bonuses); ok {
		stats := &model.EquipmentStats{}
		fill(stats, bonusFields, bt, b.resolve(bt, u))
		item.Stats = stats
	}

	wikiName := u.WikiName
	item.WikiName = &wikiName
	item.WikiURL = b.wikiURL(u.Page)

	b.dump(u, info, item)
	return item, nil
}

// wikiURL builds the page URL, or nil when no base URL is configured.
func (b *Builder) wikiURL(page string) *string {
	if b.baseURL == "" {
		return nil
	}
	title := strings.ReplaceAll(strings.TrimSpace(page), " ", "_")
	u := strings.TrimSuffix(b.baseURL, "/") + "/" + url.PathEscape(title)
	return &u
}

func (b *Builder) dump(u Unit, info resolver.VersionInfo, r model.Record) {
	if ce := b.logger.Check(zapcore.DebugLevel, "built record"); ce != nil {
		ce.Write(
			zap.String("entity", u.WikiName),
			zap.Int("version", info.Index),
			zap.String("record", dumper.Sdump(r)),
		)
	}
}
