package builder

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tsawler/infobox/corpus"
	"github.com/tsawler/infobox/model"
	"github.com/tsawler/infobox/resolver"
	"github.com/tsawler/infobox/wikitext"
)

const goblinPage = `{{Infobox Monster
|name = Goblin
|id = 2
|release = [[13 May]] [[2004]]
|members = No
|combat = 2
|hitpoints = 5
|max hit = 1
|attack style = [[Crush]]
|attack speed = 4
|aggressive = Yes
|poisonous = No
|immunepoison = Not immune
|immunevenom = Not immune
|slaylvl = 1
|slayxp = 5
|examine = An ugly green creature.
|att = 1
|str = 1
|def = 1
|mage = 1
|range = 1
|astab = 0
|aslash = 0
|acrush = 0
|amagic = 0
|arange = 0
|dstab = -15
|dslash = -15
|dcrush = -15
|dmagic = -15
|drange = -15
|attbns = 0
|strbns = 0
|rngbns = 0
|mbns = 0
}}
The '''Goblin''' is a common monster.`

const cowPage = `{{Infobox Monster
|version1 = Cow
|version2 = Cow calf
|version3 = Unicow
|name = Cow
|id1 = 81
|id2 = 2310
|id3 = 5603
|combat1 = 2
|combat2 = 1
|combat3 = 10
|hitpoints1 = 8
|hitpoints2 = 6
|hitpoints3 = 20
|examine = Converts grass to beef.
}}`

func newBuilder(t *testing.T, opts ...Option) *Builder {
	t.Helper()
	b, err := New(opts...)
	require.NoError(t, err)
	return b
}

func deref[T any](t *testing.T, p *T) T {
	t.Helper()
	require.NotNil(t, p)
	return *p
}

func TestBuildMonsterUnversioned(t *testing.T) {
	b := newBuilder(t, WithWikiBaseURL("https://oldschool.runescape.wiki/w/"))

	m, err := b.BuildMonster("Goblin", goblinPage)
	require.NoError(t, err)

	assert.Equal(t, 2, deref(t, m.ID))
	assert.Equal(t, "Goblin", deref(t, m.Name))
	assert.Equal(t, "Goblin", deref(t, m.WikiName))
	assert.Equal(t, "13 May 2004", deref(t, m.ReleaseDate))
	assert.False(t, m.Members)
	assert.Equal(t, 2, deref(t, m.CombatLevel))
	assert.Equal(t, 5, deref(t, m.Hitpoints))
	assert.Equal(t, 1, deref(t, m.MaxHit))
	assert.Equal(t, "Crush", deref(t, m.AttackType))
	assert.Equal(t, 4, deref(t, m.AttackSpeed))
	assert.True(t, m.Aggressive)
	assert.False(t, m.Poisonous)
	assert.Equal(t, "Not immune", deref(t, m.ImmunePoison))
	assert.Equal(t, 1, deref(t, m.SlayerLevel))
	assert.Equal(t, 5, deref(t, m.SlayerXP))
	assert.Equal(t, "An ugly green creature.", deref(t, m.Examine))
	assert.Equal(t, "https://oldschool.runescape.wiki/w/Goblin", deref(t, m.WikiURL))

	assert.Equal(t, 1, deref(t, m.Stats.AttackLevel))
	assert.Equal(t, -15, deref(t, m.Stats.DefenceStab))
	assert.Equal(t, 0, deref(t, m.Stats.MagicDamage))

	// Keys absent from the infobox stay null.
	assert.Nil(t, m.Weakness)
}

func TestBuildMonsterAbsentKeys(t *testing.T) {
	b := newBuilder(t)

	m, err := b.BuildMonster("Rat", "{{Infobox Monster|name=Rat|id=47|hitpoints=abc}}")
	require.NoError(t, err)

	assert.Equal(t, 47, deref(t, m.ID))
	assert.Nil(t, m.Hitpoints, "unparseable value is null")
	assert.Nil(t, m.CombatLevel)
	assert.Nil(t, m.ReleaseDate)
	assert.False(t, m.Members)
	assert.False(t, m.Aggressive)
	assert.Nil(t, m.Stats.AttackLevel)
	assert.Nil(t, m.WikiURL, "no base URL configured")
}

func TestBuildMonsterNoTemplate(t *testing.T) {
	b := newBuilder(t)

	m, err := b.BuildMonster("Lumbridge", "{{Infobox Location|name=Lumbridge}} A town.")
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, ErrNoTemplate))
}

func TestBuildMonsterStrayTagInValue(t *testing.T) {
	b := newBuilder(t)

	m, err := b.BuildMonster("X", "{{Infobox Monster|id=1|name=X|examine=a <b c}}\n== Drops ==\nSee > below")
	require.NoError(t, err)
	assert.Equal(t, 1, deref(t, m.ID))
	assert.Equal(t, "a <b c", deref(t, m.Examine))
}

func TestBuildMonsterMalformed(t *testing.T) {
	b := newBuilder(t)
	src := strings.Repeat("{{a|", wikitext.MaxDepth+1) + strings.Repeat("}}", wikitext.MaxDepth+1)

	_, err := b.BuildMonster("Deep", src)
	assert.True(t, errors.Is(err, ErrMalformedMarkup))
	assert.True(t, errors.Is(err, wikitext.ErrTooDeep))
}

func TestBuildMonsterResolvesVersion(t *testing.T) {
	b := newBuilder(t)

	tests := []struct {
		name      string
		id        int
		hitpoints int
	}{
		{"Cow", 81, 8},
		{"Cow calf", 2310, 6},
		{"Unicow", 5603, 20},
		{"Cow (Gielinor)", 81, 8}, // no slot matches, first version
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := b.BuildMonster(tt.name, cowPage)
			require.NoError(t, err)
			assert.Equal(t, tt.id, deref(t, m.ID))
			assert.Equal(t, tt.hitpoints, deref(t, m.Hitpoints))
			// The bare name key wins over name<i>.
			assert.Equal(t, "Cow", deref(t, m.Name))
			assert.Equal(t, "Converts grass to beef.", deref(t, m.Examine))
		})
	}
}

func TestBuildMonsterBareKeyOverridesVersioned(t *testing.T) {
	b := newBuilder(t)

	m, err := b.BuildMonster("A", "{{Infobox Monster|version1=A|version2=B|id1=1|hitpoints1=50|hitpoints=55}}")
	require.NoError(t, err)
	assert.Equal(t, 55, deref(t, m.Hitpoints))
	assert.Equal(t, 1, deref(t, m.ID))
}

func TestBuildMonsterLastInfoboxWins(t *testing.T) {
	b := newBuilder(t)

	m, err := b.BuildMonster("Imp", "{{Infobox Monster|id=1|name=Old}}\n{{infobox monster|id=2|name=Imp}}")
	require.NoError(t, err)
	assert.Equal(t, 2, deref(t, m.ID))
	assert.Equal(t, "Imp", deref(t, m.Name))
}

func TestBuildItem(t *testing.T) {
	b := newBuilder(t, WithWikiBaseURL("https://oldschool.runescape.wiki/w"))

	page := `{{Infobox Item
|name = Abyssal whip
|id = 4151
|release = 26 January 2005
|members = Yes
|quest = No
|tradeable = Yes
|equipable = Yes
|stackable = No
|noteable = Yes
|value = 120001
|weight = 0.453
|examine = A weapon from the abyss.
}}
{{Infobox Bonuses
|astab = 0
|aslash = +82
|acrush = 0
|str = +82
|rstr = 0
|mdmg = 0
|prayer = 0
|slot = weapon
|speed = 4
}}`

	item, err := b.BuildItem("Abyssal whip", page)
	require.NoError(t, err)

	assert.Equal(t, 4151, deref(t, item.ID))
	assert.Equal(t, "26 January 2005", deref(t, item.ReleaseDate))
	assert.True(t, item.Members)
	assert.False(t, item.QuestItem)
	assert.True(t, item.Tradeable)
	assert.True(t, item.Equipable)
	assert.False(t, item.Stackable)
	assert.True(t, item.Noteable)
	assert.Equal(t, 120001, deref(t, item.Cost))
	assert.Equal(t, "0.453", deref(t, item.Weight))
	assert.Equal(t, "https://oldschool.runescape.wiki/w/Abyssal_whip", deref(t, item.WikiURL))

	require.NotNil(t, item.Stats)
	assert.Equal(t, 82, deref(t, item.Stats.AttackSlash))
	assert.Equal(t, 82, deref(t, item.Stats.MeleeStrength))
	assert.Equal(t, "weapon", deref(t, item.Stats.Slot))
	assert.Equal(t, 4, deref(t, item.Stats.AttackSpeed))
	assert.Nil(t, item.Stats.DefenceStab)
}

func TestBuildItemWithoutBonuses(t *testing.T) {
	b := newBuilder(t)

	item, err := b.BuildItem("Bucket", "{{Infobox Item|name=Bucket|id=1925|stackable=no}}")
	require.NoError(t, err)
	assert.Nil(t, item.Stats)
}

func TestBuildUnknownKind(t *testing.T) {
	b := newBuilder(t)
	_, err := b.Build("npcs", PageUnit("x", "{{Infobox Monster}}"))
	assert.Error(t, err)
}

func TestCustomMarkerAndResolver(t *testing.T) {
	b := newBuilder(t,
		WithMonsterMarker("infobox npc"),
		WithResolver(resolver.NewVersionResolver(resolver.WithPrefixes("tier"))),
	)

	m, err := b.BuildMonster("Hard", "{{Infobox NPC|tier1=Easy|tier2=Hard|id1=1|id2=2|name=Guard}}")
	require.NoError(t, err)
	assert.Equal(t, 2, deref(t, m.ID))
}

func TestWikiURLEscapes(t *testing.T) {
	b := newBuilder(t, WithWikiBaseURL("https://oldschool.runescape.wiki/w/"))
	assert.Equal(t, "https://oldschool.runescape.wiki/w/Ahrim_the_Blighted", deref(t, b.wikiURL("Ahrim the Blighted")))
	assert.Equal(t, "https://oldschool.runescape.wiki/w/Black_knight%3F", deref(t, b.wikiURL("Black knight?")))
}

func TestParseCacheChecksSource(t *testing.T) {
	b := newBuilder(t, WithCacheSize(4))

	first, err := b.parse("Page", "{{A}}")
	require.NoError(t, err)
	again, err := b.parse("Page", "{{A}}")
	require.NoError(t, err)
	assert.Same(t, first, again)

	changed, err := b.parse("Page", "{{B}}")
	require.NoError(t, err)
	assert.NotSame(t, first, changed)
	assert.Equal(t, "{{B}}", changed.Source())
}

func TestParseWithoutCache(t *testing.T) {
	b := newBuilder(t, WithCacheSize(0))
	assert.Nil(t, b.cache)

	m, err := b.BuildMonster("Goblin", goblinPage)
	require.NoError(t, err)
	assert.Equal(t, 2, deref(t, m.ID))
}

func TestDebugDump(t *testing.T) {
	var buf bytes.Buffer
	logger := zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&buf),
		zapcore.DebugLevel,
	))
	b := newBuilder(t, WithLogger(logger))

	_, err := b.BuildMonster("Goblin", goblinPage)
	require.NoError(t, err)
	_, err = b.BuildMonster("Nothing", "no infobox here")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"built record"`)
	assert.Contains(t, out, "Hitpoints")
	assert.Contains(t, out, `"msg":"no infobox found"`)
	assert.Contains(t, out, `"entity":"Nothing"`)
}

func TestExpand(t *testing.T) {
	b := newBuilder(t)

	units, err := b.Expand(model.KindMonster, corpus.Entry{Name: "Cow", Text: cowPage})
	require.NoError(t, err)
	require.Len(t, units, 3)

	wantNames := []string{"Cow - Cow", "Cow - Cow calf", "Cow - Unicow"}
	wantIDs := []int{81, 2310, 5603}
	for i, u := range units {
		assert.Equal(t, wantNames[i], u.WikiName)
		assert.Equal(t, i+1, u.Version)
		assert.Equal(t, "Cow", u.Page)

		m, err := b.BuildMonsterUnit(u)
		require.NoError(t, err)
		assert.Equal(t, wantIDs[i], deref(t, m.ID))
		assert.Equal(t, wantNames[i], deref(t, m.WikiName))
	}
}

func TestExpandDuplicateLabelsKeepIndex(t *testing.T) {
	b := newBuilder(t)
	page := "{{Infobox Monster|version1=Same|version2=Same|id1=1|id2=2|name=X}}"

	units, err := b.Expand(model.KindMonster, corpus.Entry{Name: "X", Text: page})
	require.NoError(t, err)
	require.Len(t, units, 2)

	m, err := b.BuildMonsterUnit(units[1])
	require.NoError(t, err)
	assert.Equal(t, 2, deref(t, m.ID))
}

func TestExpandSingleUnit(t *testing.T) {
	b := newBuilder(t)

	tests := []struct {
		name string
		text string
	}{
		{"unversioned", goblinPage},
		{"no template", "just prose"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units, err := b.Expand(model.KindMonster, corpus.Entry{Name: "Page", Text: tt.text})
			require.NoError(t, err)
			assert.Equal(t, []Unit{PageUnit("Page", tt.text)}, units)
		})
	}
}
