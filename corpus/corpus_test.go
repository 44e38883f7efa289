package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestDecodeWikiTextKeepsKeyOrder(t *testing.T) {
	src := `{"Zombie": "{{Infobox Monster|name=Zombie}}", "Abyssal demon": "a", "Goblin": "g"}`

	entries, err := DecodeWikiText(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"Zombie", "Abyssal demon", "Goblin"}, names(entries))
	assert.Equal(t, "{{Infobox Monster|name=Zombie}}", entries[0].Text)
}

func TestDecodeWikiTextDuplicateKey(t *testing.T) {
	entries, err := DecodeWikiText(strings.NewReader(`{"A": "1", "B": "2", "A": "3"}`))
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Name: "A", Text: "3"}, entries[0])
	assert.Equal(t, Entry{Name: "B", Text: "2"}, entries[1])
}

func TestDecodeWikiTextErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"array", `["a"]`},
		{"non-string value", `{"A": 1}`},
		{"truncated", `{"A": "x"`},
		{"empty input", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeWikiText(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestLoadWikiText(t *testing.T) {
	dir := t.TempDir()

	jsonPath := writeFile(t, dir, "pages.json", `{"Man": "{{Infobox Monster}}", "Cow": "{{Infobox Monster}}"}`)
	entries, err := LoadWikiText(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Man", "Cow"}, names(entries))

	yamlPath := writeFile(t, dir, "pages.yaml", "Man: \"{{Infobox Monster}}\"\nCow: |\n  {{Infobox Monster\n  |name=Cow}}\n")
	entries, err = LoadWikiText(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Man", "Cow"}, names(entries))
	assert.Equal(t, "{{Infobox Monster\n|name=Cow}}\n", entries[1].Text)

	_, err = LoadWikiText(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = LoadWikiText(dir)
	assert.Error(t, err)
}

func TestDirectoryAndAggregateAgree(t *testing.T) {
	dir := t.TempDir()
	recordsDir := filepath.Join(dir, "monsters-json")
	require.NoError(t, os.Mkdir(recordsDir, 0o755))

	writeFile(t, recordsDir, "10.json", `{"id": 10, "name": "Guard", "hitpoints": 22, "stats": {"attack_level": 19}}`)
	writeFile(t, recordsDir, "2.json", `{"id": 2, "name": "Goblin", "hitpoints": 5, "stats": {"attack_level": 1}}`)
	writeFile(t, recordsDir, "3.yaml", "id: 3\nname: Cow\nhitpoints: 8\nstats:\n  attack_level: 1\n")
	writeFile(t, recordsDir, "README", "not a record")

	aggregate := writeFile(t, dir, "monsters-complete.json", `{
		"2": {"id": 2, "name": "Goblin", "hitpoints": 5, "stats": {"attack_level": 1}},
		"3": {"id": 3, "name": "Cow", "hitpoints": 8, "stats": {"attack_level": 1}},
		"10": {"id": 10, "name": "Guard", "hitpoints": 22, "stats": {"attack_level": 19}}
	}`)

	fromDir, err := LoadMonsters(recordsDir)
	require.NoError(t, err)
	fromFile, err := LoadMonsters(aggregate)
	require.NoError(t, err)

	require.Equal(t, 3, fromDir.Len())
	require.Equal(t, fromFile.Len(), fromDir.Len())

	for _, id := range []int{2, 3, 10} {
		a, ok := fromDir.Get(id)
		require.True(t, ok, "directory load missing id %d", id)
		b, ok := fromFile.Get(id)
		require.True(t, ok, "aggregate load missing id %d", id)
		assert.Equal(t, b, a)
	}

	// Directory records are ordered by id.
	var ids []int
	for _, m := range fromDir.All() {
		ids = append(ids, *m.ID)
	}
	assert.Equal(t, []int{2, 3, 10}, ids)

	_, ok := fromDir.Get(99)
	assert.False(t, ok)
}

func TestLoadItemsAggregateYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "items.yaml", `
"4151":
  id: 4151
  name: Abyssal whip
  equipable: true
  stats:
    attack_slash: 82
    slot: weapon
"1925":
  id: 1925
  name: Bucket
  stats: null
`)

	items, err := LoadItems(path)
	require.NoError(t, err)
	require.Equal(t, 2, items.Len())

	whip, ok := items.Get(4151)
	require.True(t, ok)
	assert.Equal(t, "Abyssal whip", *whip.Name)
	assert.True(t, whip.Equipable)
	require.NotNil(t, whip.Stats)
	require.NotNil(t, whip.Stats.Slot)
	assert.Equal(t, "weapon", *whip.Stats.Slot)

	bucket, ok := items.Get(1925)
	require.True(t, ok)
	assert.Nil(t, bucket.Stats)
}

func TestLoadRecordWithoutID(t *testing.T) {
	path := writeFile(t, t.TempDir(), "monsters.json", `{"x": {"name": "Nameless"}}`)

	_, err := LoadMonsters(path)
	assert.Error(t, err)
}
