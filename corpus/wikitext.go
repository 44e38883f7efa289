package corpus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/infobox/format"
)

// Entry is one page of the corpus.
type Entry struct {
	Name string
	Text string
}

// entrySet collects entries in first-seen key order. A repeated key keeps
// its first position and takes the last value.
type entrySet struct {
	entries []Entry
	index   map[string]int
}

func (s *entrySet) add(name, text string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[name]; ok {
		s.entries[i].Text = text
		return
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, Entry{Name: name, Text: text})
}

// LoadWikiText reads a corpus file. The format is detected from the
// extension, then from the content.
func LoadWikiText(path string) ([]Entry, error) {
	f, err := format.DetectPath(path)
	if err != nil {
		return nil, fmt.Errorf("load wiki text: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load wiki text: %w", err)
	}

	var entries []Entry
	switch f {
	case format.YAML:
		entries, err = decodeWikiTextYAML(data)
	case format.Directory:
		return nil, fmt.Errorf("load wiki text %s: is a directory", path)
	default:
		entries, err = DecodeWikiText(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("load wiki text %s: %w", path, err)
	}
	return entries, nil
}

// DecodeWikiText decodes a JSON object of page title to markup, keeping key
// order.
func DecodeWikiText(r io.Reader) ([]Entry, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var set entrySet
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		var text string
		if err := dec.Decode(&text); err != nil {
			return nil, fmt.Errorf("page %q: %w", name, err)
		}
		set.add(name, text)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return set.entries, nil
}

func decodeWikiTextYAML(data []byte) ([]Entry, error) {
	m, err := yamlMapping(data)
	if err != nil {
		return nil, err
	}

	var set entrySet
	for i := 0; i+1 < len(m.Content); i += 2 {
		var text string
		if err := m.Content[i+1].Decode(&text); err != nil {
			return nil, fmt.Errorf("page %q: %w", m.Content[i].Value, err)
		}
		set.add(m.Content[i].Value, text)
	}
	return set.entries, nil
}

// yamlMapping returns the top-level mapping node of a YAML document. An
// empty document is an empty mapping.
func yamlMapping(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return &yaml.Node{Kind: yaml.MappingNode}, nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.New("expected a mapping at the top level")
	}
	return doc.Content[0], nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}
