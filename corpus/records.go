package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/infobox/format"
	"github.com/tsawler/infobox/model"
)

// Collection is a set of records indexed by id.
type Collection[R model.Record] struct {
	records []R
	byID    map[int]int
}

// Len returns the number of records.
func (c *Collection[R]) Len() int {
	return len(c.records)
}

// All returns the records in load order.
func (c *Collection[R]) All() []R {
	return c.records
}

// Get returns the record with the given id.
func (c *Collection[R]) Get(id int) (R, bool) {
	i, ok := c.byID[id]
	if !ok {
		var zero R
		return zero, false
	}
	return c.records[i], true
}

// add indexes r. A repeated id replaces the earlier record in place.
func (c *Collection[R]) add(r R, source string) error {
	id := r.RecordID()
	if id == nil {
		return fmt.Errorf("%s: record has no id", source)
	}
	if i, ok := c.byID[*id]; ok {
		c.records[i] = r
		return nil
	}
	c.byID[*id] = len(c.records)
	c.records = append(c.records, r)
	return nil
}

// LoadMonsters loads monsters from a directory of per-record files or from
// one aggregate file keyed by id.
func LoadMonsters(path string) (*Collection[*model.Monster], error) {
	return load(path, func() *model.Monster { return &model.Monster{} })
}

// LoadItems loads items from a directory of per-record files or from one
// aggregate file keyed by id.
func LoadItems(path string) (*Collection[*model.Item], error) {
	return load(path, func() *model.Item { return &model.Item{} })
}

func load[R model.Record](path string, newRecord func() R) (*Collection[R], error) {
	f, err := format.DetectPath(path)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	c := &Collection[R]{byID: make(map[int]int)}
	switch f {
	case format.Directory:
		err = loadDirectory(c, path, newRecord)
	case format.YAML:
		err = loadAggregateYAML(c, path, newRecord)
	default:
		err = loadAggregateJSON(c, path, newRecord)
	}
	if err != nil {
		return nil, fmt.Errorf("load records %s: %w", path, err)
	}
	return c, nil
}

func loadDirectory[R model.Record](c *Collection[R], dir string, newRecord func() R) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		f := format.Detect(e.Name())
		if f == format.Unknown {
			continue
		}

		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		r := newRecord()
		if f == format.YAML {
			err = yaml.Unmarshal(data, r)
		} else {
			err = json.Unmarshal(data, r)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
		if err := c.add(r, e.Name()); err != nil {
			return err
		}
	}

	// File names sort as text; order by id instead.
	sort.SliceStable(c.records, func(i, j int) bool {
		return *c.records[i].RecordID() < *c.records[j].RecordID()
	})
	for i, r := range c.records {
		c.byID[*r.RecordID()] = i
	}
	return nil
}

func loadAggregateJSON[R model.Record](c *Collection[R], path string, newRecord func() R) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return err
		}
		r := newRecord()
		if err := dec.Decode(r); err != nil {
			return fmt.Errorf("record %s: %w", key, err)
		}
		if err := c.add(r, "record "+key); err != nil {
			return err
		}
	}
	return expectDelim(dec, '}')
}

func loadAggregateYAML[R model.Record](c *Collection[R], path string, newRecord func() R) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	m, err := yamlMapping(data)
	if err != nil {
		return err
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		key := m.Content[i].Value
		r := newRecord()
		if err := m.Content[i+1].Decode(r); err != nil {
			return fmt.Errorf("record %s: %w", key, err)
		}
		if err := c.add(r, "record "+key); err != nil {
			return err
		}
	}
	return nil
}
