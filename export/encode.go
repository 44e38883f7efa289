package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/infobox/format"
	"github.com/tsawler/infobox/model"
)

// ErrNoID is returned when a record without an id is exported.
var ErrNoID = errors.New("record has no id")

// Sink receives records to export.
type Sink interface {
	Put(ctx context.Context, r model.Record) error
}

// Indent is the indentation of pretty output.
const Indent = "    "

// Encode serializes v in declaration order. Pretty output is indented by
// four spaces; compact JSON has no whitespace between tokens.
func Encode(v any, f format.Format, pretty bool) ([]byte, error) {
	var buf bytes.Buffer

	switch f {
	case format.YAML:
		enc := yaml.NewEncoder(&buf)
		if pretty {
			enc.SetIndent(len(Indent))
		} else {
			enc.SetIndent(2)
		}
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case format.JSON:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if pretty {
			enc.SetIndent("", Indent)
		}
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
	}

	return nil, fmt.Errorf("cannot encode %s", f)
}

// fileName returns "<id><ext>" for a record.
func fileName(r model.Record, f format.Format) (string, error) {
	id := r.RecordID()
	if id == nil {
		return "", ErrNoID
	}
	return fmt.Sprintf("%d%s", *id, f.Extension()), nil
}

type tee []Sink

// Tee returns a sink that puts every record into each of sinks. All sinks
// are tried; their errors are joined.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

func (t tee) Put(ctx context.Context, r model.Record) error {
	var errs []error
	for _, s := range t {
		if err := s.Put(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
