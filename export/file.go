package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tsawler/infobox/format"
	"github.com/tsawler/infobox/model"
)

// FileSink writes each record to its own file in a directory.
type FileSink struct {
	dir    string
	format format.Format
	pretty bool
	perm   os.FileMode
}

// FileOption configures a FileSink.
type FileOption func(*FileSink)

// WithFormat sets the output format (default: JSON).
func WithFormat(f format.Format) FileOption {
	return func(s *FileSink) { s.format = f }
}

// WithPretty enables four-space indented output.
func WithPretty(pretty bool) FileOption {
	return func(s *FileSink) { s.pretty = pretty }
}

// WithFileMode sets the permissions of written files (default: 0644).
func WithFileMode(perm os.FileMode) FileOption {
	return func(s *FileSink) { s.perm = perm }
}

// NewFileSink creates the export directory if needed and returns a sink
// writing into it.
func NewFileSink(dir string, opts ...FileOption) (*FileSink, error) {
	s := &FileSink{
		dir:    dir,
		format: format.JSON,
		perm:   0o644,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.format != format.JSON && s.format != format.YAML {
		return nil, fmt.Errorf("file sink: unsupported format %s", s.format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file sink: %w", err)
	}
	return s, nil
}

// Dir returns the export directory.
func (s *FileSink) Dir() string {
	return s.dir
}

// Path returns the file a record is written to.
func (s *FileSink) Path(r model.Record) (string, error) {
	name, err := fileName(r, s.format)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

// Put writes r to "<dir>/<id><ext>", replacing any earlier file.
func (s *FileSink) Put(ctx context.Context, r model.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dest, err := s.Path(r)
	if err != nil {
		return err
	}

	data, err := Encode(r, s.format, s.pretty)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(dest), err)
	}

	if err := writeAtomic(dest, data, s.perm); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}

// writeAtomic writes data to a temporary file next to dest and renames it
// into place.
func writeAtomic(dest string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, perm)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
