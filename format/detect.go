// Package format provides input and output format detection for record and
// corpus files.
package format

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a supported data format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// JSON indicates a JSON document.
	JSON
	// YAML indicates a YAML document.
	YAML
	// Directory indicates a directory of per-record files.
	Directory
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case JSON:
		return "JSON"
	case YAML:
		return "YAML"
	case Directory:
		return "Directory"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case JSON:
		return ".json"
	case YAML:
		return ".yaml"
	default:
		return ""
	}
}

// Parse maps a configuration value ("json", "yaml", "yml") to a Format.
func Parse(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return Unknown, fmt.Errorf("unsupported format %q", s)
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	default:
		return Unknown
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectFromMagic inspects the first bytes of a document. A leading '{' or
// '[' means JSON; a document marker or a "key:" first line means YAML.
func DetectFromMagic(data []byte) Format {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return Unknown
	}

	switch data[0] {
	case '{', '[':
		return JSON
	}

	if bytes.HasPrefix(data, []byte("---")) || bytes.HasPrefix(data, []byte("%YAML")) {
		return YAML
	}

	line, _, _ := bytes.Cut(data, []byte("\n"))
	line = bytes.TrimRight(line, " \t\r")
	if bytes.Contains(line, []byte(": ")) || bytes.HasSuffix(line, []byte(":")) {
		return YAML
	}

	return Unknown
}

// DetectPath determines the format of a path. Directories are reported as
// Directory; files are detected by extension, then by content.
func DetectPath(path string) (Format, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Unknown, err
	}
	if info.IsDir() {
		return Directory, nil
	}

	if f := Detect(path); f != Unknown {
		return f, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer file.Close()

	return DetectFromReader(file)
}

// DetectFromReader reads up to 512 bytes from r and detects the format.
func DetectFromReader(r io.Reader) (Format, error) {
	magic := make([]byte, 512)
	n, err := io.ReadFull(r, magic)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}
