package model

import (
	"errors"
	"fmt"
)

// ErrInvalidRecord is returned by Validate for a record that has no usable
// id and so cannot be exported.
var ErrInvalidRecord = errors.New("invalid record")

// Kind names a record family.
type Kind string

const (
	KindMonster Kind = "monsters"
	KindItem    Kind = "items"
)

// ParseKind accepts "monsters", "items" or the singular forms.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "monsters", "monster":
		return KindMonster, nil
	case "items", "item":
		return KindItem, nil
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}

// Record is implemented by every exportable record.
type Record interface {
	// RecordID returns the record id, or nil when the infobox had none.
	RecordID() *int
	// Validate reports whether the record can be exported.
	Validate() error
}

// validate checks the id a record is exported under. Every other field may
// be null.
func validate(id *int) error {
	if id == nil {
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	if *id < 0 {
		return fmt.Errorf("%w: negative id %d", ErrInvalidRecord, *id)
	}
	return nil
}
