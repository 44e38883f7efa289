package builder

import "errors"

var (
	// ErrNoTemplate means the page has no infobox of the requested kind.
	// The entity is skipped.
	ErrNoTemplate = errors.New("no infobox template")

	// ErrMalformedMarkup means the page markup could not be parsed.
	ErrMalformedMarkup = errors.New("malformed markup")
)
