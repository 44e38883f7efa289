package clean

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/cases"
)

// DateLayout is the textual form of every cleaned date: day of month
// (two digits), full month name, four-digit year.
const DateLayout = "02 January 2006"

var brackets = strings.NewReplacer("[", "", "]", "")

// strip removes brackets and surrounding whitespace.
func strip(raw string) string {
	return strings.TrimSpace(brackets.Replace(strings.TrimSpace(raw)))
}

// Date parses a release date. The strict "DD Month YYYY" layout is tried
// first, then a lenient natural-language parse. The result is always
// rendered in DateLayout; nil means neither parse succeeded.
func Date(raw string) *string {
	s := strip(raw)
	if s == "" {
		return nil
	}

	if t, err := time.Parse(DateLayout, s); err == nil {
		out := t.Format(DateLayout)
		return &out
	}

	t, ok := lenientDate(s)
	if !ok {
		return nil
	}
	out := t.Format(DateLayout)
	return &out
}

// monthLayouts cover month-and-year values, which dateparse rejects. The
// day becomes the first of the month.
var monthLayouts = []string{"January 2006", "Jan 2006"}

// lenientDate wraps dateparse, which can panic on some malformed inputs.
func lenientDate(s string) (t time.Time, ok bool) {
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Text strips brackets and whitespace. It never returns nil-like values:
// empty input gives the empty string.
func Text(raw string) string {
	return strip(raw)
}

// Bool maps "true"/"yes" to true and everything else, including a nil
// (absent) value, to false.
func Bool(raw *string) bool {
	if raw == nil {
		return false
	}
	return BoolString(*raw)
}

// BoolString is Bool for a value known to be present.
func BoolString(raw string) bool {
	switch cases.Fold().String(strip(raw)) {
	case "true", "yes":
		return true
	default:
		return false
	}
}

// Int parses a base-10 integer. Non-numeric input gives nil.
func Int(raw string) *int {
	n, err := strconv.Atoi(strip(raw))
	if err != nil {
		return nil
	}
	return &n
}
