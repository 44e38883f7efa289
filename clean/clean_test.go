package clean

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func TestDate_StrictLayoutUnchanged(t *testing.T) {
	tests := []string{
		"25 June 2017",
		"01 November 2014",
		"09 March 2004",
		"31 December 1999",
	}

	for _, raw := range tests {
		got := Date(raw)
		if got == nil {
			t.Errorf("Date(%q) = nil", raw)
			continue
		}
		if *got != raw {
			t.Errorf("Date(%q) = %q, want unchanged", raw, *got)
		}
	}
}

func TestDate_Cleanup(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"[[25 June 2017]]", "25 June 2017"},
		{"  [[01 November 2014]]  ", "01 November 2014"},
		{"2017-06-25", "25 June 2017"},
		{"June 25, 2017", "25 June 2017"},
		{"5 January 2005", "05 January 2005"},
		{"June 2017", "01 June 2017"},
		{"[[Nov 2014]]", "01 November 2014"},
	}

	for _, tt := range tests {
		got := Date(tt.raw)
		if got == nil {
			t.Errorf("Date(%q) = nil, want %q", tt.raw, tt.want)
			continue
		}
		if *got != tt.want {
			t.Errorf("Date(%q) = %q, want %q", tt.raw, *got, tt.want)
		}
	}
}

func TestDate_Unparseable(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"[[]]",
		"not a date",
		"sometime in the future",
	}

	for _, raw := range tests {
		if got := Date(raw); got != nil {
			t.Errorf("Date(%q) = %q, want nil", raw, *got)
		}
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"  ", ""},
		{"[[Melee]]", "Melee"},
		{"  It's a goblin. ", "It's a goblin."},
		{"[[Crush]], [[Stab]]", "Crush, Stab"},
	}

	for _, tt := range tests {
		if got := Text(tt.raw); got != tt.want {
			t.Errorf("Text(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestBool(t *testing.T) {
	tests := []struct {
		name string
		raw  *string
		want bool
	}{
		{"nil", nil, false},
		{"empty", strPtr(""), false},
		{"true", strPtr("true"), true},
		{"True", strPtr("True"), true},
		{"TRUE", strPtr("TRUE"), true},
		{"yes", strPtr("yes"), true},
		{"Yes bracketed", strPtr(" [[Yes]] "), true},
		{"YES", strPtr("YES"), true},
		{"false", strPtr("false"), false},
		{"no", strPtr("No"), false},
		{"unknown", strPtr("Sometimes"), false},
		{"numeric", strPtr("1"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bool(tt.raw); got != tt.want {
				t.Errorf("Bool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		raw  string
		want *int
	}{
		{"42 ", intPtr(42)},
		{"[[42]]", intPtr(42)},
		{"-3", intPtr(-3)},
		{"+7", intPtr(7)},
		{"0", intPtr(0)},
		{"abc", nil},
		{"", nil},
		{"1.5", nil},
		{"1,000", nil},
	}

	for _, tt := range tests {
		got := Int(tt.raw)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("Int(%q) = %d, want nil", tt.raw, *got)
		case tt.want != nil && got == nil:
			t.Errorf("Int(%q) = nil, want %d", tt.raw, *tt.want)
		case tt.want != nil && *got != *tt.want:
			t.Errorf("Int(%q) = %d, want %d", tt.raw, *got, *tt.want)
		}
	}
}

func intPtr(n int) *int { return &n }
