// Package clean converts raw infobox values into typed record fields.
//
// Every function is total: it never panics and never returns an error.
// Values that cannot be coerced become nil (for dates and integers) or
// false (for booleans). Square brackets and surrounding whitespace are
// removed before any conversion, so "[[25 June 2017]]" and "25 June 2017"
// clean to the same value.
//
// Booleans are deliberately lossy: only "true" and "yes" (in any case)
// become true. Unknown, empty and absent values are indistinguishable from
// "false" downstream.
package clean
