package infobox

import "go.uber.org/zap"

// ExtractOptions holds configuration for a build.
type ExtractOptions struct {
	// Page selection by title; nil means every page
	only []string

	// Version handling
	expandVersions bool
	maxVersions    int
	prefixes       []string
	marker         string // empty uses the kind's default

	// Processing options
	workers     int
	cacheSize   int
	wikiBaseURL string

	logger *zap.Logger
}

// defaultOptions returns the default build options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		only:           nil, // nil means all pages
		expandVersions: false,
		maxVersions:    0, // 0 keeps the resolver default
		prefixes:       nil,
		workers:        1,
		cacheSize:      -1, // negative keeps the builder default
		wikiBaseURL:    "",
		logger:         nil,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o

	// Deep copy slices
	if o.only != nil {
		newOpts.only = append([]string(nil), o.only...)
	}
	if o.prefixes != nil {
		newOpts.prefixes = append([]string(nil), o.prefixes...)
	}

	return newOpts
}
