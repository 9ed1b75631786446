package catalog

import "embed"

// Catalog data ships inside the binary so that every deployment of the
// engine resolves against the same versioned rule set.
//
//go:embed data
var dataFS embed.FS
