package jobsource

import "context"

// Query describes a single search request sent to the sources.
type Query struct {
	Text     string
	Location string
	Page     int
}

// Source fetches job listings from a single provider.
type Source interface {
	Name() string
	// Configured reports whether the source has the credentials it needs.
	Configured() bool
	Search(ctx context.Context, q Query) ([]AggregatedJob, error)
}
