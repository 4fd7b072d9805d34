// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Bundles the transport, parser, cache and logger the discovery engine is built from

// Package interfaces holds the contracts between the discovery engine and
// its infrastructure.
package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// HTTPClient performs the GET requests of fetches and validations
	HTTPClient HTTPClient

	// FeedParser decides whether a body is a syndication feed
	FeedParser FeedParser

	// Cache optionally memoizes validation verdicts
	Cache Cache

	// Logger provides structured logging
	Logger Logger
}
