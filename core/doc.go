// Package core contains the feed discovery engine.
// It is framework-agnostic and can be used independently of any web
// framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: search options, reports and the heuristic tables
// - normalize: URL normalization and resolution against a base
// - fetch: bounded-time GET with charset decoding
// - extract: feed link extraction from HTML
// - validate: confirms that a URL serves a feed with entries
// - discovery: orchestrates extraction, probing and validation
// - errors: custom error types
// - interfaces: contracts for external dependencies (cache, HTTP, logger, parser)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    HTTPClient: standard.NewStandardHTTPClient(),
//	    FeedParser: feedparser.NewGofeedParser(),
//	    Logger:     myLogger,
//	}
//
//	service := discovery.NewService(deps, domain.DefaultHeuristics())
//
//	feeds, err := service.Search(ctx, "example.com", domain.DefaultSearchOptions())
package core
