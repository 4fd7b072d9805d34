// ABOUTME: Service interfaces for the discovery engine
// ABOUTME: Contracts between the fetcher, extractor, validator, and orchestrator

package interfaces

import (
	"context"

	"github.com/sgacode/rss-finder/core/domain"
)

// FeedParser parses a syndication document (RSS, Atom, JSON Feed)
type FeedParser interface {
	Parse(body string) (*domain.ParsedFeed, error)
}

// ContentFetcher performs one bounded-time GET.
// Every failure is reported as *errors.FetchError.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string, opts domain.SearchOptions) (*domain.FetchOutcome, error)
}

// LinkExtractor returns raw feed hrefs declared or linked in an HTML page
type LinkExtractor interface {
	ExtractLinks(html string) ([]string, error)
}

// FeedValidator confirms a URL serves a feed with at least one entry.
// It never fails; every problem means "not a feed".
type FeedValidator interface {
	IsFeed(ctx context.Context, url string, opts domain.SearchOptions) bool
}

// DiscoveryService runs the full search for one seed URL
type DiscoveryService interface {
	Search(ctx context.Context, url string, opts domain.SearchOptions) ([]string, error)
	Discover(ctx context.Context, url string, opts domain.SearchOptions) (*domain.SearchReport, error)
}
