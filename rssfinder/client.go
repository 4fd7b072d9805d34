// ABOUTME: Main client for the rss-finder library providing feed discovery
// ABOUTME: Offers a clean API for using the discovery engine without HTTP server dependencies

package rssfinder

import (
	"context"
	"time"

	"github.com/sgacode/rss-finder/core/discovery"
	"github.com/sgacode/rss-finder/core/domain"
	"github.com/sgacode/rss-finder/core/fetch"
	"github.com/sgacode/rss-finder/core/interfaces"
	"github.com/sgacode/rss-finder/core/validate"
)

// Report describes one completed discovery
type Report = domain.SearchReport

// Heuristics are the MIME types, anchor labels and conventional paths used to find feeds
type Heuristics = domain.Heuristics

// Strategy names which phase produced the feeds of a Report
type Strategy = domain.Strategy

// Strategies reported by Discover
const (
	StrategyNone         = domain.StrategyNone
	StrategyMarkup       = domain.StrategyMarkup
	StrategyConventional = domain.StrategyConventional
)

// Client is the main entry point for the rss-finder library
type Client struct {
	service  interfaces.DiscoveryService
	defaults domain.SearchOptions
}

// Config holds the configuration for the client
type Config struct {
	// HTTPClient performs every request of a search
	HTTPClient interfaces.HTTPClient

	// FeedParser decides whether a body is a feed
	FeedParser interfaces.FeedParser

	// Cache optionally remembers validation verdicts
	Cache interfaces.Cache

	// Logger receives structured logs; nil discards them
	Logger interfaces.Logger

	// CacheTTL is how long a verdict stays in Cache
	CacheTTL time.Duration

	// Heuristics drive extraction and probing
	Heuristics domain.Heuristics

	// Defaults are the options every search starts from
	Defaults domain.SearchOptions
}

// New creates a new client with the given options
func New(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	deps := interfaces.Dependencies{
		HTTPClient: config.HTTPClient,
		FeedParser: config.FeedParser,
		Cache:      config.Cache,
		Logger:     config.Logger,
	}

	fetcher := fetch.NewFetcher(deps)
	service := discovery.NewService(deps, config.Heuristics,
		discovery.WithFetcher(fetcher),
		discovery.WithValidator(validate.NewValidator(deps, fetcher, validate.WithCacheTTL(config.CacheTTL))),
	)

	return &Client{
		service:  service,
		defaults: config.Defaults,
	}, nil
}

// Search returns the feed URLs published by the site at url
func (c *Client) Search(ctx context.Context, url string, opts ...SearchOption) ([]string, error) {
	feeds, err := c.service.Search(ctx, url, c.options(opts))
	return feeds, wrapError(err)
}

// Discover returns the feeds of the site at url together with how they were found
func (c *Client) Discover(ctx context.Context, url string, opts ...SearchOption) (*Report, error) {
	report, err := c.service.Discover(ctx, url, c.options(opts))
	return report, wrapError(err)
}

func (c *Client) options(opts []SearchOption) domain.SearchOptions {
	options := c.defaults
	options.Headers = copyHeaders(c.defaults.Headers)
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func copyHeaders(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		out[k] = v
	}
	return out
}
