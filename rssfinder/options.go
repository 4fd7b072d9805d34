// ABOUTME: Configuration options for the rss-finder library client
// ABOUTME: Provides functional options for the client and for individual searches

package rssfinder

import (
	"time"

	"github.com/sgacode/rss-finder/core/domain"
	"github.com/sgacode/rss-finder/core/interfaces"
	"github.com/sgacode/rss-finder/core/validate"
	"github.com/sgacode/rss-finder/infrastructure/feedparser"
	"github.com/sgacode/rss-finder/infrastructure/http/standard"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		if client == nil {
			return NewError(ErrorTypeConfiguration, "HTTP client cannot be nil")
		}
		c.HTTPClient = client
		return nil
	}
}

// WithFeedParser sets a custom feed parser
func WithFeedParser(parser interfaces.FeedParser) Option {
	return func(c *Config) error {
		if parser == nil {
			return NewError(ErrorTypeConfiguration, "feed parser cannot be nil")
		}
		c.FeedParser = parser
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithCache sets a cache for validation verdicts
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithCacheTTL sets how long validation verdicts are cached
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		if ttl < 0 {
			return NewError(ErrorTypeConfiguration, "cache TTL cannot be negative")
		}
		c.CacheTTL = ttl
		return nil
	}
}

// WithHeuristics extends the built-in heuristics with extra entries
func WithHeuristics(extra Heuristics) Option {
	return func(c *Config) error {
		c.Heuristics = c.Heuristics.Merge(extra)
		return nil
	}
}

// WithDefaults replaces the options every search starts from
func WithDefaults(opts domain.SearchOptions) Option {
	return func(c *Config) error {
		if err := opts.WithDefaults().Validate(); err != nil {
			return NewError(ErrorTypeValidation, err.Error())
		}
		c.Defaults = opts
		return nil
	}
}

// SearchOption is a functional option for a single search
type SearchOption func(*domain.SearchOptions)

// WithMaxResults stops the search after n feeds. Zero returns all feeds.
func WithMaxResults(n int) SearchOption {
	return func(o *domain.SearchOptions) {
		o.MaxResults = n
	}
}

// WithTimeout bounds every request of the search
func WithTimeout(d time.Duration) SearchOption {
	return func(o *domain.SearchOptions) {
		o.Timeout = d
	}
}

// WithHeaders adds headers to every request of the search
func WithHeaders(headers map[string]string) SearchOption {
	return func(o *domain.SearchOptions) {
		if o.Headers == nil {
			o.Headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.Headers[k] = v
		}
	}
}

// WithFollowRedirects controls whether 3xx responses are followed
func WithFollowRedirects(follow bool) SearchOption {
	return func(o *domain.SearchOptions) {
		o.FollowRedirects = follow
	}
}

// WithVerifyTLS controls server certificate verification
func WithVerifyTLS(verify bool) SearchOption {
	return func(o *domain.SearchOptions) {
		o.VerifyTLS = verify
	}
}

// WithConcurrency sets how many candidates are validated side by side
func WithConcurrency(n int) SearchOption {
	return func(o *domain.SearchOptions) {
		o.Concurrency = n
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		HTTPClient: standard.NewStandardHTTPClient(),
		FeedParser: feedparser.NewGofeedParser(),
		CacheTTL:   validate.DefaultCacheTTL,
		Heuristics: domain.DefaultHeuristics(),
		Defaults:   domain.DefaultSearchOptions(),
	}
}

func validateConfig(c *Config) error {
	if c.HTTPClient == nil {
		return NewError(ErrorTypeConfiguration, "HTTP client is required")
	}
	if c.FeedParser == nil {
		return NewError(ErrorTypeConfiguration, "feed parser is required")
	}
	return nil
}
