// ABOUTME: Search domain models for feed discovery configuration and results
// ABOUTME: Defines the per-search options, fetch outcomes, and the discovery report

package domain

import (
	"errors"
	"time"
)

const (
	// DefaultTimeout bounds a single fetch when no timeout is configured
	DefaultTimeout = 30 * time.Second

	// DefaultConcurrency is the number of validations run side by side
	DefaultConcurrency = 4

	// DefaultMaxBodyBytes caps how much of a response body is read
	DefaultMaxBodyBytes int64 = 10 << 20
)

// Strategy names which phase of the search produced the feeds
type Strategy string

const (
	// StrategyNone means no feed was found
	StrategyNone Strategy = "none"

	// StrategyMarkup means the feeds came from links declared in the page
	StrategyMarkup Strategy = "markup"

	// StrategyConventional means at least one feed came from path probing
	StrategyConventional Strategy = "conventional"
)

// SearchOptions is the immutable configuration of one search invocation.
// It is passed by value so a running search never observes changes.
type SearchOptions struct {
	// Timeout is the hard wall-clock deadline of each fetch
	Timeout time.Duration

	// FollowRedirects makes the fetcher follow 3xx responses
	FollowRedirects bool

	// VerifyTLS enables certificate verification. Off by default so
	// misconfigured sites can still be discovered.
	VerifyTLS bool

	// Headers are sent with every request
	Headers map[string]string

	// MaxResults caps the number of feeds returned. Zero means unbounded.
	MaxResults int

	// Concurrency bounds parallel validations. One means sequential.
	Concurrency int

	// MaxBodyBytes caps the bytes read from any response body
	MaxBodyBytes int64
}

// DefaultSearchOptions returns the documented defaults
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Timeout:         DefaultTimeout,
		FollowRedirects: true,
		VerifyTLS:       false,
		Headers:         map[string]string{},
		MaxResults:      0,
		Concurrency:     DefaultConcurrency,
		MaxBodyBytes:    DefaultMaxBodyBytes,
	}
}

// Validate checks that the options can drive a search
func (o SearchOptions) Validate() error {
	if o.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}

	if o.MaxResults < 0 {
		return errors.New("max results cannot be negative")
	}

	if o.Concurrency < 1 {
		return errors.New("concurrency must be at least 1")
	}

	if o.MaxBodyBytes <= 0 {
		return errors.New("max body bytes must be positive")
	}

	return nil
}

// WithDefaults fills zero-valued fields with their defaults.
// Boolean fields are left untouched since false is meaningful for both.
func (o SearchOptions) WithDefaults() SearchOptions {
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Concurrency == 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.MaxBodyBytes == 0 {
		o.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return o
}

// CapReached reports whether count satisfies MaxResults
func (o SearchOptions) CapReached(count int) bool {
	return o.MaxResults > 0 && count >= o.MaxResults
}

// FetchOutcome is a successful fetch
type FetchOutcome struct {
	// StatusCode is the HTTP status of the final response
	StatusCode int

	// Body is the response body decoded to UTF-8
	Body string

	// ContentType is the Content-Type header of the final response
	ContentType string
}

// SearchReport describes one completed discovery
type SearchReport struct {
	// URL is the normalized seed URL
	URL string `json:"url"`

	// Feeds holds the validated feed URLs without duplicates
	Feeds []string `json:"feeds"`

	// Strategy is the phase that produced the feeds
	Strategy Strategy `json:"strategy"`

	// Candidates is the number of distinct markup candidates considered
	Candidates int `json:"candidates"`

	// Probed is the number of conventional paths validated
	Probed int `json:"probed"`

	// Duration is the wall-clock time of the search
	Duration time.Duration `json:"duration"`
}
