// ABOUTME: Feed validator confirms that a URL serves a syndication feed with entries
// ABOUTME: Verdicts are optionally cached; every failure collapses into "not a feed"

package validate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/sgacode/rss-finder/core/domain"
	"github.com/sgacode/rss-finder/core/interfaces"
)

const cacheKeyPrefix = "feed:valid:"

// DefaultCacheTTL is how long a verdict is remembered when a cache is configured
const DefaultCacheTTL = time.Hour

var (
	verdictFeed    = []byte("1")
	verdictNotFeed = []byte("0")
)

// Validator implements interfaces.FeedValidator
type Validator struct {
	fetcher interfaces.ContentFetcher
	parser  interfaces.FeedParser
	cache   interfaces.Cache
	logger  interfaces.Logger
	ttl     time.Duration
}

// Option configures a Validator
type Option func(*Validator)

// WithCacheTTL sets the lifetime of cached verdicts
func WithCacheTTL(ttl time.Duration) Option {
	return func(v *Validator) {
		v.ttl = ttl
	}
}

// NewValidator creates a validator that fetches through fetcher and parses
// with deps.FeedParser. deps.Cache may be nil.
func NewValidator(deps interfaces.Dependencies, fetcher interfaces.ContentFetcher, opts ...Option) *Validator {
	v := &Validator{
		fetcher: fetcher,
		parser:  deps.FeedParser,
		cache:   deps.Cache,
		logger:  interfaces.LoggerOrNop(deps.Logger),
		ttl:     DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// IsFeed reports whether url serves a feed with at least one entry
func (v *Validator) IsFeed(ctx context.Context, url string, opts domain.SearchOptions) bool {
	key := CacheKey(url, opts)
	if verdict, ok := v.cached(ctx, key); ok {
		return verdict
	}

	outcome, err := v.fetcher.Fetch(ctx, url, opts)
	if err != nil {
		// Transient; not remembered.
		v.logger.Debug("Candidate fetch failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return false
	}

	verdict := v.judge(url, outcome)
	v.remember(ctx, key, url, verdict)
	return verdict
}

func (v *Validator) judge(url string, outcome *domain.FetchOutcome) bool {
	if outcome.StatusCode != 200 {
		v.logger.Debug("Candidate rejected", map[string]interface{}{
			"url":    url,
			"status": outcome.StatusCode,
		})
		return false
	}

	if strings.TrimSpace(outcome.Body) == "" {
		v.logger.Debug("Candidate rejected", map[string]interface{}{
			"url":    url,
			"reason": "empty body",
		})
		return false
	}

	feed, err := v.parser.Parse(outcome.Body)
	if err != nil {
		v.logger.Debug("Candidate rejected", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return false
	}

	if !feed.HasEntries() {
		v.logger.Debug("Candidate rejected", map[string]interface{}{
			"url":    url,
			"reason": "no entries",
		})
		return false
	}

	v.logger.Info("Feed confirmed", map[string]interface{}{
		"url":     url,
		"type":    feed.FeedType,
		"entries": feed.Entries,
	})
	return true
}

// CacheKey is the verdict key for url fetched under the transport policy of
// opts: feed:valid:<r|nr>:<tls|notls>:<headers>:<url>. <headers> is "-" when
// opts carries none, otherwise a digest of the sorted, lower-cased headers.
func CacheKey(url string, opts domain.SearchOptions) string {
	redirects := "nr"
	if opts.FollowRedirects {
		redirects = "r"
	}
	tls := "notls"
	if opts.VerifyTLS {
		tls = "tls"
	}
	return cacheKeyPrefix + redirects + ":" + tls + ":" + headerDigest(opts.Headers) + ":" + url
}

func headerDigest(headers map[string]string) string {
	if len(headers) == 0 {
		return "-"
	}

	lines := make([]string, 0, len(headers))
	for k, val := range headers {
		lines = append(lines, strings.ToLower(k)+"="+val)
	}
	sort.Strings(lines)

	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:8])
}

func (v *Validator) cached(ctx context.Context, key string) (bool, bool) {
	if v.cache == nil {
		return false, false
	}

	data, err := v.cache.Get(ctx, key)
	if err != nil || len(data) == 0 {
		return false, false
	}
	return string(data) == string(verdictFeed), true
}

func (v *Validator) remember(ctx context.Context, key, url string, verdict bool) {
	if v.cache == nil {
		return
	}

	value := verdictNotFeed
	if verdict {
		value = verdictFeed
	}
	if err := v.cache.Set(ctx, key, value, v.ttl); err != nil {
		v.logger.Warn("Failed to cache verdict", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
	}
}
