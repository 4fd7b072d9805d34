package validate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sgacode/rss-finder/core/domain"
	coreerrors "github.com/sgacode/rss-finder/core/errors"
	"github.com/sgacode/rss-finder/core/interfaces"
)

const feedURL = "http://example.com/feed"

func respond(status int, body string) *mockFetcher {
	return &mockFetcher{
		fetchFunc: func(ctx context.Context, url string, opts domain.SearchOptions) (*domain.FetchOutcome, error) {
			return &domain.FetchOutcome{StatusCode: status, Body: body}, nil
		},
	}
}

func parseEntries(n int) *mockParser {
	return &mockParser{
		parseFunc: func(body string) (*domain.ParsedFeed, error) {
			return &domain.ParsedFeed{Title: "t", FeedType: "rss", Entries: n}, nil
		},
	}
}

func TestIsFeed(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *mockFetcher
		parser  *mockParser
		want    bool
	}{
		{
			name:    "feed with entries",
			fetcher: respond(200, "<rss/>"),
			parser:  parseEntries(3),
			want:    true,
		},
		{
			name:    "not found",
			fetcher: respond(404, "<rss/>"),
			parser:  parseEntries(3),
			want:    false,
		},
		{
			name:    "redirect status",
			fetcher: respond(301, ""),
			parser:  parseEntries(3),
			want:    false,
		},
		{
			name:    "empty body",
			fetcher: respond(200, ""),
			parser:  parseEntries(3),
			want:    false,
		},
		{
			name:    "whitespace body",
			fetcher: respond(200, " \n\t "),
			parser:  parseEntries(3),
			want:    false,
		},
		{
			name:    "zero entries",
			fetcher: respond(200, "<rss/>"),
			parser:  parseEntries(0),
			want:    false,
		},
		{
			name:    "parse error",
			fetcher: respond(200, "<html></html>"),
			parser: &mockParser{parseFunc: func(string) (*domain.ParsedFeed, error) {
				return nil, errors.New("failed to detect feed type")
			}},
			want: false,
		},
		{
			name: "fetch error",
			fetcher: &mockFetcher{fetchFunc: func(ctx context.Context, url string, opts domain.SearchOptions) (*domain.FetchOutcome, error) {
				return nil, &coreerrors.FetchError{URL: url, Cause: context.DeadlineExceeded}
			}},
			parser: parseEntries(3),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(interfaces.Dependencies{FeedParser: tt.parser}, tt.fetcher)
			assert.Equal(t, tt.want, v.IsFeed(context.Background(), feedURL, domain.DefaultSearchOptions()))
		})
	}
}

func TestIsFeed_ParserSeesBody(t *testing.T) {
	var seen string
	parser := &mockParser{parseFunc: func(body string) (*domain.ParsedFeed, error) {
		seen = body
		return &domain.ParsedFeed{Entries: 1}, nil
	}}

	v := NewValidator(interfaces.Dependencies{FeedParser: parser}, respond(200, "<feed>x</feed>"))
	assert.True(t, v.IsFeed(context.Background(), feedURL, domain.DefaultSearchOptions()))
	assert.Equal(t, "<feed>x</feed>", seen)
}

func TestIsFeed_CachesVerdicts(t *testing.T) {
	store := map[string][]byte{}
	var ttls []time.Duration
	cache := &mockCache{
		getFunc: func(ctx context.Context, key string) ([]byte, error) {
			if v, ok := store[key]; ok {
				return v, nil
			}
			return nil, interfaces.ErrCacheMiss
		},
		setFunc: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			store[key] = value
			ttls = append(ttls, ttl)
			return nil
		},
	}

	fetcher := respond(200, "<rss/>")
	v := NewValidator(interfaces.Dependencies{FeedParser: parseEntries(1), Cache: cache}, fetcher, WithCacheTTL(5*time.Minute))

	assert.True(t, v.IsFeed(context.Background(), feedURL, domain.DefaultSearchOptions()))
	assert.True(t, v.IsFeed(context.Background(), feedURL, domain.DefaultSearchOptions()))

	assert.Equal(t, 1, fetcher.calls, "second call should be served from cache")
	assert.Equal(t, []byte("1"), store[CacheKey(feedURL, domain.DefaultSearchOptions())])
	assert.Equal(t, []time.Duration{5 * time.Minute}, ttls)
}

func TestIsFeed_CachesNegativeVerdicts(t *testing.T) {
	store := map[string][]byte{}
	cache := &mockCache{
		getFunc: func(ctx context.Context, key string) ([]byte, error) {
			if v, ok := store[key]; ok {
				return v, nil
			}
			return nil, interfaces.ErrCacheMiss
		},
		setFunc: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			store[key] = value
			return nil
		},
	}

	fetcher := respond(404, "")
	v := NewValidator(interfaces.Dependencies{FeedParser: parseEntries(1), Cache: cache}, fetcher)

	assert.False(t, v.IsFeed(context.Background(), feedURL, domain.DefaultSearchOptions()))
	assert.False(t, v.IsFeed(context.Background(), feedURL, domain.DefaultSearchOptions()))
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, []byte("0"), store[CacheKey(feedURL, domain.DefaultSearchOptions())])
}

func TestIsFeed_DoesNotCacheFetchErrors(t *testing.T) {
	sets := 0
	cache := &mockCache{
		setFunc: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			sets++
			return nil
		},
	}
	fetcher := &mockFetcher{fetchFunc: func(ctx context.Context, url string, opts domain.SearchOptions) (*domain.FetchOutcome, error) {
		return nil, &coreerrors.FetchError{URL: url}
	}}

	v := NewValidator(interfaces.Dependencies{FeedParser: parseEntries(1), Cache: cache}, fetcher)

	assert.False(t, v.IsFeed(context.Background(), feedURL, domain.DefaultSearchOptions()))
	assert.Equal(t, 0, sets)
}

func TestIsFeed_IgnoresCacheErrors(t *testing.T) {
	cache := &mockCache{
		getFunc: func(ctx context.Context, key string) ([]byte, error) {
			return nil, errors.New("redis down")
		},
		setFunc: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			return errors.New("redis down")
		},
	}

	v := NewValidator(interfaces.Dependencies{FeedParser: parseEntries(2), Cache: cache}, respond(200, "<rss/>"))
	assert.True(t, v.IsFeed(context.Background(), feedURL, domain.DefaultSearchOptions()))
}

func TestIsFeed_CachedVerdictIsScopedToPolicy(t *testing.T) {
	store := map[string][]byte{}
	cache := &mockCache{
		getFunc: func(ctx context.Context, key string) ([]byte, error) {
			if v, ok := store[key]; ok {
				return v, nil
			}
			return nil, interfaces.ErrCacheMiss
		},
		setFunc: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			store[key] = value
			return nil
		},
	}

	// A feed reachable only through a redirect
	fetcher := &mockFetcher{fetchFunc: func(ctx context.Context, url string, opts domain.SearchOptions) (*domain.FetchOutcome, error) {
		if opts.FollowRedirects {
			return &domain.FetchOutcome{StatusCode: 200, Body: "<rss/>"}, nil
		}
		return &domain.FetchOutcome{StatusCode: 301}, nil
	}}
	v := NewValidator(interfaces.Dependencies{FeedParser: parseEntries(1), Cache: cache}, fetcher)

	follow := domain.DefaultSearchOptions()
	noFollow := domain.DefaultSearchOptions()
	noFollow.FollowRedirects = false

	assert.True(t, v.IsFeed(context.Background(), feedURL, follow))
	assert.False(t, v.IsFeed(context.Background(), feedURL, noFollow))
	assert.Equal(t, 2, fetcher.calls, "the second policy must not be served the first policy's verdict")

	assert.True(t, v.IsFeed(context.Background(), feedURL, follow))
	assert.False(t, v.IsFeed(context.Background(), feedURL, noFollow))
	assert.Equal(t, 2, fetcher.calls, "each policy should be served from its own cache entry")
}

func TestCacheKey(t *testing.T) {
	base := domain.DefaultSearchOptions()
	key := CacheKey(feedURL, base)

	assert.Equal(t, "feed:valid:r:notls:-:"+feedURL, key)

	strict := base
	strict.FollowRedirects = false
	strict.VerifyTLS = true
	assert.Equal(t, "feed:valid:nr:tls:-:"+feedURL, CacheKey(feedURL, strict))

	withHeaders := base
	withHeaders.Headers = map[string]string{"Accept-Language": "de", "Cookie": "a=1"}
	sameHeaders := base
	sameHeaders.Headers = map[string]string{"cookie": "a=1", "accept-language": "de"}
	otherHeaders := base
	otherHeaders.Headers = map[string]string{"Accept-Language": "fr", "Cookie": "a=1"}

	assert.NotEqual(t, key, CacheKey(feedURL, withHeaders))
	assert.Equal(t, CacheKey(feedURL, withHeaders), CacheKey(feedURL, sameHeaders), "header order and case do not matter")
	assert.NotEqual(t, CacheKey(feedURL, withHeaders), CacheKey(feedURL, otherHeaders))
}
