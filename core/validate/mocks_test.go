package validate

import (
	"context"
	"time"

	"github.com/sgacode/rss-finder/core/domain"
	"github.com/sgacode/rss-finder/core/interfaces"
)

// mockFetcher is a mock implementation of the ContentFetcher interface
type mockFetcher struct {
	fetchFunc func(ctx context.Context, url string, opts domain.SearchOptions) (*domain.FetchOutcome, error)
	calls     int
}

func (m *mockFetcher) Fetch(ctx context.Context, url string, opts domain.SearchOptions) (*domain.FetchOutcome, error) {
	m.calls++
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url, opts)
	}
	return &domain.FetchOutcome{StatusCode: 200}, nil
}

// mockParser is a mock implementation of the FeedParser interface
type mockParser struct {
	parseFunc func(body string) (*domain.ParsedFeed, error)
}

func (m *mockParser) Parse(body string) (*domain.ParsedFeed, error) {
	if m.parseFunc != nil {
		return m.parseFunc(body)
	}
	return &domain.ParsedFeed{}, nil
}

// mockCache is a mock implementation of the Cache interface
type mockCache struct {
	getFunc func(ctx context.Context, key string) ([]byte, error)
	setFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return nil, interfaces.ErrCacheMiss
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return nil
}
