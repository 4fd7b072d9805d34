package discovery

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/sgacode/rss-finder/core/domain"
	"github.com/sgacode/rss-finder/core/interfaces"
)

type page struct {
	status int
	body   string
	err    error
}

// mockHTTPClient serves a fixed site; unknown URLs answer 404
type mockHTTPClient struct {
	mu        sync.Mutex
	pages     map[string]page
	requested []string
	onGet     func(url string)
}

func newSite(pages map[string]page) *mockHTTPClient {
	return &mockHTTPClient{pages: pages}
}

func (m *mockHTTPClient) Get(ctx context.Context, url string, opts interfaces.RequestOptions) (interfaces.Response, error) {
	m.mu.Lock()
	m.requested = append(m.requested, url)
	p, ok := m.pages[url]
	onGet := m.onGet
	m.mu.Unlock()

	if onGet != nil {
		onGet(url)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return &mockResponse{statusCode: 404}, nil
	}
	if p.err != nil {
		return nil, p.err
	}
	return &mockResponse{statusCode: p.status, body: p.body}, nil
}

func (m *mockHTTPClient) wasRequested(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.requested {
		if u == url {
			return true
		}
	}
	return false
}

func (m *mockHTTPClient) requestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requested)
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	return ""
}

// countingParser accepts documents starting with <rss and counts <item> tags
type countingParser struct{}

func (countingParser) Parse(body string) (*domain.ParsedFeed, error) {
	if !strings.HasPrefix(strings.TrimSpace(body), "<rss") {
		return nil, io.ErrUnexpectedEOF
	}
	return &domain.ParsedFeed{FeedType: "rss", Entries: strings.Count(body, "<item>")}, nil
}

// mockExtractor is a mock implementation of the LinkExtractor interface
type mockExtractor struct {
	extractFunc func(html string) ([]string, error)
}

func (m *mockExtractor) ExtractLinks(html string) ([]string, error) {
	if m.extractFunc != nil {
		return m.extractFunc(html)
	}
	return nil, nil
}
