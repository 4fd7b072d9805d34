package fetch

import (
	"context"
	"io"
	"strings"

	"github.com/sgacode/rss-finder/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string, opts interfaces.RequestOptions) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string, opts interfaces.RequestOptions) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url, opts)
	}
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	reader     io.Reader
	headers    map[string]string
	closed     bool
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	r := m.reader
	if r == nil {
		r = strings.NewReader(m.body)
	}
	return &trackingCloser{Reader: r, onClose: func() { m.closed = true }}
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

type trackingCloser struct {
	io.Reader
	onClose func()
}

func (t *trackingCloser) Close() error {
	t.onClose()
	return nil
}

// failingReader returns err on the first read
type failingReader struct {
	err error
}

func (f failingReader) Read([]byte) (int, error) {
	return 0, f.err
}
