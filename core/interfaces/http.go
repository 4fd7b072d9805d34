package interfaces

import (
	"context"
	"io"
)

// RequestOptions carries the per-request transport policy of a search
type RequestOptions struct {
	// FollowRedirects makes the client follow 3xx responses
	FollowRedirects bool

	// VerifyTLS enables server certificate verification
	VerifyTLS bool

	// Headers are added to the request, overriding client defaults
	Headers map[string]string
}

// HTTPClient performs the GET requests of a search
type HTTPClient interface {
	// Get requests url under opts. Implementations abandon the request
	// once ctx is done.
	Get(ctx context.Context, url string, opts RequestOptions) (Response, error)
}

// Response is the part of an HTTP response the engine reads
type Response interface {
	StatusCode() int

	// Body must be closed by the caller
	Body() io.ReadCloser

	// Header looks key up case-insensitively; "" when absent
	Header(key string) string
}
