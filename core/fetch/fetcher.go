// ABOUTME: Content fetcher performs one bounded-time GET and decodes the body to UTF-8
// ABOUTME: Every failure, including deadline expiry, surfaces as a FetchError

package fetch

import (
	"context"
	"io"

	"golang.org/x/net/html/charset"

	"github.com/sgacode/rss-finder/core/domain"
	"github.com/sgacode/rss-finder/core/errors"
	"github.com/sgacode/rss-finder/core/interfaces"
)

// Fetcher implements interfaces.ContentFetcher on top of an HTTPClient
type Fetcher struct {
	client interfaces.HTTPClient
	logger interfaces.Logger
}

// NewFetcher creates a fetcher using the HTTP client and logger of deps
func NewFetcher(deps interfaces.Dependencies) *Fetcher {
	return &Fetcher{
		client: deps.HTTPClient,
		logger: interfaces.LoggerOrNop(deps.Logger),
	}
}

// Fetch retrieves url under opts. The call never outlives opts.Timeout.
func (f *Fetcher) Fetch(ctx context.Context, url string, opts domain.SearchOptions) (*domain.FetchOutcome, error) {
	opts = opts.WithDefaults()

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	resp, err := f.client.Get(ctx, url, interfaces.RequestOptions{
		FollowRedirects: opts.FollowRedirects,
		VerifyTLS:       opts.VerifyTLS,
		Headers:         opts.Headers,
	})
	if err != nil {
		f.logger.Debug("Fetch failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return nil, &errors.FetchError{URL: url, Cause: err}
	}

	body := resp.Body()
	defer body.Close()

	contentType := resp.Header("Content-Type")

	decoded, err := charset.NewReader(io.LimitReader(body, opts.MaxBodyBytes), contentType)
	if err != nil {
		return nil, &errors.FetchError{URL: url, Cause: errors.WrapError(err, "decode body")}
	}

	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, &errors.FetchError{URL: url, Cause: errors.WrapError(err, "read body")}
	}

	return &domain.FetchOutcome{
		StatusCode:  resp.StatusCode(),
		Body:        string(data),
		ContentType: contentType,
	}, nil
}
