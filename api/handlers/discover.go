// ABOUTME: Discover handler exposes feed discovery over HTTP
// ABOUTME: Single-site GET returns a full report, batch POST fans sites out concurrently

package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/danielgtaylor/huma/v2"

	"github.com/sgacode/rss-finder/api/middleware"
	"github.com/sgacode/rss-finder/core/domain"
	"github.com/sgacode/rss-finder/core/interfaces"
)

// DefaultMaxBatch bounds the URLs accepted by one batch request
const DefaultMaxBatch = 20

// DiscoverHandler handles RSS feed discovery
type DiscoverHandler struct {
	service  interfaces.DiscoveryService
	defaults domain.SearchOptions
	maxBatch int
	logger   interfaces.Logger
}

// NewDiscoverHandler creates a new discover handler.
// defaults seed the options of every search; requests may override MaxResults.
func NewDiscoverHandler(service interfaces.DiscoveryService, defaults domain.SearchOptions, maxBatch int, logger interfaces.Logger) *DiscoverHandler {
	if maxBatch <= 0 {
		maxBatch = DefaultMaxBatch
	}
	return &DiscoverHandler{
		service:  service,
		defaults: defaults,
		maxBatch: maxBatch,
		logger:   interfaces.LoggerOrNop(logger),
	}
}

// RegisterRoutes registers discover routes
func (h *DiscoverHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "discoverSite",
		Method:      http.MethodGet,
		Path:        "/discover",
		Summary:     "Discover feeds of one website",
		Description: "Inspects the page markup for declared feeds, then probes conventional feed paths",
		Tags:        []string{"Discovery"},
	}, h.DiscoverSite)

	huma.Register(api, huma.Operation{
		OperationID: "discoverFeeds",
		Method:      http.MethodPost,
		Path:        "/discover",
		Summary:     "Discover feeds of several websites",
		Description: "Runs one discovery per URL concurrently and reports each outcome separately",
		Tags:        []string{"Discovery"},
	}, h.DiscoverFeeds)
}

// DiscoverSiteInput defines the input for single-site discovery
type DiscoverSiteInput struct {
	URL        string `query:"url" required:"true" doc:"Website URL, scheme optional"`
	MaxResults int    `query:"maxResults" minimum:"0" doc:"Stop after this many feeds, 0 for all"`
}

// SearchReportBody is the wire form of a discovery report
type SearchReportBody struct {
	URL        string   `json:"url" doc:"Normalized seed URL"`
	Feeds      []string `json:"feeds" doc:"Validated feed URLs"`
	Strategy   string   `json:"strategy" doc:"Phase that produced the feeds: markup, conventional or none"`
	Candidates int      `json:"candidates" doc:"Distinct candidates found in the page"`
	Probed     int      `json:"probed" doc:"Conventional paths validated"`
	DurationMs int64    `json:"durationMs" doc:"Wall-clock duration of the search"`
}

// DiscoverSiteOutput defines the output for single-site discovery
type DiscoverSiteOutput struct {
	Body SearchReportBody
}

// DiscoverSite handles the GET /discover endpoint
func (h *DiscoverHandler) DiscoverSite(ctx context.Context, input *DiscoverSiteInput) (*DiscoverSiteOutput, error) {
	report, err := h.service.Discover(ctx, input.URL, h.options(input.MaxResults))
	if err != nil {
		h.logger.Warn("Discovery failed", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"url":        input.URL,
			"error":      err.Error(),
		})
		return nil, toHumaError(err)
	}

	return &DiscoverSiteOutput{Body: toReportBody(report)}, nil
}

// DiscoverFeedsInput defines the input for feed discovery
type DiscoverFeedsInput struct {
	Body struct {
		URLs       []string `json:"urls" doc:"List of website URLs to discover feeds from"`
		MaxResults int      `json:"maxResults,omitempty" minimum:"0" doc:"Per-site cap, 0 for all"`
	}
}

// FeedDiscoveryResult represents a single discovery result
type FeedDiscoveryResult struct {
	URL      string   `json:"url" doc:"Original URL that was checked"`
	Status   string   `json:"status" doc:"Discovery status: 'ok' or 'error'"`
	Feeds    []string `json:"feeds" doc:"Discovered feed URLs"`
	Strategy string   `json:"strategy,omitempty" doc:"Phase that produced the feeds"`
	Error    string   `json:"error,omitempty" doc:"Error message if discovery failed"`
}

// DiscoverFeedsOutput defines the output for feed discovery
type DiscoverFeedsOutput struct {
	Body struct {
		Results []FeedDiscoveryResult `json:"results" doc:"Discovery results for each URL"`
	}
}

// DiscoverFeeds handles the POST /discover endpoint
func (h *DiscoverHandler) DiscoverFeeds(ctx context.Context, input *DiscoverFeedsInput) (*DiscoverFeedsOutput, error) {
	if len(input.Body.URLs) == 0 {
		return nil, huma.Error400BadRequest("No URLs provided")
	}
	if len(input.Body.URLs) > h.maxBatch {
		return nil, huma.Error400BadRequest("Too many URLs in one request")
	}

	opts := h.options(input.Body.MaxResults)

	// Process URLs concurrently
	var wg sync.WaitGroup
	results := make([]FeedDiscoveryResult, len(input.Body.URLs))

	for i, siteURL := range input.Body.URLs {
		wg.Add(1)
		go func(idx int, siteURL string) {
			defer wg.Done()
			results[idx] = h.discoverOne(ctx, siteURL, opts)
		}(i, siteURL)
	}

	wg.Wait()

	h.logger.Info("Batch discovery completed", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
		"urls":       len(input.Body.URLs),
	})

	output := &DiscoverFeedsOutput{}
	output.Body.Results = results
	return output, nil
}

func (h *DiscoverHandler) discoverOne(ctx context.Context, siteURL string, opts domain.SearchOptions) FeedDiscoveryResult {
	result := FeedDiscoveryResult{URL: siteURL, Feeds: []string{}}

	report, err := h.service.Discover(ctx, siteURL, opts)
	if err != nil {
		result.Status = "error"
		result.Error = err.Error()
		if report != nil {
			result.Feeds = nonNil(report.Feeds)
		}
		return result
	}

	result.Status = "ok"
	result.Feeds = nonNil(report.Feeds)
	result.Strategy = string(report.Strategy)
	return result
}

// options copies the defaults so concurrent searches never share the header map
func (h *DiscoverHandler) options(maxResults int) domain.SearchOptions {
	opts := h.defaults
	if len(h.defaults.Headers) > 0 {
		opts.Headers = make(map[string]string, len(h.defaults.Headers))
		for k, v := range h.defaults.Headers {
			opts.Headers[k] = v
		}
	}
	if maxResults > 0 {
		opts.MaxResults = maxResults
	}
	return opts
}

func toReportBody(report *domain.SearchReport) SearchReportBody {
	if report == nil {
		return SearchReportBody{Feeds: []string{}, Strategy: string(domain.StrategyNone)}
	}
	return SearchReportBody{
		URL:        report.URL,
		Feeds:      nonNil(report.Feeds),
		Strategy:   string(report.Strategy),
		Candidates: report.Candidates,
		Probed:     report.Probed,
		DurationMs: report.Duration.Milliseconds(),
	}
}

func nonNil(feeds []string) []string {
	if feeds == nil {
		return []string{}
	}
	return feeds
}
