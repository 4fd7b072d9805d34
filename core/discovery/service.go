// ABOUTME: Discovery service runs the multi-strategy feed search for one seed URL
// ABOUTME: Declared links are validated first; conventional paths are probed as a fallback

package discovery

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sgacode/rss-finder/core/domain"
	"github.com/sgacode/rss-finder/core/errors"
	"github.com/sgacode/rss-finder/core/extract"
	"github.com/sgacode/rss-finder/core/fetch"
	"github.com/sgacode/rss-finder/core/interfaces"
	"github.com/sgacode/rss-finder/core/normalize"
	"github.com/sgacode/rss-finder/core/validate"
)

// Service implements interfaces.DiscoveryService
type Service struct {
	fetcher    interfaces.ContentFetcher
	extractor  interfaces.LinkExtractor
	validator  interfaces.FeedValidator
	heuristics domain.Heuristics
	logger     interfaces.Logger
}

// Option replaces one of the service's collaborators
type Option func(*Service)

// WithFetcher sets the fetcher used for the seed page
func WithFetcher(f interfaces.ContentFetcher) Option {
	return func(s *Service) {
		s.fetcher = f
	}
}

// WithExtractor sets the link extractor
func WithExtractor(e interfaces.LinkExtractor) Option {
	return func(s *Service) {
		s.extractor = e
	}
}

// WithValidator sets the feed validator
func WithValidator(v interfaces.FeedValidator) Option {
	return func(s *Service) {
		s.validator = v
	}
}

// NewService creates a discovery service. Unless replaced through opts the
// collaborators are built from deps and h.
func NewService(deps interfaces.Dependencies, h domain.Heuristics, opts ...Option) *Service {
	s := &Service{
		heuristics: h,
		logger:     interfaces.LoggerOrNop(deps.Logger),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.fetcher == nil {
		s.fetcher = fetch.NewFetcher(deps)
	}
	if s.extractor == nil {
		s.extractor = extract.NewExtractor(h)
	}
	if s.validator == nil {
		s.validator = validate.NewValidator(deps, s.fetcher)
	}
	return s
}

// Search returns the validated feed URLs reachable from rawURL
func (s *Service) Search(ctx context.Context, rawURL string, opts domain.SearchOptions) ([]string, error) {
	report, err := s.Discover(ctx, rawURL, opts)
	if report == nil {
		return nil, err
	}
	return report.Feeds, err
}

// Discover runs the search and reports how the feeds were found.
// On cancellation the feeds confirmed so far are returned with ctx.Err().
func (s *Service) Discover(ctx context.Context, rawURL string, opts domain.SearchOptions) (*domain.SearchReport, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, &errors.ValidationError{Field: "url", Message: "url cannot be empty"}
	}

	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, &errors.ValidationError{Field: "options", Message: err.Error()}
	}

	start := time.Now()
	report := &domain.SearchReport{
		URL:      rawURL,
		Feeds:    []string{},
		Strategy: domain.StrategyNone,
	}
	defer func() {
		report.Duration = time.Since(start)
	}()

	seed, err := normalize.Normalize(rawURL, "")
	if err != nil {
		s.logger.Warn("Seed URL rejected", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
		return report, nil
	}
	report.URL = seed

	s.logger.Info("Starting feed discovery", map[string]interface{}{
		"url":         seed,
		"max_results": opts.MaxResults,
	})

	page, err := s.fetcher.Fetch(ctx, seed, opts)
	if err != nil {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		s.logger.Warn("Seed fetch failed", map[string]interface{}{
			"url":   seed,
			"error": err.Error(),
		})
		return report, nil
	}
	if page.StatusCode != 200 {
		s.logger.Warn("Seed returned non-OK status", map[string]interface{}{
			"url":    seed,
			"status": page.StatusCode,
		})
	}

	links, err := s.extractor.ExtractLinks(page.Body)
	if err != nil {
		return nil, withURL(err, seed)
	}

	found := newResultSet()
	tried := make(map[string]struct{})

	candidates := s.candidates(seed, links)
	report.Candidates = len(candidates)
	for _, c := range candidates {
		tried[c] = struct{}{}
	}

	if _, err := s.validateAll(ctx, candidates, opts, found); err != nil {
		return s.finish(report, found, opts), err
	}
	if found.len() > 0 {
		report.Strategy = domain.StrategyMarkup
	}

	if found.len() > 0 && (opts.MaxResults == 0 || opts.CapReached(found.len())) {
		return s.finish(report, found, opts), nil
	}

	before := found.len()
	probes := s.probes(seed, tried)
	probed, err := s.validateAll(ctx, probes, opts, found)
	report.Probed = probed
	if found.len() > before {
		report.Strategy = domain.StrategyConventional
	}

	return s.finish(report, found, opts), err
}

// candidates normalizes the extracted hrefs against the seed and drops
// duplicates and hrefs that do not normalize
func (s *Service) candidates(seed string, links []string) []string {
	out := make([]string, 0, len(links))
	seen := make(map[string]struct{}, len(links))
	for _, href := range links {
		u, err := normalize.Normalize(href, seed)
		if err != nil {
			s.logger.Debug("Skipping candidate", map[string]interface{}{
				"href":  href,
				"error": err.Error(),
			})
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// probes builds the conventional path URLs for the seed's site in table
// order, leaving out URLs already validated
func (s *Service) probes(seed string, tried map[string]struct{}) []string {
	out := make([]string, 0, len(s.heuristics.Paths))
	for _, template := range s.heuristics.Paths {
		u, err := normalize.Normalize("/"+strings.TrimPrefix(template, "/"), seed)
		if err != nil {
			continue
		}
		if _, ok := tried[u]; ok {
			continue
		}
		tried[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// validateAll validates urls in ordered windows of opts.Concurrency and adds
// confirmed feeds to found in url order. It stops at the result cap and
// returns the number of urls validated.
func (s *Service) validateAll(ctx context.Context, urls []string, opts domain.SearchOptions, found *resultSet) (int, error) {
	validated := 0
	for start := 0; start < len(urls); start += opts.Concurrency {
		if err := ctx.Err(); err != nil {
			return validated, err
		}
		if opts.CapReached(found.len()) {
			break
		}

		end := min(start+opts.Concurrency, len(urls))
		window := urls[start:end]
		verdicts := make([]bool, len(window))

		var g errgroup.Group
		g.SetLimit(opts.Concurrency)
		for i, u := range window {
			i, u := i, u
			g.Go(func() error {
				verdicts[i] = s.validator.IsFeed(ctx, u, opts)
				return nil
			})
		}
		_ = g.Wait()

		validated += len(window)
		for i, ok := range verdicts {
			if ok {
				found.add(window[i])
			}
		}
	}
	return validated, ctx.Err()
}

func (s *Service) finish(report *domain.SearchReport, found *resultSet, opts domain.SearchOptions) *domain.SearchReport {
	feeds := found.list()
	if opts.MaxResults > 0 && len(feeds) > opts.MaxResults {
		feeds = feeds[:opts.MaxResults]
	}
	report.Feeds = feeds

	s.logger.Info("Feed discovery finished", map[string]interface{}{
		"url":        report.URL,
		"feeds":      len(feeds),
		"strategy":   string(report.Strategy),
		"candidates": report.Candidates,
		"probed":     report.Probed,
	})
	return report
}

func withURL(err error, url string) error {
	if pe, ok := err.(*errors.ParseError); ok && pe.URL == "" {
		return &errors.ParseError{URL: url, Cause: pe.Cause}
	}
	return err
}

// resultSet keeps insertion order and drops duplicates
type resultSet struct {
	order []string
	seen  map[string]struct{}
}

func newResultSet() *resultSet {
	return &resultSet{order: []string{}, seen: make(map[string]struct{})}
}

func (r *resultSet) add(u string) {
	if _, ok := r.seen[u]; ok {
		return
	}
	r.seen[u] = struct{}{}
	r.order = append(r.order, u)
}

func (r *resultSet) len() int {
	return len(r.order)
}

func (r *resultSet) list() []string {
	return append([]string{}, r.order...)
}
