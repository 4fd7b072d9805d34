// ABOUTME: Prometheus metrics for feed discovery on a private registry
// ABOUTME: Decorates the discovery service and feed validator to record outcomes

package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sgacode/rss-finder/core/domain"
	"github.com/sgacode/rss-finder/core/interfaces"
)

// Namespace prefixes every metric name
const Namespace = "rss_finder"

// Metrics holds the discovery collectors
type Metrics struct {
	registry *prometheus.Registry

	SearchesTotal         *prometheus.CounterVec
	ValidationsTotal      *prometheus.CounterVec
	SearchDurationSeconds prometheus.Histogram
}

// NewMetrics creates the collectors on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		SearchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "searches_total",
			Help:      "Completed feed searches by winning strategy",
		}, []string{"strategy"}),
		ValidationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "validations_total",
			Help:      "Candidate validations by result",
		}, []string{"result"}),
		SearchDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "Wall-clock duration of feed searches",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// InstrumentValidator counts the verdicts of v
func (m *Metrics) InstrumentValidator(v interfaces.FeedValidator) interfaces.FeedValidator {
	return &validator{next: v, m: m}
}

// InstrumentService records searches run through s
func (m *Metrics) InstrumentService(s interfaces.DiscoveryService) interfaces.DiscoveryService {
	return &service{next: s, m: m}
}

type validator struct {
	next interfaces.FeedValidator
	m    *Metrics
}

func (v *validator) IsFeed(ctx context.Context, url string, opts domain.SearchOptions) bool {
	ok := v.next.IsFeed(ctx, url, opts)
	result := "rejected"
	if ok {
		result = "feed"
	}
	v.m.ValidationsTotal.WithLabelValues(result).Inc()
	return ok
}

type service struct {
	next interfaces.DiscoveryService
	m    *Metrics
}

func (s *service) Search(ctx context.Context, url string, opts domain.SearchOptions) ([]string, error) {
	report, err := s.Discover(ctx, url, opts)
	if report == nil {
		return nil, err
	}
	return report.Feeds, err
}

func (s *service) Discover(ctx context.Context, url string, opts domain.SearchOptions) (*domain.SearchReport, error) {
	start := time.Now()
	report, err := s.next.Discover(ctx, url, opts)
	if report == nil {
		return report, err
	}

	s.m.SearchDurationSeconds.Observe(time.Since(start).Seconds())
	s.m.SearchesTotal.WithLabelValues(string(report.Strategy)).Inc()
	return report, err
}
