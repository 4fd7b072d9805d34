package handlers

import (
	"context"
	"sync"

	"github.com/sgacode/rss-finder/core/domain"
)

// mockDiscoveryService is a mock implementation of the discovery service
type mockDiscoveryService struct {
	mu           sync.Mutex
	discoverFunc func(ctx context.Context, url string, opts domain.SearchOptions) (*domain.SearchReport, error)
	calls        []string
	lastOpts     domain.SearchOptions
}

func (m *mockDiscoveryService) Search(ctx context.Context, url string, opts domain.SearchOptions) ([]string, error) {
	report, err := m.Discover(ctx, url, opts)
	if report == nil {
		return nil, err
	}
	return report.Feeds, err
}

func (m *mockDiscoveryService) Discover(ctx context.Context, url string, opts domain.SearchOptions) (*domain.SearchReport, error) {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	m.lastOpts = opts
	m.mu.Unlock()

	if m.discoverFunc != nil {
		return m.discoverFunc(ctx, url, opts)
	}
	return &domain.SearchReport{URL: url, Strategy: domain.StrategyNone}, nil
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

// mockLogger records every entry
type mockLogger struct {
	mu   sync.Mutex
	logs []logEntry
}

func (m *mockLogger) record(level, msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, logEntry{level: level, msg: msg, fields: fields})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.record("debug", msg, fields) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.record("info", msg, fields) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.record("warn", msg, fields) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.record("error", msg, fields) }
