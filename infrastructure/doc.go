// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, HTTP communication, feed parsing and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: in-memory verdict cache backed by go-cache
// - cache/redis: Redis verdict cache
// - http/standard: net/http client with per-request redirect and TLS policy
// - feedparser: gofeed based FeedParser
// - logger/logrus, logger/zap: Logger backends, selected by logger.New
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache(memory.DefaultCleanupInterval)
//	err := cache.Set(ctx, "feed:valid:r:notls:-:https://example.com/rss", []byte("1"), time.Hour)
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//
// # HTTP Client
//
// Deadlines come from the request context. Requests are never retried:
//
//	client := standard.NewStandardHTTPClient(standard.WithLogger(logger))
//	resp, err := client.Get(ctx, "https://example.com", interfaces.RequestOptions{
//	    FollowRedirects: true,
//	})
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
// The loggers support structured logging with fields:
//
//	logger, closeLog, err := logger.New(cfg.Log, logger.BackendZap, os.Stderr)
//	defer closeLog()
//	logger.Info("Discovery finished", map[string]interface{}{
//	    "url":   "http://example.com/",
//	    "feeds": 2,
//	})
package infrastructure
