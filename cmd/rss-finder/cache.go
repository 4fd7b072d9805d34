// ABOUTME: Verdict cache selection shared by the search and serve commands
// ABOUTME: Builds the none, memory, redis or sqlite backend named in configuration

package main

import (
	"github.com/sgacode/rss-finder/core/interfaces"
	"github.com/sgacode/rss-finder/infrastructure/cache/memory"
	"github.com/sgacode/rss-finder/infrastructure/cache/redis"
	"github.com/sgacode/rss-finder/infrastructure/cache/sqlite"
	"github.com/sgacode/rss-finder/pkg/config"
)

// newCache builds the verdict cache named by cfg. A redis or sqlite cache
// that cannot be opened falls back to memory. The returned function releases the cache.
func newCache(cfg config.CacheConfig, log interfaces.Logger) (interfaces.Cache, func()) {
	switch cfg.Type {
	case "none":
		log.Info("Verdict cache disabled", nil)
		return nil, func() {}

	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.SQLite.Path, cfg.SQLite.CleanupInterval)
		if err != nil {
			log.Error("Failed to open SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			break
		}
		log.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.SQLite.Path,
		})
		return sqliteCache, func() {
			if err := sqliteCache.Close(); err != nil {
				log.Warn("Could not close SQLite cache", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			log.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			break
		}
		log.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Redis.Address,
		})
		return redisCache, func() {
			if err := redisCache.Close(); err != nil {
				log.Warn("Could not close Redis cache", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	log.Info("Using memory cache", nil)
	return memory.NewMemoryCache(cfg.Memory.CleanupInterval), func() {}
}
