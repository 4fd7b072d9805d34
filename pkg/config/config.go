// ABOUTME: Configuration management with environment variable and YAML file support
// ABOUTME: Defines search defaults, server, cache, and logging settings loaded through cleanenv

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/sgacode/rss-finder/core/domain"
)

// Config holds all application configuration
type Config struct {
	// Search contains the defaults applied to every search
	Search SearchConfig `yaml:"search"`

	// Server contains HTTP server configuration
	Server ServerConfig `yaml:"server"`

	// Cache contains verdict cache configuration
	Cache CacheConfig `yaml:"cache"`

	// Log contains logging configuration
	Log LogConfig `yaml:"log"`
}

// SearchConfig holds the default search options
type SearchConfig struct {
	// Timeout bounds each fetch
	Timeout time.Duration `env:"RSS_FINDER_TIMEOUT" env-default:"30s" yaml:"timeout"`
	// FollowRedirects makes fetches follow 3xx responses
	FollowRedirects bool `env:"RSS_FINDER_FOLLOW_REDIRECTS" env-default:"true" yaml:"followRedirects"`
	// VerifyTLS enables certificate verification
	VerifyTLS bool `env:"RSS_FINDER_VERIFY_TLS" env-default:"false" yaml:"verifyTLS"`
	// MaxResults caps the feeds returned per search, zero means unbounded
	MaxResults int `env:"RSS_FINDER_MAX_RESULTS" env-default:"0" yaml:"maxResults"`
	// Concurrency bounds parallel validations
	Concurrency int `env:"RSS_FINDER_CONCURRENCY" env-default:"4" yaml:"concurrency"`
	// MaxBodyBytes caps the bytes read per response
	MaxBodyBytes int64 `env:"RSS_FINDER_MAX_BODY_BYTES" env-default:"10485760" yaml:"maxBodyBytes"`
	// UserAgent is sent with every request
	UserAgent string `env:"RSS_FINDER_USER_AGENT" env-default:"rss-finder/1.0" yaml:"userAgent"`
	// HeuristicsFile is an optional YAML file extending the built-in tables
	HeuristicsFile string `env:"RSS_FINDER_HEURISTICS_FILE" yaml:"heuristicsFile"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `env:"RSS_FINDER_PORT" env-default:"8000" yaml:"port"`
	// RateLimit is the number of requests allowed per client and window
	RateLimit int `env:"RSS_FINDER_RATE_LIMIT" env-default:"60" yaml:"rateLimit"`
	// RateWindow is the rate limiting window
	RateWindow time.Duration `env:"RSS_FINDER_RATE_WINDOW" env-default:"1m" yaml:"rateWindow"`
	// MaxBatch is the largest number of URLs accepted by one batch request
	MaxBatch int `env:"RSS_FINDER_MAX_BATCH" env-default:"20" yaml:"maxBatch"`
	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration `env:"RSS_FINDER_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"shutdownTimeout"`
	// TrustedProxies are the IPs or CIDR ranges whose forwarding headers
	// identify the client for rate limiting
	TrustedProxies []string `env:"RSS_FINDER_TRUSTED_PROXIES" env-separator:"," yaml:"trustedProxies"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (none/memory/redis/sqlite)
	Type string `env:"RSS_FINDER_CACHE_TYPE" env-default:"memory" yaml:"type"`
	// TTL is how long a validation verdict is kept
	TTL time.Duration `env:"RSS_FINDER_CACHE_TTL" env-default:"1h" yaml:"ttl"`
	// Redis contains Redis-specific configuration
	Redis RedisConfig `yaml:"redis"`
	// Memory contains in-memory cache configuration
	Memory MemoryConfig `yaml:"memory"`
	// SQLite contains file cache configuration
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `env:"RSS_FINDER_REDIS_ADDRESS" env-default:"localhost:6379" yaml:"address"`
	// Password is the Redis authentication password
	Password string `env:"RSS_FINDER_REDIS_PASSWORD" yaml:"password"`
	// DB is the Redis database number
	DB int `env:"RSS_FINDER_REDIS_DB" env-default:"0" yaml:"db"`
	// KeyPrefix namespaces every key written by this service
	KeyPrefix string `env:"RSS_FINDER_REDIS_KEY_PREFIX" env-default:"rss-finder:" yaml:"keyPrefix"`
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// CleanupInterval is how often expired entries are purged
	CleanupInterval time.Duration `env:"RSS_FINDER_MEMORY_CLEANUP_INTERVAL" env-default:"10m" yaml:"cleanupInterval"`
}

// SQLiteConfig holds SQLite file cache configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string `env:"RSS_FINDER_SQLITE_PATH" env-default:"rss-finder-cache.db" yaml:"path"`
	// CleanupInterval is how often expired rows are purged
	CleanupInterval time.Duration `env:"RSS_FINDER_SQLITE_CLEANUP_INTERVAL" env-default:"5m" yaml:"cleanupInterval"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Backend selects the logger (logrus/zap). Empty lets the command decide.
	Backend string `env:"RSS_FINDER_LOG_BACKEND" yaml:"backend"`
	// Level is the minimum level logged
	Level string `env:"RSS_FINDER_LOG_LEVEL" env-default:"info" yaml:"level"`
	// File sends logs to a rotating file instead of stderr
	File string `env:"RSS_FINDER_LOG_FILE" yaml:"file"`
	// MaxSizeMB is the size at which the log file is rotated
	MaxSizeMB int `env:"RSS_FINDER_LOG_MAX_SIZE_MB" env-default:"100" yaml:"maxSizeMB"`
	// MaxBackups is the number of rotated files kept
	MaxBackups int `env:"RSS_FINDER_LOG_MAX_BACKUPS" env-default:"3" yaml:"maxBackups"`
	// MaxAgeDays is how long rotated files are kept
	MaxAgeDays int `env:"RSS_FINDER_LOG_MAX_AGE_DAYS" env-default:"28" yaml:"maxAgeDays"`
}

// Load reads the optional YAML file at path and applies environment
// overrides. A .env file in the working directory is loaded first if present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("could not load .env: %w", err)
	}

	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() (*Config, error) {
	return Load("")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Search.Options().Validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 1 {
		return errors.New("rate limit must be at least 1")
	}

	if c.Server.RateWindow <= 0 {
		return errors.New("rate window must be positive")
	}

	if c.Server.MaxBatch < 1 {
		return errors.New("max batch must be at least 1")
	}

	switch c.Cache.Type {
	case "none", "memory", "redis", "sqlite":
	default:
		return errors.New("cache type must be 'none', 'memory', 'redis' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	switch c.Log.Backend {
	case "", "logrus", "zap":
	default:
		return errors.New("log backend must be 'logrus' or 'zap'")
	}

	return nil
}

// Options converts the search defaults into domain options
func (s SearchConfig) Options() domain.SearchOptions {
	return domain.SearchOptions{
		Timeout:         s.Timeout,
		FollowRedirects: s.FollowRedirects,
		VerifyTLS:       s.VerifyTLS,
		Headers:         map[string]string{},
		MaxResults:      s.MaxResults,
		Concurrency:     s.Concurrency,
		MaxBodyBytes:    s.MaxBodyBytes,
	}
}
