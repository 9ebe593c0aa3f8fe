package domain

import "time"

// Default API settings for a provider.
const (
	DefaultAPIPath      = "/"
	DefaultMaxURLLength = 500
	DefaultRotate       = 750 * time.Millisecond
	DefaultTimeout      = 5000 * time.Millisecond
	DefaultCacheTTL     = 168 * time.Hour
	DefaultServerAddr   = ":8080"
)

// DefaultAPIResources are the public hosts serving the default provider.
var DefaultAPIResources = []string{
	"https://api.iconify.design",
	"https://api.simplesvg.com",
	"https://api.unisvg.com",
}

// CacheDriver selects the persistent icon set cache backend.
type CacheDriver string

const (
	// CacheNone disables the persistent cache.
	CacheNone CacheDriver = "none"
	// CacheDisk stores icon sets as JSON files.
	CacheDisk CacheDriver = "disk"
	// CacheRedis stores icon sets in redis.
	CacheRedis CacheDriver = "redis"
	// CacheSQLite stores icon sets in a sqlite database.
	CacheSQLite CacheDriver = "sqlite"
)

// ProviderConfig configures the API hosts of one provider.
type ProviderConfig struct {
	// Resources are the API hosts, in priority order. At least one is required.
	Resources []string
	// Path is appended to the host before the prefix.
	Path string
	// MaxURL caps the length of a request URL.
	MaxURL int
	// Rotate is the delay before the next host is tried while a request is outstanding.
	Rotate time.Duration
	// Timeout is the time after which a query gives up.
	Timeout time.Duration
	// Random shuffles hosts instead of starting from the last successful one.
	Random bool
	// DataAfterTimeout accepts a successful response that arrives after the query failed.
	DataAfterTimeout bool
}

// DefaultProviderConfig returns the configuration used for the default provider.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		Resources: append([]string(nil), DefaultAPIResources...),
		Path:      DefaultAPIPath,
		MaxURL:    DefaultMaxURLLength,
		Rotate:    DefaultRotate,
		Timeout:   DefaultTimeout,
	}
}

// CacheConfig configures the persistent icon set cache.
type CacheConfig struct {
	Driver CacheDriver
	// Path is the directory (disk) or database file (sqlite).
	Path string
	// URL is the redis connection URL.
	URL string
	TTL time.Duration
}

// ServerConfig configures the HTTP delivery server.
type ServerConfig struct {
	Addr  string
	Watch bool
}

// TelemetryConfig configures trace export.
type TelemetryConfig struct {
	// Endpoint is an OTLP/HTTP endpoint URL. Empty disables export.
	Endpoint string
}

// Config is the complete engine configuration.
type Config struct {
	SimpleNames bool
	Providers   map[string]ProviderConfig
	Sets        []string
	Cache       CacheConfig
	Server      ServerConfig
	Telemetry   TelemetryConfig
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Providers: map[string]ProviderConfig{"": DefaultProviderConfig()},
		Cache: CacheConfig{
			Driver: CacheDisk,
			Path:   DefaultCachePath(),
			TTL:    DefaultCacheTTL,
		},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}
