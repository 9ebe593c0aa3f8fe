package config

import "time"

// Ikonfile represents the structure of the ikon.yaml configuration file.
// Pointer fields distinguish an omitted value from a zero value.
type Ikonfile struct {
	SimpleNames *bool                   `yaml:"simpleNames"`
	Providers   map[string]*ProviderDTO `yaml:"providers"`
	Sets        []string                `yaml:"sets"`
	Cache       CacheDTO                `yaml:"cache"`
	Server      ServerDTO               `yaml:"server"`
	Telemetry   TelemetryDTO            `yaml:"telemetry"`
}

// ProviderDTO represents the API configuration of one provider.
type ProviderDTO struct {
	Resources        []string       `yaml:"resources"`
	Path             *string        `yaml:"path"`
	MaxURL           *int           `yaml:"maxURL"`
	Rotate           *time.Duration `yaml:"rotate"`
	Timeout          *time.Duration `yaml:"timeout"`
	Random           bool           `yaml:"random"`
	DataAfterTimeout bool           `yaml:"dataAfterTimeout"`
}

// CacheDTO represents the persistent cache section.
type CacheDTO struct {
	Driver string         `yaml:"driver"`
	Path   string         `yaml:"path"`
	URL    string         `yaml:"url"`
	TTL    *time.Duration `yaml:"ttl"`
}

// ServerDTO represents the server section.
type ServerDTO struct {
	Addr  string `yaml:"addr"`
	Watch bool   `yaml:"watch"`
}

// TelemetryDTO represents the telemetry section.
type TelemetryDTO struct {
	Endpoint string `yaml:"endpoint"`
}

// Environment holds the IKON_* overrides. Unset variables leave the file values in place.
type Environment struct {
	SimpleNames  *bool         `env:"IKON_SIMPLE_NAMES"`
	APIResources []string      `env:"IKON_API_RESOURCES" envSeparator:","`
	CacheDriver  string        `env:"IKON_CACHE_DRIVER"`
	CachePath    string        `env:"IKON_CACHE_PATH"`
	CacheURL     string        `env:"IKON_CACHE_URL"`
	CacheTTL     time.Duration `env:"IKON_CACHE_TTL"`
	ServerAddr   string        `env:"IKON_SERVER_ADDR"`
	OTelEndpoint string        `env:"IKON_OTEL_ENDPOINT"`
}
