// Package config provides the configuration loader for ikon.
package config

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/ikon/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file and IKON_* environment variables.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration. An explicit path must exist; the default
// ikon.yaml in cwd is optional. Environment overrides apply in both cases.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(cwd, domain.ConfigFileName)
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	var file Ikonfile
	found, err := readAndUnmarshalYAML(path, &file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if !found && explicit {
		return nil, zerr.With(domain.ErrConfigReadFailed, "path", path)
	}

	baseDir := cwd
	if found {
		baseDir = filepath.Dir(path)
	}
	cfg := l.build(&file, baseDir)

	var overrides Environment
	if err := env.Parse(&overrides); err != nil {
		return nil, zerr.Wrap(err, domain.ErrInvalidConfig.Error())
	}
	applyEnvironment(cfg, &overrides)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readAndUnmarshalYAML[T any](configPath string, target *T) (bool, error) {
	// #nosec G304 -- configPath is chosen by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return false, zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return true, nil
}

func (l *Loader) build(file *Ikonfile, baseDir string) *domain.Config {
	cfg := domain.DefaultConfig()

	if file.SimpleNames != nil {
		cfg.SimpleNames = *file.SimpleNames
	}

	for name, dto := range file.Providers {
		if dto == nil {
			dto = &ProviderDTO{}
		}
		base := cfg.Providers[name]
		if _, ok := cfg.Providers[name]; !ok {
			base = domain.DefaultProviderConfig()
			base.Resources = nil
		}
		cfg.Providers[name] = mergeProvider(base, dto)
	}

	for _, set := range file.Sets {
		cfg.Sets = append(cfg.Sets, resolvePath(baseDir, set))
	}

	if file.Cache.Driver != "" {
		cfg.Cache.Driver = domain.CacheDriver(file.Cache.Driver)
	}
	if file.Cache.Path != "" {
		cfg.Cache.Path = resolvePath(baseDir, file.Cache.Path)
	}
	cfg.Cache.URL = file.Cache.URL
	if file.Cache.TTL != nil {
		cfg.Cache.TTL = *file.Cache.TTL
	}

	if file.Server.Addr != "" {
		cfg.Server.Addr = file.Server.Addr
	}
	cfg.Server.Watch = file.Server.Watch
	cfg.Telemetry.Endpoint = file.Telemetry.Endpoint

	if cfg.Server.Watch && len(cfg.Sets) == 0 {
		l.Logger.Warn("'server.watch' has no effect without 'sets'")
	}
	return cfg
}

func mergeProvider(base domain.ProviderConfig, dto *ProviderDTO) domain.ProviderConfig {
	if len(dto.Resources) > 0 {
		base.Resources = slices.Clone(dto.Resources)
	}
	if dto.Path != nil {
		base.Path = *dto.Path
	}
	if dto.MaxURL != nil {
		base.MaxURL = *dto.MaxURL
	}
	if dto.Rotate != nil {
		base.Rotate = *dto.Rotate
	}
	if dto.Timeout != nil {
		base.Timeout = *dto.Timeout
	}
	base.Random = dto.Random
	base.DataAfterTimeout = dto.DataAfterTimeout
	return base
}

func applyEnvironment(cfg *domain.Config, e *Environment) {
	if e.SimpleNames != nil {
		cfg.SimpleNames = *e.SimpleNames
	}
	if resources := trimCSV(e.APIResources); len(resources) > 0 {
		p := cfg.Providers[""]
		p.Resources = resources
		cfg.Providers[""] = p
	}
	if e.CacheDriver != "" {
		cfg.Cache.Driver = domain.CacheDriver(e.CacheDriver)
	}
	if e.CachePath != "" {
		cfg.Cache.Path = expandHome(e.CachePath)
	}
	if e.CacheURL != "" {
		cfg.Cache.URL = e.CacheURL
	}
	if e.CacheTTL != 0 {
		cfg.Cache.TTL = e.CacheTTL
	}
	if e.ServerAddr != "" {
		cfg.Server.Addr = e.ServerAddr
	}
	if e.OTelEndpoint != "" {
		cfg.Telemetry.Endpoint = e.OTelEndpoint
	}
}

func validate(cfg *domain.Config) error {
	names := slices.Sorted(maps.Keys(cfg.Providers))
	for _, name := range names {
		p := cfg.Providers[name]
		if len(p.Resources) == 0 {
			return zerr.With(zerr.With(domain.ErrInvalidConfig, "provider", name), "field", "resources")
		}
		if p.MaxURL <= 0 {
			return zerr.With(zerr.With(domain.ErrInvalidConfig, "provider", name), "field", "maxURL")
		}
		if p.Rotate <= 0 || p.Timeout <= 0 {
			return zerr.With(zerr.With(domain.ErrInvalidConfig, "provider", name), "field", "rotate/timeout")
		}
		if name != "" && !domain.ValidName(name) {
			return zerr.With(zerr.With(domain.ErrInvalidConfig, "provider", name), "field", "name")
		}
	}

	switch cfg.Cache.Driver {
	case domain.CacheNone, domain.CacheDisk, domain.CacheSQLite:
	case domain.CacheRedis:
		if cfg.Cache.URL == "" {
			return zerr.With(domain.ErrInvalidConfig, "field", "cache.url")
		}
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownCacheDriver, domain.ErrInvalidConfig.Error()), "driver", string(cfg.Cache.Driver))
	}
	if cfg.Cache.TTL < 0 {
		return zerr.With(domain.ErrInvalidConfig, "field", "cache.ttl")
	}
	return nil
}

func resolvePath(baseDir, p string) string {
	p = expandHome(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func trimCSV(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
