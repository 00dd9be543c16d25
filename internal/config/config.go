package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/etkecc/go-env"
	"gopkg.in/yaml.v3"
)

const prefix = "emailscore"

// New config: defaults, then the optional YAML file, then env vars
func New(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	env.SetPrefix(prefix)
	cfg.LogLevel = env.String("loglevel", cfg.LogLevel)
	cfg.MinScore = env.Int("minscore", cfg.MinScore)
	cfg.Normalize.Enabled = envBool("normalize.enabled", cfg.Normalize.Enabled)
	cfg.Normalize.LowercaseLocal = envBool("normalize.lowercaselocal", cfg.Normalize.LowercaseLocal)
	cfg.Rules = envSlice("rules", cfg.Rules)
	cfg.RoleBasedLocals = envSlice("roles", cfg.RoleBasedLocals)
	cfg.MXStrict = envBool("mx.strict", cfg.MXStrict)
	cfg.DNS = DNS{
		Timeout:   envDuration("dns.timeout", cfg.DNS.Timeout),
		CacheSize: env.Int("dns.cachesize", cfg.DNS.CacheSize),
		CacheTTL:  envDuration("dns.cachettl", cfg.DNS.CacheTTL),
	}
	cfg.Disposable = Disposable{
		File:         env.String("disposable.file", cfg.Disposable.File),
		ExtraDomains: envSlice("disposable.extra", cfg.Disposable.ExtraDomains),
		SourceURL:    env.String("disposable.url", cfg.Disposable.SourceURL),
		Timeout:      envDuration("disposable.timeout", cfg.Disposable.Timeout),
		MaxBytes:     int64(env.Int("disposable.maxbytes", int(cfg.Disposable.MaxBytes))),
		CacheTTL:     envDuration("disposable.cachettl", cfg.Disposable.CacheTTL),
	}
	cfg.External.Driver = strings.ToLower(env.String("external.driver", cfg.External.Driver))
	cfg.External.Timeout = envDuration("external.timeout", cfg.External.Timeout)
	cfg.External.Backoff = envDuration("external.backoff", cfg.External.Backoff)
	for _, id := range ProviderIDs {
		p := cfg.External.Providers[id]
		p.APIKey = env.String(id+".apikey", p.APIKey)
		p.Endpoint = env.String(id+".endpoint", p.Endpoint)
		cfg.External.Providers[id] = p
	}
	cfg.HTTP.Addr = env.String("http.addr", cfg.HTTP.Addr)
	cfg.Monitoring = Monitoring{
		SentryDSN:        env.String("sentry.dsn", cfg.Monitoring.SentryDSN),
		SentrySampleRate: env.Int("sentry.rate", cfg.Monitoring.SentrySampleRate),
		HealthchecksURL:  env.String("healthchecks.url", cfg.Monitoring.HealthchecksURL),
		HealthchecksUUID: env.String("healthchecks.uuid", cfg.Monitoring.HealthchecksUUID),
	}

	return cfg, cfg.Validate()
}

// Validate config values
func (cfg *Config) Validate() error {
	if cfg.MinScore < 0 || cfg.MinScore > 100 {
		return fmt.Errorf("%w: %d", ErrMinScore, cfg.MinScore)
	}
	if len(cfg.Rules) == 0 {
		return ErrNoRules
	}
	if cfg.External.Timeout <= 0 {
		return fmt.Errorf("external: %w", ErrTimeout)
	}
	if cfg.DNS.Timeout <= 0 {
		return fmt.Errorf("dns: %w", ErrTimeout)
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.External.Providers == nil {
		cfg.External.Providers = map[string]Provider{}
	}
	for id, endpoint := range defaultEndpoints {
		p := cfg.External.Providers[id]
		if p.Endpoint == "" {
			p.Endpoint = endpoint
			cfg.External.Providers[id] = p
		}
	}
	return nil
}

// envBool is env.Bool with a default for unset vars
func envBool(key string, defaultValue bool) bool {
	str := strings.ToLower(env.String(key))
	if str == "" {
		return defaultValue
	}

	return str == "1" || str == "true" || str == "yes"
}

func envSlice(key string, defaultValue []string) []string {
	if value := env.Slice(key); len(value) > 0 {
		return value
	}
	return defaultValue
}

func envDuration(key string, defaultValue time.Duration) time.Duration {
	str := env.String(key)
	if str == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		return defaultValue
	}
	return d
}
