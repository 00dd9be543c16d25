package config

import "time"

// Config of emailscore
type Config struct {
	// LogLevel of the zerolog logger (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
	// MinScore is the minimal score an address must keep to be accepted
	MinScore int `yaml:"min_score"`
	// Normalize config
	Normalize Normalize `yaml:"normalize"`
	// Rules is the ordered list of local rule names, e.g.: format domain role plus disposable mx
	Rules []string `yaml:"rules"`
	// RoleBasedLocals holds local parts considered role-based (info, support, etc.)
	RoleBasedLocals []string `yaml:"role_based_locals"`
	// MXStrict rejects addresses without MX records, otherwise they are penalized
	MXStrict bool `yaml:"mx_strict"`

	// DNS config
	DNS DNS `yaml:"dns"`

	// Disposable domains config
	Disposable Disposable `yaml:"disposable"`

	// External verification config
	External External `yaml:"external"`

	// HTTP API config
	HTTP HTTP `yaml:"http"`

	// Monitoring config
	Monitoring Monitoring `yaml:"monitoring"`
}

// Normalize config
type Normalize struct {
	Enabled        bool `yaml:"enabled"`
	LowercaseLocal bool `yaml:"lowercase_local"`
}

// DNS config
type DNS struct {
	Timeout   time.Duration `yaml:"timeout"`
	CacheSize int           `yaml:"cache_size"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

// Disposable domains config
type Disposable struct {
	// File is a path to the blocklist, one domain per line
	File string `yaml:"file"`
	// ExtraDomains are always treated as disposable
	ExtraDomains []string `yaml:"extra_domains"`
	// SourceURL of the upstream blocklist, used by fetch-disposable
	SourceURL string        `yaml:"source_url"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxBytes  int64         `yaml:"max_bytes"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

// External verification config
type External struct {
	// Driver name, empty = no external calls
	Driver    string              `yaml:"driver"`
	Timeout   time.Duration       `yaml:"timeout"`
	Backoff   time.Duration       `yaml:"backoff"`
	Providers map[string]Provider `yaml:"providers"`
}

// Provider credentials
type Provider struct {
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
}

// HTTP API config
type HTTP struct {
	Addr string `yaml:"addr"`
}

// Monitoring config
type Monitoring struct {
	SentryDSN        string `yaml:"sentry_dsn"`
	SentrySampleRate int    `yaml:"sentry_sample_rate"`
	HealthchecksURL  string `yaml:"healthchecks_url"`
	HealthchecksUUID string `yaml:"healthchecks_uuid"`
}

// ProviderFor returns provider credentials by driver name
func (e External) ProviderFor(name string) Provider {
	if e.Providers == nil {
		return Provider{}
	}
	return e.Providers[name]
}
