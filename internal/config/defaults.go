package config

import (
	"slices"
	"time"
)

// ProviderIDs lists the drivers with built-in configuration
var ProviderIDs = []string{
	"abstract",
	"bouncer",
	"emailable",
	"kickbox",
	"neverbounce",
	"quickemailverification",
	"verifiedemail",
	"zerobounce",
}

var defaultEndpoints = map[string]string{
	"abstract":               "https://emailvalidation.abstractapi.com/v1/",
	"bouncer":                "https://api.usebouncer.com/v1.1/email/verify",
	"emailable":              "https://api.emailable.com/v1/verify",
	"kickbox":                "https://api.kickbox.com/v2/verify",
	"neverbounce":            "https://api.neverbounce.com/v4/single/check",
	"quickemailverification": "https://api.quickemailverification.com/v1/verify",
	"verifiedemail":          "https://app.verify-email.org/api/v1/",
	"zerobounce":             "https://api.zerobounce.net/v2/validate",
}

var defaultConfig = Config{
	LogLevel: "info",
	MinScore: 70,
	Normalize: Normalize{
		Enabled:        true,
		LowercaseLocal: false,
	},
	Rules: []string{"format", "domain", "role", "plus", "disposable", "mx"},
	RoleBasedLocals: []string{
		"abuse", "admin", "administrator", "billing", "contact", "hello", "help", "info", "mail",
		"no-reply", "noreply", "office", "postmaster", "sales", "security", "support", "team",
	},
	MXStrict: true,
	DNS: DNS{
		Timeout:   5 * time.Second,
		CacheSize: 1024,
		CacheTTL:  10 * time.Minute,
	},
	Disposable: Disposable{
		File:      "disposable_domains.txt",
		SourceURL: "https://raw.githubusercontent.com/disposable-email-domains/disposable-email-domains/master/disposable_email_blocklist.conf",
		Timeout:   10 * time.Second,
		MaxBytes:  2_000_000,
		CacheTTL:  12 * time.Hour,
	},
	External: External{
		Timeout: 5 * time.Second,
		Backoff: 250 * time.Millisecond,
	},
	HTTP: HTTP{
		Addr: ":8080",
	},
	Monitoring: Monitoring{
		SentrySampleRate: 20,
		HealthchecksURL:  "https://hc-ping.com",
	},
}

// Default returns a copy of the default config
func Default() *Config {
	cfg := defaultConfig
	cfg.Rules = slices.Clone(defaultConfig.Rules)
	cfg.RoleBasedLocals = slices.Clone(defaultConfig.RoleBasedLocals)
	cfg.Disposable.ExtraDomains = slices.Clone(defaultConfig.Disposable.ExtraDomains)
	cfg.External.Providers = make(map[string]Provider, len(ProviderIDs))
	for _, id := range ProviderIDs {
		cfg.External.Providers[id] = Provider{Endpoint: defaultEndpoints[id]}
	}

	return &cfg
}
