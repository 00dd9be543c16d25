package main

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/etkecc/emailscore/internal/config"
	"github.com/etkecc/emailscore/internal/disposable"
	"github.com/etkecc/emailscore/internal/dns"
	"github.com/etkecc/emailscore/internal/external"
	"github.com/etkecc/emailscore/internal/metrics"
	"github.com/etkecc/emailscore/internal/rules"
	"github.com/etkecc/emailscore/internal/verify"
)

// app holds wired components
type app struct {
	registry   *prometheus.Registry
	disposable *disposable.Checker
	verifier   *verify.Verifier
}

func newApp(cfg *config.Config) (*app, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	checker := disposable.NewChecker(cfg.Disposable.File, cfg.Disposable.ExtraDomains, cfg.Disposable.CacheTTL, m, component("disposable"))
	resolver := dns.New(dns.Options{
		Timeout:   cfg.DNS.Timeout,
		CacheSize: cfg.DNS.CacheSize,
		CacheTTL:  cfg.DNS.CacheTTL,
	}, component("dns"))

	list, err := rules.Build(cfg.Rules, rules.Deps{
		Disposable:      checker,
		MX:              resolver,
		RoleBasedLocals: cfg.RoleBasedLocals,
		MXStrict:        cfg.MXStrict,
	})
	if err != nil {
		return nil, err
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}

	pipeline := verify.NewPipeline(list, component("pipeline"))
	log.Info().Strs("rules", pipeline.Rules()).Int("min_score", cfg.MinScore).Msg("rule pipeline ready")

	v := verify.New(verify.Options{
		MinScore:       cfg.MinScore,
		Normalize:      cfg.Normalize.Enabled,
		LowercaseLocal: cfg.Normalize.LowercaseLocal,
	}, pipeline, provider, m, component("verify"))

	return &app{registry: registry, disposable: checker, verifier: v}, nil
}

// newProvider resolves the configured driver. Empty driver name disables external verification
func newProvider(cfg *config.Config) (verify.External, error) {
	creds := make(map[string]external.Credentials, len(config.ProviderIDs))
	for _, id := range config.ProviderIDs {
		p := cfg.External.ProviderFor(id)
		creds[id] = external.Credentials{APIKey: p.APIKey, Endpoint: p.Endpoint}
	}
	elog := component("external")
	client := external.NewClient(cfg.External.Timeout, cfg.External.Backoff, elog)
	manager := external.NewManager(creds, client, elog)

	driver := strings.TrimSpace(cfg.External.Driver)
	if driver == "" {
		log.Info().Strs("available", manager.Drivers()).Msg("external verification is disabled")
		return nil, nil
	}

	provider, err := manager.Driver(driver)
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", provider.ID()).Msg("external verification is enabled")
	return provider, nil
}
