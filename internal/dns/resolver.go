package dns

import (
	"context"
	"errors"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
	"golang.org/x/net/idna"
)

const (
	// DefaultTimeout of a single MX lookup
	DefaultTimeout = 5 * time.Second
	// DefaultCacheSize of the MX cache
	DefaultCacheSize = 1024
	// DefaultCacheTTL of the MX cache
	DefaultCacheTTL = 10 * time.Minute
)

// MX record
type MX struct {
	Target   string `json:"target"`
	Priority int    `json:"pri"`
}

// LookupMXer is implemented by *net.Resolver
type LookupMXer interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
}

// Resolver looks up MX records with a timeout and caches results
type Resolver struct {
	lookup  LookupMXer
	timeout time.Duration
	cache   *expirable.LRU[string, []MX]
	log     *zerolog.Logger
}

// Options of the resolver
type Options struct {
	Timeout   time.Duration
	CacheSize int
	CacheTTL  time.Duration
	// Lookup overrides net.DefaultResolver
	Lookup LookupMXer
}

// New creates a new MX resolver
func New(opts Options, log *zerolog.Logger) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Lookup == nil {
		opts.Lookup = net.DefaultResolver
	}

	return &Resolver{
		lookup:  opts.Lookup,
		timeout: opts.Timeout,
		cache:   expirable.NewLRU[string, []MX](opts.CacheSize, nil, opts.CacheTTL),
		log:     log,
	}
}

// MXRecords returns MX records of the domain sorted by priority.
// Empty list means no records: NXDOMAIN, no MX, and lookup failures are not distinguished
func (r *Resolver) MXRecords(ctx context.Context, domain string) []MX {
	domain = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
	if domain == "" {
		return []MX{}
	}
	if cached, ok := r.cache.Get(domain); ok {
		return cached
	}

	records, err := r.resolve(ctx, domain)
	if err != nil {
		// temporary failures are not cached
		return records
	}
	r.cache.Add(domain, records)
	return records
}

func (r *Resolver) resolve(ctx context.Context, domain string) ([]MX, error) {
	log := r.log.With().Str("domain", domain).Logger()
	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		log.Debug().Err(err).Msg("cannot convert domain to ascii")
		return []MX{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	mxs, err := r.lookup.LookupMX(ctx, ascii+".")
	var dnsErr *net.DNSError
	if err != nil {
		// not found = no records
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			log.Debug().Msg("domain not found")
			return []MX{}, nil
		}
		log.Warn().Err(err).Msg("MX lookup failed")
		return []MX{}, err
	}

	records := make([]MX, 0, len(mxs))
	for _, mx := range mxs {
		target := strings.TrimSuffix(mx.Host, ".")
		// null MX (RFC 7505) means the domain accepts no mail
		if target == "" {
			continue
		}
		records = append(records, MX{Target: target, Priority: int(mx.Pref)})
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Priority < records[j].Priority
	})
	log.Debug().Int("mx_count", len(records)).Msg("MX records resolved")

	return records, nil
}
