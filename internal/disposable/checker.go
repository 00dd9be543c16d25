package disposable

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/etkecc/emailscore/internal/metrics"
)

// DefaultCacheTTL of the loaded blocklist
const DefaultCacheTTL = 12 * time.Hour

// Checker tells if a domain is disposable, using extra domains and a blocklist file.
// Missing file means nothing is disposable, except the extra domains
type Checker struct {
	mu       sync.Mutex
	path     string
	extra    map[string]bool
	ttl      time.Duration
	set      map[string]bool
	modTime  time.Time
	loadedAt time.Time
	metrics  *metrics.Metrics
	log      *zerolog.Logger
}

// NewChecker creates a new file-backed checker
func NewChecker(path string, extra []string, ttl time.Duration, m *metrics.Metrics, log *zerolog.Logger) *Checker {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	extraSet := make(map[string]bool, len(extra))
	for _, domain := range extra {
		if domain = normalize(domain); domain != "" {
			extraSet[domain] = true
		}
	}

	return &Checker{
		path:    path,
		extra:   extraSet,
		ttl:     ttl,
		metrics: m,
		log:     log,
	}
}

// IsDisposable checks if the domain is disposable
func (c *Checker) IsDisposable(domain string) bool {
	domain = normalize(domain)
	if c.extra[domain] {
		return true
	}
	if c.path == "" {
		return false
	}

	info, err := os.Stat(c.path)
	if err != nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale(info.ModTime()) {
		if err := c.load(info.ModTime()); err != nil {
			c.log.Error().Err(err).Str("path", c.path).Msg("cannot load disposable domains")
			return false
		}
	}

	return c.set[domain]
}

// Reload forces the blocklist reload
func (c *Checker) Reload() error {
	if c.path == "" {
		return nil
	}
	info, err := os.Stat(c.path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", c.path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(info.ModTime())
}

// Len returns amount of domains loaded from the file
func (c *Checker) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.set)
}

func (c *Checker) stale(modTime time.Time) bool {
	return c.set == nil || !c.modTime.Equal(modTime) || time.Since(c.loadedAt) > c.ttl
}

func (c *Checker) load(modTime time.Time) error {
	f, err := os.Open(c.path)
	if err != nil {
		return err
	}
	defer f.Close()

	set := map[string]bool{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := normalize(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[line] = true
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	c.set = set
	c.modTime = modTime
	c.loadedAt = time.Now()
	c.metrics.SetDisposableDomains(len(set))
	c.log.Debug().Int("domains", len(set)).Str("path", c.path).Msg("disposable domains loaded")
	return nil
}

func normalize(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}
