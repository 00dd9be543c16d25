package disposable

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etkecc/go-kit"
	"github.com/rs/zerolog"
)

const (
	// DefaultTimeout of the blocklist download
	DefaultTimeout = 10 * time.Second
	// DefaultMaxBytes of the blocklist
	DefaultMaxBytes = 2_000_000
)

// FetcherConfig holds defaults of the fetcher, each of them may be overridden per call
type FetcherConfig struct {
	URL      string
	Path     string
	Timeout  time.Duration
	MaxBytes int64
}

// FetchOptions of a single fetch
type FetchOptions struct {
	URL   string
	Path  string
	Force bool
}

// FetchResult describes what was done
type FetchResult struct {
	URL     string
	Path    string
	Count   int
	Changed bool
}

// Fetcher downloads the upstream blocklist, normalizes it and writes it to the file
type Fetcher struct {
	cfg    FetcherConfig
	client *http.Client
	log    *zerolog.Logger
}

// NewFetcher creates a new blocklist fetcher
func NewFetcher(cfg FetcherConfig, log *zerolog.Logger, optionalClient ...*http.Client) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	client := http.DefaultClient
	if len(optionalClient) > 0 && optionalClient[0] != nil {
		client = optionalClient[0]
	}

	return &Fetcher{cfg: cfg, client: client, log: log}
}

// Fetch downloads and writes the blocklist. Unchanged list is not rewritten unless forced
func (f *Fetcher) Fetch(ctx context.Context, opts FetchOptions) (*FetchResult, error) {
	res := &FetchResult{URL: opts.URL, Path: opts.Path}
	if res.URL == "" {
		res.URL = f.cfg.URL
	}
	if res.Path == "" {
		res.Path = f.cfg.Path
	}
	if res.URL == "" {
		return nil, ErrNoSourceURL
	}
	if res.Path == "" {
		return nil, ErrNoPath
	}

	log := f.log.With().Str("url", res.URL).Str("path", res.Path).Logger()
	log.Info().Msg("fetching disposable domains")

	body, err := f.download(ctx, res.URL)
	if err != nil {
		return nil, err
	}

	domains := NormalizeList(string(body))
	if len(domains) == 0 {
		return nil, ErrEmptyList
	}
	res.Count = len(domains)
	content := []byte(strings.Join(domains, "\n"))

	if !opts.Force {
		existing, err := os.ReadFile(res.Path)
		if err == nil && bytes.Equal(bytes.TrimSpace(existing), content) {
			log.Info().Msg("no changes detected")
			return res, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(res.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(res.Path, content, 0o644); err != nil { //nolint:gosec // the list is public
		return nil, fmt.Errorf("write %s: %w", res.Path, err)
	}
	res.Changed = true
	log.Info().Int("domains", res.Count).Msg("disposable domains written")

	return res, nil
}

func (f *Fetcher) download(ctx context.Context, uri string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrHTTPStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(body)) > f.cfg.MaxBytes {
		return nil, fmt.Errorf("%w of %d bytes", ErrTooLarge, f.cfg.MaxBytes)
	}
	return body, nil
}

// NormalizeList parses blocklist content into sorted unique domains.
// Comments (# and //) and blank lines are skipped, only the first token of a line is used
func NormalizeList(content string) []string {
	uniq := map[string]bool{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		domain := strings.ToLower(strings.TrimLeft(strings.Fields(line)[0], "@"))
		if !validDomain(domain) {
			continue
		}
		uniq[domain] = true
	}

	return kit.MapKeys(uniq)
}

func validDomain(domain string) bool {
	if domain == "" || strings.Contains(domain, "@") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return strings.Contains(domain, ".")
}
