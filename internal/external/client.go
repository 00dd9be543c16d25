package external

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
)

const (
	// DefaultTimeout of a single request attempt
	DefaultTimeout = 5 * time.Second
	// DefaultBackoff between attempts
	DefaultBackoff = 250 * time.Millisecond
	// attempts in total, the first one plus a single retry
	attempts = 2
	// maxBodySize of a provider response
	maxBodySize = 1 << 20
)

// Doer sends HTTP requests, *http.Client implements it
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a thin HTTP client shared by the provider drivers
type Client struct {
	http    Doer
	timeout time.Duration
	backoff time.Duration
	log     *zerolog.Logger
}

// NewClient creates a new provider HTTP client
func NewClient(timeout, backoffDelay time.Duration, log *zerolog.Logger, optionalDoer ...Doer) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if backoffDelay <= 0 {
		backoffDelay = DefaultBackoff
	}
	var doer Doer = http.DefaultClient
	if len(optionalDoer) > 0 && optionalDoer[0] != nil {
		doer = optionalDoer[0]
	}

	return &Client{
		http:    doer,
		timeout: timeout,
		backoff: backoffDelay,
		log:     log,
	}
}

// Get sends GET request and returns body of a 2xx response.
// Transport errors and 5xx/429 responses are retried once after the backoff delay
func (c *Client) Get(ctx context.Context, uri string) ([]byte, error) {
	return backoff.Retry(ctx, func() ([]byte, error) {
		return c.get(ctx, uri)
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(c.backoff)),
		backoff.WithMaxTries(attempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.log.Debug().Err(err).Dur("next", next).Msg("retrying provider request")
		}),
	)
}

func (c *Client) get(ctx context.Context, uri string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, http.NoBody)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		//nolint:errcheck // drain to reuse the connection
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		statusErr := &StatusError{Code: resp.StatusCode}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, statusErr
		}
		return nil, backoff.Permanent(statusErr)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
