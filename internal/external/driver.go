package external

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// Credentials of a provider
type Credentials struct {
	APIKey   string
	Endpoint string
}

// RequestBuilder builds provider request URL
type RequestBuilder func(endpoint, apiKey, email string) (string, error)

// Mapper converts decoded provider response into an outcome.
// Mappers are pure: the driver adds provider and configured meta keys
type Mapper func(email string, resp gjson.Result) *Outcome

// Driver is an HTTP-backed external provider
type Driver struct {
	id      string
	creds   Credentials
	client  *Client
	request RequestBuilder
	mapper  Mapper
	log     *zerolog.Logger
}

// NewDriver creates a new provider driver
func NewDriver(id string, creds Credentials, client *Client, request RequestBuilder, mapper Mapper, log *zerolog.Logger) *Driver {
	logger := log.With().Str("provider", id).Logger()
	return &Driver{
		id:      id,
		creds:   creds,
		client:  client,
		request: request,
		mapper:  mapper,
		log:     &logger,
	}
}

// ID of the provider
func (d *Driver) ID() string {
	return d.id
}

// Verify email with the provider. Never fails: provider problems produce fail-open outcomes
func (d *Driver) Verify(ctx context.Context, email string) *Outcome {
	if d.creds.APIKey == "" || d.creds.Endpoint == "" {
		return NotConfigured(d.id, email)
	}

	outcome := d.verify(ctx, email)
	outcome.Meta["provider"] = d.id
	outcome.Meta["configured"] = true
	return outcome
}

func (d *Driver) verify(ctx context.Context, email string) *Outcome {
	uri, err := d.request(d.creds.Endpoint, d.creds.APIKey, email)
	if err != nil {
		d.log.Error().Err(err).Msg("cannot build request")
		return Exception(email, err)
	}

	body, err := d.client.Get(ctx, uri)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			d.log.Warn().Int("status", statusErr.Code).Msg("provider unavailable")
			return Unavailable(email, map[string]any{"http_status": statusErr.Code})
		}
		d.log.Warn().Err(err).Msg("provider request failed")
		return Exception(email, err)
	}

	return d.mapper(email, decode(body))
}

// decode parses JSON object, anything else is treated as an empty object
func decode(body []byte) gjson.Result {
	if !gjson.ValidBytes(body) {
		return gjson.Parse("{}")
	}
	resp := gjson.ParseBytes(body)
	if !resp.IsObject() {
		return gjson.Parse("{}")
	}
	return resp
}

// raw returns decoded response as a map, for the meta
func raw(resp gjson.Result) map[string]any {
	if data, ok := resp.Value().(map[string]any); ok {
		return data
	}
	return map[string]any{}
}

// present reports whether the field is set and not null
func present(resp gjson.Result, path string) bool {
	field := resp.Get(path)
	return field.Exists() && field.Type != gjson.Null
}

// lower returns lowercased string value of the field
func lower(resp gjson.Result, path string) string {
	return strings.ToLower(strings.TrimSpace(resp.Get(path).String()))
}

// query builds endpoint?params URL, keeping query params of the endpoint
func query(endpoint string, params map[string]string) (string, error) {
	uri, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	values := uri.Query()
	for k, v := range params {
		values.Set(k, v)
	}
	uri.RawQuery = values.Encode()
	return uri.String(), nil
}

// verdict of a provider status
type verdict int

const (
	unrecognized verdict = iota
	deliverable
	rejected
	risky
	catchAll
	unknown
)

// classify maps verdict into outcome
func classify(email string, v verdict, detail string, meta map[string]any) *Outcome {
	switch v {
	case deliverable:
		return Deliverable(email, meta)
	case rejected:
		return Rejected(email, detail, meta)
	case risky:
		return Risky(email, meta)
	case catchAll:
		return CatchAll(email, meta)
	case unknown:
		return Unknown(email, meta)
	default:
		return Unrecognized(email, meta)
	}
}
