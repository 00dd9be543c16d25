package validation

import (
	"context"
	"errors"
	"strings"

	"github.com/etkecc/emailscore/internal/verify"
)

var (
	// ErrInvalidEmail returned when the value is not a string
	ErrInvalidEmail = errors.New("the email must be a valid email address")
	// ErrRequired returned for blank values
	ErrRequired = errors.New("the email field is required")
	// ErrNotVerified returned when the address is rejected or scored below the minimum.
	// It carries no details on purpose: they are not meant for end users
	ErrNotVerified = errors.New("the email address could not be verified")
)

// Verifier is implemented by *verify.Verifier
type Verifier interface {
	VerifyWith(ctx context.Context, email string, opts verify.CallOptions) *verify.Result
	MinScore() int
}

type options struct {
	minScore     *int
	skipExternal bool
}

// Option of the validation
type Option func(*options)

// WithMinScore overrides the configured minimal score for this validation
func WithMinScore(score int) Option {
	return func(o *options) {
		o.minScore = &score
	}
}

// WithoutExternal disables external provider for this validation
func WithoutExternal() Option {
	return func(o *options) {
		o.skipExternal = true
	}
}

// Validate checks the value is a verified email address.
// The result is returned whenever verification ran, even if validation failed
func Validate(ctx context.Context, v Verifier, value any, opts ...Option) (*verify.Result, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	str, ok := value.(string)
	if !ok {
		return nil, ErrInvalidEmail
	}
	str = strings.TrimSpace(str)
	if str == "" {
		return nil, ErrRequired
	}

	res := v.VerifyWith(ctx, str, verify.CallOptions{SkipExternal: o.skipExternal})
	minScore := v.MinScore()
	if o.minScore != nil {
		minScore = *o.minScore
	}
	if !res.Accepted || res.Score < minScore {
		return res, ErrNotVerified
	}

	return res, nil
}
