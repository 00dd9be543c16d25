package verify

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/etkecc/emailscore/internal/email"
	"github.com/etkecc/emailscore/internal/external"
	"github.com/etkecc/emailscore/internal/metrics"
)

// External verifies an address with a third-party provider
type External interface {
	ID() string
	Verify(ctx context.Context, email string) *external.Outcome
}

// Options of the verifier
type Options struct {
	MinScore       int
	Normalize      bool
	LowercaseLocal bool
}

// CallOptions alter a single verification call
type CallOptions struct {
	// SkipExternal disables the external provider for this call only
	SkipExternal bool
}

// Verifier scores email addresses. It is safe for concurrent use
type Verifier struct {
	opts     Options
	pipeline *Pipeline
	external External
	metrics  *metrics.Metrics
	log      *zerolog.Logger
}

// New creates a new verifier, ext may be nil when no external driver is configured
func New(opts Options, pipeline *Pipeline, ext External, m *metrics.Metrics, log *zerolog.Logger) *Verifier {
	return &Verifier{
		opts:     opts,
		pipeline: pipeline,
		external: ext,
		metrics:  m,
		log:      log,
	}
}

// MinScore returns configured minimal score
func (v *Verifier) MinScore() int {
	return v.opts.MinScore
}

// Verify an email address
func (v *Verifier) Verify(ctx context.Context, address string) *Result {
	return v.VerifyWith(ctx, address, CallOptions{})
}

// VerifyWith verifies an email address with per-call options
func (v *Verifier) VerifyWith(ctx context.Context, address string, opts CallOptions) *Result {
	started := time.Now()
	res := v.verify(ctx, address, opts)
	v.metrics.ObserveVerification(res.Accepted, res.Reasons, time.Since(started))
	v.log.Debug().
		Str("email", res.Email()).
		Bool("accepted", res.Accepted).
		Int("score", res.Score).
		Strs("reasons", res.Reasons).
		Msg("verified")

	return res
}

func (v *Verifier) verify(ctx context.Context, address string, opts CallOptions) *Result {
	original := strings.TrimSpace(address)
	if original == "" {
		return &Result{
			Accepted: false,
			Score:    0,
			Reasons:  []string{ReasonEmptyEmail},
			Meta:     map[string]any{},
		}
	}

	normalized := email.Normalize(original, v.opts.Normalize, v.opts.LowercaseLocal)
	res := NewResult(normalized)
	vc := NewContext(original, normalized)

	if !v.pipeline.Run(ctx, vc, res) {
		return res.finalize()
	}

	if !Gate(res, v.opts.MinScore) {
		return res.finalize()
	}

	if v.external == nil || opts.SkipExternal {
		return res.finalize()
	}

	v.merge(res, v.callExternal(ctx, vc.Email))
	if !res.Accepted {
		return res.finalize()
	}
	Gate(res, v.opts.MinScore)

	return res.finalize()
}

func (v *Verifier) callExternal(ctx context.Context, address string) *external.Outcome {
	started := time.Now()
	outcome := v.external.Verify(ctx, address)
	v.metrics.ObserveExternal(v.external.ID(), outcome.Kind(), time.Since(started))

	return outcome
}

// merge external outcome into the local result: the lower score wins, reasons are joined
func (v *Verifier) merge(res *Result, outcome *external.Outcome) {
	res.Score = min(res.Score, outcome.Score)
	for _, reason := range outcome.Reasons {
		if !res.HasReason(reason) {
			res.AddReason(reason)
		}
	}
	res.AddMeta(MetaExternal, outcome.Meta)
	if !outcome.Accepted {
		res.Accepted = false
	}
}
