package verify

import (
	"context"

	"github.com/rs/zerolog"
)

// Rule inspects the context and mutates the result: hard reject, soft penalty or nothing
type Rule interface {
	Name() string
	Apply(ctx context.Context, vc *Context, res *Result)
}

// Pipeline runs rules in order and stops at the first rejection
type Pipeline struct {
	rules []Rule
	log   *zerolog.Logger
}

// NewPipeline creates a new rule pipeline
func NewPipeline(rules []Rule, log *zerolog.Logger) *Pipeline {
	return &Pipeline{rules: rules, log: log}
}

// Rules returns names of the configured rules, in order
func (p *Pipeline) Rules() []string {
	names := make([]string, 0, len(p.rules))
	for _, rule := range p.rules {
		names = append(names, rule.Name())
	}
	return names
}

// Run applies rules to the result, returns false if the result was rejected
func (p *Pipeline) Run(ctx context.Context, vc *Context, res *Result) bool {
	for _, rule := range p.rules {
		rule.Apply(ctx, vc, res)
		if !res.Accepted {
			p.log.Debug().Str("rule", rule.Name()).Strs("reasons", res.Reasons).Msg("rejected")
			return false
		}
	}
	return true
}

// Gate rejects the result if its score is below the minimum, keeping the score
func Gate(res *Result, minScore int) bool {
	if res.Score < minScore {
		res.Accepted = false
		res.AddReason(ReasonScoreBelowThreshold)
		return false
	}
	return true
}
