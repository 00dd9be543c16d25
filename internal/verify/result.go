package verify

import (
	"slices"

	"github.com/etkecc/go-kit"
)

// Result of an address verification, mutated by rules in order
type Result struct {
	Accepted        bool           `json:"accepted"`
	Score           int            `json:"score"`
	NormalizedEmail *string        `json:"normalized_email"`
	Reasons         []string       `json:"reasons"`
	Meta            map[string]any `json:"meta"`
}

// NewResult creates accepted result with full score
func NewResult(normalized string) *Result {
	return &Result{
		Accepted:        true,
		Score:           100,
		NormalizedEmail: &normalized,
		Reasons:         []string{},
		Meta:            map[string]any{},
	}
}

// Reject marks result as rejected, sets score (0 by default) and adds the reason
func (r *Result) Reject(reason string, optionalScore ...int) {
	score := 0
	if len(optionalScore) > 0 {
		score = optionalScore[0]
	}
	r.Accepted = false
	r.Score = score
	r.AddReason(reason)
}

// Penalize subtracts points from the score, never going below 0
func (r *Result) Penalize(points int, reason string) {
	r.Score = max(r.Score-points, 0)
	r.AddReason(reason)
}

// AddReason appends the reason
func (r *Result) AddReason(reason string) {
	r.Reasons = append(r.Reasons, reason)
}

// AddMeta sets meta key, overwriting previous value
func (r *Result) AddMeta(key string, value any) {
	if r.Meta == nil {
		r.Meta = map[string]any{}
	}
	r.Meta[key] = value
}

// Email returns normalized email or empty string
func (r *Result) Email() string {
	if r.NormalizedEmail == nil {
		return ""
	}
	return *r.NormalizedEmail
}

// HasReason checks if the reason was recorded
func (r *Result) HasReason(reason string) bool {
	return slices.Contains(r.Reasons, reason)
}

func (r *Result) finalize() *Result {
	r.Reasons = kit.Uniq(r.Reasons)
	return r
}
