package external

import "strings"

// Reasons produced by external providers
const (
	ReasonUnavailable        = "external_provider_unavailable"
	ReasonException          = "external_exception"
	ReasonRejectedPrefix     = "external_rejected:"
	ReasonRisky              = "external_risky"
	ReasonCatchAll           = "external_catch_all"
	ReasonUnknown            = "external_unknown"
	ReasonUnrecognizedStatus = "external_unrecognized_status"
)

// Scores of the non-terminal outcomes
const (
	ScoreFailOpen     = 90
	ScoreCatchAll     = 85
	ScoreUnknown      = 80
	ScoreUnrecognized = 80
	ScoreRisky        = 75
)

// Outcome of an external verification
type Outcome struct {
	Accepted bool           `json:"accepted"`
	Score    int            `json:"score"`
	Email    string         `json:"email"`
	Reasons  []string       `json:"reasons"`
	Meta     map[string]any `json:"meta"`
}

// Kind returns a short outcome class, used as a metrics label
func (o *Outcome) Kind() string {
	if !o.Accepted {
		return "rejected"
	}
	if len(o.Reasons) == 0 {
		if configured, ok := o.Meta["configured"].(bool); ok && !configured {
			return "unconfigured"
		}
		return "accepted"
	}
	switch o.Reasons[0] {
	case ReasonUnavailable:
		return "unavailable"
	case ReasonException:
		return "exception"
	case ReasonUnrecognizedStatus:
		return "unrecognized"
	default:
		return strings.TrimPrefix(o.Reasons[0], "external_")
	}
}

func newOutcome(accepted bool, score int, email string, meta map[string]any, reasons ...string) *Outcome {
	if meta == nil {
		meta = map[string]any{}
	}
	if reasons == nil {
		reasons = []string{}
	}
	return &Outcome{
		Accepted: accepted,
		Score:    score,
		Email:    email,
		Reasons:  reasons,
		Meta:     meta,
	}
}

// NotConfigured outcome: provider has no credentials, treated as disabled
func NotConfigured(provider, email string) *Outcome {
	return newOutcome(true, 100, email, map[string]any{"provider": provider, "configured": false})
}

// Unavailable is a fail-open outcome for provider-side failures
func Unavailable(email string, meta map[string]any) *Outcome {
	return newOutcome(true, ScoreFailOpen, email, meta, ReasonUnavailable)
}

// Exception is a fail-open outcome for transport failures
func Exception(email string, err error) *Outcome {
	return newOutcome(true, ScoreFailOpen, email, map[string]any{"error": err.Error()}, ReasonException)
}

// Deliverable outcome
func Deliverable(email string, meta map[string]any) *Outcome {
	return newOutcome(true, 100, email, meta)
}

// Rejected is a hard reject, detail is appended to the reason
func Rejected(email, detail string, meta map[string]any) *Outcome {
	return newOutcome(false, 0, email, meta, ReasonRejectedPrefix+detail)
}

// Risky outcome
func Risky(email string, meta map[string]any) *Outcome {
	return newOutcome(true, ScoreRisky, email, meta, ReasonRisky)
}

// CatchAll outcome
func CatchAll(email string, meta map[string]any) *Outcome {
	return newOutcome(true, ScoreCatchAll, email, meta, ReasonCatchAll)
}

// Unknown outcome
func Unknown(email string, meta map[string]any) *Outcome {
	return newOutcome(true, ScoreUnknown, email, meta, ReasonUnknown)
}

// Unrecognized outcome: the provider returned a status we can't map
func Unrecognized(email string, meta map[string]any) *Outcome {
	return newOutcome(true, ScoreUnrecognized, email, meta, ReasonUnrecognizedStatus)
}
