package rules

import (
	"context"
	"strings"

	"github.com/etkecc/go-kit"

	"github.com/etkecc/emailscore/internal/dns"
	"github.com/etkecc/emailscore/internal/email"
	"github.com/etkecc/emailscore/internal/verify"
)

// Penalties of the soft rules
const (
	RolePenalty = 15
	PlusPenalty = 5
	NoMXPenalty = 25
	metaMXCount = "mx_count"
)

// DisposableChecker tells if a domain belongs to a disposable email service
type DisposableChecker interface {
	IsDisposable(domain string) bool
}

// MXResolver returns MX records of a domain, empty list means none
type MXResolver interface {
	MXRecords(ctx context.Context, domain string) []dns.MX
}

// Format rejects syntactically invalid addresses
type Format struct{}

// Name of the rule
func (Format) Name() string { return "format" }

// Apply the rule
func (Format) Apply(_ context.Context, vc *verify.Context, res *verify.Result) {
	if !email.AddressValid(vc.Email) {
		res.Reject(verify.ReasonInvalidFormat)
		res.NormalizedEmail = nil
	}
}

// DomainSanity rejects empty, dotless, and dot-edged domains
type DomainSanity struct{}

// Name of the rule
func (DomainSanity) Name() string { return "domain" }

// Apply the rule
func (DomainSanity) Apply(_ context.Context, vc *verify.Context, res *verify.Result) {
	domain := vc.Domain
	if domain == "" || !strings.Contains(domain, ".") {
		res.Reject(verify.ReasonInvalidDomain)
		return
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		res.Reject(verify.ReasonInvalidDomain)
	}
}

// RoleBased penalizes group mailboxes like info@ or support@
type RoleBased struct {
	locals map[string]bool
}

// NewRoleBased creates the rule, locals are matched case-insensitively
func NewRoleBased(locals []string) *RoleBased {
	lowered := make([]string, 0, len(locals))
	for _, local := range locals {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(local)))
	}
	return &RoleBased{locals: kit.MapFromSlice(lowered)}
}

// Name of the rule
func (*RoleBased) Name() string { return "role" }

// Apply the rule
func (r *RoleBased) Apply(_ context.Context, vc *verify.Context, res *verify.Result) {
	if r.locals[strings.ToLower(vc.Local)] {
		res.Penalize(RolePenalty, verify.ReasonRoleBased)
	}
}

// PlusAddressing penalizes subaddresses (user+tag@)
type PlusAddressing struct{}

// Name of the rule
func (PlusAddressing) Name() string { return "plus" }

// Apply the rule
func (PlusAddressing) Apply(_ context.Context, vc *verify.Context, res *verify.Result) {
	if strings.Contains(vc.Local, "+") {
		res.Penalize(PlusPenalty, verify.ReasonPlusAddressing)
	}
}

// Disposable rejects disposable domains
type Disposable struct {
	checker DisposableChecker
}

// NewDisposable creates the rule
func NewDisposable(checker DisposableChecker) *Disposable {
	return &Disposable{checker: checker}
}

// Name of the rule
func (*Disposable) Name() string { return "disposable" }

// Apply the rule
func (r *Disposable) Apply(_ context.Context, vc *verify.Context, res *verify.Result) {
	if r.checker.IsDisposable(vc.Domain) {
		res.Reject(verify.ReasonDisposableDomain)
	}
}

// MX checks the domain has MX records: strict mode rejects, otherwise penalizes
type MX struct {
	resolver MXResolver
	strict   bool
}

// NewMX creates the rule
func NewMX(resolver MXResolver, strict bool) *MX {
	return &MX{resolver: resolver, strict: strict}
}

// Name of the rule
func (*MX) Name() string { return "mx" }

// Apply the rule
func (r *MX) Apply(ctx context.Context, vc *verify.Context, res *verify.Result) {
	records := r.resolver.MXRecords(ctx, vc.Domain)
	res.AddMeta(metaMXCount, len(records))
	if len(records) > 0 {
		return
	}

	if r.strict {
		res.Reject(verify.ReasonNoMXRecords)
		return
	}
	res.Penalize(NoMXPenalty, verify.ReasonNoMXRecordsSoft)
}
