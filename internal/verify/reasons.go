package verify

// Reasons produced by the local checks
const (
	ReasonEmptyEmail          = "empty_email"
	ReasonInvalidFormat       = "invalid_format"
	ReasonInvalidDomain       = "invalid_domain"
	ReasonRoleBased           = "role_based_local_part"
	ReasonPlusAddressing      = "plus_addressing"
	ReasonDisposableDomain    = "disposable_domain"
	ReasonNoMXRecords         = "no_mx_records"
	ReasonNoMXRecordsSoft     = "no_mx_records_soft"
	ReasonScoreBelowThreshold = "score_below_threshold"
)

// MetaExternal is the meta key holding external provider metadata
const MetaExternal = "external"
