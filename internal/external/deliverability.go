package external

import "github.com/tidwall/gjson"

// deliverability vocabulary shared by Bouncer and Emailable
var deliverabilityVerdicts = map[string]verdict{
	"deliverable":   deliverable,
	"undeliverable": rejected,
	"risky":         risky,
	"unknown":       unknown,
}

var abstractVerdicts = map[string]verdict{
	"deliverable":   deliverable,
	"undeliverable": rejected,
	"unknown":       unknown,
}

func apiKeyRequest(endpoint, apiKey, email string) (string, error) {
	return query(endpoint, map[string]string{"email": email, "api_key": apiKey})
}

// mapAbstract maps Abstract API response, status is in the "deliverability" field
func mapAbstract(email string, resp gjson.Result) *Outcome {
	if !present(resp, "deliverability") {
		return Unavailable(email, map[string]any{"abstract_deliverability_missing": true, "raw": raw(resp)})
	}

	status := lower(resp, "deliverability")
	meta := map[string]any{"status": status, "raw": raw(resp)}
	return classify(email, abstractVerdicts[status], "undeliverable", meta)
}

// mapBouncer maps Bouncer response
func mapBouncer(email string, resp gjson.Result) *Outcome {
	status := lower(resp, "status")
	if status == "" {
		return Unavailable(email, map[string]any{"raw": raw(resp)})
	}

	meta := map[string]any{"status": status, "raw": raw(resp)}
	return classify(email, deliverabilityVerdicts[status], "undeliverable", meta)
}

// mapEmailable maps Emailable response, status is in the "state" field with "status" as a fallback
func mapEmailable(email string, resp gjson.Result) *Outcome {
	state := lower(resp, "state")
	if !present(resp, "state") {
		state = lower(resp, "status")
	}
	if state == "" {
		return Unavailable(email, map[string]any{"raw": raw(resp)})
	}

	meta := map[string]any{"state": state, "raw": raw(resp)}
	return classify(email, deliverabilityVerdicts[state], "undeliverable", meta)
}
