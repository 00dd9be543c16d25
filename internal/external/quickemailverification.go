package external

import "github.com/tidwall/gjson"

var quickEmailVerificationVerdicts = map[string]verdict{
	"valid":   deliverable,
	"invalid": rejected,
	"unknown": unknown,
}

func quickEmailVerificationRequest(endpoint, apiKey, email string) (string, error) {
	return query(endpoint, map[string]string{"email": email, "apikey": apiKey})
}

// mapQuickEmailVerification maps QuickEmailVerification response
func mapQuickEmailVerification(email string, resp gjson.Result) *Outcome {
	if !resp.Get("success").Bool() {
		return Unavailable(email, map[string]any{"quickemailverification_success": false, "raw": raw(resp)})
	}

	result := lower(resp, "result")
	if result == "" {
		return Unavailable(email, map[string]any{"raw": raw(resp)})
	}
	reason := lower(resp, "reason")
	meta := map[string]any{"status": result, "reason": reason, "raw": raw(resp)}
	detail := reason
	if detail == "" {
		detail = result
	}
	return classify(email, quickEmailVerificationVerdicts[result], detail, meta)
}
