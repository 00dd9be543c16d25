package external

import (
	"strings"

	"github.com/tidwall/gjson"
)

// verifiedEmailRequest puts api key into the path: <endpoint>/<key>?email=
func verifiedEmailRequest(endpoint, apiKey, email string) (string, error) {
	return query(strings.TrimRight(endpoint, "/")+"/"+apiKey, map[string]string{"email": email})
}

// mapVerifiedEmail maps verify-email.org response: status_code 1 = verified, 0 = unverifiable
func mapVerifiedEmail(email string, resp gjson.Result) *Outcome {
	if !present(resp, "status_code") {
		return Unavailable(email, map[string]any{"raw": raw(resp)})
	}
	field := resp.Get("status_code")
	if field.Type != gjson.Number {
		return Unrecognized(email, map[string]any{"status_code": field.Value(), "raw": raw(resp)})
	}

	code := field.Int()
	meta := map[string]any{"status_code": code, "raw": raw(resp)}
	switch code {
	case 1:
		return Deliverable(email, meta)
	case 0:
		return Rejected(email, "unverifiable", meta)
	default:
		return Unrecognized(email, meta)
	}
}
