package external

import "github.com/tidwall/gjson"

var zeroBounceVerdicts = map[string]verdict{
	"valid":       deliverable,
	"invalid":     rejected,
	"spamtrap":    rejected,
	"abuse":       rejected,
	"do_not_mail": rejected,
	"catch-all":   catchAll,
	"unknown":     unknown,
}

func zeroBounceRequest(endpoint, apiKey, email string) (string, error) {
	return query(endpoint, map[string]string{"api_key": apiKey, "email": email})
}

// mapZeroBounce maps ZeroBounce response, errors are reported in the "error" field
func mapZeroBounce(email string, resp gjson.Result) *Outcome {
	if errField := resp.Get("error"); errField.Exists() && errField.String() != "" {
		return Unavailable(email, map[string]any{"error": errField.Value(), "raw": raw(resp)})
	}

	status := lower(resp, "status")
	if status == "" {
		return Unavailable(email, map[string]any{"raw": raw(resp)})
	}

	meta := map[string]any{"status": status, "raw": raw(resp)}
	return classify(email, zeroBounceVerdicts[status], status, meta)
}
