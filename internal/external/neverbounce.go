package external

import "github.com/tidwall/gjson"

var neverBounceVerdicts = map[string]verdict{
	"valid":      deliverable,
	"invalid":    rejected,
	"disposable": rejected,
	"catchall":   catchAll,
	"unknown":    unknown,
}

func neverBounceRequest(endpoint, apiKey, email string) (string, error) {
	return query(endpoint, map[string]string{"key": apiKey, "email": email})
}

// mapNeverBounce maps NeverBounce response. Request status is in "status", verification result in "result"
func mapNeverBounce(email string, resp gjson.Result) *Outcome {
	if status := resp.Get("status"); present(resp, "status") && status.String() != "success" {
		return Unavailable(email, map[string]any{"neverbounce_status": status.Value(), "raw": raw(resp)})
	}

	result := lower(resp, "result")
	if result == "" {
		return Unavailable(email, map[string]any{"raw": raw(resp)})
	}

	meta := map[string]any{"result": result, "raw": raw(resp)}
	return classify(email, neverBounceVerdicts[result], result, meta)
}
