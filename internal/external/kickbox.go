package external

import "github.com/tidwall/gjson"

var kickboxVerdicts = map[string]verdict{
	"deliverable":   deliverable,
	"undeliverable": rejected,
	"risky":         risky,
	"unknown":       unknown,
}

func kickboxRequest(endpoint, apiKey, email string) (string, error) {
	return query(endpoint, map[string]string{"email": email, "apikey": apiKey})
}

// mapKickbox maps Kickbox response, rejections carry kickbox reason
func mapKickbox(email string, resp gjson.Result) *Outcome {
	if !resp.Get("success").Bool() {
		return Unavailable(email, map[string]any{"kickbox_success": false, "raw": raw(resp)})
	}

	result := lower(resp, "result")
	reason := lower(resp, "reason")
	meta := map[string]any{"status": result, "reason": reason, "raw": raw(resp)}
	detail := reason
	if detail == "" {
		detail = "undeliverable"
	}
	return classify(email, kickboxVerdicts[result], detail, meta)
}
