package external

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

type mapperCase struct {
	body     string
	accepted bool
	score    int
	reason   string
	meta     map[string]any
}

func runMapperCases(t *testing.T, mapper Mapper, cases map[string]mapperCase) {
	t.Helper()
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			outcome := mapper("person@example.com", decode([]byte(tc.body)))

			assert.Equal(t, tc.accepted, outcome.Accepted)
			assert.Equal(t, tc.score, outcome.Score)
			assert.Equal(t, "person@example.com", outcome.Email)
			if tc.reason == "" {
				assert.Empty(t, outcome.Reasons)
			} else {
				assert.Equal(t, []string{tc.reason}, outcome.Reasons)
			}
			for k, v := range tc.meta {
				assert.Equal(t, v, outcome.Meta[k], k)
			}
			assert.Contains(t, outcome.Meta, "raw")
		})
	}
}

func TestMapAbstract(t *testing.T) {
	runMapperCases(t, mapAbstract, map[string]mapperCase{
		"deliverable":   {`{"deliverability":"DELIVERABLE"}`, true, 100, "", map[string]any{"status": "deliverable"}},
		"undeliverable": {`{"deliverability":"UNDELIVERABLE"}`, false, 0, "external_rejected:undeliverable", nil},
		"unknown":       {`{"deliverability":"UNKNOWN"}`, true, 80, "external_unknown", nil},
		"risky":         {`{"deliverability":"RISKY"}`, true, 80, "external_unrecognized_status", nil},
		"missing":       {`{"email":"person@example.com"}`, true, 90, "external_provider_unavailable", map[string]any{"abstract_deliverability_missing": true}},
		"null":          {`{"deliverability":null}`, true, 90, "external_provider_unavailable", map[string]any{"abstract_deliverability_missing": true}},
	})
}

func TestMapBouncer(t *testing.T) {
	runMapperCases(t, mapBouncer, map[string]mapperCase{
		"deliverable":   {`{"status":"deliverable"}`, true, 100, "", map[string]any{"status": "deliverable"}},
		"undeliverable": {`{"status":"undeliverable"}`, false, 0, "external_rejected:undeliverable", nil},
		"risky":         {`{"status":"Risky"}`, true, 75, "external_risky", map[string]any{"status": "risky"}},
		"unknown":       {`{"status":"unknown"}`, true, 80, "external_unknown", nil},
		"weird":         {`{"status":"weird"}`, true, 80, "external_unrecognized_status", nil},
		"missing":       {`{}`, true, 90, "external_provider_unavailable", nil},
		"not json":      {`<html>`, true, 90, "external_provider_unavailable", nil},
	})
}

func TestMapEmailable(t *testing.T) {
	runMapperCases(t, mapEmailable, map[string]mapperCase{
		"state":         {`{"state":"deliverable"}`, true, 100, "", map[string]any{"state": "deliverable"}},
		"status":        {`{"status":"risky"}`, true, 75, "external_risky", map[string]any{"state": "risky"}},
		"undeliverable": {`{"state":"undeliverable"}`, false, 0, "external_rejected:undeliverable", nil},
		"missing":       {`{"email":"x"}`, true, 90, "external_provider_unavailable", nil},
		"null state":    {`{"state":null,"status":"deliverable"}`, true, 100, "", map[string]any{"state": "deliverable"}},
	})
}

func TestMapKickbox(t *testing.T) {
	runMapperCases(t, mapKickbox, map[string]mapperCase{
		"deliverable":      {`{"success":true,"result":"deliverable","reason":"accepted_email"}`, true, 100, "", map[string]any{"status": "deliverable", "reason": "accepted_email"}},
		"undeliverable":    {`{"success":true,"result":"undeliverable","reason":"rejected_email"}`, false, 0, "external_rejected:rejected_email", nil},
		"undeliverable nr": {`{"success":true,"result":"undeliverable"}`, false, 0, "external_rejected:undeliverable", nil},
		"risky":            {`{"success":true,"result":"risky","reason":"low_quality"}`, true, 75, "external_risky", nil},
		"unknown":          {`{"success":true,"result":"unknown"}`, true, 80, "external_unknown", nil},
		"unsuccessful":     {`{"success":false,"message":"bad key"}`, true, 90, "external_provider_unavailable", map[string]any{"kickbox_success": false}},
		"no success field": {`{"result":"deliverable"}`, true, 90, "external_provider_unavailable", nil},
	})
}

func TestMapNeverBounce(t *testing.T) {
	runMapperCases(t, mapNeverBounce, map[string]mapperCase{
		"valid":        {`{"status":"success","result":"valid"}`, true, 100, "", map[string]any{"result": "valid"}},
		"invalid":      {`{"status":"success","result":"invalid"}`, false, 0, "external_rejected:invalid", nil},
		"disposable":   {`{"status":"success","result":"disposable"}`, false, 0, "external_rejected:disposable", nil},
		"catchall":     {`{"status":"success","result":"catchall"}`, true, 85, "external_catch_all", nil},
		"unknown":      {`{"status":"success","result":"unknown"}`, true, 80, "external_unknown", nil},
		"no status":    {`{"result":"valid"}`, true, 100, "", nil},
		"null status":  {`{"status":null,"result":"valid"}`, true, 100, "", nil},
		"auth failure": {`{"status":"auth_failure","message":"Invalid key"}`, true, 90, "external_provider_unavailable", map[string]any{"neverbounce_status": "auth_failure"}},
		"no result":    {`{"status":"success"}`, true, 90, "external_provider_unavailable", nil},
	})
}

func TestMapQuickEmailVerification(t *testing.T) {
	runMapperCases(t, mapQuickEmailVerification, map[string]mapperCase{
		"valid":        {`{"success":true,"result":"valid","reason":"accepted_email"}`, true, 100, "", map[string]any{"status": "valid"}},
		"invalid":      {`{"success":true,"result":"invalid","reason":"rejected_email"}`, false, 0, "external_rejected:rejected_email", map[string]any{"status": "invalid", "reason": "rejected_email"}},
		"unknown":      {`{"success":true,"result":"unknown","reason":"timeout"}`, true, 80, "external_unknown", nil},
		"unsuccessful": {`{"success":false,"message":"Low credit"}`, true, 90, "external_provider_unavailable", nil},
		"string flag":  {`{"success":"true","result":"valid"}`, true, 100, "", nil},
	})
}

func TestMapVerifiedEmail(t *testing.T) {
	runMapperCases(t, mapVerifiedEmail, map[string]mapperCase{
		"verified":     {`{"status_code":1}`, true, 100, "", map[string]any{"status_code": int64(1)}},
		"unverifiable": {`{"status_code":0}`, false, 0, "external_rejected:unverifiable", nil},
		"other":        {`{"status_code":5}`, true, 80, "external_unrecognized_status", nil},
		"missing":      {`{"status":"ok"}`, true, 90, "external_provider_unavailable", nil},
	})
}

func TestMapZeroBounce(t *testing.T) {
	runMapperCases(t, mapZeroBounce, map[string]mapperCase{
		"valid":       {`{"status":"valid"}`, true, 100, "", map[string]any{"status": "valid"}},
		"invalid":     {`{"status":"invalid"}`, false, 0, "external_rejected:invalid", nil},
		"spamtrap":    {`{"status":"spamtrap"}`, false, 0, "external_rejected:spamtrap", nil},
		"abuse":       {`{"status":"abuse"}`, false, 0, "external_rejected:abuse", nil},
		"do_not_mail": {`{"status":"do_not_mail"}`, false, 0, "external_rejected:do_not_mail", nil},
		"catch-all":   {`{"status":"catch-all"}`, true, 85, "external_catch_all", nil},
		"unknown":     {`{"status":"unknown"}`, true, 80, "external_unknown", nil},
		"new status":  {`{"status":"suspicious"}`, true, 80, "external_unrecognized_status", nil},
		"error":       {`{"error":"Invalid API key"}`, true, 90, "external_provider_unavailable", map[string]any{"error": "Invalid API key"}},
		"empty error": {`{"error":"","status":"valid"}`, true, 100, "", nil},
		"no status":   {`{"address":"person@example.com"}`, true, 90, "external_provider_unavailable", nil},
	})
}

func TestDecode(t *testing.T) {
	assert.True(t, decode([]byte(`[1,2]`)).IsObject())
	assert.True(t, decode(nil).IsObject())
	assert.Equal(t, "x", decode([]byte(`{"a":"x"}`)).Get("a").String())
	assert.Equal(t, map[string]any{}, raw(gjson.Parse("{}")))
}
