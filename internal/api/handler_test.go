package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etkecc/emailscore/internal/verify"
)

type fakeVerifier struct {
	opts   []verify.CallOptions
	emails []string
}

func (f *fakeVerifier) VerifyWith(_ context.Context, email string, opts verify.CallOptions) *verify.Result {
	f.opts = append(f.opts, opts)
	f.emails = append(f.emails, email)
	res := verify.NewResult(email)
	if strings.HasPrefix(email, "info@") {
		res.Penalize(15, verify.ReasonRoleBased)
	}
	return res
}

func (f *fakeVerifier) MinScore() int { return 70 }

func newTestServer(t *testing.T) (*httptest.Server, *fakeVerifier) {
	t.Helper()
	log := zerolog.Nop()
	v := &fakeVerifier{}
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "emailscore_test_total", Help: "test"}))
	srv := httptest.NewServer(NewHandler(v, reg, &log).Routes())
	t.Cleanup(srv.Close)
	return srv, v
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandleMetrics(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandleVerify(t *testing.T) {
	srv, v := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/verify?email=person%40example.com&external=false")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res verify.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.True(t, res.Accepted)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, "person@example.com", res.Email())
	assert.Equal(t, []verify.CallOptions{{SkipExternal: true}}, v.opts)
	assert.Equal(t, []string{"person@example.com"}, v.emails)
}

func TestHandleValidate(t *testing.T) {
	srv, v := newTestServer(t)
	tests := map[string]struct {
		body     string
		status   int
		valid    bool
		external bool
	}{
		"valid":            {`{"email":"person@example.com"}`, http.StatusOK, true, true},
		"below min":        {`{"email":"info@example.com","min_score":90}`, http.StatusUnprocessableEntity, false, true},
		"without external": {`{"email":"person@example.com","external":false}`, http.StatusOK, true, false},
		"blank":            {`{"email":"  "}`, http.StatusUnprocessableEntity, false, true},
		"not a string":     {`{"email":42}`, http.StatusUnprocessableEntity, false, true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			v.opts = nil
			resp, err := http.Post(srv.URL+"/v1/validate", "application/json", strings.NewReader(tc.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			var out validateResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			assert.Equal(t, tc.valid, out.Valid)
			if len(v.opts) > 0 {
				assert.Equal(t, !tc.external, v.opts[0].SkipExternal)
			}
		})
	}
}

func TestHandleValidate_BadBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/v1/validate", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQueryBool(t *testing.T) {
	tests := map[string]bool{
		"":      true,
		"false": false,
		"0":     false,
		"true":  true,
		"maybe": true,
	}

	for in, expected := range tests {
		t.Run(in, func(t *testing.T) {
			output := queryBool(in, true)
			if output != expected {
				t.Error(expected, "!=", output)
			}
		})
	}
}
