package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/etkecc/emailscore/internal/validation"
	"github.com/etkecc/emailscore/internal/verify"
)

// requestTimeout bounds a single API request, external calls included
const requestTimeout = 30 * time.Second

// Verifier is implemented by *verify.Verifier
type Verifier interface {
	VerifyWith(ctx context.Context, email string, opts verify.CallOptions) *verify.Result
	MinScore() int
}

// Handler serves the HTTP API
type Handler struct {
	verifier Verifier
	gatherer prometheus.Gatherer
	log      *zerolog.Logger
}

// NewHandler creates a new API handler
func NewHandler(verifier Verifier, gatherer prometheus.Gatherer, log *zerolog.Logger) *Handler {
	return &Handler{verifier: verifier, gatherer: gatherer, log: log}
}

// Routes of the API
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.HandleHealth)
	if h.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Get("/verify", h.HandleVerify)
		r.Post("/validate", h.HandleValidate)
	})
	return r
}

// HandleHealth responds with 200 OK
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleVerify verifies ?email=, external provider may be disabled with ?external=false
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts := verify.CallOptions{SkipExternal: !queryBool(query.Get("external"), true)}

	res := h.verifier.VerifyWith(r.Context(), query.Get("email"), opts)
	writeJSON(w, http.StatusOK, res)
}

type validateRequest struct {
	Email    any   `json:"email"`
	MinScore *int  `json:"min_score,omitempty"`
	External *bool `json:"external,omitempty"`
}

type validateResponse struct {
	Valid  bool           `json:"valid"`
	Error  string         `json:"error,omitempty"`
	Result *verify.Result `json:"result,omitempty"`
}

// HandleValidate validates an email from the JSON body, responds with 422 if it is not verified
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	opts := []validation.Option{}
	if req.MinScore != nil {
		opts = append(opts, validation.WithMinScore(*req.MinScore))
	}
	if req.External != nil && !*req.External {
		opts = append(opts, validation.WithoutExternal())
	}

	res, err := validation.Validate(r.Context(), h.verifier, req.Email, opts...)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if !errors.Is(err, validation.ErrNotVerified) {
			res = nil
		}
		writeJSON(w, status, validateResponse{Valid: false, Error: err.Error(), Result: res})
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{Valid: true, Result: res})
}

// logger logs requests with zerolog
func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		h.log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(started)).
			Msg("request")
	})
}

func queryBool(value string, defaultValue bool) bool {
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data) //nolint:errcheck // nothing to do if the client is gone
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
