package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Manavarya09/Synthia-Studio/internal/generation"
	"github.com/Manavarya09/Synthia-Studio/internal/infra"
	"github.com/Manavarya09/Synthia-Studio/internal/middleware"
)

// maxBodyBytes caps inbound JSON bodies. Generation requests are small; the
// largest legitimate payloads are raw lecture notes.
const maxBodyBytes = 1 << 20

const missingKeyMessage = "Server misconfigured: missing DASHSCOPE_API_KEY"

// App bundles the dependencies the request handlers need: the immutable
// process configuration, the logger, and the generation seam.
type App struct {
	Config    *infra.Config
	Logger    infra.Logger
	Generator generation.Generator
}

func NewApp(cfg *infra.Config, logger infra.Logger, gen generation.Generator) *App {
	return &App{Config: cfg, Logger: logger, Generator: gen}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes the fixed failure shape: the human-readable text the UI shows
// verbatim plus a stable machine code.
func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"error": message, "code": code})
}

// decode parses the request body into v with the body cap applied.
func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// requireAPIKey enforces the configuration invariant before any upstream
// call is attempted. Returns false after writing the response.
func (a *App) requireAPIKey(w http.ResponseWriter) bool {
	if a.Config.DashScopeAPIKey == "" {
		a.error(w, http.StatusInternalServerError, "server_misconfigured", missingKeyMessage)
		return false
	}
	return true
}

// fail converts a generation error into the matching HTTP response. This is
// the single place the error taxonomy maps onto status codes; nothing
// escapes a handler unconverted.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	log := a.Logger.Error().
		Err(err).
		Str("path", r.URL.Path).
		Str("request_id", middleware.RequestIDFromContext(r.Context()))

	if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
		// Client went away; the context-bound poll loop already stopped.
		log.Msg("request canceled by client")
		return
	}
	if errors.Is(err, generation.ErrMissingAPIKey) {
		log.Msg("generation misconfigured")
		a.error(w, http.StatusInternalServerError, "server_misconfigured", missingKeyMessage)
		return
	}

	var validationErr *generation.ValidationError
	if errors.As(err, &validationErr) {
		log.Msg("generation request invalid")
		a.error(w, http.StatusBadRequest, "bad_request", validationErr.Error())
		return
	}

	var timeoutErr *generation.TimeoutError
	if errors.As(err, &timeoutErr) {
		log.Msg("generation timed out")
		a.error(w, http.StatusBadGateway, "generation_timeout", timeoutErr.Error())
		return
	}

	var upstreamErr *generation.UpstreamError
	if errors.As(err, &upstreamErr) {
		log.Msg("generation upstream failure")
		a.error(w, upstreamErr.StatusCode, "upstream_error", upstreamErr.Message)
		return
	}

	log.Msg("generation failed")
	a.error(w, http.StatusInternalServerError, "internal", err.Error())
}
