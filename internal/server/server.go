// Package server exposes a loaded ruleset over a read-only HTTP API.
//
// The ruleset must be fully loaded before New is called and must not be
// modified afterwards; handlers query it concurrently without locking.
package server

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/kayman-mk/DevSkim/internal/languages"
	"github.com/kayman-mk/DevSkim/internal/observability"
	"github.com/kayman-mk/DevSkim/internal/ratelimit"
	"github.com/kayman-mk/DevSkim/internal/ruleset"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

type Options struct {
	// Registry, when set, is served on /metrics.
	Registry *prometheus.Registry
	Limiter  *ratelimit.Limiter
	Logger   zerolog.Logger
}

type Server struct {
	rules   *ruleset.Ruleset
	langs   *languages.Table
	limiter *ratelimit.Limiter
	logger  zerolog.Logger
	mux     *http.ServeMux
}

type rulesResponse struct {
	Language string          `json:"language,omitempty"`
	Count    int             `json:"count"`
	Rules    []*ruleset.Rule `json:"rules"`
}

type languagesResponse struct {
	Languages []languages.ContentType `json:"languages"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(rules *ruleset.Ruleset, langs *languages.Table, opts Options) *Server {
	if langs == nil {
		langs = languages.Default()
	}
	s := &Server{
		rules:   rules,
		langs:   langs,
		limiter: opts.Limiter,
		logger:  opts.Logger,
		mux:     http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /v1/rules", s.handleRules)
	s.mux.HandleFunc("GET /v1/languages", s.handleLanguages)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Registry != nil {
		s.mux.Handle("GET /metrics", observability.Handler(opts.Registry))
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	requestID := requestIDFor(r)
	rec.Header().Set(requestIDHeader, requestID)

	if !s.limiter.Allow(clientIP(r), start) {
		writeJSON(rec, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
	} else {
		s.mux.ServeHTTP(rec, r)
	}

	s.logger.Debug().
		Str("request_id", requestID).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("query", r.URL.RawQuery).
		Int("status", rec.status).
		Dur("duration", time.Since(start)).
		Msg("Handled request")
}

// handleRules filters by ?language=, or by the language of ?file=. With
// neither it returns every rule in insertion order.
func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	language := query.Get("language")

	if file := query.Get("file"); file != "" && language == "" {
		lang, ok := s.langs.FromFileName(file)
		if !ok {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "no language for file " + file})
			return
		}
		language = lang
	}

	var rules []*ruleset.Rule
	if language == "" {
		rules = s.rules.Rules()
	} else {
		rules = s.rules.FilterByLanguage(language)
	}
	if rules == nil {
		rules = []*ruleset.Rule{}
	}

	writeJSON(w, http.StatusOK, rulesResponse{Language: language, Count: len(rules), Rules: rules})
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, languagesResponse{Languages: s.langs.ContentTypes()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// requestIDFor echoes a caller-supplied request id or mints a new one.
func requestIDFor(r *http.Request) string {
	if id := r.Header.Get(requestIDHeader); id != "" {
		return id
	}
	return uuid.NewString()
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
