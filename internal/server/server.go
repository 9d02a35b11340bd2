// Package server hosts the SWAIG endpoint over HTTP.
package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"swaig/internal/logging"
	"swaig/internal/swaig"
)

// SWAIGPath is the single endpoint serving both catalog and invocation requests.
const SWAIGPath = "/swaig"

const maxBodyBytes = 1 << 20

// Config contains the HTTP-facing settings: basic auth credentials, the host advertised
// in web_hook_url and the per-request timeout.
type Config struct {
	Username       string
	Password       string
	PublicHost     string
	RequestTimeout time.Duration
}

// Server wires the dispatcher behind a chi router.
type Server struct {
	cfg        Config
	router     *chi.Mux
	dispatcher *swaig.Dispatcher
}

// New constructs a Server with middleware and routes configured.
func New(cfg Config, dispatcher *swaig.Dispatcher) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	s := &Server{
		cfg:        cfg,
		router:     chi.NewRouter(),
		dispatcher: dispatcher,
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(cfg.RequestTimeout))

	s.router.Get("/health", s.handleHealth)
	s.router.With(s.auth).Post(SWAIGPath, s.handleSWAIG)

	return s
}

// Router exposes the root HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) authEnabled() bool {
	return s.cfg.Username != "" && s.cfg.Password != ""
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.authEnabled() {
			next.ServeHTTP(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(user), []byte(s.cfg.Username)) != 1 ||
			subtle.ConstantTimeCompare([]byte(pass), []byte(s.cfg.Password)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="swaig"`)
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSWAIG(w http.ResponseWriter, r *http.Request) {
	var req swaig.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil || req == nil {
		logging.Errorf("invalid request body: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	writeJSON(w, http.StatusOK, s.dispatcher.Handle(r.Context(), req, s.webHookURL(r)))
}

// webHookURL is the address callers use to invoke tools from a catalog: always https,
// with the configured basic auth credentials embedded.
func (s *Server) webHookURL(r *http.Request) string {
	host := s.cfg.PublicHost
	if host == "" {
		host = r.Host
	}
	u := url.URL{Scheme: "https", Host: host, Path: SWAIGPath}
	if s.authEnabled() {
		u.User = url.UserPassword(s.cfg.Username, s.cfg.Password)
	}
	return u.String()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Errorf("encode response: %v", err)
	}
}
