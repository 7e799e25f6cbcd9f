// Package server exposes the card renderer over HTTP.
//
// One route does the work: POST /api/card takes a JSON render request and
// returns the finished PNG. Validation problems come back as 400s with a
// JSON error body; everything downstream (fonts, icon, composition) maps
// to a generic 500 so internals never leak, with details kept in the log.
package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kcole93/seo-card-generator/pkg/card"
	"github.com/kcole93/seo-card-generator/pkg/fontcache"
)

// Server routes render requests to the renderer and maps pipeline
// failures onto HTTP statuses.
type Server struct {
	renderer  *card.Renderer
	authToken string
	log       *slog.Logger
}

// New creates a Server. An empty authToken disables bearer auth.
func New(renderer *card.Renderer, authToken string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{renderer: renderer, authToken: authToken, log: log}
}

// Handler returns the full route table wrapped in panic recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/card", s.requireAuth(s.handleCard))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.recoverer(mux)
}

// ListenAndServe starts the server on addr and blocks.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// ── Middleware ──

// requireAuth enforces the bearer token when one is configured.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authToken != "" {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(s.authToken)) != 1 {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
		}
		next(w, r)
	}
}

// recoverer keeps a panicking request from taking the process down; the
// service must stay available for subsequent requests.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				s.log.Error("panic in handler", "path", r.URL.Path, "panic", v)
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// ── Handlers ──

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	var req card.RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := s.renderer.Render(r.Context(), &req)
	if err != nil {
		s.writeRenderError(w, &req, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// writeRenderError maps pipeline failures to statuses. Validation
// problems are the client's fault; everything downstream is a generic
// server failure.
func (s *Server) writeRenderError(w http.ResponseWriter, req *card.RenderRequest, err error) {
	var vErr *card.ValidationError
	if errors.As(err, &vErr) {
		writeError(w, http.StatusBadRequest, vErr.Error())
		return
	}

	var (
		notFound *fontcache.NotFoundError
		fetchErr *fontcache.FetchError
		iconErr  *card.IconLoadError
	)
	switch {
	case errors.As(err, &notFound):
		s.log.Warn("font family not found", "family", req.FontFamily)
	case errors.As(err, &fetchErr):
		s.log.Error("font fetch failed", "family", req.FontFamily, "err", err)
	case errors.As(err, &iconErr):
		s.log.Error("icon load failed", "url", req.IconURL, "err", err)
	default:
		s.log.Error("render failed", "err", err)
	}
	writeError(w, http.StatusInternalServerError, "card rendering failed")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
