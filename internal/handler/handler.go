package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/internal/usecase"
	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

// TokenParser turns a bearer token into the calling actor.
type TokenParser interface {
	Parse(token string) (entities.Actor, error)
}

// Instrumentation wraps every request and serves the scrape endpoint.
type Instrumentation interface {
	InstrumentHandler(next http.Handler) http.Handler
	Handler() http.Handler
}

type Handler struct {
	uc      usecase.UseCases
	tokens  TokenParser
	metrics Instrumentation
	limiter *RateLimiter
	logger  logger.Logger
}

type Option func(*Handler)

func WithMetrics(m Instrumentation) Option {
	return func(h *Handler) { h.metrics = m }
}

func WithRateLimiter(l *RateLimiter) Option {
	return func(h *Handler) { h.limiter = l }
}

func New(uc usecase.UseCases, tokens TokenParser, log logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		uc:     uc,
		tokens: tokens,
		logger: log,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if h.metrics != nil {
		r.Use(h.metrics.InstrumentHandler)
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}
	r.Get("/health", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if h.limiter != nil {
			r.Use(h.limiter.Handler)
		}

		r.Post("/auth/login", h.handleLogin)
		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/register/invitation", h.handleRegisterWithInvitation)
		r.Get("/auth/invitations/{token}", h.handleValidateInvitation)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware())
			r.Get("/auth/me", h.handleMe)
			h.profileRoutes(r)
			h.catalogRoutes(r)
			h.privacyRoutes(r)
			r.Get("/teams/mine", h.handleMyTeams)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware(entities.RoleManager, entities.RoleAdmin))
			h.teamRoutes(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware(entities.RoleManager))
			h.verificationRoutes(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware(entities.RoleAdmin))
			r.Post("/invitations", h.handleCreateInvitation)
			r.Post("/catalog/technologies", h.handleCreateTechnology)
		})
	})
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.Debug("failed to decode request", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
