package handler

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

type ctxKey int

const actorKey ctxKey = iota

func withActor(ctx context.Context, actor entities.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func actorFrom(ctx context.Context) entities.Actor {
	actor, _ := ctx.Value(actorKey).(entities.Actor)
	return actor
}

// authMiddleware requires a valid bearer token and, when roles are given, one of them.
func (h *Handler) authMiddleware(roles ...entities.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
				return
			}
			actor, err := h.tokens.Parse(token)
			if err != nil {
				h.logger.Debug("rejected token", "path", r.URL.Path, "error", err)
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
				return
			}
			if !hasRole(actor.Role, roles) {
				h.logger.Info("forbidden request", "path", r.URL.Path, "user_id", actor.UserID, "role", actor.Role)
				writeError(w, http.StatusForbidden, "FORBIDDEN", "forbidden")
				return
			}
			next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
		})
	}
}

func hasRole(role entities.Role, allowed []entities.Role) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func requestMeta(r *http.Request) entities.RequestMeta {
	return entities.RequestMeta{IPAddress: clientIP(r), UserAgent: r.UserAgent()}
}
