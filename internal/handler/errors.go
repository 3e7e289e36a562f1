package handler

import (
	"errors"
	"net/http"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorBody{Error: errorDetails{Code: code, Message: message}})
}

type errorBody struct {
	Error errorDetails `json:"error"`
}

type errorDetails struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func statusFor(kind entities.ErrorKind) int {
	switch kind {
	case entities.KindNotFound:
		return http.StatusNotFound
	case entities.KindConflict:
		return http.StatusConflict
	case entities.KindValidation:
		return http.StatusBadRequest
	case entities.KindForbidden:
		return http.StatusForbidden
	case entities.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}

// handleError maps result errors to their status; anything outside the taxonomy is a 500.
func (h *Handler) handleError(w http.ResponseWriter, err error) {
	var e *entities.Error
	if !errors.As(err, &e) {
		h.logger.Error("handler error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	status := statusFor(e.Kind)
	if status >= http.StatusInternalServerError {
		h.logger.Error("handler error", "code", e.Code, "error", err)
	} else {
		h.logger.Debug("request rejected", "code", e.Code, "kind", e.Kind)
	}
	writeError(w, status, e.Code, e.Message)
}
