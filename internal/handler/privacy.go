package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/internal/usecase/privacy"
)

func (h *Handler) privacyRoutes(r chi.Router) {
	r.Get("/privacy/consent", h.handleGetConsent)
	r.Put("/privacy/consent", h.handleUpdateConsent)
	r.Get("/privacy/export", h.handleExport)
	r.Post("/privacy/deletion-requests", h.handleRequestDeletion)
	r.Get("/privacy/deletion-requests", h.handleListDeletionRequests)
	r.Post("/privacy/deletion-requests/{orderID}/cancel", h.handleCancelDeletion)
	r.Post("/privacy/reset", h.handleResetProfile)
}

type consentSchema struct {
	TeamMatchingAnalysis bool   `json:"team_matching_analysis"`
	Version              string `json:"version"`
	LastUpdated          string `json:"last_updated"`
}

func toConsentSchema(c entities.PrivacyConsent) consentSchema {
	return consentSchema{
		TeamMatchingAnalysis: c.TeamMatchingAnalysis,
		Version:              c.Version,
		LastUpdated:          formatTime(c.LastUpdated),
	}
}

type deletionOrderSchema struct {
	ID                    string   `json:"id"`
	Status                string   `json:"status"`
	RequestDate           string   `json:"request_date"`
	ScheduledDeletionDate string   `json:"scheduled_deletion_date"`
	ProcessedDate         *string  `json:"processed_date,omitempty"`
	DataTypes             []string `json:"data_types"`
	Reason                string   `json:"reason,omitempty"`
	CancellationReason    string   `json:"cancellation_reason,omitempty"`
}

func toDeletionOrderSchema(o entities.DataDeletionOrder) deletionOrderSchema {
	return deletionOrderSchema{
		ID:                    o.ID.String(),
		Status:                string(o.Status),
		RequestDate:           formatTime(o.RequestDate),
		ScheduledDeletionDate: formatTime(o.ScheduledDeletionDate),
		ProcessedDate:         formatTimePtr(o.ProcessedDate),
		DataTypes:             mapSlice(o.DataTypes, func(d entities.DataType) string { return string(d) }),
		Reason:                o.Reason,
		CancellationReason:    o.CancellationReason,
	}
}

type auditLogSchema struct {
	Action    string `json:"action"`
	Details   string `json:"details"`
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	Timestamp string `json:"timestamp"`
}

type exportSchema struct {
	User             userSchema             `json:"user"`
	Profile          *completeProfileSchema `json:"profile"`
	Teams            []teamSchema           `json:"teams"`
	Consent          consentSchema          `json:"consent"`
	DeletionRequests []deletionOrderSchema  `json:"deletion_requests"`
	AuditLog         []auditLogSchema       `json:"audit_log"`
	ExportedAt       string                 `json:"exported_at"`
}

func toExportSchema(e entities.DataExport) exportSchema {
	s := exportSchema{
		User:             toUserSchema(e.User),
		Teams:            mapSlice(e.Teams, toTeamSchema),
		Consent:          toConsentSchema(e.Consent),
		DeletionRequests: mapSlice(e.DeletionRequests, toDeletionOrderSchema),
		AuditLog: mapSlice(e.AuditLog, func(l entities.PrivacyAuditLog) auditLogSchema {
			return auditLogSchema{
				Action:    string(l.Action),
				Details:   l.Details,
				IPAddress: l.IPAddress,
				UserAgent: l.UserAgent,
				Timestamp: formatTime(l.Timestamp),
			}
		}),
		ExportedAt: formatTime(e.ExportedAt),
	}
	if e.Profile != nil {
		p := toCompleteProfileSchema(*e.Profile)
		s.Profile = &p
	}
	return s
}

type consentRequest struct {
	TeamMatchingAnalysis bool `json:"team_matching_analysis"`
}

type deletionRequest struct {
	DataTypes []string `json:"data_types"`
	Reason    string   `json:"reason"`
}

type resetRequest struct {
	DataTypes []string `json:"data_types"`
}

func toDataTypes(in []string) []entities.DataType {
	return mapSlice(in, func(s string) entities.DataType { return entities.DataType(s) })
}

func (h *Handler) handleGetConsent(w http.ResponseWriter, r *http.Request) {
	c, err := h.uc.Privacy.GetConsent(r.Context(), actorFrom(r.Context()).UserID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toConsentSchema(c))
}

func (h *Handler) handleUpdateConsent(w http.ResponseWriter, r *http.Request) {
	var req consentRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.uc.Privacy.UpdateConsent(r.Context(), actorFrom(r.Context()).UserID, req.TeamMatchingAnalysis, requestMeta(r))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toConsentSchema(c))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	export, err := h.uc.Privacy.Export(r.Context(), actorFrom(r.Context()).UserID, requestMeta(r))
	if err != nil {
		h.handleError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="jala-match-export.json"`)
	writeJSON(w, http.StatusOK, toExportSchema(export))
}

func (h *Handler) handleRequestDeletion(w http.ResponseWriter, r *http.Request) {
	var req deletionRequest
	if !h.decode(w, r, &req) {
		return
	}
	order, err := h.uc.Privacy.RequestDeletion(r.Context(), actorFrom(r.Context()).UserID, privacy.DeletionInput{
		DataTypes: toDataTypes(req.DataTypes),
		Reason:    req.Reason,
	}, requestMeta(r))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDeletionOrderSchema(order))
}

func (h *Handler) handleListDeletionRequests(w http.ResponseWriter, r *http.Request) {
	orders, err := h.uc.Privacy.ListDeletionRequests(r.Context(), actorFrom(r.Context()).UserID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(orders, toDeletionOrderSchema))
}

func (h *Handler) handleCancelDeletion(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "orderID")
	if !ok {
		return
	}
	order, err := h.uc.Privacy.CancelDeletion(r.Context(), actorFrom(r.Context()).UserID, orderID, requestMeta(r))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeletionOrderSchema(order))
}

func (h *Handler) handleResetProfile(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.uc.Privacy.ResetProfile(r.Context(), actorFrom(r.Context()).UserID, toDataTypes(req.DataTypes), requestMeta(r)); err != nil {
		h.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
