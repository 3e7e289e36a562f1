package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/internal/usecase/verification"
)

func (h *Handler) verificationRoutes(r chi.Router) {
	r.Get("/verifications/pending", h.handleListPending)
	r.Get("/verifications/{profileID}", h.handleGetForReview)
	r.Post("/verifications/{profileID}/approve", h.handleApprove)
	r.Post("/verifications/{profileID}/reject", h.handleReject)
}

type verificationSchema struct {
	ID           string  `json:"id"`
	ProfileID    string  `json:"profile_id"`
	ReviewerID   *string `json:"reviewer_id,omitempty"`
	SfiaProposed *int    `json:"sfia_proposed,omitempty"`
	Status       string  `json:"status"`
	Notes        string  `json:"notes,omitempty"`
	RequestedAt  string  `json:"requested_at"`
	ReviewedAt   *string `json:"reviewed_at,omitempty"`
}

func toVerificationSchema(v entities.ProfileVerification) verificationSchema {
	s := verificationSchema{
		ID:           v.ID.String(),
		ProfileID:    v.ProfileID.String(),
		SfiaProposed: v.SfiaProposed,
		Status:       string(v.Status),
		Notes:        v.Notes,
		RequestedAt:  formatTime(v.RequestedAt),
		ReviewedAt:   formatTimePtr(v.ReviewedAt),
	}
	if v.ReviewerID != nil {
		id := v.ReviewerID.String()
		s.ReviewerID = &id
	}
	return s
}

type pendingSchema struct {
	ProfileID      string `json:"profile_id"`
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	SfiaLevel      int    `json:"sfia_level"`
	Specialization string `json:"specialization"`
	RequestedAt    string `json:"requested_at"`
}

type pendingPageSchema struct {
	Items      []pendingSchema `json:"items"`
	TotalCount int             `json:"total_count"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
}

type experienceSummarySchema struct {
	experienceSchema
	DurationMonths int `json:"duration_months"`
}

type reviewSchema struct {
	Profile              completeProfileSchema     `json:"profile"`
	Experiences          []experienceSummarySchema `json:"experiences"`
	TotalExperienceYears float64                   `json:"total_experience_years"`
}

type reviewRequest struct {
	Notes     string `json:"notes"`
	SfiaLevel *int   `json:"sfia_level"`
}

func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	page, err := h.uc.Verification.ListPending(r.Context(), queryInt(r, "page"), queryInt(r, "page_size"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pendingPageSchema{
		Items: mapSlice(page.Items, func(p entities.PendingVerification) pendingSchema {
			return pendingSchema{
				ProfileID:      p.ProfileID.String(),
				Email:          p.Email,
				FullName:       p.FullName,
				SfiaLevel:      p.SfiaLevel,
				Specialization: p.Specialization,
				RequestedAt:    formatTime(p.RequestedAt),
			}
		}),
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
	})
}

func (h *Handler) handleGetForReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "profileID")
	if !ok {
		return
	}
	review, err := h.uc.Verification.GetForReview(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewSchema{
		Profile: toCompleteProfileSchema(review.Profile),
		Experiences: mapSlice(review.Experiences, func(e entities.ExperienceSummary) experienceSummarySchema {
			return experienceSummarySchema{experienceSchema: toExperienceSchema(e.Experience), DurationMonths: e.DurationMonths}
		}),
		TotalExperienceYears: review.TotalExperienceYears,
	})
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "profileID")
	if !ok {
		return
	}
	var req reviewRequest
	if !h.decode(w, r, &req) {
		return
	}
	v, err := h.uc.Verification.Approve(r.Context(), id, actorFrom(r.Context()), verification.ReviewInput{
		Notes:     req.Notes,
		SfiaLevel: req.SfiaLevel,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVerificationSchema(v))
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "profileID")
	if !ok {
		return
	}
	var req reviewRequest
	if !h.decode(w, r, &req) {
		return
	}
	v, err := h.uc.Verification.Reject(r.Context(), id, actorFrom(r.Context()), req.Notes)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVerificationSchema(v))
}

func (h *Handler) handleRequestVerification(w http.ResponseWriter, r *http.Request) {
	v, err := h.uc.Verification.Request(r.Context(), profileID(r))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toVerificationSchema(v))
}

func (h *Handler) handleVerificationHistory(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.Verification.History(r.Context(), profileID(r))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, toVerificationSchema))
}
