package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/internal/usecase/auth"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type invitationRegisterRequest struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token     string     `json:"token"`
	ExpiresAt string     `json:"expires_at"`
	User      userSchema `json:"user"`
}

type userSchema struct {
	ID                string  `json:"id"`
	Email             string  `json:"email"`
	Role              string  `json:"role"`
	ProfileID         *string `json:"profile_id,omitempty"`
	HasProfile        bool    `json:"has_profile"`
	IsProfileVerified bool    `json:"is_profile_verified"`
}

func toUserSchema(u entities.UserInfo) userSchema {
	s := userSchema{
		ID:                u.ID.String(),
		Email:             u.Email,
		Role:              string(u.Role),
		HasProfile:        u.HasProfile,
		IsProfileVerified: u.IsProfileVerified,
	}
	if u.ProfileID != nil {
		id := u.ProfileID.String()
		s.ProfileID = &id
	}
	return s
}

func toAuthResponse(res auth.AuthResult) authResponse {
	return authResponse{
		Token:     res.Token,
		ExpiresAt: formatTime(res.ExpiresAt),
		User:      toUserSchema(res.User),
	}
}

type invitationRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type invitationSchema struct {
	Token      string `json:"token"`
	Email      string `json:"email"`
	TargetRole string `json:"target_role"`
	ExpiresAt  string `json:"expires_at"`
	IsUsed     bool   `json:"is_used"`
}

func toInvitationSchema(i entities.InvitationLink) invitationSchema {
	return invitationSchema{
		Token:      i.Token,
		Email:      i.Email,
		TargetRole: string(i.TargetRole),
		ExpiresAt:  formatTime(i.ExpiresAt),
		IsUsed:     i.IsUsed,
	}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.uc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(res))
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.uc.Auth.RegisterEmployee(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAuthResponse(res))
}

func (h *Handler) handleRegisterWithInvitation(w http.ResponseWriter, r *http.Request) {
	var req invitationRegisterRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.uc.Auth.RegisterWithInvitation(r.Context(), req.Token, req.Email, req.Password)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAuthResponse(res))
}

func (h *Handler) handleValidateInvitation(w http.ResponseWriter, r *http.Request) {
	inv, err := h.uc.Auth.ValidateInvitation(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInvitationSchema(inv))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	info, err := h.uc.Auth.GetUser(r.Context(), actorFrom(r.Context()).UserID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserSchema(info))
}

func (h *Handler) handleCreateInvitation(w http.ResponseWriter, r *http.Request) {
	var req invitationRequest
	if !h.decode(w, r, &req) {
		return
	}
	inv, err := h.uc.Auth.CreateInvitation(r.Context(), actorFrom(r.Context()), req.Email, entities.Role(req.Role))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInvitationSchema(inv))
}
