package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/usecase/profile"
)

func (h *Handler) profileRoutes(r chi.Router) {
	r.Post("/profiles", h.handleCreateProfile)
	r.Get("/profiles/me", h.handleMyProfile)

	r.Route("/profiles/{profileID}", func(r chi.Router) {
		r.Use(h.profileAccess)
		r.Get("/", h.handleGetProfile)
		r.Put("/general", h.handleUpdateGeneral)
		r.Put("/technical", h.handleUpdateTechnical)

		r.Get("/languages", h.handleListLanguages)
		r.Post("/languages", h.handleAddLanguage)
		r.Put("/languages/{itemID}", h.handleUpdateLanguage)
		r.Delete("/languages/{itemID}", h.handleRemoveLanguage)

		r.Get("/experiences", h.handleListExperiences)
		r.Post("/experiences", h.handleAddExperience)
		r.Put("/experiences/{itemID}", h.handleUpdateExperience)
		r.Delete("/experiences/{itemID}", h.handleRemoveExperience)

		r.Get("/interests", h.handleListInterests)
		r.Post("/interests", h.handleAddInterest)
		r.Put("/interests/{itemID}", h.handleUpdateInterest)
		r.Delete("/interests/{itemID}", h.handleRemoveInterest)

		r.Get("/technologies", h.handleListEmployeeTechnologies)
		r.Post("/technologies", h.handleAddEmployeeTechnology)
		r.Post("/technologies/import", h.handleImportTechnologies)
		r.Put("/technologies/{itemID}", h.handleUpdateEmployeeTechnology)
		r.Delete("/technologies/{itemID}", h.handleRemoveEmployeeTechnology)

		r.Get("/roles", h.handleListRoles)
		r.Post("/roles", h.handleAddRole)
		r.Delete("/roles/{itemID}", h.handleRemoveRole)

		r.Post("/verification", h.handleRequestVerification)
		r.Get("/verification/history", h.handleVerificationHistory)
	})
}

// profileAccess lets managers and admins through to any profile and employees only to their own.
func (h *Handler) profileAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "profileID")
		if !ok {
			return
		}
		if err := h.uc.Profiles.CanEdit(r.Context(), actorFrom(r.Context()), id); err != nil {
			h.handleError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func profileID(r *http.Request) uuid.UUID {
	id, _ := uuid.Parse(chi.URLParam(r, "profileID"))
	return id
}

func (h *Handler) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !h.decode(w, r, &req) {
		return
	}
	p, err := h.uc.Profiles.Create(r.Context(), actorFrom(r.Context()).UserID, profile.ProfileInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Country:        req.Country,
		Timezone:       req.Timezone,
		SfiaLevel:      req.SfiaLevel,
		Specialization: req.Specialization,
		Mbti:           req.Mbti,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProfileSchema(p))
}

func (h *Handler) handleMyProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.Profiles.GetByUser(r.Context(), actorFrom(r.Context()).UserID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompleteProfileSchema(p))
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.Profiles.Get(r.Context(), profileID(r))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompleteProfileSchema(p))
}

func (h *Handler) handleUpdateGeneral(w http.ResponseWriter, r *http.Request) {
	var req generalRequest
	if !h.decode(w, r, &req) {
		return
	}
	p, err := h.uc.Profiles.UpdateGeneral(r.Context(), profileID(r), profile.GeneralInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Country:      req.Country,
		Timezone:     req.Timezone,
		Availability: req.Availability,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileSchema(p))
}

func (h *Handler) handleUpdateTechnical(w http.ResponseWriter, r *http.Request) {
	var req technicalRequest
	if !h.decode(w, r, &req) {
		return
	}
	p, err := h.uc.Profiles.UpdateTechnical(r.Context(), profileID(r), profile.TechnicalInput{
		SfiaLevel:      req.SfiaLevel,
		Mbti:           req.Mbti,
		Specialization: req.Specialization,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileSchema(p))
}

func (h *Handler) handleListLanguages(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.Profiles.ListLanguages(r.Context(), profileID(r))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, toLanguageSchema))
}

func (h *Handler) handleAddLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if !h.decode(w, r, &req) {
		return
	}
	item, err := h.uc.Profiles.AddLanguage(r.Context(), profileID(r), profile.LanguageInput{Language: req.Language, Proficiency: req.Proficiency})
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLanguageSchema(item))
}

func (h *Handler) handleUpdateLanguage(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}
	var req languageRequest
	if !h.decode(w, r, &req) {
		return
	}
	item, err := h.uc.Profiles.UpdateLanguage(r.Context(), profileID(r), itemID, profile.LanguageInput{Language: req.Language, Proficiency: req.Proficiency})
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLanguageSchema(item))
}

func (h *Handler) handleRemoveLanguage(w http.ResponseWriter, r *http.Request) {
	h.removeItem(w, r, h.uc.Profiles.RemoveLanguage)
}

func toExperienceInput(req experienceRequest) profile.ExperienceInput {
	return profile.ExperienceInput{
		ProjectName:       req.ProjectName,
		Description:       req.Description,
		Tools:             req.Tools,
		ThirdParties:      req.ThirdParties,
		Frameworks:        req.Frameworks,
		VersionControl:    req.VersionControl,
		ProjectManagement: req.ProjectManagement,
		Responsibilities:  req.Responsibilities,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
	}
}

func (h *Handler) handleListExperiences(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.Profiles.ListExperiences(r.Context(), profileID(r))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, toExperienceSchema))
}

func (h *Handler) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	var req experienceRequest
	if !h.decode(w, r, &req) {
		return
	}
	item, err := h.uc.Profiles.AddExperience(r.Context(), profileID(r), toExperienceInput(req))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExperienceSchema(item))
}

func (h *Handler) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}
	var req experienceRequest
	if !h.decode(w, r, &req) {
		return
	}
	item, err := h.uc.Profiles.UpdateExperience(r.Context(), profileID(r), itemID, toExperienceInput(req))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExperienceSchema(item))
}

func (h *Handler) handleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	h.removeItem(w, r, h.uc.Profiles.RemoveExperience)
}

func toInterestInput(req interestRequest) profile.InterestInput {
	return profile.InterestInput{
		Name:                   req.Name,
		SessionDurationMinutes: req.SessionDurationMinutes,
		Frequency:              req.Frequency,
		InterestLevel:          req.InterestLevel,
	}
}

func (h *Handler) handleListInterests(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.Profiles.ListInterests(r.Context(), profileID(r))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, toInterestSchema))
}

func (h *Handler) handleAddInterest(w http.ResponseWriter, r *http.Request) {
	var req interestRequest
	if !h.decode(w, r, &req) {
		return
	}
	item, err := h.uc.Profiles.AddInterest(r.Context(), profileID(r), toInterestInput(req))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInterestSchema(item))
}

func (h *Handler) handleUpdateInterest(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}
	var req interestRequest
	if !h.decode(w, r, &req) {
		return
	}
	item, err := h.uc.Profiles.UpdateInterest(r.Context(), profileID(r), itemID, toInterestInput(req))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInterestSchema(item))
}

func (h *Handler) handleRemoveInterest(w http.ResponseWriter, r *http.Request) {
	h.removeItem(w, r, h.uc.Profiles.RemoveInterest)
}

func (h *Handler) technologyInput(w http.ResponseWriter, r *http.Request) (profile.TechnologyInput, bool) {
	var req technologyLevelRequest
	if !h.decode(w, r, &req) {
		return profile.TechnologyInput{}, false
	}
	techID, err := uuid.Parse(req.TechnologyID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid technology_id")
		return profile.TechnologyInput{}, false
	}
	return profile.TechnologyInput{
		TechnologyID:    techID,
		SfiaLevel:       req.SfiaLevel,
		YearsExperience: req.YearsExperience,
		Version:         req.Version,
	}, true
}

func (h *Handler) handleListEmployeeTechnologies(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.Profiles.ListTechnologies(r.Context(), profileID(r))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, toEmployeeTechnologySchema))
}

func (h *Handler) handleAddEmployeeTechnology(w http.ResponseWriter, r *http.Request) {
	input, ok := h.technologyInput(w, r)
	if !ok {
		return
	}
	item, err := h.uc.Profiles.AddTechnology(r.Context(), profileID(r), input)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeTechnologySchema(item))
}

func (h *Handler) handleUpdateEmployeeTechnology(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}
	input, ok := h.technologyInput(w, r)
	if !ok {
		return
	}
	item, err := h.uc.Profiles.UpdateTechnology(r.Context(), profileID(r), itemID, input)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeTechnologySchema(item))
}

func (h *Handler) handleRemoveEmployeeTechnology(w http.ResponseWriter, r *http.Request) {
	h.removeItem(w, r, h.uc.Profiles.RemoveTechnology)
}

type importResponse struct {
	Imported []string `json:"imported"`
}

func (h *Handler) handleImportTechnologies(w http.ResponseWriter, r *http.Request) {
	var req technologyImportRequest
	if !h.decode(w, r, &req) {
		return
	}
	items := make([]profile.TechnologyImport, 0, len(req.Technologies))
	for _, t := range req.Technologies {
		items = append(items, profile.TechnologyImport{
			Name:            t.Name,
			Category:        t.Category,
			SfiaLevel:       t.SfiaLevel,
			YearsExperience: t.YearsExperience,
			Version:         t.Version,
		})
	}
	ids, err := h.uc.Profiles.ImportTechnologies(r.Context(), profileID(r), items)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Imported: mapSlice(ids, uuid.UUID.String)})
}

func (h *Handler) handleListRoles(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.Profiles.ListRoles(r.Context(), profileID(r))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, toEmployeeRoleSchema))
}

func (h *Handler) handleAddRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if !h.decode(w, r, &req) {
		return
	}
	roleID, err := uuid.Parse(req.SpecializedRoleID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid specialized_role_id")
		return
	}
	item, err := h.uc.Profiles.AddRole(r.Context(), profileID(r), profile.RoleInput{
		SpecializedRoleID: roleID,
		Level:             req.Level,
		YearsExperience:   req.YearsExperience,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeRoleSchema(item))
}

func (h *Handler) handleRemoveRole(w http.ResponseWriter, r *http.Request) {
	h.removeItem(w, r, h.uc.Profiles.RemoveRole)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request, remove func(ctx context.Context, profileID, itemID uuid.UUID) error) {
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}
	if err := remove(r.Context(), profileID(r), itemID); err != nil {
		h.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
