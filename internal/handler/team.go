package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/internal/usecase/team"
)

func (h *Handler) teamRoutes(r chi.Router) {
	r.Post("/teams/generate", h.handleGenerateTeam)
	r.Post("/teams/generate-blended", h.handleGenerateBlended)
	r.Post("/teams", h.handleCreateTeam)
	r.Get("/teams", h.handleListTeams)
	r.Get("/teams/created", h.handleCreatedTeams)
	r.Get("/teams/available", h.handleAvailableTeams)
	r.Get("/teams/by-member/{employeeID}", h.handleTeamsByMember)
	r.Get("/teams/{teamID}", h.handleGetTeam)
	r.Delete("/teams/{teamID}", h.handleDeleteTeam)
	r.Post("/teams/{teamID}/find-members", h.handleFindMembers)
	r.Post("/teams/{teamID}/members", h.handleAddMembers)
	r.Delete("/teams/{teamID}/members/{employeeID}", h.handleRemoveMember)
	r.Post("/teams/{teamID}/members/{employeeID}/move", h.handleMoveMember)
	r.Get("/teams/{teamID}/compatibility/{employeeID}", h.handleCompatibility)
	r.Post("/teams/{teamID}/reanalyze", h.handleReanalyze)
}

type teamMemberSchema struct {
	EmployeeProfileID string `json:"employee_profile_id"`
	UserID            string `json:"user_id,omitempty"`
	Name              string `json:"name"`
	Role              string `json:"role"`
	SfiaLevel         int    `json:"sfia_level"`
	IsLeader          bool   `json:"is_leader"`
}

func toTeamMemberSchema(m entities.TeamMember) teamMemberSchema {
	s := teamMemberSchema{
		EmployeeProfileID: m.EmployeeProfileID.String(),
		Name:              m.Name,
		Role:              m.Role,
		SfiaLevel:         m.SfiaLevel,
		IsLeader:          m.IsLeader,
	}
	if m.UserID != uuid.Nil {
		s.UserID = m.UserID.String()
	}
	return s
}

type requiredTechnologySchema struct {
	TechnologyID     string `json:"technology_id"`
	TechnologyName   string `json:"technology_name"`
	MinimumSfiaLevel int    `json:"minimum_sfia_level"`
	IsMandatory      bool   `json:"is_mandatory"`
}

type teamSchema struct {
	ID                   string                     `json:"id"`
	Name                 string                     `json:"name"`
	CreatorID            string                     `json:"creator_id"`
	Description          string                     `json:"description,omitempty"`
	CompatibilityScore   int                        `json:"compatibility_score"`
	IsActive             bool                       `json:"is_active"`
	Analysis             entities.TeamAnalysis      `json:"analysis"`
	Weights              entities.Weights           `json:"weights"`
	TeamSize             int                        `json:"team_size"`
	MinimumSfiaLevel     int                        `json:"minimum_sfia_level"`
	IsBlended            bool                       `json:"is_blended"`
	Members              []teamMemberSchema         `json:"members"`
	RequiredTechnologies []requiredTechnologySchema `json:"required_technologies"`
	CreatedAt            string                     `json:"created_at"`
	UpdatedAt            string                     `json:"updated_at"`
}

func toTeamSchema(t entities.Team) teamSchema {
	return teamSchema{
		ID:                 t.ID.String(),
		Name:               t.Name,
		CreatorID:          t.CreatorID.String(),
		Description:        t.Description,
		CompatibilityScore: t.CompatibilityScore,
		IsActive:           t.IsActive,
		Analysis:           t.Analysis,
		Weights:            t.Weights,
		TeamSize:           t.TeamSize,
		MinimumSfiaLevel:   t.MinimumSfiaLevel,
		IsBlended:          t.IsBlended,
		Members:            mapSlice(t.Members, toTeamMemberSchema),
		RequiredTechnologies: mapSlice(t.RequiredTechnologies, func(rt entities.TeamRequiredTechnology) requiredTechnologySchema {
			return requiredTechnologySchema{
				TechnologyID:     rt.TechnologyID.String(),
				TechnologyName:   rt.TechnologyName,
				MinimumSfiaLevel: rt.MinimumSfiaLevel,
				IsMandatory:      rt.IsMandatory,
			}
		}),
		CreatedAt: formatTime(t.CreatedAt),
		UpdatedAt: formatTime(t.UpdatedAt),
	}
}

type generateRequest struct {
	Requirements      []entities.TeamRequirement `json:"requirements"`
	Technologies      []string                   `json:"technologies"`
	SfiaLevel         int                        `json:"sfia_level"`
	TeamSize          int                        `json:"team_size"`
	Availability      bool                       `json:"availability"`
	Weights           entities.Weights           `json:"criteria_weights"`
	ProjectComplexity string                     `json:"project_complexity"`
}

type proposedMemberSchema struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	SfiaLevel int    `json:"sfia_level"`
}

type proposedTeamSchema struct {
	TeamID  string                 `json:"team_id"`
	Members []proposedMemberSchema `json:"members"`
}

type generatedTeamSchema struct {
	Teams              []proposedTeamSchema       `json:"teams"`
	RecommendedLeader  *entities.LeaderSuggestion `json:"recommended_leader,omitempty"`
	Analysis           entities.TeamAnalysis      `json:"team_analysis"`
	CompatibilityScore int                        `json:"compatibility_score"`
}

func toGeneratedTeamSchema(g entities.GeneratedTeam) generatedTeamSchema {
	return generatedTeamSchema{
		Teams: mapSlice(g.Teams, func(t entities.ProposedTeam) proposedTeamSchema {
			return proposedTeamSchema{
				TeamID: t.TeamID,
				Members: mapSlice(t.Members, func(m entities.ProposedMember) proposedMemberSchema {
					return proposedMemberSchema{ID: m.ID.String(), Name: m.Name, Role: m.Role, SfiaLevel: m.SfiaLevel}
				}),
			}
		}),
		RecommendedLeader:  g.RecommendedLeader,
		Analysis:           g.Analysis,
		CompatibilityScore: g.CompatibilityScore,
	}
}

func (h *Handler) generationRequest(w http.ResponseWriter, r *http.Request) (entities.TeamGenerationRequest, bool) {
	var req generateRequest
	if !h.decode(w, r, &req) {
		return entities.TeamGenerationRequest{}, false
	}
	return entities.TeamGenerationRequest{
		CreatorID:         actorFrom(r.Context()).UserID,
		Requirements:      req.Requirements,
		Technologies:      req.Technologies,
		SfiaLevel:         req.SfiaLevel,
		TeamSize:          req.TeamSize,
		Availability:      req.Availability,
		Weights:           req.Weights,
		ProjectComplexity: entities.ProjectComplexity(req.ProjectComplexity),
	}, true
}

func (h *Handler) handleGenerateTeam(w http.ResponseWriter, r *http.Request) {
	req, ok := h.generationRequest(w, r)
	if !ok {
		return
	}
	generated, err := h.uc.Teams.Generate(r.Context(), req)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGeneratedTeamSchema(generated))
}

func (h *Handler) handleGenerateBlended(w http.ResponseWriter, r *http.Request) {
	req, ok := h.generationRequest(w, r)
	if !ok {
		return
	}
	generated, err := h.uc.Teams.GenerateBlended(r.Context(), req)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGeneratedTeamSchema(generated))
}

type memberRequest struct {
	EmployeeProfileID string `json:"employee_profile_id"`
	Name              string `json:"name"`
	Role              string `json:"role"`
	SfiaLevel         int    `json:"sfia_level"`
	IsLeader          bool   `json:"is_leader"`
}

type requiredTechnologyRequest struct {
	TechnologyID     string `json:"technology_id"`
	MinimumSfiaLevel *int   `json:"minimum_sfia_level"`
	IsMandatory      *bool  `json:"is_mandatory"`
}

type createTeamRequest struct {
	Name                 string                      `json:"name"`
	Description          string                      `json:"description"`
	Members              []memberRequest             `json:"members"`
	RequiredTechnologies []requiredTechnologyRequest `json:"required_technologies"`
	CompatibilityScore   int                         `json:"compatibility_score"`
	Analysis             entities.TeamAnalysis       `json:"analysis"`
	Weights              entities.Weights            `json:"weights"`
	TeamSize             int                         `json:"team_size"`
	MinimumSfiaLevel     int                         `json:"minimum_sfia_level"`
	IsBlended            bool                        `json:"is_blended"`
}

func parseMembers(w http.ResponseWriter, in []memberRequest) ([]entities.TeamMember, bool) {
	members := make([]entities.TeamMember, 0, len(in))
	for _, m := range in {
		id, err := uuid.Parse(m.EmployeeProfileID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid employee_profile_id")
			return nil, false
		}
		members = append(members, entities.TeamMember{
			EmployeeProfileID: id,
			Name:              m.Name,
			Role:              m.Role,
			SfiaLevel:         m.SfiaLevel,
			IsLeader:          m.IsLeader,
		})
	}
	return members, true
}

func (h *Handler) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if !h.decode(w, r, &req) {
		return
	}
	members, ok := parseMembers(w, req.Members)
	if !ok {
		return
	}
	required := make([]team.RequiredTechnologyInput, 0, len(req.RequiredTechnologies))
	for _, rt := range req.RequiredTechnologies {
		id, err := uuid.Parse(rt.TechnologyID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid technology_id")
			return
		}
		required = append(required, team.RequiredTechnologyInput{
			TechnologyID:     id,
			MinimumSfiaLevel: rt.MinimumSfiaLevel,
			IsMandatory:      rt.IsMandatory,
		})
	}

	created, err := h.uc.Teams.Create(r.Context(), team.CreateInput{
		Name:                 req.Name,
		Description:          req.Description,
		CreatorID:            actorFrom(r.Context()).UserID,
		Members:              members,
		RequiredTechnologies: required,
		CompatibilityScore:   req.CompatibilityScore,
		Analysis:             req.Analysis,
		Weights:              req.Weights,
		TeamSize:             req.TeamSize,
		MinimumSfiaLevel:     req.MinimumSfiaLevel,
		IsBlended:            req.IsBlended,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTeamSchema(created))
}

func (h *Handler) writeTeams(w http.ResponseWriter, teams []entities.Team, err error) {
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(teams, toTeamSchema))
}

func (h *Handler) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.uc.Teams.List(r.Context())
	h.writeTeams(w, teams, err)
}

func (h *Handler) handleCreatedTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.uc.Teams.ListByCreator(r.Context(), actorFrom(r.Context()).UserID)
	h.writeTeams(w, teams, err)
}

func (h *Handler) handleMyTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.uc.Teams.ListByUser(r.Context(), actorFrom(r.Context()).UserID)
	h.writeTeams(w, teams, err)
}

func (h *Handler) handleTeamsByMember(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathID(w, r, "employeeID")
	if !ok {
		return
	}
	teams, err := h.uc.Teams.ListByMember(r.Context(), employeeID)
	h.writeTeams(w, teams, err)
}

type availableTeamSchema struct {
	TeamID      string `json:"team_id"`
	Name        string `json:"name"`
	MemberCount int    `json:"member_count"`
	HasMember   bool   `json:"has_member"`
}

func (h *Handler) handleAvailableTeams(w http.ResponseWriter, r *http.Request) {
	employeeID, err := uuid.Parse(r.URL.Query().Get("employee_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid employee_id")
		return
	}
	var exclude *uuid.UUID
	if raw := r.URL.Query().Get("exclude_team_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid exclude_team_id")
			return
		}
		exclude = &id
	}
	teams, err := h.uc.Teams.AvailableForMember(r.Context(), employeeID, exclude)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(teams, func(t entities.AvailableTeam) availableTeamSchema {
		return availableTeamSchema{TeamID: t.TeamID.String(), Name: t.Name, MemberCount: t.MemberCount, HasMember: t.HasMember}
	}))
}

func (h *Handler) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	t, err := h.uc.Teams.Get(r.Context(), teamID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTeamSchema(t))
}

func (h *Handler) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	if err := h.uc.Teams.Delete(r.Context(), teamID); err != nil {
		h.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type findMembersRequest struct {
	Role         string   `json:"role"`
	Area         string   `json:"area"`
	Level        string   `json:"level"`
	Technologies []string `json:"technologies"`
}

type recommendationSchema struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	CompatibilityScore int      `json:"compatibility_score"`
	Analysis           string   `json:"analysis"`
	PotentialConflicts []string `json:"potential_conflicts"`
	TeamImpact         string   `json:"team_impact"`
}

func (h *Handler) handleFindMembers(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	var req findMembersRequest
	if !h.decode(w, r, &req) {
		return
	}
	recs, err := h.uc.Teams.FindMembers(r.Context(), team.FindMembersInput{
		TeamID:       teamID,
		Role:         req.Role,
		Area:         req.Area,
		Level:        req.Level,
		Technologies: req.Technologies,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(recs, func(m entities.MemberRecommendation) recommendationSchema {
		return recommendationSchema{
			ID:                 m.ID.String(),
			Name:               m.Name,
			CompatibilityScore: m.CompatibilityScore,
			Analysis:           m.Analysis,
			PotentialConflicts: nonNil(m.PotentialConflicts),
			TeamImpact:         m.TeamImpact,
		}
	}))
}

type addMembersRequest struct {
	Members []memberRequest `json:"members"`
}

func (h *Handler) handleAddMembers(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	var req addMembersRequest
	if !h.decode(w, r, &req) {
		return
	}
	members, ok := parseMembers(w, req.Members)
	if !ok {
		return
	}
	t, err := h.uc.Teams.AddMembers(r.Context(), teamID, members)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTeamSchema(t))
}

func (h *Handler) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	employeeID, ok := pathID(w, r, "employeeID")
	if !ok {
		return
	}
	if err := h.uc.Teams.RemoveMember(r.Context(), teamID, employeeID); err != nil {
		h.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type moveMemberRequest struct {
	TargetTeamID string `json:"target_team_id"`
}

func (h *Handler) handleMoveMember(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	employeeID, ok := pathID(w, r, "employeeID")
	if !ok {
		return
	}
	var req moveMemberRequest
	if !h.decode(w, r, &req) {
		return
	}
	targetID, err := uuid.Parse(req.TargetTeamID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid target_team_id")
		return
	}
	if err := h.uc.Teams.MoveMember(r.Context(), teamID, targetID, employeeID); err != nil {
		h.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type compatibilitySchema struct {
	Score         int    `json:"score"`
	Justification string `json:"justification"`
}

func (h *Handler) handleCompatibility(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	employeeID, ok := pathID(w, r, "employeeID")
	if !ok {
		return
	}
	res, err := h.uc.Teams.Compatibility(r.Context(), teamID, employeeID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, compatibilitySchema{Score: res.Score, Justification: res.Justification})
}

func (h *Handler) handleReanalyze(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	t, err := h.uc.Teams.Reanalyze(r.Context(), teamID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTeamSchema(t))
}
