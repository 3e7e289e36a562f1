package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/internal/usecase/catalog"
)

func (h *Handler) catalogRoutes(r chi.Router) {
	r.Get("/catalog/categories", h.handleListCategories)
	r.Get("/catalog/technologies", h.handleListTechnologies)
	r.Get("/catalog/areas", h.handleListAreas)
	r.Get("/catalog/mapping", h.handleMapping)
	r.Get("/catalog/roles", h.handleAvailableRoles)
	r.Get("/catalog/weight-criteria", h.handleWeightCriteria)
}

type namedSchema struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type technologySchema struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
}

func toTechnologySchema(t entities.Technology) technologySchema {
	return technologySchema{
		ID:          t.ID.String(),
		Name:        t.Name,
		Category:    t.CategoryName,
		Version:     t.Version,
		Description: t.Description,
	}
}

type areaRolesSchema struct {
	Area  namedSchema   `json:"area"`
	Roles []namedSchema `json:"roles"`
}

type roleOptionSchema struct {
	Role   string   `json:"role"`
	Areas  []string `json:"areas"`
	Levels []string `json:"levels"`
}

type weightCriterionSchema struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DefaultValue int    `json:"default_value"`
}

type technologyRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.uc.Catalog.ListCategories(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	out := make([]namedSchema, 0, len(categories))
	for _, c := range categories {
		out = append(out, namedSchema{ID: c.ID.String(), Name: c.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleListTechnologies(w http.ResponseWriter, r *http.Request) {
	techs, err := h.uc.Catalog.ListTechnologies(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	out := make([]technologySchema, 0, len(techs))
	for _, t := range techs {
		out = append(out, toTechnologySchema(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreateTechnology(w http.ResponseWriter, r *http.Request) {
	var req technologyRequest
	if !h.decode(w, r, &req) {
		return
	}
	tech, err := h.uc.Catalog.CreateTechnology(r.Context(), actorFrom(r.Context()), catalog.TechnologyInput{
		Name:        req.Name,
		Category:    req.Category,
		Version:     req.Version,
		Description: req.Description,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTechnologySchema(tech))
}

func (h *Handler) handleListAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.uc.Catalog.ListAreas(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	out := make([]namedSchema, 0, len(areas))
	for _, a := range areas {
		out = append(out, namedSchema{ID: a.ID.String(), Name: a.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleMapping(w http.ResponseWriter, r *http.Request) {
	mapping, err := h.uc.Catalog.Mapping(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	out := make([]areaRolesSchema, 0, len(mapping))
	for _, m := range mapping {
		roles := make([]namedSchema, 0, len(m.Roles))
		for _, role := range m.Roles {
			roles = append(roles, namedSchema{ID: role.ID.String(), Name: role.Name})
		}
		out = append(out, areaRolesSchema{Area: namedSchema{ID: m.Area.ID.String(), Name: m.Area.Name}, Roles: roles})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleAvailableRoles(w http.ResponseWriter, r *http.Request) {
	roles := h.uc.Catalog.AvailableRoles()
	out := make([]roleOptionSchema, 0, len(roles))
	for _, role := range roles {
		out = append(out, roleOptionSchema{Role: role.Role, Areas: role.Areas, Levels: role.Levels})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleWeightCriteria(w http.ResponseWriter, r *http.Request) {
	criteria := h.uc.Catalog.WeightCriteria()
	out := make([]weightCriterionSchema, 0, len(criteria))
	for _, c := range criteria {
		out = append(out, weightCriterionSchema{ID: c.ID, Name: c.Name, DefaultValue: c.DefaultValue})
	}
	writeJSON(w, http.StatusOK, out)
}
