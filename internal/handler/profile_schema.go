package handler

import (
	"time"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

type profileSchema struct {
	ID                 string `json:"id"`
	UserID             string `json:"user_id"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Availability       bool   `json:"availability"`
	Country            string `json:"country"`
	Timezone           string `json:"timezone"`
	SfiaLevelGeneral   int    `json:"sfia_level_general"`
	Specialization     string `json:"specialization"`
	Mbti               string `json:"mbti"`
	VerificationStatus string `json:"verification_status"`
	VerificationNotes  string `json:"verification_notes,omitempty"`
}

func toProfileSchema(p entities.EmployeeProfile) profileSchema {
	return profileSchema{
		ID:                 p.ID.String(),
		UserID:             p.UserID.String(),
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		Availability:       p.Availability,
		Country:            p.Country,
		Timezone:           p.Timezone,
		SfiaLevelGeneral:   p.SfiaLevelGeneral,
		Specialization:     p.Specialization,
		Mbti:               p.Mbti,
		VerificationStatus: string(p.VerificationStatus),
		VerificationNotes:  p.VerificationNotes,
	}
}

type languageSchema struct {
	ID          string `json:"id"`
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

func toLanguageSchema(l entities.EmployeeLanguage) languageSchema {
	return languageSchema{ID: l.ID.String(), Language: l.Language, Proficiency: l.Proficiency}
}

type experienceSchema struct {
	ID                string   `json:"id"`
	ProjectName       string   `json:"project_name"`
	Description       string   `json:"description"`
	Tools             []string `json:"tools"`
	ThirdParties      []string `json:"third_parties"`
	Frameworks        []string `json:"frameworks"`
	VersionControl    string   `json:"version_control"`
	ProjectManagement string   `json:"project_management"`
	Responsibilities  []string `json:"responsibilities"`
	StartDate         string   `json:"start_date"`
	EndDate           *string  `json:"end_date,omitempty"`
}

func toExperienceSchema(e entities.WorkExperience) experienceSchema {
	return experienceSchema{
		ID:                e.ID.String(),
		ProjectName:       e.ProjectName,
		Description:       e.Description,
		Tools:             nonNil(e.Tools),
		ThirdParties:      nonNil(e.ThirdParties),
		Frameworks:        nonNil(e.Frameworks),
		VersionControl:    e.VersionControl,
		ProjectManagement: e.ProjectManagement,
		Responsibilities:  nonNil(e.Responsibilities),
		StartDate:         formatTime(e.StartDate),
		EndDate:           formatTimePtr(e.EndDate),
	}
}

type interestSchema struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	SessionDurationMinutes *int   `json:"session_duration_minutes,omitempty"`
	Frequency              string `json:"frequency,omitempty"`
	InterestLevel          *int   `json:"interest_level,omitempty"`
}

func toInterestSchema(i entities.PersonalInterest) interestSchema {
	return interestSchema{
		ID:                     i.ID.String(),
		Name:                   i.Name,
		SessionDurationMinutes: i.SessionDurationMinutes,
		Frequency:              i.Frequency,
		InterestLevel:          i.InterestLevel,
	}
}

type employeeTechnologySchema struct {
	ID              string  `json:"id"`
	TechnologyID    string  `json:"technology_id"`
	TechnologyName  string  `json:"technology_name"`
	Category        string  `json:"category"`
	SfiaLevel       int     `json:"sfia_level"`
	YearsExperience float64 `json:"years_experience"`
	Version         string  `json:"version,omitempty"`
}

func toEmployeeTechnologySchema(t entities.EmployeeTechnology) employeeTechnologySchema {
	return employeeTechnologySchema{
		ID:              t.ID.String(),
		TechnologyID:    t.TechnologyID.String(),
		TechnologyName:  t.TechnologyName,
		Category:        t.CategoryName,
		SfiaLevel:       t.SfiaLevel,
		YearsExperience: t.YearsExperience,
		Version:         t.Version,
	}
}

type employeeRoleSchema struct {
	ID                string `json:"id"`
	SpecializedRoleID string `json:"specialized_role_id"`
	RoleName          string `json:"role_name"`
	TechnicalArea     string `json:"technical_area"`
	Level             string `json:"level"`
	YearsExperience   int    `json:"years_experience"`
}

func toEmployeeRoleSchema(r entities.EmployeeSpecializedRole) employeeRoleSchema {
	return employeeRoleSchema{
		ID:                r.ID.String(),
		SpecializedRoleID: r.SpecializedRoleID.String(),
		RoleName:          r.RoleName,
		TechnicalArea:     r.TechnicalAreaName,
		Level:             r.Level,
		YearsExperience:   r.YearsExperience,
	}
}

type completeProfileSchema struct {
	profileSchema
	Email            string                     `json:"email"`
	Languages        []languageSchema           `json:"languages"`
	WorkExperiences  []experienceSchema         `json:"work_experiences"`
	Interests        []interestSchema           `json:"interests"`
	Technologies     []employeeTechnologySchema `json:"technologies"`
	SpecializedRoles []employeeRoleSchema       `json:"specialized_roles"`
}

func toCompleteProfileSchema(c entities.CompleteProfile) completeProfileSchema {
	return completeProfileSchema{
		profileSchema:    toProfileSchema(c.Profile),
		Email:            c.Email,
		Languages:        mapSlice(c.Languages, toLanguageSchema),
		WorkExperiences:  mapSlice(c.WorkExperiences, toExperienceSchema),
		Interests:        mapSlice(c.Interests, toInterestSchema),
		Technologies:     mapSlice(c.Technologies, toEmployeeTechnologySchema),
		SpecializedRoles: mapSlice(c.SpecializedRoles, toEmployeeRoleSchema),
	}
}

func mapSlice[T, S any](in []T, fn func(T) S) []S {
	out := make([]S, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

type profileRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Country        string `json:"country"`
	Timezone       string `json:"timezone"`
	SfiaLevel      int    `json:"sfia_level"`
	Specialization string `json:"specialization"`
	Mbti           string `json:"mbti"`
}

type generalRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Country      string `json:"country"`
	Timezone     string `json:"timezone"`
	Availability bool   `json:"availability"`
}

type technicalRequest struct {
	SfiaLevel      int    `json:"sfia_level"`
	Mbti           string `json:"mbti"`
	Specialization string `json:"specialization"`
}

type languageRequest struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

type experienceRequest struct {
	ProjectName       string     `json:"project_name"`
	Description       string     `json:"description"`
	Tools             []string   `json:"tools"`
	ThirdParties      []string   `json:"third_parties"`
	Frameworks        []string   `json:"frameworks"`
	VersionControl    string     `json:"version_control"`
	ProjectManagement string     `json:"project_management"`
	Responsibilities  []string   `json:"responsibilities"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
}

type interestRequest struct {
	Name                   string `json:"name"`
	SessionDurationMinutes *int   `json:"session_duration_minutes"`
	Frequency              string `json:"frequency"`
	InterestLevel          *int   `json:"interest_level"`
}

type technologyLevelRequest struct {
	TechnologyID    string  `json:"technology_id"`
	SfiaLevel       int     `json:"sfia_level"`
	YearsExperience float64 `json:"years_experience"`
	Version         string  `json:"version"`
}

type technologyImportRequest struct {
	Technologies []struct {
		Name            string  `json:"name"`
		Category        string  `json:"category"`
		SfiaLevel       int     `json:"sfia_level"`
		YearsExperience float64 `json:"years_experience"`
		Version         string  `json:"version"`
	} `json:"technologies"`
}

type roleRequest struct {
	SpecializedRoleID string `json:"specialized_role_id"`
	Level             string `json:"level"`
	YearsExperience   int    `json:"years_experience"`
}
