package profile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

type ProfileInput struct {
	FirstName      string
	LastName       string
	Country        string
	Timezone       string
	SfiaLevel      int
	Specialization string
	Mbti           string
}

type GeneralInput struct {
	FirstName    string
	LastName     string
	Country      string
	Timezone     string
	Availability bool
}

type TechnicalInput struct {
	SfiaLevel      int
	Mbti           string
	Specialization string
}

type LanguageInput struct {
	Language    string
	Proficiency string
}

type ExperienceInput struct {
	ProjectName       string
	Description       string
	Tools             []string
	ThirdParties      []string
	Frameworks        []string
	VersionControl    string
	ProjectManagement string
	Responsibilities  []string
	StartDate         time.Time
	EndDate           *time.Time
}

type InterestInput struct {
	Name                   string
	SessionDurationMinutes *int
	Frequency              string
	InterestLevel          *int
}

type TechnologyInput struct {
	TechnologyID    uuid.UUID
	SfiaLevel       int
	YearsExperience float64
	Version         string
}

// TechnologyImport is one entry of a bulk import, matched against the catalog by name and category.
type TechnologyImport struct {
	Name            string
	Category        string
	SfiaLevel       int
	YearsExperience float64
	Version         string
}

type RoleInput struct {
	SpecializedRoleID uuid.UUID
	Level             string
	YearsExperience   int
}

type ProfileUseCase interface {
	Create(ctx context.Context, userID uuid.UUID, input ProfileInput) (entities.EmployeeProfile, error)
	Get(ctx context.Context, profileID uuid.UUID) (entities.CompleteProfile, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (entities.CompleteProfile, error)
	CanEdit(ctx context.Context, actor entities.Actor, profileID uuid.UUID) error
	UpdateGeneral(ctx context.Context, profileID uuid.UUID, input GeneralInput) (entities.EmployeeProfile, error)
	UpdateTechnical(ctx context.Context, profileID uuid.UUID, input TechnicalInput) (entities.EmployeeProfile, error)

	ListLanguages(ctx context.Context, profileID uuid.UUID) ([]entities.EmployeeLanguage, error)
	AddLanguage(ctx context.Context, profileID uuid.UUID, input LanguageInput) (entities.EmployeeLanguage, error)
	UpdateLanguage(ctx context.Context, profileID, languageID uuid.UUID, input LanguageInput) (entities.EmployeeLanguage, error)
	RemoveLanguage(ctx context.Context, profileID, languageID uuid.UUID) error

	ListExperiences(ctx context.Context, profileID uuid.UUID) ([]entities.WorkExperience, error)
	AddExperience(ctx context.Context, profileID uuid.UUID, input ExperienceInput) (entities.WorkExperience, error)
	UpdateExperience(ctx context.Context, profileID, experienceID uuid.UUID, input ExperienceInput) (entities.WorkExperience, error)
	RemoveExperience(ctx context.Context, profileID, experienceID uuid.UUID) error

	ListInterests(ctx context.Context, profileID uuid.UUID) ([]entities.PersonalInterest, error)
	AddInterest(ctx context.Context, profileID uuid.UUID, input InterestInput) (entities.PersonalInterest, error)
	UpdateInterest(ctx context.Context, profileID, interestID uuid.UUID, input InterestInput) (entities.PersonalInterest, error)
	RemoveInterest(ctx context.Context, profileID, interestID uuid.UUID) error

	ListTechnologies(ctx context.Context, profileID uuid.UUID) ([]entities.EmployeeTechnology, error)
	AddTechnology(ctx context.Context, profileID uuid.UUID, input TechnologyInput) (entities.EmployeeTechnology, error)
	UpdateTechnology(ctx context.Context, profileID, employeeTechID uuid.UUID, input TechnologyInput) (entities.EmployeeTechnology, error)
	RemoveTechnology(ctx context.Context, profileID, employeeTechID uuid.UUID) error
	ImportTechnologies(ctx context.Context, profileID uuid.UUID, items []TechnologyImport) ([]uuid.UUID, error)

	ListRoles(ctx context.Context, profileID uuid.UUID) ([]entities.EmployeeSpecializedRole, error)
	AddRole(ctx context.Context, profileID uuid.UUID, input RoleInput) (entities.EmployeeSpecializedRole, error)
	RemoveRole(ctx context.Context, profileID, employeeRoleID uuid.UUID) error
}

// Tag is the cache tag covering every cached view of a profile.
func Tag(profileID uuid.UUID) string {
	return "profile:" + profileID.String()
}
