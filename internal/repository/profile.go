package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile entities.EmployeeProfile) (entities.EmployeeProfile, error)
	GetProfile(ctx context.Context, profileID uuid.UUID) (entities.EmployeeProfile, error)
	GetProfileByUser(ctx context.Context, userID uuid.UUID) (entities.EmployeeProfile, error)
	GetCompleteProfile(ctx context.Context, profileID uuid.UUID) (entities.CompleteProfile, error)
	ListCandidateProfiles(ctx context.Context, onlyAvailable bool) ([]entities.CompleteProfile, error)
	UpdateProfile(ctx context.Context, profile entities.EmployeeProfile) (entities.EmployeeProfile, error)
	ResetProfileData(ctx context.Context, profileID uuid.UUID, types []entities.DataType) error

	ListLanguages(ctx context.Context, profileID uuid.UUID) ([]entities.EmployeeLanguage, error)
	AddLanguage(ctx context.Context, language entities.EmployeeLanguage) (entities.EmployeeLanguage, error)
	UpdateLanguage(ctx context.Context, language entities.EmployeeLanguage) (entities.EmployeeLanguage, error)
	DeleteLanguage(ctx context.Context, profileID, languageID uuid.UUID) error

	ListWorkExperiences(ctx context.Context, profileID uuid.UUID) ([]entities.WorkExperience, error)
	AddWorkExperience(ctx context.Context, experience entities.WorkExperience) (entities.WorkExperience, error)
	UpdateWorkExperience(ctx context.Context, experience entities.WorkExperience) (entities.WorkExperience, error)
	DeleteWorkExperience(ctx context.Context, profileID, experienceID uuid.UUID) error

	ListInterests(ctx context.Context, profileID uuid.UUID) ([]entities.PersonalInterest, error)
	AddInterest(ctx context.Context, interest entities.PersonalInterest) (entities.PersonalInterest, error)
	UpdateInterest(ctx context.Context, interest entities.PersonalInterest) (entities.PersonalInterest, error)
	DeleteInterest(ctx context.Context, profileID, interestID uuid.UUID) error

	ListEmployeeTechnologies(ctx context.Context, profileID uuid.UUID) ([]entities.EmployeeTechnology, error)
	AddEmployeeTechnology(ctx context.Context, tech entities.EmployeeTechnology) (entities.EmployeeTechnology, error)
	UpdateEmployeeTechnology(ctx context.Context, tech entities.EmployeeTechnology) (entities.EmployeeTechnology, error)
	DeleteEmployeeTechnology(ctx context.Context, profileID, employeeTechID uuid.UUID) error

	ListEmployeeRoles(ctx context.Context, profileID uuid.UUID) ([]entities.EmployeeSpecializedRole, error)
	AddEmployeeRole(ctx context.Context, role entities.EmployeeSpecializedRole) (entities.EmployeeSpecializedRole, error)
	DeleteEmployeeRole(ctx context.Context, profileID, employeeRoleID uuid.UUID) error
}
