package entities

import (
	"time"

	"github.com/google/uuid"
)

type VerificationStatus string

const (
	VerificationNotRequested VerificationStatus = "NotRequested"
	VerificationPending      VerificationStatus = "Pending"
	VerificationApproved     VerificationStatus = "Approved"
	VerificationRejected     VerificationStatus = "Rejected"
)

const (
	MinSfiaLevel = 1
	MaxSfiaLevel = 7
)

func ValidSfia(level int) bool {
	return level >= MinSfiaLevel && level <= MaxSfiaLevel
}

type EmployeeProfile struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	FirstName          string
	LastName           string
	Availability       bool
	Country            string
	Timezone           string
	SfiaLevelGeneral   int
	Specialization     string
	Mbti               string
	VerificationStatus VerificationStatus
	VerificationNotes  string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (p EmployeeProfile) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

type EmployeeLanguage struct {
	ID          uuid.UUID
	ProfileID   uuid.UUID
	Language    string
	Proficiency string
}

type WorkExperience struct {
	ID                uuid.UUID
	ProfileID         uuid.UUID
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

// Months returns the whole months between start and end, using now for an open experience.
func (w WorkExperience) Months(now time.Time) int {
	end := now
	if w.EndDate != nil {
		end = *w.EndDate
	}
	if end.Before(w.StartDate) {
		return 0
	}
	months := (end.Year()-w.StartDate.Year())*12 + int(end.Month()) - int(w.StartDate.Month())
	if end.Day() < w.StartDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

type PersonalInterest struct {
	ID                     uuid.UUID
	ProfileID              uuid.UUID
	Name                   string
	SessionDurationMinutes *int
	Frequency              string
	InterestLevel          *int
}

type EmployeeTechnology struct {
	ID              uuid.UUID
	ProfileID       uuid.UUID
	TechnologyID    uuid.UUID
	TechnologyName  string
	CategoryName    string
	SfiaLevel       int
	YearsExperience float64
	Version         string
}

type EmployeeSpecializedRole struct {
	ID                uuid.UUID
	ProfileID         uuid.UUID
	SpecializedRoleID uuid.UUID
	RoleName          string
	TechnicalAreaName string
	Level             string
	YearsExperience   int
}

// CompleteProfile is a profile with every child collection loaded.
type CompleteProfile struct {
	Profile          EmployeeProfile
	Email            string
	Languages        []EmployeeLanguage
	WorkExperiences  []WorkExperience
	Interests        []PersonalInterest
	Technologies     []EmployeeTechnology
	SpecializedRoles []EmployeeSpecializedRole
}

// MissingForVerification lists what must be filled in before a verification request.
func (c CompleteProfile) MissingForVerification() []string {
	var missing []string
	p := c.Profile
	if p.FirstName == "" || p.LastName == "" {
		missing = append(missing, "name")
	}
	if p.Country == "" {
		missing = append(missing, "country")
	}
	if p.Timezone == "" {
		missing = append(missing, "timezone")
	}
	if p.SfiaLevelGeneral <= 0 {
		missing = append(missing, "sfia level")
	}
	if p.Mbti == "" {
		missing = append(missing, "mbti")
	}
	if len(c.SpecializedRoles) == 0 {
		missing = append(missing, "specialized role")
	}
	if len(c.WorkExperiences) == 0 {
		missing = append(missing, "work experience")
	}
	if len(c.Interests) == 0 {
		missing = append(missing, "personal interest")
	}
	return missing
}
