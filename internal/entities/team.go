package entities

import (
	"time"

	"github.com/google/uuid"
)

type Weights struct {
	Sfia          int `json:"sfia"`
	Technical     int `json:"technical"`
	Psychological int `json:"psychological"`
	Experience    int `json:"experience"`
	Language      int `json:"language"`
	Interests     int `json:"interests"`
	Timezone      int `json:"timezone"`
}

func (w Weights) Sum() int {
	return w.Sfia + w.Technical + w.Psychological + w.Experience + w.Language + w.Interests + w.Timezone
}

func (w Weights) NonNegative() bool {
	return w.Sfia >= 0 && w.Technical >= 0 && w.Psychological >= 0 && w.Experience >= 0 &&
		w.Language >= 0 && w.Interests >= 0 && w.Timezone >= 0
}

// ReanalysisWeights are applied when an existing team is analysed again.
var ReanalysisWeights = Weights{Sfia: 20, Technical: 20, Psychological: 15, Experience: 15, Language: 10, Interests: 10, Timezone: 10}

type TeamAnalysis struct {
	Strengths         []string          `json:"strengths"`
	Weaknesses        []string          `json:"weaknesses"`
	Compatibility     string            `json:"compatibility"`
	RecommendedLeader *LeaderSuggestion `json:"recommended_leader,omitempty"`
}

type LeaderSuggestion struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Rationale string    `json:"rationale"`
}

type Team struct {
	ID                   uuid.UUID
	Name                 string
	CreatorID            uuid.UUID
	Description          string
	CompatibilityScore   int
	IsActive             bool
	Analysis             TeamAnalysis
	Weights              Weights
	TeamSize             int
	MinimumSfiaLevel     int
	IsBlended            bool
	Members              []TeamMember
	RequiredTechnologies []TeamRequiredTechnology
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (t Team) HasMember(employeeID uuid.UUID) bool {
	for _, m := range t.Members {
		if m.EmployeeProfileID == employeeID {
			return true
		}
	}
	return false
}

type TeamMember struct {
	ID                uuid.UUID
	TeamID            uuid.UUID
	EmployeeProfileID uuid.UUID
	UserID            uuid.UUID
	Name              string
	Role              string
	SfiaLevel         int
	IsLeader          bool
}

type TeamRequiredTechnology struct {
	TechnologyID     uuid.UUID
	TechnologyName   string
	MinimumSfiaLevel int
	IsMandatory      bool
}

type AvailableTeam struct {
	TeamID      uuid.UUID
	Name        string
	MemberCount int
	HasMember   bool
}

type TeamRequirement struct {
	Role  string `json:"role"`
	Area  string `json:"area"`
	Level string `json:"level"`
}

type ProjectComplexity string

const (
	ComplexityLow    ProjectComplexity = "Low"
	ComplexityMedium ProjectComplexity = "Medium"
	ComplexityHigh   ProjectComplexity = "High"
)

func (c ProjectComplexity) Valid() bool {
	switch c {
	case ComplexityLow, ComplexityMedium, ComplexityHigh:
		return true
	}
	return false
}

// GeneratedTeam is a team proposal returned by the AI service.
type GeneratedTeam struct {
	Teams              []ProposedTeam
	RecommendedLeader  *LeaderSuggestion
	Analysis           TeamAnalysis
	CompatibilityScore int
}

type ProposedTeam struct {
	TeamID  string
	Members []ProposedMember
}

type ProposedMember struct {
	ID        uuid.UUID
	Name      string
	Role      string
	SfiaLevel int
}

type MemberRecommendation struct {
	ID                 uuid.UUID
	Name               string
	CompatibilityScore int
	Analysis           string
	PotentialConflicts []string
	TeamImpact         string
}

type CompatibilityResult struct {
	Score         int
	Justification string
}
