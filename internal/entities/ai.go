package entities

import "github.com/google/uuid"

// CandidateProfile is the view of an employee sent to the AI service.
type CandidateProfile struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	Area             string    `json:"area,omitempty"`
	Level            string    `json:"level,omitempty"`
	Technologies     []string  `json:"technologies"`
	SfiaLevel        int       `json:"sfia_level"`
	Mbti             string    `json:"mbti,omitempty"`
	Interests        []string  `json:"interests"`
	Languages        []string  `json:"languages"`
	Country          string    `json:"country,omitempty"`
	Timezone         string    `json:"timezone,omitempty"`
	ExperienceMonths int       `json:"experience_months"`
}

type TeamGenerationRequest struct {
	CreatorID         uuid.UUID          `json:"creator_id"`
	Requirements      []TeamRequirement  `json:"requirements"`
	Technologies      []string           `json:"technologies"`
	SfiaLevel         int                `json:"sfia_level"`
	TeamSize          int                `json:"team_size"`
	Availability      bool               `json:"availability"`
	Weights           Weights            `json:"criteria_weights"`
	ProjectComplexity ProjectComplexity  `json:"project_complexity,omitempty"`
	Candidates        []CandidateProfile `json:"members_data"`
}

type MemberSearchRequest struct {
	TeamID         uuid.UUID          `json:"team_id"`
	Role           string             `json:"role"`
	Area           string             `json:"area"`
	Level          string             `json:"level"`
	Technologies   []string           `json:"technologies"`
	CurrentMembers []CandidateProfile `json:"current_members"`
	Candidates     []CandidateProfile `json:"members_data"`
}

type CompatibilityRequest struct {
	TeamMembers []CandidateProfile `json:"team_members"`
	Candidate   CandidateProfile   `json:"new_member"`
}

type ReanalysisRequest struct {
	TeamID       uuid.UUID          `json:"team_id"`
	Name         string             `json:"name"`
	Technologies []string           `json:"technologies"`
	SfiaLevel    int                `json:"sfia_level"`
	Weights      Weights            `json:"criteria_weights"`
	Members      []CandidateProfile `json:"members"`
}

type ReanalysisResult struct {
	Analysis           TeamAnalysis
	CompatibilityScore int
}
