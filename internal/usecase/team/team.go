package team

import (
	"context"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

type TeamUseCase interface {
	Generate(ctx context.Context, req entities.TeamGenerationRequest) (entities.GeneratedTeam, error)
	GenerateBlended(ctx context.Context, req entities.TeamGenerationRequest) (entities.GeneratedTeam, error)
	Create(ctx context.Context, input CreateInput) (entities.Team, error)
	Delete(ctx context.Context, teamID uuid.UUID) error
	Get(ctx context.Context, teamID uuid.UUID) (entities.Team, error)
	List(ctx context.Context) ([]entities.Team, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]entities.Team, error)
	ListByMember(ctx context.Context, employeeID uuid.UUID) ([]entities.Team, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Team, error)
	FindMembers(ctx context.Context, input FindMembersInput) ([]entities.MemberRecommendation, error)
	AddMembers(ctx context.Context, teamID uuid.UUID, members []entities.TeamMember) (entities.Team, error)
	RemoveMember(ctx context.Context, teamID, employeeID uuid.UUID) error
	MoveMember(ctx context.Context, sourceTeamID, targetTeamID, employeeID uuid.UUID) error
	AvailableForMember(ctx context.Context, employeeID uuid.UUID, excludeTeamID *uuid.UUID) ([]entities.AvailableTeam, error)
	Compatibility(ctx context.Context, teamID, employeeID uuid.UUID) (entities.CompatibilityResult, error)
	Reanalyze(ctx context.Context, teamID uuid.UUID) (entities.Team, error)
}

type CreateInput struct {
	Name                 string
	Description          string
	CreatorID            uuid.UUID
	Members              []entities.TeamMember
	RequiredTechnologies []RequiredTechnologyInput
	CompatibilityScore   int
	Analysis             entities.TeamAnalysis
	Weights              entities.Weights
	TeamSize             int
	MinimumSfiaLevel     int
	IsBlended            bool
}

// RequiredTechnologyInput leaves MinimumSfiaLevel and IsMandatory nil to take the defaults.
type RequiredTechnologyInput struct {
	TechnologyID     uuid.UUID
	MinimumSfiaLevel *int
	IsMandatory      *bool
}

type FindMembersInput struct {
	TeamID       uuid.UUID
	Role         string
	Area         string
	Level        string
	Technologies []string
}

// AIService is the external matching engine.
type AIService interface {
	GenerateTeams(ctx context.Context, req entities.TeamGenerationRequest) (entities.GeneratedTeam, error)
	GenerateBlendedTeam(ctx context.Context, req entities.TeamGenerationRequest) (entities.GeneratedTeam, error)
	FindTeamMembers(ctx context.Context, req entities.MemberSearchRequest) ([]entities.MemberRecommendation, error)
	CalculateCompatibility(ctx context.Context, req entities.CompatibilityRequest) (entities.CompatibilityResult, error)
	ReanalyzeTeam(ctx context.Context, req entities.ReanalysisRequest) (entities.ReanalysisResult, error)
}

type ProfileReader interface {
	GetCompleteProfile(ctx context.Context, profileID uuid.UUID) (entities.CompleteProfile, error)
	ListCandidateProfiles(ctx context.Context, onlyAvailable bool) ([]entities.CompleteProfile, error)
}

type Notifier interface {
	Enqueue(n entities.Notification) bool
}
