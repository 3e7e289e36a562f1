package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

type TeamRepository interface {
	CreateTeam(ctx context.Context, team entities.Team) (entities.Team, error)
	GetTeam(ctx context.Context, teamID uuid.UUID) (entities.Team, error)
	ListTeams(ctx context.Context) ([]entities.Team, error)
	ListTeamsByCreator(ctx context.Context, creatorID uuid.UUID) ([]entities.Team, error)
	ListTeamsByMember(ctx context.Context, employeeID uuid.UUID) ([]entities.Team, error)
	ListTeamsByUser(ctx context.Context, userID uuid.UUID) ([]entities.Team, error)
	DeleteTeam(ctx context.Context, teamID uuid.UUID) error
	AddTeamMembers(ctx context.Context, teamID uuid.UUID, members []entities.TeamMember) error
	RemoveTeamMember(ctx context.Context, teamID, employeeID uuid.UUID) error
	MoveTeamMember(ctx context.Context, sourceTeamID, targetTeamID, employeeID uuid.UUID) error
	UpdateTeamAnalysis(ctx context.Context, team entities.Team) error
	ListActiveTeams(ctx context.Context, employeeID uuid.UUID) ([]entities.AvailableTeam, error)
}
