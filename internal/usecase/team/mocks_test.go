package team

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

type mockTeamRepo struct {
	createTeam         func(ctx context.Context, team entities.Team) (entities.Team, error)
	getTeam            func(ctx context.Context, teamID uuid.UUID) (entities.Team, error)
	deleteTeam         func(ctx context.Context, teamID uuid.UUID) error
	addTeamMembers     func(ctx context.Context, teamID uuid.UUID, members []entities.TeamMember) error
	removeTeamMember   func(ctx context.Context, teamID, employeeID uuid.UUID) error
	moveTeamMember     func(ctx context.Context, sourceTeamID, targetTeamID, employeeID uuid.UUID) error
	updateTeamAnalysis func(ctx context.Context, team entities.Team) error
	listActiveTeams    func(ctx context.Context, employeeID uuid.UUID) ([]entities.AvailableTeam, error)
}

func (m *mockTeamRepo) CreateTeam(ctx context.Context, team entities.Team) (entities.Team, error) {
	if m.createTeam != nil {
		return m.createTeam(ctx, team)
	}
	return team, nil
}

func (m *mockTeamRepo) GetTeam(ctx context.Context, teamID uuid.UUID) (entities.Team, error) {
	if m.getTeam != nil {
		return m.getTeam(ctx, teamID)
	}
	return entities.Team{}, entities.ErrTeamNotFound
}

func (m *mockTeamRepo) ListTeams(ctx context.Context) ([]entities.Team, error) {
	return []entities.Team{}, nil
}

func (m *mockTeamRepo) ListTeamsByCreator(ctx context.Context, creatorID uuid.UUID) ([]entities.Team, error) {
	return []entities.Team{}, nil
}

func (m *mockTeamRepo) ListTeamsByMember(ctx context.Context, employeeID uuid.UUID) ([]entities.Team, error) {
	return []entities.Team{}, nil
}

func (m *mockTeamRepo) ListTeamsByUser(ctx context.Context, userID uuid.UUID) ([]entities.Team, error) {
	return []entities.Team{}, nil
}

func (m *mockTeamRepo) DeleteTeam(ctx context.Context, teamID uuid.UUID) error {
	if m.deleteTeam != nil {
		return m.deleteTeam(ctx, teamID)
	}
	return nil
}

func (m *mockTeamRepo) AddTeamMembers(ctx context.Context, teamID uuid.UUID, members []entities.TeamMember) error {
	if m.addTeamMembers != nil {
		return m.addTeamMembers(ctx, teamID, members)
	}
	return nil
}

func (m *mockTeamRepo) RemoveTeamMember(ctx context.Context, teamID, employeeID uuid.UUID) error {
	if m.removeTeamMember != nil {
		return m.removeTeamMember(ctx, teamID, employeeID)
	}
	return nil
}

func (m *mockTeamRepo) MoveTeamMember(ctx context.Context, sourceTeamID, targetTeamID, employeeID uuid.UUID) error {
	if m.moveTeamMember != nil {
		return m.moveTeamMember(ctx, sourceTeamID, targetTeamID, employeeID)
	}
	return nil
}

func (m *mockTeamRepo) UpdateTeamAnalysis(ctx context.Context, team entities.Team) error {
	if m.updateTeamAnalysis != nil {
		return m.updateTeamAnalysis(ctx, team)
	}
	return nil
}

func (m *mockTeamRepo) ListActiveTeams(ctx context.Context, employeeID uuid.UUID) ([]entities.AvailableTeam, error) {
	if m.listActiveTeams != nil {
		return m.listActiveTeams(ctx, employeeID)
	}
	return []entities.AvailableTeam{}, nil
}

type mockProfiles struct {
	profiles   map[uuid.UUID]entities.CompleteProfile
	candidates []entities.CompleteProfile
}

func (m *mockProfiles) GetCompleteProfile(ctx context.Context, profileID uuid.UUID) (entities.CompleteProfile, error) {
	p, ok := m.profiles[profileID]
	if !ok {
		return entities.CompleteProfile{}, entities.ErrProfileNotFound
	}
	return p, nil
}

func (m *mockProfiles) ListCandidateProfiles(ctx context.Context, onlyAvailable bool) ([]entities.CompleteProfile, error) {
	return m.candidates, nil
}

type mockAI struct {
	generateTeams          func(ctx context.Context, req entities.TeamGenerationRequest) (entities.GeneratedTeam, error)
	generateBlendedTeam    func(ctx context.Context, req entities.TeamGenerationRequest) (entities.GeneratedTeam, error)
	findTeamMembers        func(ctx context.Context, req entities.MemberSearchRequest) ([]entities.MemberRecommendation, error)
	calculateCompatibility func(ctx context.Context, req entities.CompatibilityRequest) (entities.CompatibilityResult, error)
	reanalyzeTeam          func(ctx context.Context, req entities.ReanalysisRequest) (entities.ReanalysisResult, error)
}

func (m *mockAI) GenerateTeams(ctx context.Context, req entities.TeamGenerationRequest) (entities.GeneratedTeam, error) {
	if m.generateTeams != nil {
		return m.generateTeams(ctx, req)
	}
	return entities.GeneratedTeam{}, nil
}

func (m *mockAI) GenerateBlendedTeam(ctx context.Context, req entities.TeamGenerationRequest) (entities.GeneratedTeam, error) {
	if m.generateBlendedTeam != nil {
		return m.generateBlendedTeam(ctx, req)
	}
	return entities.GeneratedTeam{}, nil
}

func (m *mockAI) FindTeamMembers(ctx context.Context, req entities.MemberSearchRequest) ([]entities.MemberRecommendation, error) {
	if m.findTeamMembers != nil {
		return m.findTeamMembers(ctx, req)
	}
	return []entities.MemberRecommendation{}, nil
}

func (m *mockAI) CalculateCompatibility(ctx context.Context, req entities.CompatibilityRequest) (entities.CompatibilityResult, error) {
	if m.calculateCompatibility != nil {
		return m.calculateCompatibility(ctx, req)
	}
	return entities.CompatibilityResult{}, nil
}

func (m *mockAI) ReanalyzeTeam(ctx context.Context, req entities.ReanalysisRequest) (entities.ReanalysisResult, error) {
	if m.reanalyzeTeam != nil {
		return m.reanalyzeTeam(ctx, req)
	}
	return entities.ReanalysisResult{}, nil
}

type mockNotifier struct {
	mu   sync.Mutex
	sent []entities.Notification
}

func (m *mockNotifier) Enqueue(n entities.Notification) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
	return true
}
