package team

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/internal/repository"
	"github.com/Miguelito2774/jala-match-sub001/internal/usecase/catalog"
	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

const (
	maxTeamSize         = 20
	maxTeamNameLength   = 255
	defaultRequiredSfia = 3
)

var (
	errRequirementsRequired = entities.Validation("Team.RequirementsRequired", "at least one requirement is needed")
	errTechnologiesRequired = entities.Validation("Team.TechnologiesRequired", "at least one technology is needed")
	errInvalidSfia          = entities.Validation("Team.InvalidSfia", "sfia level must be between 1 and 7")
	errInvalidTeamSize      = entities.Validation("Team.InvalidSize", "team size must be between 1 and 20")
	errInvalidWeights       = entities.Validation("Team.InvalidWeights", "weights must be non-negative and sum to 100")
	errInvalidComplexity    = entities.Validation("Team.InvalidComplexity", "project complexity must be Low, Medium or High")
	errNameRequired         = entities.Validation("Team.NameRequired", "team name is required")
	errNameTooLong          = entities.Validation("Team.NameTooLong", "team name must be at most 255 characters")
	errCreatorRequired      = entities.Validation("Team.CreatorRequired", "team creator is required")
	errMembersRequired      = entities.Validation("Team.MembersRequired", "a team needs at least one member")
	errMultipleLeaders      = entities.Validation("Team.MultipleLeaders", "a team can have at most one leader")
	errSameTeam             = entities.Validation("Team.SameTeam", "source and target team must differ")
)

type useCase struct {
	teamRepo repository.TeamRepository
	profiles ProfileReader
	ai       AIService
	notifier Notifier
	logger   logger.Logger
	now      func() time.Time
}

func New(teamRepo repository.TeamRepository, profiles ProfileReader, ai AIService, notifier Notifier, log logger.Logger) TeamUseCase {
	return &useCase{
		teamRepo: teamRepo,
		profiles: profiles,
		ai:       ai,
		notifier: notifier,
		logger:   log,
		now:      time.Now,
	}
}

func validateGeneration(req *entities.TeamGenerationRequest) error {
	if len(req.Requirements) == 0 {
		return errRequirementsRequired
	}
	if len(req.Technologies) == 0 {
		return errTechnologiesRequired
	}
	if !entities.ValidSfia(req.SfiaLevel) {
		return errInvalidSfia
	}
	if req.TeamSize < 1 || req.TeamSize > maxTeamSize {
		return errInvalidTeamSize
	}
	if req.Weights == (entities.Weights{}) {
		req.Weights = catalog.DefaultWeights
	}
	if !req.Weights.NonNegative() || req.Weights.Sum() != 100 {
		return errInvalidWeights
	}
	return nil
}

func (u *useCase) Generate(ctx context.Context, req entities.TeamGenerationRequest) (entities.GeneratedTeam, error) {
	if err := validateGeneration(&req); err != nil {
		return entities.GeneratedTeam{}, err
	}
	pool, err := u.candidatePool(ctx, req.Availability, nil)
	if err != nil {
		return entities.GeneratedTeam{}, err
	}
	req.Candidates = pool
	u.logger.Info("generating team", "creator_id", req.CreatorID, "team_size", req.TeamSize, "candidates", len(pool))
	return u.ai.GenerateTeams(ctx, req)
}

func (u *useCase) GenerateBlended(ctx context.Context, req entities.TeamGenerationRequest) (entities.GeneratedTeam, error) {
	if err := validateGeneration(&req); err != nil {
		return entities.GeneratedTeam{}, err
	}
	if !req.ProjectComplexity.Valid() {
		return entities.GeneratedTeam{}, errInvalidComplexity
	}
	pool, err := u.candidatePool(ctx, req.Availability, nil)
	if err != nil {
		return entities.GeneratedTeam{}, err
	}
	req.Candidates = pool
	u.logger.Info("generating blended team", "creator_id", req.CreatorID, "complexity", req.ProjectComplexity, "candidates", len(pool))
	return u.ai.GenerateBlendedTeam(ctx, req)
}

func (u *useCase) Create(ctx context.Context, input CreateInput) (entities.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return entities.Team{}, errNameRequired
	}
	if len(name) > maxTeamNameLength {
		return entities.Team{}, errNameTooLong
	}
	if input.CreatorID == uuid.Nil {
		return entities.Team{}, errCreatorRequired
	}
	members := uniqueMembers(input.Members)
	if len(members) == 0 {
		return entities.Team{}, errMembersRequired
	}
	leaders := 0
	for _, m := range members {
		if m.IsLeader {
			leaders++
		}
	}
	if leaders > 1 {
		return entities.Team{}, errMultipleLeaders
	}

	required := make([]entities.TeamRequiredTechnology, 0, len(input.RequiredTechnologies))
	for _, rt := range input.RequiredTechnologies {
		level := defaultRequiredSfia
		if rt.MinimumSfiaLevel != nil {
			level = *rt.MinimumSfiaLevel
		}
		if !entities.ValidSfia(level) {
			return entities.Team{}, errInvalidSfia
		}
		mandatory := true
		if rt.IsMandatory != nil {
			mandatory = *rt.IsMandatory
		}
		required = append(required, entities.TeamRequiredTechnology{
			TechnologyID:     rt.TechnologyID,
			MinimumSfiaLevel: level,
			IsMandatory:      mandatory,
		})
	}

	size := input.TeamSize
	if size <= 0 {
		size = len(members)
	}
	weights := input.Weights
	if weights == (entities.Weights{}) {
		weights = catalog.DefaultWeights
	}

	u.logger.Info("creating team", "name", name, "creator_id", input.CreatorID, "members", len(members))
	created, err := u.teamRepo.CreateTeam(ctx, entities.Team{
		ID:                   uuid.New(),
		Name:                 name,
		CreatorID:            input.CreatorID,
		Description:          strings.TrimSpace(input.Description),
		CompatibilityScore:   input.CompatibilityScore,
		IsActive:             true,
		Analysis:             input.Analysis,
		Weights:              weights,
		TeamSize:             size,
		MinimumSfiaLevel:     input.MinimumSfiaLevel,
		IsBlended:            input.IsBlended,
		Members:              members,
		RequiredTechnologies: required,
	})
	if err != nil {
		return entities.Team{}, err
	}
	u.notify(created, entities.NotifyTeamMemberAdded, members)
	return created, nil
}

func (u *useCase) Delete(ctx context.Context, teamID uuid.UUID) error {
	team, err := u.teamRepo.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if err = u.teamRepo.DeleteTeam(ctx, teamID); err != nil {
		return err
	}
	u.notify(team, entities.NotifyTeamDeleted, team.Members)
	u.logger.Info("team deleted", "team_id", teamID)
	return nil
}

func (u *useCase) Get(ctx context.Context, teamID uuid.UUID) (entities.Team, error) {
	return u.teamRepo.GetTeam(ctx, teamID)
}

func (u *useCase) List(ctx context.Context) ([]entities.Team, error) {
	return u.teamRepo.ListTeams(ctx)
}

func (u *useCase) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]entities.Team, error) {
	return u.teamRepo.ListTeamsByCreator(ctx, creatorID)
}

func (u *useCase) ListByMember(ctx context.Context, employeeID uuid.UUID) ([]entities.Team, error) {
	return u.teamRepo.ListTeamsByMember(ctx, employeeID)
}

func (u *useCase) ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Team, error) {
	return u.teamRepo.ListTeamsByUser(ctx, userID)
}

func (u *useCase) FindMembers(ctx context.Context, input FindMembersInput) ([]entities.MemberRecommendation, error) {
	team, err := u.teamRepo.GetTeam(ctx, input.TeamID)
	if err != nil {
		return nil, err
	}
	current, err := u.memberCandidates(ctx, team.Members)
	if err != nil {
		return nil, err
	}
	inTeam := memberSet(team)
	pool, err := u.candidatePool(ctx, true, inTeam)
	if err != nil {
		return nil, err
	}

	recs, err := u.ai.FindTeamMembers(ctx, entities.MemberSearchRequest{
		TeamID:         team.ID,
		Role:           input.Role,
		Area:           input.Area,
		Level:          input.Level,
		Technologies:   input.Technologies,
		CurrentMembers: current,
		Candidates:     pool,
	})
	if err != nil {
		return nil, err
	}
	filtered := make([]entities.MemberRecommendation, 0, len(recs))
	for _, r := range recs {
		if _, ok := inTeam[r.ID]; ok {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered, nil
}

func (u *useCase) AddMembers(ctx context.Context, teamID uuid.UUID, members []entities.TeamMember) (entities.Team, error) {
	team, err := u.teamRepo.GetTeam(ctx, teamID)
	if err != nil {
		return entities.Team{}, err
	}
	added := make([]entities.TeamMember, 0, len(members))
	for _, m := range uniqueMembers(members) {
		if team.HasMember(m.EmployeeProfileID) {
			continue
		}
		added = append(added, m)
	}
	if len(added) == 0 {
		return team, nil
	}
	if err = u.teamRepo.AddTeamMembers(ctx, teamID, added); err != nil {
		return entities.Team{}, err
	}
	u.notify(team, entities.NotifyTeamMemberAdded, added)
	u.logger.Info("team members added", "team_id", teamID, "added", len(added), "skipped", len(members)-len(added))
	return u.teamRepo.GetTeam(ctx, teamID)
}

func (u *useCase) RemoveMember(ctx context.Context, teamID, employeeID uuid.UUID) error {
	team, err := u.teamRepo.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if !team.HasMember(employeeID) {
		return entities.ErrTeamMemberNotFound
	}
	if err = u.teamRepo.RemoveTeamMember(ctx, teamID, employeeID); err != nil {
		return err
	}
	u.notifier.Enqueue(entities.Notification{
		Type:              entities.NotifyTeamMemberRemoved,
		EmployeeProfileID: employeeID,
		TeamID:            team.ID,
		TeamName:          team.Name,
	})
	return nil
}

func (u *useCase) MoveMember(ctx context.Context, sourceTeamID, targetTeamID, employeeID uuid.UUID) error {
	if sourceTeamID == targetTeamID {
		return errSameTeam
	}
	source, err := u.teamRepo.GetTeam(ctx, sourceTeamID)
	if err != nil {
		return err
	}
	target, err := u.teamRepo.GetTeam(ctx, targetTeamID)
	if err != nil {
		return err
	}
	if !source.HasMember(employeeID) {
		return entities.ErrTeamMemberNotFound
	}
	if target.HasMember(employeeID) {
		return entities.ErrTeamMemberExists
	}
	if err = u.teamRepo.MoveTeamMember(ctx, sourceTeamID, targetTeamID, employeeID); err != nil {
		return err
	}
	u.notifier.Enqueue(entities.Notification{
		Type:              entities.NotifyTeamMemberMoved,
		EmployeeProfileID: employeeID,
		TeamID:            target.ID,
		TeamName:          source.Name,
		TargetTeamName:    target.Name,
	})
	return nil
}

func (u *useCase) AvailableForMember(ctx context.Context, employeeID uuid.UUID, excludeTeamID *uuid.UUID) ([]entities.AvailableTeam, error) {
	teams, err := u.teamRepo.ListActiveTeams(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if excludeTeamID == nil {
		return teams, nil
	}
	out := make([]entities.AvailableTeam, 0, len(teams))
	for _, t := range teams {
		if t.TeamID != *excludeTeamID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (u *useCase) Compatibility(ctx context.Context, teamID, employeeID uuid.UUID) (entities.CompatibilityResult, error) {
	team, err := u.teamRepo.GetTeam(ctx, teamID)
	if err != nil {
		return entities.CompatibilityResult{}, err
	}
	candidate, err := u.profiles.GetCompleteProfile(ctx, employeeID)
	if err != nil {
		return entities.CompatibilityResult{}, err
	}
	members, err := u.memberCandidates(ctx, team.Members)
	if err != nil {
		return entities.CompatibilityResult{}, err
	}
	return u.ai.CalculateCompatibility(ctx, entities.CompatibilityRequest{
		TeamMembers: members,
		Candidate:   toCandidate(candidate, u.now()),
	})
}

// Reanalyze rescores each member against the team's required technologies and asks the AI service for a fresh analysis.
func (u *useCase) Reanalyze(ctx context.Context, teamID uuid.UUID) (entities.Team, error) {
	team, err := u.teamRepo.GetTeam(ctx, teamID)
	if err != nil {
		return entities.Team{}, err
	}
	profiles, err := u.loadProfiles(ctx, team.Members)
	if err != nil {
		return entities.Team{}, err
	}

	now := u.now()
	candidates := make([]entities.CandidateProfile, len(profiles))
	total := 0
	for i, p := range profiles {
		level := requiredSfia(p, team.RequiredTechnologies)
		team.Members[i].SfiaLevel = level
		total += level
		candidates[i] = toCandidate(p, now)
		candidates[i].SfiaLevel = level
		if team.Members[i].Role != "" {
			candidates[i].Role = team.Members[i].Role
		}
	}
	teamSfia := 0
	if len(profiles) > 0 {
		teamSfia = int(math.Round(float64(total) / float64(len(profiles))))
	}

	technologies := make([]string, 0, len(team.RequiredTechnologies))
	for _, rt := range team.RequiredTechnologies {
		technologies = append(technologies, rt.TechnologyName)
	}
	result, err := u.ai.ReanalyzeTeam(ctx, entities.ReanalysisRequest{
		TeamID:       team.ID,
		Name:         team.Name,
		Technologies: technologies,
		SfiaLevel:    teamSfia,
		Weights:      entities.ReanalysisWeights,
		Members:      candidates,
	})
	if err != nil {
		return entities.Team{}, err
	}

	team.Analysis = result.Analysis
	team.CompatibilityScore = result.CompatibilityScore
	team.Weights = entities.ReanalysisWeights
	team.MinimumSfiaLevel = teamSfia
	if err = u.teamRepo.UpdateTeamAnalysis(ctx, team); err != nil {
		return entities.Team{}, err
	}
	u.logger.Info("team reanalyzed", "team_id", teamID, "score", team.CompatibilityScore, "sfia", teamSfia)
	return team, nil
}

// requiredSfia averages the member's SFIA over the technologies the team requires, 0 when none match.
func requiredSfia(p entities.CompleteProfile, required []entities.TeamRequiredTechnology) int {
	if len(required) == 0 {
		return 0
	}
	wanted := make(map[uuid.UUID]struct{}, len(required))
	for _, rt := range required {
		wanted[rt.TechnologyID] = struct{}{}
	}
	sum, n := 0, 0
	for _, t := range p.Technologies {
		if _, ok := wanted[t.TechnologyID]; ok {
			sum += t.SfiaLevel
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

func uniqueMembers(members []entities.TeamMember) []entities.TeamMember {
	seen := make(map[uuid.UUID]struct{}, len(members))
	out := make([]entities.TeamMember, 0, len(members))
	for _, m := range members {
		if _, dup := seen[m.EmployeeProfileID]; dup {
			continue
		}
		seen[m.EmployeeProfileID] = struct{}{}
		out = append(out, m)
	}
	return out
}

func (u *useCase) notify(team entities.Team, kind entities.NotificationType, members []entities.TeamMember) {
	for _, m := range members {
		u.notifier.Enqueue(entities.Notification{
			Type:              kind,
			EmployeeProfileID: m.EmployeeProfileID,
			TeamID:            team.ID,
			TeamName:          team.Name,
		})
	}
}
