package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

const teamColumns = `id, name, creator_id, description, compatibility_score, is_active, ai_analysis, weight_criteria,
	team_size, minimum_sfia_level, is_blended, created_at, updated_at`

func scanTeam(row scanner) (entities.Team, error) {
	var t entities.Team
	err := row.Scan(&t.ID, &t.Name, &t.CreatorID, &t.Description, &t.CompatibilityScore, &t.IsActive, &t.Analysis, &t.Weights,
		&t.TeamSize, &t.MinimumSfiaLevel, &t.IsBlended, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *PostgresRepository) CreateTeam(ctx context.Context, team entities.Team) (entities.Team, error) {
	r.logger.Debug("creating team", "name", team.Name)
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		r.logger.Error("failed to begin transaction", "error", err)
		return entities.Team{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `INSERT INTO teams (id, name, creator_id, description, compatibility_score, is_active, ai_analysis,
		weight_criteria, team_size, minimum_sfia_level, is_blended) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		team.ID, team.Name, team.CreatorID, team.Description, team.CompatibilityScore, team.IsActive, team.Analysis,
		team.Weights, team.TeamSize, team.MinimumSfiaLevel, team.IsBlended,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return entities.Team{}, entities.ErrUserNotFound
		}
		r.logger.Error("failed to insert team", "error", err)
		return entities.Team{}, err
	}

	if err = insertMembers(ctx, tx, team.ID, team.Members); err != nil {
		r.logger.Error("failed to insert team members", "team_id", team.ID, "error", err)
		return entities.Team{}, err
	}

	for _, rt := range team.RequiredTechnologies {
		_, err = tx.Exec(ctx, `INSERT INTO team_required_technologies (team_id, technology_id, minimum_sfia_level, is_mandatory)
			VALUES ($1,$2,$3,$4) ON CONFLICT (team_id, technology_id) DO NOTHING`,
			team.ID, rt.TechnologyID, rt.MinimumSfiaLevel, rt.IsMandatory)
		if err != nil {
			if isForeignKeyViolation(err) {
				return entities.Team{}, entities.ErrTechnologyNotFound
			}
			return entities.Team{}, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error("failed to commit transaction", "error", err)
		return entities.Team{}, err
	}
	r.logger.Info("team created", "team_id", team.ID, "members", len(team.Members))
	return r.GetTeam(ctx, team.ID)
}

func insertMembers(ctx context.Context, tx pgx.Tx, teamID uuid.UUID, members []entities.TeamMember) error {
	for _, m := range members {
		id := m.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		_, err := tx.Exec(ctx, `INSERT INTO team_members (id, team_id, employee_profile_id, name, role, sfia_level, is_leader)
			VALUES ($1,$2,$3,$4,$5,$6,$7) ON CONFLICT (team_id, employee_profile_id) DO NOTHING`,
			id, teamID, m.EmployeeProfileID, m.Name, m.Role, m.SfiaLevel, m.IsLeader)
		if err != nil {
			if isForeignKeyViolation(err) {
				return entities.ErrProfileNotFound
			}
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) GetTeam(ctx context.Context, teamID uuid.UUID) (entities.Team, error) {
	team, err := scanTeam(r.pool.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id=$1`, teamID))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Team{}, entities.ErrTeamNotFound
	}
	if err != nil {
		return entities.Team{}, err
	}
	if err = r.loadTeamDetails(ctx, &team); err != nil {
		return entities.Team{}, err
	}
	return team, nil
}

func (r *PostgresRepository) loadTeamDetails(ctx context.Context, team *entities.Team) error {
	rows, err := r.pool.Query(ctx, `SELECT m.id, m.team_id, m.employee_profile_id, p.user_id, m.name, m.role, m.sfia_level, m.is_leader
		FROM team_members m JOIN employee_profiles p ON p.id = m.employee_profile_id
		WHERE m.team_id=$1 ORDER BY m.is_leader DESC, m.name`, team.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	team.Members = []entities.TeamMember{}
	for rows.Next() {
		var m entities.TeamMember
		if err = rows.Scan(&m.ID, &m.TeamID, &m.EmployeeProfileID, &m.UserID, &m.Name, &m.Role, &m.SfiaLevel, &m.IsLeader); err != nil {
			return err
		}
		team.Members = append(team.Members, m)
	}
	if err = rows.Err(); err != nil {
		return err
	}

	techRows, err := r.pool.Query(ctx, `SELECT rt.technology_id, t.name, rt.minimum_sfia_level, rt.is_mandatory
		FROM team_required_technologies rt JOIN technologies t ON t.id = rt.technology_id
		WHERE rt.team_id=$1 ORDER BY t.name`, team.ID)
	if err != nil {
		return err
	}
	defer techRows.Close()

	team.RequiredTechnologies = []entities.TeamRequiredTechnology{}
	for techRows.Next() {
		var rt entities.TeamRequiredTechnology
		if err = techRows.Scan(&rt.TechnologyID, &rt.TechnologyName, &rt.MinimumSfiaLevel, &rt.IsMandatory); err != nil {
			return err
		}
		team.RequiredTechnologies = append(team.RequiredTechnologies, rt)
	}
	return techRows.Err()
}

func (r *PostgresRepository) listTeams(ctx context.Context, where string, args ...any) ([]entities.Team, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+teamColumns+` FROM teams `+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	teams, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.Team, error) {
		return scanTeam(row)
	})
	if err != nil {
		return nil, err
	}
	for i := range teams {
		if err = r.loadTeamDetails(ctx, &teams[i]); err != nil {
			return nil, err
		}
	}
	return teams, nil
}

func (r *PostgresRepository) ListTeams(ctx context.Context) ([]entities.Team, error) {
	return r.listTeams(ctx, "")
}

func (r *PostgresRepository) ListTeamsByCreator(ctx context.Context, creatorID uuid.UUID) ([]entities.Team, error) {
	return r.listTeams(ctx, "WHERE creator_id=$1", creatorID)
}

func (r *PostgresRepository) ListTeamsByMember(ctx context.Context, employeeID uuid.UUID) ([]entities.Team, error) {
	return r.listTeams(ctx, "WHERE id IN (SELECT team_id FROM team_members WHERE employee_profile_id=$1)", employeeID)
}

func (r *PostgresRepository) ListTeamsByUser(ctx context.Context, userID uuid.UUID) ([]entities.Team, error) {
	return r.listTeams(ctx, `WHERE id IN (SELECT m.team_id FROM team_members m
		JOIN employee_profiles p ON p.id = m.employee_profile_id WHERE p.user_id=$1)`, userID)
}

func (r *PostgresRepository) DeleteTeam(ctx context.Context, teamID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE id=$1`, teamID)
	if err != nil {
		r.logger.Error("failed to delete team", "team_id", teamID, "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTeamNotFound
	}
	r.logger.Info("team deleted", "team_id", teamID)
	return nil
}

func (r *PostgresRepository) AddTeamMembers(ctx context.Context, teamID uuid.UUID, members []entities.TeamMember) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err = insertMembers(ctx, tx, teamID, members); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `UPDATE teams SET updated_at=now() WHERE id=$1`, teamID); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Info("team members added", "team_id", teamID, "count", len(members))
	return nil
}

func (r *PostgresRepository) RemoveTeamMember(ctx context.Context, teamID, employeeID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM team_members WHERE team_id=$1 AND employee_profile_id=$2`, teamID, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTeamMemberNotFound
	}
	r.logger.Info("team member removed", "team_id", teamID, "employee_id", employeeID)
	return nil
}

func (r *PostgresRepository) MoveTeamMember(ctx context.Context, sourceTeamID, targetTeamID, employeeID uuid.UUID) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `UPDATE team_members SET team_id=$2, is_leader=false WHERE team_id=$1 AND employee_profile_id=$3`,
		sourceTeamID, targetTeamID, employeeID)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.ErrTeamMemberExists
		}
		if isForeignKeyViolation(err) {
			return entities.ErrTeamNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTeamMemberNotFound
	}
	if _, err = tx.Exec(ctx, `UPDATE teams SET updated_at=now() WHERE id IN ($1, $2)`, sourceTeamID, targetTeamID); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Info("team member moved", "source_team_id", sourceTeamID, "target_team_id", targetTeamID, "employee_id", employeeID)
	return nil
}

func (r *PostgresRepository) UpdateTeamAnalysis(ctx context.Context, team entities.Team) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `UPDATE teams SET ai_analysis=$2, compatibility_score=$3, weight_criteria=$4, minimum_sfia_level=$5,
		updated_at=now() WHERE id=$1`,
		team.ID, team.Analysis, team.CompatibilityScore, team.Weights, team.MinimumSfiaLevel)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTeamNotFound
	}
	for _, m := range team.Members {
		if _, err = tx.Exec(ctx, `UPDATE team_members SET sfia_level=$3 WHERE team_id=$1 AND employee_profile_id=$2`,
			team.ID, m.EmployeeProfileID, m.SfiaLevel); err != nil {
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Info("team analysis updated", "team_id", team.ID, "score", team.CompatibilityScore)
	return nil
}

func (r *PostgresRepository) ListActiveTeams(ctx context.Context, employeeID uuid.UUID) ([]entities.AvailableTeam, error) {
	rows, err := r.pool.Query(ctx, `SELECT t.id, t.name, COUNT(m.id), COALESCE(bool_or(m.employee_profile_id = $1), false)
		FROM teams t LEFT JOIN team_members m ON m.team_id = t.id
		WHERE t.is_active = true
		GROUP BY t.id, t.name ORDER BY t.name`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []entities.AvailableTeam{}
	for rows.Next() {
		var at entities.AvailableTeam
		if err = rows.Scan(&at.TeamID, &at.Name, &at.MemberCount, &at.HasMember); err != nil {
			return nil, err
		}
		teams = append(teams, at)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}
