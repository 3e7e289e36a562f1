package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

const profileColumns = `id, user_id, first_name, last_name, availability, country, timezone, sfia_level_general,
	specialization, mbti, verification_status, verification_notes, created_at, updated_at`

func scanProfile(row scanner) (entities.EmployeeProfile, error) {
	var p entities.EmployeeProfile
	var status string
	err := row.Scan(&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Availability, &p.Country, &p.Timezone,
		&p.SfiaLevelGeneral, &p.Specialization, &p.Mbti, &status, &p.VerificationNotes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return entities.EmployeeProfile{}, err
	}
	p.VerificationStatus = entities.VerificationStatus(status)
	return p, nil
}

func (r *PostgresRepository) CreateProfile(ctx context.Context, p entities.EmployeeProfile) (entities.EmployeeProfile, error) {
	r.logger.Debug("creating profile", "user_id", p.UserID)
	row := r.pool.QueryRow(ctx, `INSERT INTO employee_profiles
		(id, user_id, first_name, last_name, availability, country, timezone, sfia_level_general, specialization, mbti, verification_status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11) RETURNING `+profileColumns,
		p.ID, p.UserID, p.FirstName, p.LastName, p.Availability, p.Country, p.Timezone, p.SfiaLevelGeneral,
		p.Specialization, p.Mbti, string(p.VerificationStatus),
	)
	created, err := scanProfile(row)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Error("profile already exists", "user_id", p.UserID)
			return entities.EmployeeProfile{}, entities.ErrProfileExists
		}
		if isForeignKeyViolation(err) {
			return entities.EmployeeProfile{}, entities.ErrUserNotFound
		}
		r.logger.Error("failed to insert profile", "error", err)
		return entities.EmployeeProfile{}, err
	}
	r.logger.Info("profile created", "profile_id", created.ID)
	return created, nil
}

func (r *PostgresRepository) GetProfile(ctx context.Context, profileID uuid.UUID) (entities.EmployeeProfile, error) {
	p, err := scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM employee_profiles WHERE id=$1`, profileID))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.EmployeeProfile{}, entities.ErrProfileNotFound
	}
	return p, err
}

func (r *PostgresRepository) GetProfileByUser(ctx context.Context, userID uuid.UUID) (entities.EmployeeProfile, error) {
	p, err := scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM employee_profiles WHERE user_id=$1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.EmployeeProfile{}, entities.ErrProfileNotFound
	}
	return p, err
}

func (r *PostgresRepository) GetCompleteProfile(ctx context.Context, profileID uuid.UUID) (entities.CompleteProfile, error) {
	profile, err := r.GetProfile(ctx, profileID)
	if err != nil {
		return entities.CompleteProfile{}, err
	}
	c := entities.CompleteProfile{Profile: profile}
	if err = r.pool.QueryRow(ctx, `SELECT email FROM users WHERE id=$1`, profile.UserID).Scan(&c.Email); err != nil {
		return entities.CompleteProfile{}, err
	}
	if c.Languages, err = r.ListLanguages(ctx, profileID); err != nil {
		return entities.CompleteProfile{}, err
	}
	if c.WorkExperiences, err = r.ListWorkExperiences(ctx, profileID); err != nil {
		return entities.CompleteProfile{}, err
	}
	if c.Interests, err = r.ListInterests(ctx, profileID); err != nil {
		return entities.CompleteProfile{}, err
	}
	if c.Technologies, err = r.ListEmployeeTechnologies(ctx, profileID); err != nil {
		return entities.CompleteProfile{}, err
	}
	if c.SpecializedRoles, err = r.ListEmployeeRoles(ctx, profileID); err != nil {
		return entities.CompleteProfile{}, err
	}
	return c, nil
}

func (r *PostgresRepository) ListCandidateProfiles(ctx context.Context, onlyAvailable bool) ([]entities.CompleteProfile, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM employee_profiles
		WHERE verification_status=$1 AND ($2 = false OR availability = true) ORDER BY last_name, first_name`,
		string(entities.VerificationApproved), onlyAvailable)
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, err
	}

	candidates := make([]entities.CompleteProfile, 0, len(ids))
	for _, id := range ids {
		c, err := r.GetCompleteProfile(ctx, id)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, p entities.EmployeeProfile) (entities.EmployeeProfile, error) {
	r.logger.Debug("updating profile", "profile_id", p.ID)
	row := r.pool.QueryRow(ctx, `UPDATE employee_profiles SET first_name=$2, last_name=$3, availability=$4, country=$5, timezone=$6,
		sfia_level_general=$7, specialization=$8, mbti=$9, verification_status=$10, verification_notes=$11, updated_at=now()
		WHERE id=$1 RETURNING `+profileColumns,
		p.ID, p.FirstName, p.LastName, p.Availability, p.Country, p.Timezone, p.SfiaLevelGeneral,
		p.Specialization, p.Mbti, string(p.VerificationStatus), p.VerificationNotes,
	)
	updated, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.EmployeeProfile{}, entities.ErrProfileNotFound
	}
	if err != nil {
		r.logger.Error("failed to update profile", "profile_id", p.ID, "error", err)
		return entities.EmployeeProfile{}, err
	}
	return updated, nil
}

func (r *PostgresRepository) ResetProfileData(ctx context.Context, profileID uuid.UUID, types []entities.DataType) error {
	r.logger.Debug("resetting profile data", "profile_id", profileID, "types", types)
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, t := range entities.ExpandDataTypes(types) {
		var stmt string
		switch t {
		case entities.DataProfile:
			stmt = `UPDATE employee_profiles SET country='', timezone='', sfia_level_general=1, specialization='', mbti='',
				verification_status='NotRequested', verification_notes='', availability=true, updated_at=now() WHERE id=$1`
		case entities.DataTechnologies:
			stmt = `DELETE FROM employee_technologies WHERE profile_id=$1`
		case entities.DataExperiences:
			stmt = `DELETE FROM work_experiences WHERE profile_id=$1`
		case entities.DataInterests:
			stmt = `DELETE FROM personal_interests WHERE profile_id=$1`
		case entities.DataLanguages:
			stmt = `DELETE FROM employee_languages WHERE profile_id=$1`
		default:
			continue
		}
		if _, err = tx.Exec(ctx, stmt, profileID); err != nil {
			r.logger.Error("failed to reset profile data", "profile_id", profileID, "type", t, "error", err)
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Info("profile data reset", "profile_id", profileID)
	return nil
}

func (r *PostgresRepository) ListLanguages(ctx context.Context, profileID uuid.UUID) ([]entities.EmployeeLanguage, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, profile_id, language, proficiency FROM employee_languages WHERE profile_id=$1 ORDER BY language`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	languages := []entities.EmployeeLanguage{}
	for rows.Next() {
		var l entities.EmployeeLanguage
		if err = rows.Scan(&l.ID, &l.ProfileID, &l.Language, &l.Proficiency); err != nil {
			return nil, err
		}
		languages = append(languages, l)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return languages, nil
}

func (r *PostgresRepository) AddLanguage(ctx context.Context, l entities.EmployeeLanguage) (entities.EmployeeLanguage, error) {
	_, err := r.pool.Exec(ctx, `INSERT INTO employee_languages (id, profile_id, language, proficiency) VALUES ($1,$2,$3,$4)`,
		l.ID, l.ProfileID, l.Language, l.Proficiency)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.EmployeeLanguage{}, entities.ErrLanguageExists
		}
		if isForeignKeyViolation(err) {
			return entities.EmployeeLanguage{}, entities.ErrProfileNotFound
		}
		return entities.EmployeeLanguage{}, err
	}
	r.logger.Info("language added", "profile_id", l.ProfileID, "language", l.Language)
	return l, nil
}

func (r *PostgresRepository) UpdateLanguage(ctx context.Context, l entities.EmployeeLanguage) (entities.EmployeeLanguage, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE employee_languages SET language=$3, proficiency=$4 WHERE id=$1 AND profile_id=$2`,
		l.ID, l.ProfileID, l.Language, l.Proficiency)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.EmployeeLanguage{}, entities.ErrLanguageExists
		}
		return entities.EmployeeLanguage{}, err
	}
	if tag.RowsAffected() == 0 {
		return entities.EmployeeLanguage{}, entities.ErrLanguageNotFound
	}
	return l, nil
}

func (r *PostgresRepository) DeleteLanguage(ctx context.Context, profileID, languageID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM employee_languages WHERE id=$1 AND profile_id=$2`, languageID, profileID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrLanguageNotFound
	}
	return nil
}

const experienceColumns = `id, profile_id, project_name, description, tools, third_parties, frameworks, version_control,
	project_management, responsibilities, start_date, end_date`

func scanExperience(row scanner) (entities.WorkExperience, error) {
	var w entities.WorkExperience
	err := row.Scan(&w.ID, &w.ProfileID, &w.ProjectName, &w.Description, &w.Tools, &w.ThirdParties, &w.Frameworks,
		&w.VersionControl, &w.ProjectManagement, &w.Responsibilities, &w.StartDate, &w.EndDate)
	return w, err
}

func (r *PostgresRepository) ListWorkExperiences(ctx context.Context, profileID uuid.UUID) ([]entities.WorkExperience, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+experienceColumns+` FROM work_experiences WHERE profile_id=$1 ORDER BY start_date DESC`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	experiences := []entities.WorkExperience{}
	for rows.Next() {
		w, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		experiences = append(experiences, w)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return experiences, nil
}

func (r *PostgresRepository) AddWorkExperience(ctx context.Context, w entities.WorkExperience) (entities.WorkExperience, error) {
	row := r.pool.QueryRow(ctx, `INSERT INTO work_experiences
		(id, profile_id, project_name, description, tools, third_parties, frameworks, version_control, project_management, responsibilities, start_date, end_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) RETURNING `+experienceColumns,
		w.ID, w.ProfileID, w.ProjectName, w.Description, nonNil(w.Tools), nonNil(w.ThirdParties), nonNil(w.Frameworks),
		w.VersionControl, w.ProjectManagement, nonNil(w.Responsibilities), w.StartDate, w.EndDate,
	)
	created, err := scanExperience(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return entities.WorkExperience{}, entities.ErrProfileNotFound
		}
		r.logger.Error("failed to insert work experience", "error", err)
		return entities.WorkExperience{}, err
	}
	r.logger.Info("work experience added", "profile_id", w.ProfileID, "experience_id", created.ID)
	return created, nil
}

func (r *PostgresRepository) UpdateWorkExperience(ctx context.Context, w entities.WorkExperience) (entities.WorkExperience, error) {
	row := r.pool.QueryRow(ctx, `UPDATE work_experiences SET project_name=$3, description=$4, tools=$5, third_parties=$6, frameworks=$7,
		version_control=$8, project_management=$9, responsibilities=$10, start_date=$11, end_date=$12
		WHERE id=$1 AND profile_id=$2 RETURNING `+experienceColumns,
		w.ID, w.ProfileID, w.ProjectName, w.Description, nonNil(w.Tools), nonNil(w.ThirdParties), nonNil(w.Frameworks),
		w.VersionControl, w.ProjectManagement, nonNil(w.Responsibilities), w.StartDate, w.EndDate,
	)
	updated, err := scanExperience(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.WorkExperience{}, entities.ErrExperienceNotFound
	}
	return updated, err
}

func (r *PostgresRepository) DeleteWorkExperience(ctx context.Context, profileID, experienceID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM work_experiences WHERE id=$1 AND profile_id=$2`, experienceID, profileID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrExperienceNotFound
	}
	return nil
}

func (r *PostgresRepository) ListInterests(ctx context.Context, profileID uuid.UUID) ([]entities.PersonalInterest, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, profile_id, name, session_duration_minutes, frequency, interest_level
		FROM personal_interests WHERE profile_id=$1 ORDER BY name`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interests := []entities.PersonalInterest{}
	for rows.Next() {
		var i entities.PersonalInterest
		if err = rows.Scan(&i.ID, &i.ProfileID, &i.Name, &i.SessionDurationMinutes, &i.Frequency, &i.InterestLevel); err != nil {
			return nil, err
		}
		interests = append(interests, i)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return interests, nil
}

func (r *PostgresRepository) AddInterest(ctx context.Context, i entities.PersonalInterest) (entities.PersonalInterest, error) {
	_, err := r.pool.Exec(ctx, `INSERT INTO personal_interests (id, profile_id, name, session_duration_minutes, frequency, interest_level)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		i.ID, i.ProfileID, i.Name, i.SessionDurationMinutes, i.Frequency, i.InterestLevel)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.PersonalInterest{}, entities.ErrInterestExists
		}
		if isForeignKeyViolation(err) {
			return entities.PersonalInterest{}, entities.ErrProfileNotFound
		}
		return entities.PersonalInterest{}, err
	}
	r.logger.Info("interest added", "profile_id", i.ProfileID, "name", i.Name)
	return i, nil
}

func (r *PostgresRepository) UpdateInterest(ctx context.Context, i entities.PersonalInterest) (entities.PersonalInterest, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE personal_interests SET name=$3, session_duration_minutes=$4, frequency=$5, interest_level=$6
		WHERE id=$1 AND profile_id=$2`,
		i.ID, i.ProfileID, i.Name, i.SessionDurationMinutes, i.Frequency, i.InterestLevel)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.PersonalInterest{}, entities.ErrInterestExists
		}
		return entities.PersonalInterest{}, err
	}
	if tag.RowsAffected() == 0 {
		return entities.PersonalInterest{}, entities.ErrInterestNotFound
	}
	return i, nil
}

func (r *PostgresRepository) DeleteInterest(ctx context.Context, profileID, interestID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM personal_interests WHERE id=$1 AND profile_id=$2`, interestID, profileID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrInterestNotFound
	}
	return nil
}

func (r *PostgresRepository) ListEmployeeTechnologies(ctx context.Context, profileID uuid.UUID) ([]entities.EmployeeTechnology, error) {
	rows, err := r.pool.Query(ctx, `SELECT et.id, et.profile_id, et.technology_id, t.name, c.name, et.sfia_level, et.years_experience, et.version
		FROM employee_technologies et
		JOIN technologies t ON t.id = et.technology_id
		JOIN technology_categories c ON c.id = t.category_id
		WHERE et.profile_id=$1 ORDER BY t.name`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	techs := []entities.EmployeeTechnology{}
	for rows.Next() {
		var et entities.EmployeeTechnology
		if err = rows.Scan(&et.ID, &et.ProfileID, &et.TechnologyID, &et.TechnologyName, &et.CategoryName,
			&et.SfiaLevel, &et.YearsExperience, &et.Version); err != nil {
			return nil, err
		}
		techs = append(techs, et)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return techs, nil
}

func (r *PostgresRepository) AddEmployeeTechnology(ctx context.Context, et entities.EmployeeTechnology) (entities.EmployeeTechnology, error) {
	_, err := r.pool.Exec(ctx, `INSERT INTO employee_technologies (id, profile_id, technology_id, sfia_level, years_experience, version)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		et.ID, et.ProfileID, et.TechnologyID, et.SfiaLevel, et.YearsExperience, et.Version)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.EmployeeTechnology{}, entities.ErrEmployeeTechExists
		}
		if isForeignKeyViolation(err) {
			return entities.EmployeeTechnology{}, entities.ErrTechnologyNotFound
		}
		r.logger.Error("failed to insert employee technology", "error", err)
		return entities.EmployeeTechnology{}, err
	}
	r.logger.Info("technology added", "profile_id", et.ProfileID, "technology_id", et.TechnologyID)
	return et, nil
}

func (r *PostgresRepository) UpdateEmployeeTechnology(ctx context.Context, et entities.EmployeeTechnology) (entities.EmployeeTechnology, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE employee_technologies SET sfia_level=$3, years_experience=$4, version=$5 WHERE id=$1 AND profile_id=$2`,
		et.ID, et.ProfileID, et.SfiaLevel, et.YearsExperience, et.Version)
	if err != nil {
		return entities.EmployeeTechnology{}, err
	}
	if tag.RowsAffected() == 0 {
		return entities.EmployeeTechnology{}, entities.ErrEmployeeTechNotFound
	}
	return et, nil
}

func (r *PostgresRepository) DeleteEmployeeTechnology(ctx context.Context, profileID, employeeTechID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM employee_technologies WHERE id=$1 AND profile_id=$2`, employeeTechID, profileID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrEmployeeTechNotFound
	}
	return nil
}

func (r *PostgresRepository) ListEmployeeRoles(ctx context.Context, profileID uuid.UUID) ([]entities.EmployeeSpecializedRole, error) {
	rows, err := r.pool.Query(ctx, `SELECT er.id, er.profile_id, er.specialized_role_id, sr.name, ta.name, er.level, er.years_experience
		FROM employee_specialized_roles er
		JOIN specialized_roles sr ON sr.id = er.specialized_role_id
		JOIN technical_areas ta ON ta.id = sr.technical_area_id
		WHERE er.profile_id=$1 ORDER BY sr.name`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []entities.EmployeeSpecializedRole{}
	for rows.Next() {
		var er entities.EmployeeSpecializedRole
		if err = rows.Scan(&er.ID, &er.ProfileID, &er.SpecializedRoleID, &er.RoleName, &er.TechnicalAreaName,
			&er.Level, &er.YearsExperience); err != nil {
			return nil, err
		}
		roles = append(roles, er)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *PostgresRepository) AddEmployeeRole(ctx context.Context, er entities.EmployeeSpecializedRole) (entities.EmployeeSpecializedRole, error) {
	_, err := r.pool.Exec(ctx, `INSERT INTO employee_specialized_roles (id, profile_id, specialized_role_id, level, years_experience)
		VALUES ($1,$2,$3,$4,$5)`,
		er.ID, er.ProfileID, er.SpecializedRoleID, er.Level, er.YearsExperience)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.EmployeeSpecializedRole{}, entities.ErrEmployeeRoleExists
		}
		if isForeignKeyViolation(err) {
			return entities.EmployeeSpecializedRole{}, entities.ErrRoleNotFound
		}
		return entities.EmployeeSpecializedRole{}, err
	}
	r.logger.Info("specialized role added", "profile_id", er.ProfileID, "role_id", er.SpecializedRoleID)
	return er, nil
}

func (r *PostgresRepository) DeleteEmployeeRole(ctx context.Context, profileID, employeeRoleID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM employee_specialized_roles WHERE id=$1 AND profile_id=$2`, employeeRoleID, profileID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrEmployeeRoleNotFound
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
