package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

const userColumns = `id, email, password_hash, role, created_at, updated_at`

func scanUser(row scanner) (entities.User, error) {
	var u entities.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return entities.User{}, err
	}
	u.Role = entities.Role(role)
	return u, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user entities.User) (entities.User, error) {
	r.logger.Debug("creating user", "email", user.Email, "role", user.Role)
	row := r.pool.QueryRow(ctx, `INSERT INTO users (id, email, password_hash, role) VALUES ($1,$2,$3,$4) RETURNING `+userColumns,
		user.ID, user.Email, user.PasswordHash, string(user.Role),
	)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.User{}, entities.ErrEmailExists
		}
		r.logger.Error("failed to insert user", "error", err)
		return entities.User{}, err
	}
	r.logger.Info("user created", "user_id", created.ID, "role", created.Role)
	return created, nil
}

func (r *PostgresRepository) CreateUserWithProfile(ctx context.Context, user entities.User, profile entities.EmployeeProfile) (entities.User, error) {
	r.logger.Debug("registering employee", "email", user.Email)
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		r.logger.Error("failed to begin transaction", "error", err)
		return entities.User{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `INSERT INTO users (id, email, password_hash, role) VALUES ($1,$2,$3,$4) RETURNING `+userColumns,
		user.ID, user.Email, user.PasswordHash, string(user.Role),
	)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.User{}, entities.ErrEmailExists
		}
		r.logger.Error("failed to insert user", "error", err)
		return entities.User{}, err
	}

	_, err = tx.Exec(ctx, `INSERT INTO employee_profiles (id, user_id, first_name, last_name, availability, sfia_level_general, verification_status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		profile.ID, created.ID, profile.FirstName, profile.LastName, profile.Availability, profile.SfiaLevelGeneral, string(profile.VerificationStatus),
	)
	if err != nil {
		r.logger.Error("failed to insert profile", "user_id", created.ID, "error", err)
		return entities.User{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error("failed to commit transaction", "error", err)
		return entities.User{}, err
	}
	r.logger.Info("employee registered", "user_id", created.ID, "profile_id", profile.ID)
	return created, nil
}

func (r *PostgresRepository) GetUser(ctx context.Context, userID uuid.UUID) (entities.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.User{}, entities.ErrUserNotFound
	}
	return u, err
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email)=lower($1)`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.User{}, entities.ErrUserNotFound
	}
	return u, err
}

func (r *PostgresRepository) GetUserByProfile(ctx context.Context, profileID uuid.UUID) (entities.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT u.id, u.email, u.password_hash, u.role, u.created_at, u.updated_at
		FROM users u JOIN employee_profiles p ON p.user_id = u.id WHERE p.id=$1`, profileID)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.User{}, entities.ErrUserNotFound
	}
	return u, err
}

func (r *PostgresRepository) GetUserInfo(ctx context.Context, userID uuid.UUID) (entities.UserInfo, error) {
	row := r.pool.QueryRow(ctx, `SELECT u.id, u.email, u.role, p.id, p.verification_status
		FROM users u LEFT JOIN employee_profiles p ON p.user_id = u.id WHERE u.id=$1`, userID)
	var info entities.UserInfo
	var role string
	var status *string
	err := row.Scan(&info.ID, &info.Email, &role, &info.ProfileID, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.UserInfo{}, entities.ErrUserNotFound
	}
	if err != nil {
		return entities.UserInfo{}, err
	}
	info.Role = entities.Role(role)
	info.HasProfile = info.ProfileID != nil
	info.IsProfileVerified = status != nil && entities.VerificationStatus(*status) == entities.VerificationApproved
	return info, nil
}

func (r *PostgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email)=lower($1))`, email).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) RoleExists(ctx context.Context, role entities.Role) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE role=$1)`, string(role)).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) CreateInvitation(ctx context.Context, inv entities.InvitationLink) (entities.InvitationLink, error) {
	r.logger.Debug("creating invitation", "email", inv.Email, "role", inv.TargetRole)
	row := r.pool.QueryRow(ctx, `INSERT INTO invitation_links (id, token, created_by_id, email, target_role, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6) RETURNING `+invitationColumns,
		inv.ID, inv.Token, inv.CreatedByID, inv.Email, string(inv.TargetRole), inv.ExpiresAt,
	)
	created, err := scanInvitation(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return entities.InvitationLink{}, entities.ErrUserNotFound
		}
		r.logger.Error("failed to insert invitation", "error", err)
		return entities.InvitationLink{}, err
	}
	r.logger.Info("invitation created", "invitation_id", created.ID)
	return created, nil
}

const invitationColumns = `id, token, created_by_id, email, target_role, expires_at, is_used, used_at, created_at`

func scanInvitation(row scanner) (entities.InvitationLink, error) {
	var inv entities.InvitationLink
	var role string
	err := row.Scan(&inv.ID, &inv.Token, &inv.CreatedByID, &inv.Email, &role, &inv.ExpiresAt, &inv.IsUsed, &inv.UsedAt, &inv.CreatedAt)
	if err != nil {
		return entities.InvitationLink{}, err
	}
	inv.TargetRole = entities.Role(role)
	return inv, nil
}

func (r *PostgresRepository) GetInvitationByToken(ctx context.Context, token string) (entities.InvitationLink, error) {
	inv, err := scanInvitation(r.pool.QueryRow(ctx, `SELECT `+invitationColumns+` FROM invitation_links WHERE token=$1`, token))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.InvitationLink{}, entities.ErrInvitationNotFound
	}
	return inv, err
}

func (r *PostgresRepository) CreateUserFromInvitation(ctx context.Context, user entities.User, invitationID uuid.UUID, usedAt time.Time) (entities.User, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		r.logger.Error("failed to begin transaction", "error", err)
		return entities.User{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `UPDATE invitation_links SET is_used=true, used_at=$2 WHERE id=$1 AND is_used=false`, invitationID, usedAt)
	if err != nil {
		return entities.User{}, err
	}
	if tag.RowsAffected() == 0 {
		return entities.User{}, entities.ErrInvitationInvalid
	}

	row := tx.QueryRow(ctx, `INSERT INTO users (id, email, password_hash, role) VALUES ($1,$2,$3,$4) RETURNING `+userColumns,
		user.ID, user.Email, user.PasswordHash, string(user.Role),
	)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.User{}, entities.ErrEmailExists
		}
		r.logger.Error("failed to insert invited user", "error", err)
		return entities.User{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error("failed to commit transaction", "error", err)
		return entities.User{}, err
	}
	r.logger.Info("invited user registered", "user_id", created.ID, "invitation_id", invitationID)
	return created, nil
}
