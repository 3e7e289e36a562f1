package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

const verificationColumns = `id, profile_id, reviewer_id, sfia_proposed, status, notes, requested_at, reviewed_at`

func scanVerification(row scanner) (entities.ProfileVerification, error) {
	var v entities.ProfileVerification
	var status string
	if err := row.Scan(&v.ID, &v.ProfileID, &v.ReviewerID, &v.SfiaProposed, &status, &v.Notes, &v.RequestedAt, &v.ReviewedAt); err != nil {
		return entities.ProfileVerification{}, err
	}
	v.Status = entities.VerificationStatus(status)
	return v, nil
}

func (r *PostgresRepository) CreateVerificationRequest(ctx context.Context, v entities.ProfileVerification) (entities.ProfileVerification, error) {
	r.logger.Debug("requesting verification", "profile_id", v.ProfileID)
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return entities.ProfileVerification{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `UPDATE employee_profiles SET verification_status=$2, updated_at=now()
		WHERE id=$1 AND verification_status NOT IN ($2,$3)`,
		v.ProfileID, string(entities.VerificationPending), string(entities.VerificationApproved))
	if err != nil {
		return entities.ProfileVerification{}, err
	}
	if tag.RowsAffected() == 0 {
		return entities.ProfileVerification{}, r.verificationBlocked(ctx, tx, v.ProfileID)
	}

	row := tx.QueryRow(ctx, `INSERT INTO profile_verifications (id, profile_id, sfia_proposed, status, requested_at)
		VALUES ($1,$2,$3,$4,$5) RETURNING `+verificationColumns,
		v.ID, v.ProfileID, v.SfiaProposed, string(entities.VerificationPending), v.RequestedAt)
	created, err := scanVerification(row)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.ProfileVerification{}, entities.ErrVerificationAlreadyRequested
		}
		r.logger.Error("failed to insert verification", "error", err)
		return entities.ProfileVerification{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return entities.ProfileVerification{}, err
	}
	r.logger.Info("verification requested", "profile_id", v.ProfileID, "verification_id", created.ID)
	return created, nil
}

// verificationBlocked explains why the status update matched no row.
func (r *PostgresRepository) verificationBlocked(ctx context.Context, tx pgx.Tx, profileID uuid.UUID) error {
	var status string
	err := tx.QueryRow(ctx, `SELECT verification_status FROM employee_profiles WHERE id=$1`, profileID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.ErrProfileNotFound
	}
	if err != nil {
		return err
	}
	if entities.VerificationStatus(status) == entities.VerificationApproved {
		return entities.ErrVerificationAlreadyVerified
	}
	return entities.ErrVerificationAlreadyRequested
}

func (r *PostgresRepository) ListPendingVerifications(ctx context.Context, limit, offset int) ([]entities.PendingVerification, int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employee_profiles WHERE verification_status=$1`,
		string(entities.VerificationPending)).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `SELECT p.id, u.email, p.first_name, p.last_name, p.sfia_level_general, p.specialization,
		COALESCE((SELECT max(v.requested_at) FROM profile_verifications v WHERE v.profile_id = p.id), p.updated_at)
		FROM employee_profiles p JOIN users u ON u.id = p.user_id
		WHERE p.verification_status=$1
		ORDER BY 7 ASC LIMIT $2 OFFSET $3`,
		string(entities.VerificationPending), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []entities.PendingVerification{}
	for rows.Next() {
		var pv entities.PendingVerification
		var first, last string
		if err = rows.Scan(&pv.ProfileID, &pv.Email, &first, &last, &pv.SfiaLevel, &pv.Specialization, &pv.RequestedAt); err != nil {
			return nil, 0, err
		}
		pv.FullName = entities.EmployeeProfile{FirstName: first, LastName: last}.FullName()
		items = append(items, pv)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// CompleteVerification closes the open request with the profile's new status and persists the profile.
func (r *PostgresRepository) CompleteVerification(ctx context.Context, p entities.EmployeeProfile, reviewerID uuid.UUID, reviewedAt time.Time) (entities.ProfileVerification, error) {
	r.logger.Debug("completing verification", "profile_id", p.ID, "status", p.VerificationStatus)
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return entities.ProfileVerification{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `UPDATE profile_verifications SET status=$2, notes=$3, reviewer_id=$4, reviewed_at=$5
		WHERE id = (SELECT id FROM profile_verifications WHERE profile_id=$1 AND status='Pending' ORDER BY requested_at DESC LIMIT 1)
		RETURNING `+verificationColumns,
		p.ID, string(p.VerificationStatus), p.VerificationNotes, reviewerID, reviewedAt)
	completed, err := scanVerification(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.ProfileVerification{}, entities.ErrVerificationNotFound
	}
	if err != nil {
		r.logger.Error("failed to update verification", "profile_id", p.ID, "error", err)
		return entities.ProfileVerification{}, err
	}

	_, err = tx.Exec(ctx, `UPDATE employee_profiles SET verification_status=$2, verification_notes=$3, availability=$4,
		sfia_level_general=$5, updated_at=now() WHERE id=$1`,
		p.ID, string(p.VerificationStatus), p.VerificationNotes, p.Availability, p.SfiaLevelGeneral)
	if err != nil {
		return entities.ProfileVerification{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return entities.ProfileVerification{}, err
	}
	r.logger.Info("verification completed", "profile_id", p.ID, "status", p.VerificationStatus)
	return completed, nil
}

func (r *PostgresRepository) ListVerifications(ctx context.Context, profileID uuid.UUID) ([]entities.ProfileVerification, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+verificationColumns+` FROM profile_verifications WHERE profile_id=$1 ORDER BY requested_at DESC`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []entities.ProfileVerification{}
	for rows.Next() {
		v, err := scanVerification(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, v)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}
