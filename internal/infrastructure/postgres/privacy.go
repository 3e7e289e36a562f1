package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

func (r *PostgresRepository) GetConsent(ctx context.Context, userID uuid.UUID) (entities.PrivacyConsent, error) {
	var c entities.PrivacyConsent
	err := r.pool.QueryRow(ctx, `SELECT user_id, team_matching_analysis, version, last_updated FROM user_privacy_consents WHERE user_id=$1`, userID).
		Scan(&c.UserID, &c.TeamMatchingAnalysis, &c.Version, &c.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.PrivacyConsent{}, entities.ErrConsentNotFound
	}
	return c, err
}

func (r *PostgresRepository) UpsertConsent(ctx context.Context, c entities.PrivacyConsent) (entities.PrivacyConsent, error) {
	var saved entities.PrivacyConsent
	err := r.pool.QueryRow(ctx, `INSERT INTO user_privacy_consents (user_id, team_matching_analysis, version, last_updated)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (user_id) DO UPDATE SET team_matching_analysis=EXCLUDED.team_matching_analysis,
			version=EXCLUDED.version, last_updated=EXCLUDED.last_updated
		RETURNING user_id, team_matching_analysis, version, last_updated`,
		c.UserID, c.TeamMatchingAnalysis, c.Version, c.LastUpdated,
	).Scan(&saved.UserID, &saved.TeamMatchingAnalysis, &saved.Version, &saved.LastUpdated)
	if err != nil {
		if isForeignKeyViolation(err) {
			return entities.PrivacyConsent{}, entities.ErrUserNotFound
		}
		r.logger.Error("failed to upsert consent", "user_id", c.UserID, "error", err)
		return entities.PrivacyConsent{}, err
	}
	return saved, nil
}

const deletionColumns = `id, user_id, status, request_date, scheduled_deletion_date, processed_date, data_types, reason, cancellation_reason`

func scanDeletionOrder(row scanner) (entities.DataDeletionOrder, error) {
	var o entities.DataDeletionOrder
	var status string
	var types []string
	err := row.Scan(&o.ID, &o.UserID, &status, &o.RequestDate, &o.ScheduledDeletionDate, &o.ProcessedDate, &types, &o.Reason, &o.CancellationReason)
	if err != nil {
		return entities.DataDeletionOrder{}, err
	}
	o.Status = entities.DeletionStatus(status)
	o.DataTypes = make([]entities.DataType, 0, len(types))
	for _, t := range types {
		o.DataTypes = append(o.DataTypes, entities.DataType(t))
	}
	return o, nil
}

func dataTypeStrings(types []entities.DataType) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return out
}

func (r *PostgresRepository) CreateDeletionOrder(ctx context.Context, o entities.DataDeletionOrder) (entities.DataDeletionOrder, error) {
	row := r.pool.QueryRow(ctx, `INSERT INTO data_deletion_orders (id, user_id, status, request_date, scheduled_deletion_date, data_types, reason)
		VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING `+deletionColumns,
		o.ID, o.UserID, string(o.Status), o.RequestDate, o.ScheduledDeletionDate, dataTypeStrings(o.DataTypes), o.Reason)
	created, err := scanDeletionOrder(row)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.DataDeletionOrder{}, entities.ErrDeletionPending
		}
		r.logger.Error("failed to insert deletion order", "user_id", o.UserID, "error", err)
		return entities.DataDeletionOrder{}, err
	}
	r.logger.Info("deletion order created", "order_id", created.ID, "scheduled", created.ScheduledDeletionDate)
	return created, nil
}

func (r *PostgresRepository) GetDeletionOrder(ctx context.Context, orderID uuid.UUID) (entities.DataDeletionOrder, error) {
	o, err := scanDeletionOrder(r.pool.QueryRow(ctx, `SELECT `+deletionColumns+` FROM data_deletion_orders WHERE id=$1`, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.DataDeletionOrder{}, entities.ErrDeletionNotFound
	}
	return o, err
}

func (r *PostgresRepository) HasPendingDeletion(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM data_deletion_orders WHERE user_id=$1 AND status=$2)`,
		userID, string(entities.DeletionPending)).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) listDeletionOrders(ctx context.Context, query string, args ...any) ([]entities.DataDeletionOrder, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.DataDeletionOrder, error) {
		return scanDeletionOrder(row)
	})
}

func (r *PostgresRepository) ListDeletionOrders(ctx context.Context, userID uuid.UUID) ([]entities.DataDeletionOrder, error) {
	return r.listDeletionOrders(ctx, `SELECT `+deletionColumns+` FROM data_deletion_orders WHERE user_id=$1 ORDER BY request_date DESC`, userID)
}

func (r *PostgresRepository) ListDueDeletionOrders(ctx context.Context, now time.Time) ([]entities.DataDeletionOrder, error) {
	return r.listDeletionOrders(ctx, `SELECT `+deletionColumns+` FROM data_deletion_orders
		WHERE status=$1 AND scheduled_deletion_date <= $2 ORDER BY scheduled_deletion_date`,
		string(entities.DeletionPending), now)
}

func (r *PostgresRepository) UpdateDeletionOrder(ctx context.Context, o entities.DataDeletionOrder) error {
	tag, err := r.pool.Exec(ctx, `UPDATE data_deletion_orders SET status=$2, processed_date=$3, cancellation_reason=$4 WHERE id=$1`,
		o.ID, string(o.Status), o.ProcessedDate, o.CancellationReason)
	if err != nil {
		r.logger.Error("failed to update deletion order", "order_id", o.ID, "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrDeletionNotFound
	}
	return nil
}

func (r *PostgresRepository) AddAuditLog(ctx context.Context, e entities.PrivacyAuditLog) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO privacy_audit_logs (id, user_id, action, details, ip_address, user_agent, timestamp)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		e.ID, e.UserID, string(e.Action), e.Details, e.IPAddress, e.UserAgent, e.Timestamp)
	if err != nil {
		r.logger.Error("failed to write audit log", "user_id", e.UserID, "action", e.Action, "error", err)
	}
	return err
}

func (r *PostgresRepository) ListAuditLogs(ctx context.Context, userID uuid.UUID) ([]entities.PrivacyAuditLog, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, user_id, action, details, ip_address, user_agent, timestamp
		FROM privacy_audit_logs WHERE user_id=$1 ORDER BY timestamp DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []entities.PrivacyAuditLog{}
	for rows.Next() {
		var l entities.PrivacyAuditLog
		var action string
		if err = rows.Scan(&l.ID, &l.UserID, &action, &l.Details, &l.IPAddress, &l.UserAgent, &l.Timestamp); err != nil {
			return nil, err
		}
		l.Action = entities.AuditAction(action)
		logs = append(logs, l)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}
