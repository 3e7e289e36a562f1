package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

type PrivacyRepository interface {
	GetConsent(ctx context.Context, userID uuid.UUID) (entities.PrivacyConsent, error)
	UpsertConsent(ctx context.Context, consent entities.PrivacyConsent) (entities.PrivacyConsent, error)

	CreateDeletionOrder(ctx context.Context, order entities.DataDeletionOrder) (entities.DataDeletionOrder, error)
	GetDeletionOrder(ctx context.Context, orderID uuid.UUID) (entities.DataDeletionOrder, error)
	HasPendingDeletion(ctx context.Context, userID uuid.UUID) (bool, error)
	ListDeletionOrders(ctx context.Context, userID uuid.UUID) ([]entities.DataDeletionOrder, error)
	ListDueDeletionOrders(ctx context.Context, now time.Time) ([]entities.DataDeletionOrder, error)
	UpdateDeletionOrder(ctx context.Context, order entities.DataDeletionOrder) error

	AddAuditLog(ctx context.Context, entry entities.PrivacyAuditLog) error
	ListAuditLogs(ctx context.Context, userID uuid.UUID) ([]entities.PrivacyAuditLog, error)
}
