package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

type VerificationRepository interface {
	CreateVerificationRequest(ctx context.Context, verification entities.ProfileVerification) (entities.ProfileVerification, error)
	ListPendingVerifications(ctx context.Context, limit, offset int) ([]entities.PendingVerification, int, error)
	CompleteVerification(ctx context.Context, profile entities.EmployeeProfile, reviewerID uuid.UUID, reviewedAt time.Time) (entities.ProfileVerification, error)
	ListVerifications(ctx context.Context, profileID uuid.UUID) ([]entities.ProfileVerification, error)
}
