package verification

import (
	"context"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

type VerificationUseCase interface {
	Request(ctx context.Context, profileID uuid.UUID) (entities.ProfileVerification, error)
	ListPending(ctx context.Context, page, pageSize int) (entities.Page[entities.PendingVerification], error)
	GetForReview(ctx context.Context, profileID uuid.UUID) (entities.ProfileReview, error)
	Approve(ctx context.Context, profileID uuid.UUID, reviewer entities.Actor, input ReviewInput) (entities.ProfileVerification, error)
	Reject(ctx context.Context, profileID uuid.UUID, reviewer entities.Actor, notes string) (entities.ProfileVerification, error)
	History(ctx context.Context, profileID uuid.UUID) ([]entities.ProfileVerification, error)
}

type ReviewInput struct {
	Notes     string
	SfiaLevel *int
}

// ProfileReader is the slice of the profile store verification needs.
type ProfileReader interface {
	GetProfile(ctx context.Context, profileID uuid.UUID) (entities.EmployeeProfile, error)
	GetCompleteProfile(ctx context.Context, profileID uuid.UUID) (entities.CompleteProfile, error)
}

type Notifier interface {
	Enqueue(n entities.Notification) bool
}
