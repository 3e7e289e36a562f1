package privacy

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

type PrivacyUseCase interface {
	GetConsent(ctx context.Context, userID uuid.UUID) (entities.PrivacyConsent, error)
	UpdateConsent(ctx context.Context, userID uuid.UUID, allowed bool, meta entities.RequestMeta) (entities.PrivacyConsent, error)
	Export(ctx context.Context, userID uuid.UUID, meta entities.RequestMeta) (entities.DataExport, error)
	RequestDeletion(ctx context.Context, userID uuid.UUID, input DeletionInput, meta entities.RequestMeta) (entities.DataDeletionOrder, error)
	ListDeletionRequests(ctx context.Context, userID uuid.UUID) ([]entities.DataDeletionOrder, error)
	CancelDeletion(ctx context.Context, userID, orderID uuid.UUID, meta entities.RequestMeta) (entities.DataDeletionOrder, error)
	ResetProfile(ctx context.Context, userID uuid.UUID, types []entities.DataType, meta entities.RequestMeta) error
	ProcessDueDeletions(ctx context.Context, now time.Time) (int, error)
}

type DeletionInput struct {
	DataTypes []entities.DataType
	Reason    string
}

type UserReader interface {
	GetUserInfo(ctx context.Context, userID uuid.UUID) (entities.UserInfo, error)
}

type ProfileStore interface {
	GetProfileByUser(ctx context.Context, userID uuid.UUID) (entities.EmployeeProfile, error)
	GetCompleteProfile(ctx context.Context, profileID uuid.UUID) (entities.CompleteProfile, error)
	ResetProfileData(ctx context.Context, profileID uuid.UUID, types []entities.DataType) error
}

type TeamLister interface {
	ListTeamsByUser(ctx context.Context, userID uuid.UUID) ([]entities.Team, error)
}
