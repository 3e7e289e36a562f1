package privacy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/internal/infrastructure/cache"
	"github.com/Miguelito2774/jala-match-sub001/internal/repository"
	"github.com/Miguelito2774/jala-match-sub001/internal/usecase/profile"
	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

const maxReasonLength = 1000

var (
	errDataTypesRequired = entities.Validation("Privacy.DataTypesRequired", "at least one data type is required")
	errReasonTooLong     = entities.Validation("Privacy.ReasonTooLong", "reason must be at most 1000 characters")
)

type useCase struct {
	privacyRepo repository.PrivacyRepository
	users       UserReader
	profiles    ProfileStore
	teams       TeamLister
	cache       cache.Cache
	logger      logger.Logger
	now         func() time.Time
}

func New(privacyRepo repository.PrivacyRepository, users UserReader, profiles ProfileStore, teams TeamLister, c cache.Cache, log logger.Logger) PrivacyUseCase {
	return &useCase{
		privacyRepo: privacyRepo,
		users:       users,
		profiles:    profiles,
		teams:       teams,
		cache:       c,
		logger:      log,
		now:         time.Now,
	}
}

func validateDataTypes(types []entities.DataType) error {
	if len(types) == 0 {
		return errDataTypesRequired
	}
	for _, t := range types {
		if !t.Valid() {
			return entities.Validation("Privacy.InvalidDataType", fmt.Sprintf("unknown data type %q", t))
		}
	}
	return nil
}

func joinTypes(types []entities.DataType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// GetConsent falls back to the default consent when the user never recorded one.
func (u *useCase) GetConsent(ctx context.Context, userID uuid.UUID) (entities.PrivacyConsent, error) {
	consent, err := u.privacyRepo.GetConsent(ctx, userID)
	if errors.Is(err, entities.ErrConsentNotFound) {
		return entities.PrivacyConsent{
			UserID:               userID,
			TeamMatchingAnalysis: true,
			Version:              entities.ConsentVersion,
			LastUpdated:          u.now().UTC(),
		}, nil
	}
	return consent, err
}

func (u *useCase) UpdateConsent(ctx context.Context, userID uuid.UUID, allowed bool, meta entities.RequestMeta) (entities.PrivacyConsent, error) {
	consent, err := u.privacyRepo.UpsertConsent(ctx, entities.PrivacyConsent{
		UserID:               userID,
		TeamMatchingAnalysis: allowed,
		Version:              entities.ConsentVersion,
		LastUpdated:          u.now().UTC(),
	})
	if err != nil {
		return entities.PrivacyConsent{}, err
	}
	action := entities.AuditConsentUpdated
	if !allowed {
		action = entities.AuditConsentWithdrawn
	}
	u.audit(ctx, userID, action, fmt.Sprintf("team_matching_analysis=%t version=%s", allowed, consent.Version), meta)
	return consent, nil
}

// Export gathers everything stored about the user.
func (u *useCase) Export(ctx context.Context, userID uuid.UUID, meta entities.RequestMeta) (entities.DataExport, error) {
	export := entities.DataExport{ExportedAt: u.now().UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		info, err := u.users.GetUserInfo(gctx, userID)
		export.User = info
		return err
	})
	g.Go(func() error {
		p, err := u.profiles.GetProfileByUser(gctx, userID)
		if errors.Is(err, entities.ErrProfileNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		complete, err := u.profiles.GetCompleteProfile(gctx, p.ID)
		if err != nil {
			return err
		}
		export.Profile = &complete
		return nil
	})
	g.Go(func() error {
		teams, err := u.teams.ListTeamsByUser(gctx, userID)
		export.Teams = teams
		return err
	})
	g.Go(func() error {
		consent, err := u.GetConsent(gctx, userID)
		export.Consent = consent
		return err
	})
	g.Go(func() error {
		orders, err := u.privacyRepo.ListDeletionOrders(gctx, userID)
		export.DeletionRequests = orders
		return err
	})
	g.Go(func() error {
		logs, err := u.privacyRepo.ListAuditLogs(gctx, userID)
		export.AuditLog = logs
		return err
	})
	if err := g.Wait(); err != nil {
		return entities.DataExport{}, err
	}

	u.audit(ctx, userID, entities.AuditDataExported, "personal data exported", meta)
	u.logger.Info("personal data exported", "user_id", userID)
	return export, nil
}

func (u *useCase) RequestDeletion(ctx context.Context, userID uuid.UUID, input DeletionInput, meta entities.RequestMeta) (entities.DataDeletionOrder, error) {
	if err := validateDataTypes(input.DataTypes); err != nil {
		return entities.DataDeletionOrder{}, err
	}
	reason := strings.TrimSpace(input.Reason)
	if len(reason) > maxReasonLength {
		return entities.DataDeletionOrder{}, errReasonTooLong
	}
	pending, err := u.privacyRepo.HasPendingDeletion(ctx, userID)
	if err != nil {
		return entities.DataDeletionOrder{}, err
	}
	if pending {
		return entities.DataDeletionOrder{}, entities.ErrDeletionPending
	}

	now := u.now().UTC()
	order, err := u.privacyRepo.CreateDeletionOrder(ctx, entities.DataDeletionOrder{
		ID:                    uuid.New(),
		UserID:                userID,
		Status:                entities.DeletionPending,
		RequestDate:           now,
		ScheduledDeletionDate: now.Add(entities.DeletionGracePeriod),
		DataTypes:             input.DataTypes,
		Reason:                reason,
	})
	if err != nil {
		return entities.DataDeletionOrder{}, err
	}
	u.audit(ctx, userID, entities.AuditDataDeletionRequested,
		fmt.Sprintf("order=%s types=%s scheduled=%s", order.ID, joinTypes(order.DataTypes), order.ScheduledDeletionDate.Format(time.RFC3339)), meta)
	u.logger.Info("data deletion requested", "user_id", userID, "order_id", order.ID)
	return order, nil
}

func (u *useCase) ListDeletionRequests(ctx context.Context, userID uuid.UUID) ([]entities.DataDeletionOrder, error) {
	return u.privacyRepo.ListDeletionOrders(ctx, userID)
}

func (u *useCase) CancelDeletion(ctx context.Context, userID, orderID uuid.UUID, meta entities.RequestMeta) (entities.DataDeletionOrder, error) {
	order, err := u.privacyRepo.GetDeletionOrder(ctx, orderID)
	if err != nil {
		return entities.DataDeletionOrder{}, err
	}
	if order.UserID != userID {
		return entities.DataDeletionOrder{}, entities.ErrDeletionNotOwned
	}
	if order.Status != entities.DeletionPending {
		return entities.DataDeletionOrder{}, entities.ErrDeletionState
	}
	order.Status = entities.DeletionCancelled
	order.CancellationReason = entities.CancelledByUserMessage
	if err = u.privacyRepo.UpdateDeletionOrder(ctx, order); err != nil {
		return entities.DataDeletionOrder{}, err
	}
	u.audit(ctx, userID, entities.AuditDataDeletionCancelled, fmt.Sprintf("order=%s", order.ID), meta)
	return order, nil
}

func (u *useCase) ResetProfile(ctx context.Context, userID uuid.UUID, types []entities.DataType, meta entities.RequestMeta) error {
	if err := validateDataTypes(types); err != nil {
		return err
	}
	if err := u.reset(ctx, userID, types); err != nil {
		return err
	}
	u.audit(ctx, userID, entities.AuditDataDeleted, "reset "+joinTypes(entities.ExpandDataTypes(types)), meta)
	return nil
}

func (u *useCase) reset(ctx context.Context, userID uuid.UUID, types []entities.DataType) error {
	p, err := u.profiles.GetProfileByUser(ctx, userID)
	if err != nil {
		return err
	}
	if err = u.profiles.ResetProfileData(ctx, p.ID, types); err != nil {
		return err
	}
	if err = u.cache.EvictByTag(ctx, profile.Tag(p.ID)); err != nil {
		u.logger.Error("failed to evict profile cache", "profile_id", p.ID, "error", err)
	}
	return nil
}

// ProcessDueDeletions executes every pending order whose grace period ended before now and reports how many completed.
func (u *useCase) ProcessDueDeletions(ctx context.Context, now time.Time) (int, error) {
	orders, err := u.privacyRepo.ListDueDeletionOrders(ctx, now)
	if err != nil {
		return 0, err
	}
	completed := 0
	for _, order := range orders {
		if ctx.Err() != nil {
			return completed, ctx.Err()
		}
		if u.processOrder(ctx, order, now) {
			completed++
		}
	}
	if len(orders) > 0 {
		u.logger.Info("due deletions processed", "due", len(orders), "completed", completed)
	}
	return completed, nil
}

func (u *useCase) processOrder(ctx context.Context, order entities.DataDeletionOrder, now time.Time) bool {
	order.Status = entities.DeletionProcessing
	if err := u.privacyRepo.UpdateDeletionOrder(ctx, order); err != nil {
		u.logger.Error("failed to mark deletion processing", "order_id", order.ID, "error", err)
		return false
	}

	processed := now.UTC()
	order.ProcessedDate = &processed
	err := u.reset(ctx, order.UserID, order.DataTypes)
	if err != nil && !errors.Is(err, entities.ErrProfileNotFound) {
		u.logger.Error("data deletion failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
		order.Status = entities.DeletionFailed
		if err = u.privacyRepo.UpdateDeletionOrder(ctx, order); err != nil {
			u.logger.Error("failed to mark deletion failed", "order_id", order.ID, "error", err)
		}
		return false
	}

	order.Status = entities.DeletionCompleted
	if err = u.privacyRepo.UpdateDeletionOrder(ctx, order); err != nil {
		u.logger.Error("failed to mark deletion completed", "order_id", order.ID, "error", err)
		return false
	}
	u.audit(ctx, order.UserID, entities.AuditDataDeleted,
		fmt.Sprintf("order=%s types=%s", order.ID, joinTypes(entities.ExpandDataTypes(order.DataTypes))), entities.RequestMeta{UserAgent: "scheduler"})
	return true
}

func (u *useCase) audit(ctx context.Context, userID uuid.UUID, action entities.AuditAction, details string, meta entities.RequestMeta) {
	err := u.privacyRepo.AddAuditLog(ctx, entities.PrivacyAuditLog{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Timestamp: u.now().UTC(),
	})
	if err != nil {
		u.logger.Error("failed to write privacy audit log", "user_id", userID, "action", action, "error", err)
	}
}
