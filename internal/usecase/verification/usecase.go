package verification

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/internal/infrastructure/cache"
	"github.com/Miguelito2774/jala-match-sub001/internal/repository"
	"github.com/Miguelito2774/jala-match-sub001/internal/usecase/profile"
	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

var (
	errReviewerForbidden = entities.Forbidden("Verification.Forbidden", "only managers can review profiles")
	errInvalidSfia       = entities.Validation("Verification.InvalidSfia", "sfia level must be between 1 and 7")
)

type useCase struct {
	profiles         ProfileReader
	verificationRepo repository.VerificationRepository
	cache            cache.Cache
	notifier         Notifier
	logger           logger.Logger
	now              func() time.Time
}

func New(profiles ProfileReader, verificationRepo repository.VerificationRepository, c cache.Cache, notifier Notifier, log logger.Logger) VerificationUseCase {
	return &useCase{
		profiles:         profiles,
		verificationRepo: verificationRepo,
		cache:            c,
		notifier:         notifier,
		logger:           log,
		now:              time.Now,
	}
}

func (u *useCase) Request(ctx context.Context, profileID uuid.UUID) (entities.ProfileVerification, error) {
	complete, err := u.profiles.GetCompleteProfile(ctx, profileID)
	if err != nil {
		return entities.ProfileVerification{}, err
	}
	switch complete.Profile.VerificationStatus {
	case entities.VerificationApproved:
		return entities.ProfileVerification{}, entities.ErrVerificationAlreadyVerified
	case entities.VerificationPending:
		return entities.ProfileVerification{}, entities.ErrVerificationAlreadyRequested
	}
	if missing := complete.MissingForVerification(); len(missing) > 0 {
		return entities.ProfileVerification{}, entities.Validation("Verification.IncompleteProfile",
			"profile is incomplete, missing: "+strings.Join(missing, ", "))
	}

	sfia := complete.Profile.SfiaLevelGeneral
	created, err := u.verificationRepo.CreateVerificationRequest(ctx, entities.ProfileVerification{
		ID:           uuid.New(),
		ProfileID:    profileID,
		SfiaProposed: &sfia,
		Status:       entities.VerificationPending,
		RequestedAt:  u.now().UTC(),
	})
	if err != nil {
		return entities.ProfileVerification{}, err
	}
	u.evict(ctx, profileID)
	u.logger.Info("verification requested", "profile_id", profileID)
	return created, nil
}

func (u *useCase) ListPending(ctx context.Context, page, pageSize int) (entities.Page[entities.PendingVerification], error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	items, total, err := u.verificationRepo.ListPendingVerifications(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return entities.Page[entities.PendingVerification]{}, err
	}
	return entities.Page[entities.PendingVerification]{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (u *useCase) GetForReview(ctx context.Context, profileID uuid.UUID) (entities.ProfileReview, error) {
	complete, err := u.profiles.GetCompleteProfile(ctx, profileID)
	if err != nil {
		return entities.ProfileReview{}, err
	}
	now := u.now()
	summaries := make([]entities.ExperienceSummary, 0, len(complete.WorkExperiences))
	months := 0
	for _, exp := range complete.WorkExperiences {
		m := exp.Months(now)
		months += m
		summaries = append(summaries, entities.ExperienceSummary{Experience: exp, DurationMonths: m})
	}
	return entities.ProfileReview{
		Profile:              complete,
		Experiences:          summaries,
		TotalExperienceYears: math.Round(float64(months)/12*10) / 10,
	}, nil
}

func (u *useCase) Approve(ctx context.Context, profileID uuid.UUID, reviewer entities.Actor, input ReviewInput) (entities.ProfileVerification, error) {
	if input.SfiaLevel != nil && !entities.ValidSfia(*input.SfiaLevel) {
		return entities.ProfileVerification{}, errInvalidSfia
	}
	return u.complete(ctx, profileID, reviewer, func(p *entities.EmployeeProfile) {
		p.VerificationStatus = entities.VerificationApproved
		p.VerificationNotes = strings.TrimSpace(input.Notes)
		p.Availability = true
		if input.SfiaLevel != nil {
			p.SfiaLevelGeneral = *input.SfiaLevel
		}
	}, entities.NotifyProfileApproved)
}

func (u *useCase) Reject(ctx context.Context, profileID uuid.UUID, reviewer entities.Actor, notes string) (entities.ProfileVerification, error) {
	return u.complete(ctx, profileID, reviewer, func(p *entities.EmployeeProfile) {
		p.VerificationStatus = entities.VerificationRejected
		p.VerificationNotes = strings.TrimSpace(notes)
		p.Availability = false
	}, entities.NotifyProfileRejected)
}

func (u *useCase) complete(ctx context.Context, profileID uuid.UUID, reviewer entities.Actor, apply func(*entities.EmployeeProfile), kind entities.NotificationType) (entities.ProfileVerification, error) {
	if reviewer.Role != entities.RoleManager {
		return entities.ProfileVerification{}, errReviewerForbidden
	}
	p, err := u.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return entities.ProfileVerification{}, err
	}
	if p.VerificationStatus != entities.VerificationPending {
		return entities.ProfileVerification{}, entities.ErrVerificationInvalidStatus
	}
	apply(&p)

	done, err := u.verificationRepo.CompleteVerification(ctx, p, reviewer.UserID, u.now().UTC())
	if err != nil {
		return entities.ProfileVerification{}, err
	}
	u.evict(ctx, profileID)
	u.notifier.Enqueue(entities.Notification{
		Type:              kind,
		EmployeeProfileID: profileID,
		Notes:             p.VerificationNotes,
	})
	u.logger.Info("verification reviewed", "profile_id", profileID, "reviewer_id", reviewer.UserID, "status", p.VerificationStatus)
	return done, nil
}

func (u *useCase) History(ctx context.Context, profileID uuid.UUID) ([]entities.ProfileVerification, error) {
	if _, err := u.profiles.GetProfile(ctx, profileID); err != nil {
		return nil, err
	}
	return u.verificationRepo.ListVerifications(ctx, profileID)
}

func (u *useCase) evict(ctx context.Context, profileID uuid.UUID) {
	if err := u.cache.EvictByTag(ctx, profile.Tag(profileID)); err != nil {
		u.logger.Error("failed to evict profile cache", "profile_id", profileID, "error", err)
	}
}
