package profile

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/internal/infrastructure/cache"
	"github.com/Miguelito2774/jala-match-sub001/internal/repository"
	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

const maxNameLength = 100

var mbtiPattern = regexp.MustCompile(`^[EI][SN][TF][JP]$`)

var (
	errNameRequired   = entities.Validation("Profile.NameRequired", "first and last name are required")
	errNameTooLong    = entities.Validation("Profile.NameTooLong", "names must be at most 100 characters")
	errInvalidSfia    = entities.Validation("Profile.InvalidSfia", "sfia level must be between 1 and 7")
	errInvalidMbti    = entities.Validation("Profile.InvalidMbti", "mbti must be a four letter type such as INTJ")
	errProfileNotMine = entities.Forbidden("Profile.Forbidden", "profile belongs to another user")
)

type useCase struct {
	profileRepo repository.ProfileRepository
	catalogRepo repository.CatalogRepository
	userRepo    repository.UserRepository
	cache       cache.Cache
	logger      logger.Logger
}

func New(profileRepo repository.ProfileRepository, catalogRepo repository.CatalogRepository, userRepo repository.UserRepository, c cache.Cache, log logger.Logger) ProfileUseCase {
	return &useCase{
		profileRepo: profileRepo,
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
		cache:       c,
		logger:      log,
	}
}

func validateNames(first, last string) error {
	if strings.TrimSpace(first) == "" || strings.TrimSpace(last) == "" {
		return errNameRequired
	}
	if len(first) > maxNameLength || len(last) > maxNameLength {
		return errNameTooLong
	}
	return nil
}

func normalizeMbti(mbti string) (string, error) {
	mbti = strings.ToUpper(strings.TrimSpace(mbti))
	if mbti == "" {
		return "", nil
	}
	if !mbtiPattern.MatchString(mbti) {
		return "", errInvalidMbti
	}
	return mbti, nil
}

func (u *useCase) Create(ctx context.Context, userID uuid.UUID, input ProfileInput) (entities.EmployeeProfile, error) {
	if err := validateNames(input.FirstName, input.LastName); err != nil {
		return entities.EmployeeProfile{}, err
	}
	if input.SfiaLevel == 0 {
		input.SfiaLevel = entities.MinSfiaLevel
	}
	if !entities.ValidSfia(input.SfiaLevel) {
		return entities.EmployeeProfile{}, errInvalidSfia
	}
	mbti, err := normalizeMbti(input.Mbti)
	if err != nil {
		return entities.EmployeeProfile{}, err
	}
	if _, err = u.userRepo.GetUser(ctx, userID); err != nil {
		return entities.EmployeeProfile{}, err
	}

	u.logger.Info("creating profile", "user_id", userID)
	created, err := u.profileRepo.CreateProfile(ctx, entities.EmployeeProfile{
		ID:                 uuid.New(),
		UserID:             userID,
		FirstName:          strings.TrimSpace(input.FirstName),
		LastName:           strings.TrimSpace(input.LastName),
		Availability:       true,
		Country:            strings.TrimSpace(input.Country),
		Timezone:           strings.TrimSpace(input.Timezone),
		SfiaLevelGeneral:   input.SfiaLevel,
		Specialization:     strings.TrimSpace(input.Specialization),
		Mbti:               mbti,
		VerificationStatus: entities.VerificationNotRequested,
	})
	if err != nil {
		return entities.EmployeeProfile{}, err
	}
	return created, nil
}

func (u *useCase) Get(ctx context.Context, profileID uuid.UUID) (entities.CompleteProfile, error) {
	return cache.GetOrCreate(ctx, u.cache, Tag(profileID), []string{Tag(profileID)}, func(ctx context.Context) (entities.CompleteProfile, error) {
		return u.profileRepo.GetCompleteProfile(ctx, profileID)
	})
}

func (u *useCase) GetByUser(ctx context.Context, userID uuid.UUID) (entities.CompleteProfile, error) {
	p, err := u.profileRepo.GetProfileByUser(ctx, userID)
	if err != nil {
		return entities.CompleteProfile{}, err
	}
	return u.Get(ctx, p.ID)
}

// CanEdit allows managers and admins on any profile and employees on their own.
func (u *useCase) CanEdit(ctx context.Context, actor entities.Actor, profileID uuid.UUID) error {
	p, err := u.profileRepo.GetProfile(ctx, profileID)
	if err != nil {
		return err
	}
	if actor.Role == entities.RoleAdmin || actor.Role == entities.RoleManager || p.UserID == actor.UserID {
		return nil
	}
	return errProfileNotMine
}

func (u *useCase) UpdateGeneral(ctx context.Context, profileID uuid.UUID, input GeneralInput) (entities.EmployeeProfile, error) {
	if err := validateNames(input.FirstName, input.LastName); err != nil {
		return entities.EmployeeProfile{}, err
	}
	p, err := u.profileRepo.GetProfile(ctx, profileID)
	if err != nil {
		return entities.EmployeeProfile{}, err
	}
	p.FirstName = strings.TrimSpace(input.FirstName)
	p.LastName = strings.TrimSpace(input.LastName)
	p.Country = strings.TrimSpace(input.Country)
	p.Timezone = strings.TrimSpace(input.Timezone)
	p.Availability = input.Availability
	return u.saveProfile(ctx, p)
}

func (u *useCase) UpdateTechnical(ctx context.Context, profileID uuid.UUID, input TechnicalInput) (entities.EmployeeProfile, error) {
	if !entities.ValidSfia(input.SfiaLevel) {
		return entities.EmployeeProfile{}, errInvalidSfia
	}
	mbti, err := normalizeMbti(input.Mbti)
	if err != nil {
		return entities.EmployeeProfile{}, err
	}
	p, err := u.profileRepo.GetProfile(ctx, profileID)
	if err != nil {
		return entities.EmployeeProfile{}, err
	}
	p.SfiaLevelGeneral = input.SfiaLevel
	p.Mbti = mbti
	p.Specialization = strings.TrimSpace(input.Specialization)
	return u.saveProfile(ctx, p)
}

func (u *useCase) saveProfile(ctx context.Context, p entities.EmployeeProfile) (entities.EmployeeProfile, error) {
	updated, err := u.profileRepo.UpdateProfile(ctx, p)
	if err != nil {
		return entities.EmployeeProfile{}, err
	}
	u.evict(ctx, p.ID)
	u.logger.Info("profile updated", "profile_id", p.ID)
	return updated, nil
}

func (u *useCase) evict(ctx context.Context, profileID uuid.UUID) {
	if err := u.cache.EvictByTag(ctx, Tag(profileID)); err != nil {
		u.logger.Error("failed to evict profile cache", "profile_id", profileID, "error", err)
	}
}

// ensureProfile turns a missing parent into ErrProfileNotFound before child mutations.
func (u *useCase) ensureProfile(ctx context.Context, profileID uuid.UUID) error {
	_, err := u.profileRepo.GetProfile(ctx, profileID)
	return err
}
