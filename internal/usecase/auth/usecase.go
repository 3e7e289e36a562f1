package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/internal/repository"
	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

const minPasswordLength = 8

var (
	errInvalidEmail = entities.Validation("Auth.InvalidEmail", "a valid email is required")
	errWeakPassword = entities.Validation("Auth.WeakPassword", "password must be at least 8 characters")
	errInvalidRole  = entities.Validation("Invitation.InvalidRole", "invitations can only target Manager or Admin")
)

type useCase struct {
	userRepo       repository.UserRepository
	invitationRepo repository.InvitationRepository
	tokens         TokenIssuer
	hasher         PasswordHasher
	now            func() time.Time
	logger         logger.Logger
}

func New(userRepo repository.UserRepository, invitationRepo repository.InvitationRepository, tokens TokenIssuer, hasher PasswordHasher, log logger.Logger) AuthUseCase {
	return &useCase{
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		tokens:         tokens,
		hasher:         hasher,
		now:            time.Now,
		logger:         log,
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", errInvalidEmail
	}
	return email, nil
}

func (u *useCase) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			u.logger.Info("login failed", "reason", "unknown email")
			return AuthResult{}, entities.ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if !u.hasher.Verify(user.PasswordHash, password) {
		u.logger.Info("login failed", "user_id", user.ID, "reason", "password mismatch")
		return AuthResult{}, entities.ErrInvalidCredentials
	}
	return u.authenticate(ctx, user)
}

func (u *useCase) RegisterEmployee(ctx context.Context, email, password string) (AuthResult, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return AuthResult{}, err
	}
	if len(password) < minPasswordLength {
		return AuthResult{}, errWeakPassword
	}
	exists, err := u.userRepo.EmailExists(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if exists {
		return AuthResult{}, entities.ErrEmailExists
	}
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, err
	}

	user := entities.User{ID: uuid.New(), Email: email, PasswordHash: hash, Role: entities.RoleEmployee}
	profile := entities.EmployeeProfile{
		ID:                 uuid.New(),
		UserID:             user.ID,
		Availability:       false,
		SfiaLevelGeneral:   entities.MinSfiaLevel,
		VerificationStatus: entities.VerificationNotRequested,
	}
	created, err := u.userRepo.CreateUserWithProfile(ctx, user, profile)
	if err != nil {
		return AuthResult{}, err
	}
	u.logger.Info("employee registered", "user_id", created.ID)
	return u.authenticate(ctx, created)
}

func (u *useCase) RegisterWithInvitation(ctx context.Context, token, email, password string) (AuthResult, error) {
	invitation, err := u.ValidateInvitation(ctx, token)
	if err != nil {
		return AuthResult{}, err
	}
	email, err = normalizeEmail(email)
	if err != nil {
		return AuthResult{}, err
	}
	if !strings.EqualFold(invitation.Email, email) {
		return AuthResult{}, entities.ErrInvitationEmailMismatch
	}
	if len(password) < minPasswordLength {
		return AuthResult{}, errWeakPassword
	}
	exists, err := u.userRepo.EmailExists(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if exists {
		return AuthResult{}, entities.ErrEmailExists
	}
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, err
	}

	user := entities.User{ID: uuid.New(), Email: email, PasswordHash: hash, Role: invitation.TargetRole}
	created, err := u.invitationRepo.CreateUserFromInvitation(ctx, user, invitation.ID, u.now().UTC())
	if err != nil {
		return AuthResult{}, err
	}
	u.logger.Info("user registered from invitation", "user_id", created.ID, "role", created.Role, "invitation_id", invitation.ID)
	return u.authenticate(ctx, created)
}

func (u *useCase) CreateInvitation(ctx context.Context, actor entities.Actor, email string, role entities.Role) (entities.InvitationLink, error) {
	if actor.Role != entities.RoleAdmin {
		return entities.InvitationLink{}, entities.ErrInvitationForbidden
	}
	if role != entities.RoleManager && role != entities.RoleAdmin {
		return entities.InvitationLink{}, errInvalidRole
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return entities.InvitationLink{}, err
	}

	now := u.now().UTC()
	invitation := entities.InvitationLink{
		ID:          uuid.New(),
		Token:       strings.ReplaceAll(uuid.NewString(), "-", ""),
		CreatedByID: actor.UserID,
		Email:       email,
		TargetRole:  role,
		ExpiresAt:   now.Add(entities.InvitationTTL),
		CreatedAt:   now,
	}
	created, err := u.invitationRepo.CreateInvitation(ctx, invitation)
	if err != nil {
		return entities.InvitationLink{}, err
	}
	u.logger.Info("invitation issued", "invitation_id", created.ID, "role", role, "created_by", actor.UserID)
	return created, nil
}

func (u *useCase) ValidateInvitation(ctx context.Context, token string) (entities.InvitationLink, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.InvitationLink{}, entities.ErrInvitationNotFound
	}
	invitation, err := u.invitationRepo.GetInvitationByToken(ctx, token)
	if err != nil {
		return entities.InvitationLink{}, err
	}
	if !invitation.Usable(u.now()) {
		return entities.InvitationLink{}, entities.ErrInvitationInvalid
	}
	return invitation, nil
}

func (u *useCase) GetUser(ctx context.Context, userID uuid.UUID) (entities.UserInfo, error) {
	return u.userRepo.GetUserInfo(ctx, userID)
}

// EnsureAdmin creates the bootstrap administrator when the system has none.
func (u *useCase) EnsureAdmin(ctx context.Context, email, password string) error {
	exists, err := u.userRepo.RoleExists(ctx, entities.RoleAdmin)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	email, err = normalizeEmail(email)
	if err != nil {
		return err
	}
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}
	created, err := u.userRepo.CreateUser(ctx, entities.User{ID: uuid.New(), Email: email, PasswordHash: hash, Role: entities.RoleAdmin})
	if err != nil {
		return err
	}
	u.logger.Info("bootstrap admin created", "user_id", created.ID)
	return nil
}

func (u *useCase) authenticate(ctx context.Context, user entities.User) (AuthResult, error) {
	info, err := u.userRepo.GetUserInfo(ctx, user.ID)
	if err != nil {
		return AuthResult{}, err
	}
	token, expiresAt, err := u.tokens.Issue(user)
	if err != nil {
		u.logger.Error("failed to issue token", "user_id", user.ID, "error", err)
		return AuthResult{}, err
	}
	return AuthResult{Token: token, ExpiresAt: expiresAt, User: info}, nil
}
