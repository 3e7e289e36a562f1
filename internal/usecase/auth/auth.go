package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      entities.UserInfo
}

type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (AuthResult, error)
	RegisterEmployee(ctx context.Context, email, password string) (AuthResult, error)
	RegisterWithInvitation(ctx context.Context, token, email, password string) (AuthResult, error)
	CreateInvitation(ctx context.Context, actor entities.Actor, email string, role entities.Role) (entities.InvitationLink, error)
	ValidateInvitation(ctx context.Context, token string) (entities.InvitationLink, error)
	GetUser(ctx context.Context, userID uuid.UUID) (entities.UserInfo, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

type TokenIssuer interface {
	Issue(user entities.User) (string, time.Time, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}
