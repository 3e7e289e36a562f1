package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user entities.User) (entities.User, error)
	CreateUserWithProfile(ctx context.Context, user entities.User, profile entities.EmployeeProfile) (entities.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
	GetUserByProfile(ctx context.Context, profileID uuid.UUID) (entities.User, error)
	GetUserInfo(ctx context.Context, userID uuid.UUID) (entities.UserInfo, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	RoleExists(ctx context.Context, role entities.Role) (bool, error)
}

type InvitationRepository interface {
	CreateInvitation(ctx context.Context, invitation entities.InvitationLink) (entities.InvitationLink, error)
	GetInvitationByToken(ctx context.Context, token string) (entities.InvitationLink, error)
	CreateUserFromInvitation(ctx context.Context, user entities.User, invitationID uuid.UUID, usedAt time.Time) (entities.User, error)
}
