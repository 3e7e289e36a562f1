package entities

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserInfo is the public view of a user with profile flags.
type UserInfo struct {
	ID                uuid.UUID
	Email             string
	Role              Role
	ProfileID         *uuid.UUID
	HasProfile        bool
	IsProfileVerified bool
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

const InvitationTTL = 7 * 24 * time.Hour

type InvitationLink struct {
	ID          uuid.UUID
	Token       string
	CreatedByID uuid.UUID
	Email       string
	TargetRole  Role
	ExpiresAt   time.Time
	IsUsed      bool
	UsedAt      *time.Time
	CreatedAt   time.Time
}

func (i InvitationLink) Usable(now time.Time) bool {
	return !i.IsUsed && now.Before(i.ExpiresAt)
}
