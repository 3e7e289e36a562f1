package entities

import (
	"time"

	"github.com/google/uuid"
)

type ProfileVerification struct {
	ID           uuid.UUID
	ProfileID    uuid.UUID
	ReviewerID   *uuid.UUID
	SfiaProposed *int
	Status       VerificationStatus
	Notes        string
	RequestedAt  time.Time
	ReviewedAt   *time.Time
}

type PendingVerification struct {
	ProfileID      uuid.UUID
	Email          string
	FullName       string
	SfiaLevel      int
	Specialization string
	RequestedAt    time.Time
}

type Page[T any] struct {
	Items      []T
	TotalCount int
	Page       int
	PageSize   int
}

type ExperienceSummary struct {
	Experience     WorkExperience
	DurationMonths int
}

// ProfileReview is what a manager looks at when verifying a profile.
type ProfileReview struct {
	Profile              CompleteProfile
	Experiences          []ExperienceSummary
	TotalExperienceYears float64
}
