package usecase

import (
	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/internal/infrastructure/cache"
	"github.com/Miguelito2774/jala-match-sub001/internal/repository"
	"github.com/Miguelito2774/jala-match-sub001/internal/usecase/auth"
	"github.com/Miguelito2774/jala-match-sub001/internal/usecase/catalog"
	"github.com/Miguelito2774/jala-match-sub001/internal/usecase/privacy"
	"github.com/Miguelito2774/jala-match-sub001/internal/usecase/profile"
	"github.com/Miguelito2774/jala-match-sub001/internal/usecase/team"
	"github.com/Miguelito2774/jala-match-sub001/internal/usecase/verification"
	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

// UseCases groups every application service the transport layer talks to.
type UseCases struct {
	Auth         auth.AuthUseCase
	Profiles     profile.ProfileUseCase
	Catalog      catalog.CatalogUseCase
	Verification verification.VerificationUseCase
	Teams        team.TeamUseCase
	Privacy      privacy.PrivacyUseCase
}

type Notifier interface {
	Enqueue(n entities.Notification) bool
}

type Dependencies struct {
	Repo     repository.Repository
	Tokens   auth.TokenIssuer
	Hasher   auth.PasswordHasher
	Cache    cache.Cache
	AI       team.AIService
	Notifier Notifier
	Logger   logger.Logger
}

func New(d Dependencies) UseCases {
	return UseCases{
		Auth:         auth.New(d.Repo, d.Repo, d.Tokens, d.Hasher, d.Logger),
		Profiles:     profile.New(d.Repo, d.Repo, d.Repo, d.Cache, d.Logger),
		Catalog:      catalog.New(d.Repo, d.Cache, d.Logger),
		Verification: verification.New(d.Repo, d.Repo, d.Cache, d.Notifier, d.Logger),
		Teams:        team.New(d.Repo, d.Repo, d.AI, d.Notifier, d.Logger),
		Privacy:      privacy.New(d.Repo, d.Repo, d.Repo, d.Repo, d.Cache, d.Logger),
	}
}
