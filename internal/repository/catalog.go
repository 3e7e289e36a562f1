package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]entities.TechnologyCategory, error)
	ListTechnologies(ctx context.Context) ([]entities.Technology, error)
	GetTechnology(ctx context.Context, technologyID uuid.UUID) (entities.Technology, error)
	CreateTechnology(ctx context.Context, tech entities.Technology, categoryName string) (entities.Technology, error)
	ListAreas(ctx context.Context) ([]entities.TechnicalArea, error)
	ListSpecializedRoles(ctx context.Context) ([]entities.SpecializedRole, error)
	GetSpecializedRole(ctx context.Context, roleID uuid.UUID) (entities.SpecializedRole, error)
	SeedCatalog(ctx context.Context, seed entities.CatalogSeed) error
}
