package catalog

import (
	"context"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

type CatalogUseCase interface {
	ListCategories(ctx context.Context) ([]entities.TechnologyCategory, error)
	ListTechnologies(ctx context.Context) ([]entities.Technology, error)
	CreateTechnology(ctx context.Context, actor entities.Actor, input TechnologyInput) (entities.Technology, error)
	ListAreas(ctx context.Context) ([]entities.TechnicalArea, error)
	Mapping(ctx context.Context) ([]entities.AreaRoles, error)
	AvailableRoles() []entities.RoleOption
	WeightCriteria() []entities.WeightCriterion
	Seed(ctx context.Context, seed entities.CatalogSeed) error
	SeedFromFile(ctx context.Context, path string) error
}

type TechnologyInput struct {
	Name        string
	Category    string
	Version     string
	Description string
}

// Tag is the cache tag shared by every cached catalog list.
const Tag = "catalog"
