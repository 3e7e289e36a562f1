package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/internal/infrastructure/cache"
	"github.com/Miguelito2774/jala-match-sub001/internal/repository"
	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

var (
	errTechnologyName     = entities.Validation("Technology.NameRequired", "technology name is required")
	errTechnologyCategory = entities.Validation("Technology.CategoryRequired", "technology category is required")
	errCatalogForbidden   = entities.Forbidden("Technology.Forbidden", "only admins can manage the catalog")
)

type useCase struct {
	catalogRepo repository.CatalogRepository
	cache       cache.Cache
	logger      logger.Logger
}

func New(catalogRepo repository.CatalogRepository, c cache.Cache, log logger.Logger) CatalogUseCase {
	return &useCase{
		catalogRepo: catalogRepo,
		cache:       c,
		logger:      log,
	}
}

func (u *useCase) ListCategories(ctx context.Context) ([]entities.TechnologyCategory, error) {
	return cache.GetOrCreate(ctx, u.cache, "catalog:categories", []string{Tag}, u.catalogRepo.ListCategories)
}

func (u *useCase) ListTechnologies(ctx context.Context) ([]entities.Technology, error) {
	return cache.GetOrCreate(ctx, u.cache, "catalog:technologies", []string{Tag}, u.catalogRepo.ListTechnologies)
}

func (u *useCase) CreateTechnology(ctx context.Context, actor entities.Actor, input TechnologyInput) (entities.Technology, error) {
	if actor.Role != entities.RoleAdmin {
		return entities.Technology{}, errCatalogForbidden
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return entities.Technology{}, errTechnologyName
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return entities.Technology{}, errTechnologyCategory
	}

	created, err := u.catalogRepo.CreateTechnology(ctx, entities.Technology{
		Name:        name,
		Version:     strings.TrimSpace(input.Version),
		Description: input.Description,
	}, category)
	if err != nil {
		return entities.Technology{}, err
	}
	u.evict(ctx)
	u.logger.Info("technology created", "technology_id", created.ID, "name", created.Name, "category", category)
	return created, nil
}

func (u *useCase) ListAreas(ctx context.Context) ([]entities.TechnicalArea, error) {
	return cache.GetOrCreate(ctx, u.cache, "catalog:areas", []string{Tag}, u.catalogRepo.ListAreas)
}

// Mapping groups the specialized roles under their technical area.
func (u *useCase) Mapping(ctx context.Context) ([]entities.AreaRoles, error) {
	return cache.GetOrCreate(ctx, u.cache, "catalog:mapping", []string{Tag}, func(ctx context.Context) ([]entities.AreaRoles, error) {
		areas, err := u.catalogRepo.ListAreas(ctx)
		if err != nil {
			return nil, err
		}
		roles, err := u.catalogRepo.ListSpecializedRoles(ctx)
		if err != nil {
			return nil, err
		}
		byArea := make(map[string][]entities.SpecializedRole, len(areas))
		for _, r := range roles {
			key := r.TechnicalAreaID.String()
			byArea[key] = append(byArea[key], r)
		}
		mapping := make([]entities.AreaRoles, 0, len(areas))
		for _, a := range areas {
			list := byArea[a.ID.String()]
			if list == nil {
				list = []entities.SpecializedRole{}
			}
			mapping = append(mapping, entities.AreaRoles{Area: a, Roles: list})
		}
		return mapping, nil
	})
}

func (u *useCase) AvailableRoles() []entities.RoleOption {
	out := make([]entities.RoleOption, 0, len(availableRoles))
	for _, r := range availableRoles {
		out = append(out, entities.RoleOption{
			Role:   r.Role,
			Areas:  append([]string(nil), r.Areas...),
			Levels: append([]string(nil), entities.RoleLevels...),
		})
	}
	return out
}

func (u *useCase) WeightCriteria() []entities.WeightCriterion {
	return append([]entities.WeightCriterion(nil), weightCriteria...)
}

func (u *useCase) Seed(ctx context.Context, seed entities.CatalogSeed) error {
	if err := u.catalogRepo.SeedCatalog(ctx, seed); err != nil {
		return err
	}
	u.evict(ctx)
	u.logger.Info("catalog seeded", "categories", len(seed.Categories), "areas", len(seed.Areas))
	return nil
}

// SeedFromFile loads a YAML catalog seed and applies it.
func (u *useCase) SeedFromFile(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog seed: %w", err)
	}
	seed, err := ParseSeed(raw)
	if err != nil {
		return err
	}
	return u.Seed(ctx, seed)
}

func ParseSeed(raw []byte) (entities.CatalogSeed, error) {
	var seed entities.CatalogSeed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return entities.CatalogSeed{}, fmt.Errorf("parse catalog seed: %w", err)
	}
	for _, c := range seed.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return entities.CatalogSeed{}, fmt.Errorf("parse catalog seed: category without name")
		}
	}
	for _, a := range seed.Areas {
		if strings.TrimSpace(a.Name) == "" {
			return entities.CatalogSeed{}, fmt.Errorf("parse catalog seed: area without name")
		}
	}
	return seed, nil
}

func (u *useCase) evict(ctx context.Context) {
	if err := u.cache.EvictByTag(ctx, Tag); err != nil {
		u.logger.Error("failed to evict catalog cache", "error", err)
	}
}
