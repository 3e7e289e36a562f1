package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]entities.TechnologyCategory, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM technology_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []entities.TechnologyCategory{}
	for rows.Next() {
		var c entities.TechnologyCategory
		if err = rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

const technologyQuery = `SELECT t.id, t.name, t.category_id, c.name, t.version, t.description
	FROM technologies t JOIN technology_categories c ON c.id = t.category_id`

func scanTechnology(row scanner) (entities.Technology, error) {
	var t entities.Technology
	err := row.Scan(&t.ID, &t.Name, &t.CategoryID, &t.CategoryName, &t.Version, &t.Description)
	return t, err
}

func (r *PostgresRepository) ListTechnologies(ctx context.Context) ([]entities.Technology, error) {
	rows, err := r.pool.Query(ctx, technologyQuery+` ORDER BY c.name, t.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	techs := []entities.Technology{}
	for rows.Next() {
		t, err := scanTechnology(rows)
		if err != nil {
			return nil, err
		}
		techs = append(techs, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return techs, nil
}

func (r *PostgresRepository) GetTechnology(ctx context.Context, technologyID uuid.UUID) (entities.Technology, error) {
	t, err := scanTechnology(r.pool.QueryRow(ctx, technologyQuery+` WHERE t.id=$1`, technologyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Technology{}, entities.ErrTechnologyNotFound
	}
	return t, err
}

func (r *PostgresRepository) CreateTechnology(ctx context.Context, tech entities.Technology, categoryName string) (entities.Technology, error) {
	r.logger.Debug("creating technology", "name", tech.Name, "category", categoryName)
	var categoryID uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT id FROM technology_categories WHERE lower(name)=lower($1)`, categoryName).Scan(&categoryID)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Technology{}, entities.ErrCategoryNotFound
	}
	if err != nil {
		return entities.Technology{}, err
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO technologies (id, name, category_id, version, description) VALUES ($1,$2,$3,$4,$5)`,
		tech.ID, tech.Name, categoryID, tech.Version, tech.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.Technology{}, entities.ErrTechnologyExists
		}
		r.logger.Error("failed to insert technology", "error", err)
		return entities.Technology{}, err
	}
	r.logger.Info("technology created", "technology_id", tech.ID)
	return r.GetTechnology(ctx, tech.ID)
}

func (r *PostgresRepository) ListAreas(ctx context.Context) ([]entities.TechnicalArea, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM technical_areas ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	areas := []entities.TechnicalArea{}
	for rows.Next() {
		var a entities.TechnicalArea
		if err = rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return areas, nil
}

func (r *PostgresRepository) ListSpecializedRoles(ctx context.Context) ([]entities.SpecializedRole, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, technical_area_id FROM specialized_roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []entities.SpecializedRole{}
	for rows.Next() {
		var sr entities.SpecializedRole
		if err = rows.Scan(&sr.ID, &sr.Name, &sr.TechnicalAreaID); err != nil {
			return nil, err
		}
		roles = append(roles, sr)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *PostgresRepository) GetSpecializedRole(ctx context.Context, roleID uuid.UUID) (entities.SpecializedRole, error) {
	var sr entities.SpecializedRole
	err := r.pool.QueryRow(ctx, `SELECT id, name, technical_area_id FROM specialized_roles WHERE id=$1`, roleID).
		Scan(&sr.ID, &sr.Name, &sr.TechnicalAreaID)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.SpecializedRole{}, entities.ErrRoleNotFound
	}
	return sr, err
}

// SeedCatalog inserts missing reference rows and leaves existing ones untouched.
func (r *PostgresRepository) SeedCatalog(ctx context.Context, seed entities.CatalogSeed) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, c := range seed.Categories {
		var categoryID uuid.UUID
		err = tx.QueryRow(ctx, `INSERT INTO technology_categories (id, name) VALUES ($1,$2)
			ON CONFLICT (name) DO UPDATE SET name=EXCLUDED.name RETURNING id`, uuid.New(), c.Name).Scan(&categoryID)
		if err != nil {
			r.logger.Error("failed to seed category", "name", c.Name, "error", err)
			return err
		}
		for _, t := range c.Technologies {
			_, err = tx.Exec(ctx, `INSERT INTO technologies (id, name, category_id, version, description) VALUES ($1,$2,$3,$4,$5)
				ON CONFLICT DO NOTHING`, uuid.New(), t.Name, categoryID, t.Version, t.Description)
			if err != nil {
				r.logger.Error("failed to seed technology", "name", t.Name, "error", err)
				return err
			}
		}
	}

	for _, a := range seed.Areas {
		var areaID uuid.UUID
		err = tx.QueryRow(ctx, `INSERT INTO technical_areas (id, name) VALUES ($1,$2)
			ON CONFLICT (name) DO UPDATE SET name=EXCLUDED.name RETURNING id`, uuid.New(), a.Name).Scan(&areaID)
		if err != nil {
			r.logger.Error("failed to seed area", "name", a.Name, "error", err)
			return err
		}
		for _, role := range a.Roles {
			_, err = tx.Exec(ctx, `INSERT INTO specialized_roles (id, name, technical_area_id) VALUES ($1,$2,$3)
				ON CONFLICT (technical_area_id, name) DO NOTHING`, uuid.New(), role, areaID)
			if err != nil {
				return err
			}
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Info("catalog seeded", "categories", len(seed.Categories), "areas", len(seed.Areas))
	return nil
}
