package entities

import "github.com/google/uuid"

type TechnologyCategory struct {
	ID   uuid.UUID
	Name string
}

type Technology struct {
	ID           uuid.UUID
	Name         string
	CategoryID   uuid.UUID
	CategoryName string
	Version      string
	Description  string
}

type TechnicalArea struct {
	ID   uuid.UUID
	Name string
}

type SpecializedRole struct {
	ID              uuid.UUID
	Name            string
	TechnicalAreaID uuid.UUID
}

type AreaRoles struct {
	Area  TechnicalArea
	Roles []SpecializedRole
}

type RoleOption struct {
	Role   string
	Areas  []string
	Levels []string
}

type WeightCriterion struct {
	ID           string
	Name         string
	DefaultValue int
}

// CatalogSeed is the reference data loaded at startup.
type CatalogSeed struct {
	Categories []SeedCategory `yaml:"categories"`
	Areas      []SeedArea     `yaml:"areas"`
}

type SeedCategory struct {
	Name         string           `yaml:"name"`
	Technologies []SeedTechnology `yaml:"technologies"`
}

type SeedTechnology struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

type SeedArea struct {
	Name  string   `yaml:"name"`
	Roles []string `yaml:"roles"`
}

var RoleLevels = []string{"Junior", "Staff", "Senior", "Architect"}

func ValidRoleLevel(level string) bool {
	for _, l := range RoleLevels {
		if l == level {
			return true
		}
	}
	return false
}
