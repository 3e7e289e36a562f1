package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

var (
	errLanguageRequired   = entities.Validation("Language.Required", "language is required")
	errProjectRequired    = entities.Validation("WorkExperience.ProjectRequired", "project name is required")
	errStartDateRequired  = entities.Validation("WorkExperience.StartDateRequired", "start date is required")
	errEndBeforeStart     = entities.Validation("WorkExperience.InvalidDates", "end date must not precede start date")
	errInterestRequired   = entities.Validation("Interest.NameRequired", "interest name is required")
	errInterestLevel      = entities.Validation("Interest.InvalidLevel", "interest level must be between 1 and 5")
	errSessionDuration    = entities.Validation("Interest.InvalidDuration", "session duration must not be negative")
	errNegativeYears      = entities.Validation("EmployeeTechnology.InvalidYears", "years of experience must not be negative")
	errInvalidRoleLevel   = entities.Validation("EmployeeRole.InvalidLevel", "level must be Junior, Staff, Senior or Architect")
	errNegativeRoleYears  = entities.Validation("EmployeeRole.InvalidYears", "years of experience must not be negative")
	errTechnologyRequired = entities.Validation("EmployeeTechnology.Required", "technology is required")
)

func (u *useCase) ListLanguages(ctx context.Context, profileID uuid.UUID) ([]entities.EmployeeLanguage, error) {
	if err := u.ensureProfile(ctx, profileID); err != nil {
		return nil, err
	}
	return u.profileRepo.ListLanguages(ctx, profileID)
}

func (u *useCase) AddLanguage(ctx context.Context, profileID uuid.UUID, input LanguageInput) (entities.EmployeeLanguage, error) {
	if strings.TrimSpace(input.Language) == "" {
		return entities.EmployeeLanguage{}, errLanguageRequired
	}
	if err := u.ensureProfile(ctx, profileID); err != nil {
		return entities.EmployeeLanguage{}, err
	}
	added, err := u.profileRepo.AddLanguage(ctx, entities.EmployeeLanguage{
		ID:          uuid.New(),
		ProfileID:   profileID,
		Language:    strings.TrimSpace(input.Language),
		Proficiency: strings.TrimSpace(input.Proficiency),
	})
	if err != nil {
		return entities.EmployeeLanguage{}, err
	}
	u.evict(ctx, profileID)
	return added, nil
}

func (u *useCase) UpdateLanguage(ctx context.Context, profileID, languageID uuid.UUID, input LanguageInput) (entities.EmployeeLanguage, error) {
	if strings.TrimSpace(input.Language) == "" {
		return entities.EmployeeLanguage{}, errLanguageRequired
	}
	updated, err := u.profileRepo.UpdateLanguage(ctx, entities.EmployeeLanguage{
		ID:          languageID,
		ProfileID:   profileID,
		Language:    strings.TrimSpace(input.Language),
		Proficiency: strings.TrimSpace(input.Proficiency),
	})
	if err != nil {
		return entities.EmployeeLanguage{}, err
	}
	u.evict(ctx, profileID)
	return updated, nil
}

func (u *useCase) RemoveLanguage(ctx context.Context, profileID, languageID uuid.UUID) error {
	if err := u.profileRepo.DeleteLanguage(ctx, profileID, languageID); err != nil {
		return err
	}
	u.evict(ctx, profileID)
	return nil
}

func validateExperience(input ExperienceInput) error {
	if strings.TrimSpace(input.ProjectName) == "" {
		return errProjectRequired
	}
	if input.StartDate.IsZero() {
		return errStartDateRequired
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return errEndBeforeStart
	}
	return nil
}

func experienceFromInput(id, profileID uuid.UUID, input ExperienceInput) entities.WorkExperience {
	return entities.WorkExperience{
		ID:                id,
		ProfileID:         profileID,
		ProjectName:       strings.TrimSpace(input.ProjectName),
		Description:       input.Description,
		Tools:             input.Tools,
		ThirdParties:      input.ThirdParties,
		Frameworks:        input.Frameworks,
		VersionControl:    input.VersionControl,
		ProjectManagement: input.ProjectManagement,
		Responsibilities:  input.Responsibilities,
		StartDate:         input.StartDate,
		EndDate:           input.EndDate,
	}
}

func (u *useCase) ListExperiences(ctx context.Context, profileID uuid.UUID) ([]entities.WorkExperience, error) {
	if err := u.ensureProfile(ctx, profileID); err != nil {
		return nil, err
	}
	return u.profileRepo.ListWorkExperiences(ctx, profileID)
}

func (u *useCase) AddExperience(ctx context.Context, profileID uuid.UUID, input ExperienceInput) (entities.WorkExperience, error) {
	if err := validateExperience(input); err != nil {
		return entities.WorkExperience{}, err
	}
	if err := u.ensureProfile(ctx, profileID); err != nil {
		return entities.WorkExperience{}, err
	}
	added, err := u.profileRepo.AddWorkExperience(ctx, experienceFromInput(uuid.New(), profileID, input))
	if err != nil {
		return entities.WorkExperience{}, err
	}
	u.evict(ctx, profileID)
	return added, nil
}

func (u *useCase) UpdateExperience(ctx context.Context, profileID, experienceID uuid.UUID, input ExperienceInput) (entities.WorkExperience, error) {
	if err := validateExperience(input); err != nil {
		return entities.WorkExperience{}, err
	}
	updated, err := u.profileRepo.UpdateWorkExperience(ctx, experienceFromInput(experienceID, profileID, input))
	if err != nil {
		return entities.WorkExperience{}, err
	}
	u.evict(ctx, profileID)
	return updated, nil
}

func (u *useCase) RemoveExperience(ctx context.Context, profileID, experienceID uuid.UUID) error {
	if err := u.profileRepo.DeleteWorkExperience(ctx, profileID, experienceID); err != nil {
		return err
	}
	u.evict(ctx, profileID)
	return nil
}

func validateInterest(input InterestInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return errInterestRequired
	}
	if input.InterestLevel != nil && (*input.InterestLevel < 1 || *input.InterestLevel > 5) {
		return errInterestLevel
	}
	if input.SessionDurationMinutes != nil && *input.SessionDurationMinutes < 0 {
		return errSessionDuration
	}
	return nil
}

func (u *useCase) ListInterests(ctx context.Context, profileID uuid.UUID) ([]entities.PersonalInterest, error) {
	if err := u.ensureProfile(ctx, profileID); err != nil {
		return nil, err
	}
	return u.profileRepo.ListInterests(ctx, profileID)
}

func (u *useCase) AddInterest(ctx context.Context, profileID uuid.UUID, input InterestInput) (entities.PersonalInterest, error) {
	if err := validateInterest(input); err != nil {
		return entities.PersonalInterest{}, err
	}
	if err := u.ensureProfile(ctx, profileID); err != nil {
		return entities.PersonalInterest{}, err
	}
	added, err := u.profileRepo.AddInterest(ctx, entities.PersonalInterest{
		ID:                     uuid.New(),
		ProfileID:              profileID,
		Name:                   strings.TrimSpace(input.Name),
		SessionDurationMinutes: input.SessionDurationMinutes,
		Frequency:              input.Frequency,
		InterestLevel:          input.InterestLevel,
	})
	if err != nil {
		return entities.PersonalInterest{}, err
	}
	u.evict(ctx, profileID)
	return added, nil
}

func (u *useCase) UpdateInterest(ctx context.Context, profileID, interestID uuid.UUID, input InterestInput) (entities.PersonalInterest, error) {
	if err := validateInterest(input); err != nil {
		return entities.PersonalInterest{}, err
	}
	updated, err := u.profileRepo.UpdateInterest(ctx, entities.PersonalInterest{
		ID:                     interestID,
		ProfileID:              profileID,
		Name:                   strings.TrimSpace(input.Name),
		SessionDurationMinutes: input.SessionDurationMinutes,
		Frequency:              input.Frequency,
		InterestLevel:          input.InterestLevel,
	})
	if err != nil {
		return entities.PersonalInterest{}, err
	}
	u.evict(ctx, profileID)
	return updated, nil
}

func (u *useCase) RemoveInterest(ctx context.Context, profileID, interestID uuid.UUID) error {
	if err := u.profileRepo.DeleteInterest(ctx, profileID, interestID); err != nil {
		return err
	}
	u.evict(ctx, profileID)
	return nil
}

func validateTechnology(input TechnologyInput) error {
	if input.TechnologyID == uuid.Nil {
		return errTechnologyRequired
	}
	if !entities.ValidSfia(input.SfiaLevel) {
		return errInvalidSfia
	}
	if input.YearsExperience < 0 {
		return errNegativeYears
	}
	return nil
}

func (u *useCase) ListTechnologies(ctx context.Context, profileID uuid.UUID) ([]entities.EmployeeTechnology, error) {
	if err := u.ensureProfile(ctx, profileID); err != nil {
		return nil, err
	}
	return u.profileRepo.ListEmployeeTechnologies(ctx, profileID)
}

func (u *useCase) AddTechnology(ctx context.Context, profileID uuid.UUID, input TechnologyInput) (entities.EmployeeTechnology, error) {
	if err := validateTechnology(input); err != nil {
		return entities.EmployeeTechnology{}, err
	}
	if err := u.ensureProfile(ctx, profileID); err != nil {
		return entities.EmployeeTechnology{}, err
	}
	tech, err := u.catalogRepo.GetTechnology(ctx, input.TechnologyID)
	if err != nil {
		return entities.EmployeeTechnology{}, err
	}
	added, err := u.profileRepo.AddEmployeeTechnology(ctx, entities.EmployeeTechnology{
		ID:              uuid.New(),
		ProfileID:       profileID,
		TechnologyID:    tech.ID,
		TechnologyName:  tech.Name,
		CategoryName:    tech.CategoryName,
		SfiaLevel:       input.SfiaLevel,
		YearsExperience: input.YearsExperience,
		Version:         input.Version,
	})
	if err != nil {
		return entities.EmployeeTechnology{}, err
	}
	u.evict(ctx, profileID)
	return added, nil
}

func (u *useCase) UpdateTechnology(ctx context.Context, profileID, employeeTechID uuid.UUID, input TechnologyInput) (entities.EmployeeTechnology, error) {
	if !entities.ValidSfia(input.SfiaLevel) {
		return entities.EmployeeTechnology{}, errInvalidSfia
	}
	if input.YearsExperience < 0 {
		return entities.EmployeeTechnology{}, errNegativeYears
	}
	updated, err := u.profileRepo.UpdateEmployeeTechnology(ctx, entities.EmployeeTechnology{
		ID:              employeeTechID,
		ProfileID:       profileID,
		TechnologyID:    input.TechnologyID,
		SfiaLevel:       input.SfiaLevel,
		YearsExperience: input.YearsExperience,
		Version:         input.Version,
	})
	if err != nil {
		return entities.EmployeeTechnology{}, err
	}
	u.evict(ctx, profileID)
	return updated, nil
}

func (u *useCase) RemoveTechnology(ctx context.Context, profileID, employeeTechID uuid.UUID) error {
	if err := u.profileRepo.DeleteEmployeeTechnology(ctx, profileID, employeeTechID); err != nil {
		return err
	}
	u.evict(ctx, profileID)
	return nil
}

func catalogKey(name, category string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(category))
}

// ImportTechnologies adds every item that matches the catalog and is not owned yet.
// Unknown, duplicated or invalid items are skipped.
func (u *useCase) ImportTechnologies(ctx context.Context, profileID uuid.UUID, items []TechnologyImport) ([]uuid.UUID, error) {
	if err := u.ensureProfile(ctx, profileID); err != nil {
		return nil, err
	}
	catalog, err := u.catalogRepo.ListTechnologies(ctx)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]entities.Technology, len(catalog))
	for _, t := range catalog {
		byKey[catalogKey(t.Name, t.CategoryName)] = t
	}
	owned, err := u.profileRepo.ListEmployeeTechnologies(ctx, profileID)
	if err != nil {
		return nil, err
	}
	ownedSet := make(map[uuid.UUID]struct{}, len(owned))
	for _, o := range owned {
		ownedSet[o.TechnologyID] = struct{}{}
	}

	created := []uuid.UUID{}
	for _, item := range items {
		tech, ok := byKey[catalogKey(item.Name, item.Category)]
		if !ok {
			u.logger.Debug("skipping unknown technology", "profile_id", profileID, "name", item.Name, "category", item.Category)
			continue
		}
		if _, dup := ownedSet[tech.ID]; dup {
			continue
		}
		if !entities.ValidSfia(item.SfiaLevel) || item.YearsExperience < 0 {
			u.logger.Debug("skipping invalid technology", "profile_id", profileID, "name", item.Name)
			continue
		}
		added, err := u.profileRepo.AddEmployeeTechnology(ctx, entities.EmployeeTechnology{
			ID:              uuid.New(),
			ProfileID:       profileID,
			TechnologyID:    tech.ID,
			TechnologyName:  tech.Name,
			CategoryName:    tech.CategoryName,
			SfiaLevel:       item.SfiaLevel,
			YearsExperience: item.YearsExperience,
			Version:         item.Version,
		})
		if errors.Is(err, entities.ErrEmployeeTechExists) {
			continue
		}
		if err != nil {
			return nil, err
		}
		ownedSet[tech.ID] = struct{}{}
		created = append(created, added.ID)
	}
	if len(created) > 0 {
		u.evict(ctx, profileID)
	}
	u.logger.Info("technologies imported", "profile_id", profileID, "requested", len(items), "created", len(created))
	return created, nil
}

func (u *useCase) ListRoles(ctx context.Context, profileID uuid.UUID) ([]entities.EmployeeSpecializedRole, error) {
	if err := u.ensureProfile(ctx, profileID); err != nil {
		return nil, err
	}
	return u.profileRepo.ListEmployeeRoles(ctx, profileID)
}

func (u *useCase) AddRole(ctx context.Context, profileID uuid.UUID, input RoleInput) (entities.EmployeeSpecializedRole, error) {
	if !entities.ValidRoleLevel(input.Level) {
		return entities.EmployeeSpecializedRole{}, errInvalidRoleLevel
	}
	if input.YearsExperience < 0 {
		return entities.EmployeeSpecializedRole{}, errNegativeRoleYears
	}
	if err := u.ensureProfile(ctx, profileID); err != nil {
		return entities.EmployeeSpecializedRole{}, err
	}
	role, err := u.catalogRepo.GetSpecializedRole(ctx, input.SpecializedRoleID)
	if err != nil {
		return entities.EmployeeSpecializedRole{}, err
	}
	added, err := u.profileRepo.AddEmployeeRole(ctx, entities.EmployeeSpecializedRole{
		ID:                uuid.New(),
		ProfileID:         profileID,
		SpecializedRoleID: role.ID,
		RoleName:          role.Name,
		Level:             input.Level,
		YearsExperience:   input.YearsExperience,
	})
	if err != nil {
		return entities.EmployeeSpecializedRole{}, err
	}
	u.evict(ctx, profileID)
	return added, nil
}

func (u *useCase) RemoveRole(ctx context.Context, profileID, employeeRoleID uuid.UUID) error {
	if err := u.profileRepo.DeleteEmployeeRole(ctx, profileID, employeeRoleID); err != nil {
		return err
	}
	u.evict(ctx, profileID)
	return nil
}
