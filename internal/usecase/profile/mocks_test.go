package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
)

type mockProfileRepo struct {
	createProfile            func(ctx context.Context, p entities.EmployeeProfile) (entities.EmployeeProfile, error)
	getProfile               func(ctx context.Context, profileID uuid.UUID) (entities.EmployeeProfile, error)
	getProfileByUser         func(ctx context.Context, userID uuid.UUID) (entities.EmployeeProfile, error)
	getCompleteProfile       func(ctx context.Context, profileID uuid.UUID) (entities.CompleteProfile, error)
	updateProfile            func(ctx context.Context, p entities.EmployeeProfile) (entities.EmployeeProfile, error)
	addLanguage              func(ctx context.Context, l entities.EmployeeLanguage) (entities.EmployeeLanguage, error)
	addWorkExperience        func(ctx context.Context, w entities.WorkExperience) (entities.WorkExperience, error)
	addInterest              func(ctx context.Context, i entities.PersonalInterest) (entities.PersonalInterest, error)
	listEmployeeTechnologies func(ctx context.Context, profileID uuid.UUID) ([]entities.EmployeeTechnology, error)
	addEmployeeTechnology    func(ctx context.Context, et entities.EmployeeTechnology) (entities.EmployeeTechnology, error)
	addEmployeeRole          func(ctx context.Context, er entities.EmployeeSpecializedRole) (entities.EmployeeSpecializedRole, error)
	deleteLanguage           func(ctx context.Context, profileID, languageID uuid.UUID) error
}

func (m *mockProfileRepo) CreateProfile(ctx context.Context, p entities.EmployeeProfile) (entities.EmployeeProfile, error) {
	if m.createProfile != nil {
		return m.createProfile(ctx, p)
	}
	return p, nil
}

func (m *mockProfileRepo) GetProfile(ctx context.Context, profileID uuid.UUID) (entities.EmployeeProfile, error) {
	if m.getProfile != nil {
		return m.getProfile(ctx, profileID)
	}
	return entities.EmployeeProfile{ID: profileID}, nil
}

func (m *mockProfileRepo) GetProfileByUser(ctx context.Context, userID uuid.UUID) (entities.EmployeeProfile, error) {
	if m.getProfileByUser != nil {
		return m.getProfileByUser(ctx, userID)
	}
	return entities.EmployeeProfile{}, entities.ErrProfileNotFound
}

func (m *mockProfileRepo) GetCompleteProfile(ctx context.Context, profileID uuid.UUID) (entities.CompleteProfile, error) {
	if m.getCompleteProfile != nil {
		return m.getCompleteProfile(ctx, profileID)
	}
	return entities.CompleteProfile{Profile: entities.EmployeeProfile{ID: profileID}}, nil
}

func (m *mockProfileRepo) ListCandidateProfiles(ctx context.Context, onlyAvailable bool) ([]entities.CompleteProfile, error) {
	return []entities.CompleteProfile{}, nil
}

func (m *mockProfileRepo) UpdateProfile(ctx context.Context, p entities.EmployeeProfile) (entities.EmployeeProfile, error) {
	if m.updateProfile != nil {
		return m.updateProfile(ctx, p)
	}
	return p, nil
}

func (m *mockProfileRepo) ResetProfileData(ctx context.Context, profileID uuid.UUID, types []entities.DataType) error {
	return nil
}

func (m *mockProfileRepo) ListLanguages(ctx context.Context, profileID uuid.UUID) ([]entities.EmployeeLanguage, error) {
	return []entities.EmployeeLanguage{}, nil
}

func (m *mockProfileRepo) AddLanguage(ctx context.Context, l entities.EmployeeLanguage) (entities.EmployeeLanguage, error) {
	if m.addLanguage != nil {
		return m.addLanguage(ctx, l)
	}
	return l, nil
}

func (m *mockProfileRepo) UpdateLanguage(ctx context.Context, l entities.EmployeeLanguage) (entities.EmployeeLanguage, error) {
	return l, nil
}

func (m *mockProfileRepo) DeleteLanguage(ctx context.Context, profileID, languageID uuid.UUID) error {
	if m.deleteLanguage != nil {
		return m.deleteLanguage(ctx, profileID, languageID)
	}
	return nil
}

func (m *mockProfileRepo) ListWorkExperiences(ctx context.Context, profileID uuid.UUID) ([]entities.WorkExperience, error) {
	return []entities.WorkExperience{}, nil
}

func (m *mockProfileRepo) AddWorkExperience(ctx context.Context, w entities.WorkExperience) (entities.WorkExperience, error) {
	if m.addWorkExperience != nil {
		return m.addWorkExperience(ctx, w)
	}
	return w, nil
}

func (m *mockProfileRepo) UpdateWorkExperience(ctx context.Context, w entities.WorkExperience) (entities.WorkExperience, error) {
	return w, nil
}

func (m *mockProfileRepo) DeleteWorkExperience(ctx context.Context, profileID, experienceID uuid.UUID) error {
	return nil
}

func (m *mockProfileRepo) ListInterests(ctx context.Context, profileID uuid.UUID) ([]entities.PersonalInterest, error) {
	return []entities.PersonalInterest{}, nil
}

func (m *mockProfileRepo) AddInterest(ctx context.Context, i entities.PersonalInterest) (entities.PersonalInterest, error) {
	if m.addInterest != nil {
		return m.addInterest(ctx, i)
	}
	return i, nil
}

func (m *mockProfileRepo) UpdateInterest(ctx context.Context, i entities.PersonalInterest) (entities.PersonalInterest, error) {
	return i, nil
}

func (m *mockProfileRepo) DeleteInterest(ctx context.Context, profileID, interestID uuid.UUID) error {
	return nil
}

func (m *mockProfileRepo) ListEmployeeTechnologies(ctx context.Context, profileID uuid.UUID) ([]entities.EmployeeTechnology, error) {
	if m.listEmployeeTechnologies != nil {
		return m.listEmployeeTechnologies(ctx, profileID)
	}
	return []entities.EmployeeTechnology{}, nil
}

func (m *mockProfileRepo) AddEmployeeTechnology(ctx context.Context, et entities.EmployeeTechnology) (entities.EmployeeTechnology, error) {
	if m.addEmployeeTechnology != nil {
		return m.addEmployeeTechnology(ctx, et)
	}
	return et, nil
}

func (m *mockProfileRepo) UpdateEmployeeTechnology(ctx context.Context, et entities.EmployeeTechnology) (entities.EmployeeTechnology, error) {
	return et, nil
}

func (m *mockProfileRepo) DeleteEmployeeTechnology(ctx context.Context, profileID, employeeTechID uuid.UUID) error {
	return nil
}

func (m *mockProfileRepo) ListEmployeeRoles(ctx context.Context, profileID uuid.UUID) ([]entities.EmployeeSpecializedRole, error) {
	return []entities.EmployeeSpecializedRole{}, nil
}

func (m *mockProfileRepo) AddEmployeeRole(ctx context.Context, er entities.EmployeeSpecializedRole) (entities.EmployeeSpecializedRole, error) {
	if m.addEmployeeRole != nil {
		return m.addEmployeeRole(ctx, er)
	}
	return er, nil
}

func (m *mockProfileRepo) DeleteEmployeeRole(ctx context.Context, profileID, employeeRoleID uuid.UUID) error {
	return nil
}

type mockCatalogRepo struct {
	listTechnologies   func(ctx context.Context) ([]entities.Technology, error)
	getTechnology      func(ctx context.Context, id uuid.UUID) (entities.Technology, error)
	getSpecializedRole func(ctx context.Context, id uuid.UUID) (entities.SpecializedRole, error)
}

func (m *mockCatalogRepo) ListCategories(ctx context.Context) ([]entities.TechnologyCategory, error) {
	return []entities.TechnologyCategory{}, nil
}

func (m *mockCatalogRepo) ListTechnologies(ctx context.Context) ([]entities.Technology, error) {
	if m.listTechnologies != nil {
		return m.listTechnologies(ctx)
	}
	return []entities.Technology{}, nil
}

func (m *mockCatalogRepo) GetTechnology(ctx context.Context, id uuid.UUID) (entities.Technology, error) {
	if m.getTechnology != nil {
		return m.getTechnology(ctx, id)
	}
	return entities.Technology{ID: id, Name: "Go", CategoryName: "Backend"}, nil
}

func (m *mockCatalogRepo) CreateTechnology(ctx context.Context, tech entities.Technology, categoryName string) (entities.Technology, error) {
	return tech, nil
}

func (m *mockCatalogRepo) ListAreas(ctx context.Context) ([]entities.TechnicalArea, error) {
	return []entities.TechnicalArea{}, nil
}

func (m *mockCatalogRepo) ListSpecializedRoles(ctx context.Context) ([]entities.SpecializedRole, error) {
	return []entities.SpecializedRole{}, nil
}

func (m *mockCatalogRepo) GetSpecializedRole(ctx context.Context, id uuid.UUID) (entities.SpecializedRole, error) {
	if m.getSpecializedRole != nil {
		return m.getSpecializedRole(ctx, id)
	}
	return entities.SpecializedRole{ID: id, Name: "Backend Developer"}, nil
}

func (m *mockCatalogRepo) SeedCatalog(ctx context.Context, seed entities.CatalogSeed) error {
	return nil
}

type mockUserRepo struct {
	getUser func(ctx context.Context, userID uuid.UUID) (entities.User, error)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user entities.User) (entities.User, error) {
	return user, nil
}

func (m *mockUserRepo) CreateUserWithProfile(ctx context.Context, user entities.User, profile entities.EmployeeProfile) (entities.User, error) {
	return user, nil
}

func (m *mockUserRepo) GetUser(ctx context.Context, userID uuid.UUID) (entities.User, error) {
	if m.getUser != nil {
		return m.getUser(ctx, userID)
	}
	return entities.User{ID: userID}, nil
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	return entities.User{}, entities.ErrUserNotFound
}

func (m *mockUserRepo) GetUserByProfile(ctx context.Context, profileID uuid.UUID) (entities.User, error) {
	return entities.User{}, nil
}

func (m *mockUserRepo) GetUserInfo(ctx context.Context, userID uuid.UUID) (entities.UserInfo, error) {
	return entities.UserInfo{ID: userID}, nil
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (m *mockUserRepo) RoleExists(ctx context.Context, role entities.Role) (bool, error) {
	return false, nil
}

type mockCache struct {
	values  map[string][]byte
	evicted []string
}

func newMockCache() *mockCache {
	return &mockCache{values: map[string][]byte{}}
}

func (m *mockCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockCache) Set(_ context.Context, key string, value []byte, _ ...string) error {
	m.values[key] = value
	return nil
}

func (m *mockCache) EvictByTag(_ context.Context, tag string) error {
	m.evicted = append(m.evicted, tag)
	delete(m.values, tag)
	return nil
}
