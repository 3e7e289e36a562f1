package privacy

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/internal/infrastructure/cache"
	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

type mockPrivacyRepo struct {
	mu                    sync.Mutex
	audits                []entities.PrivacyAuditLog
	updates               []entities.DataDeletionOrder
	getConsent            func(ctx context.Context, userID uuid.UUID) (entities.PrivacyConsent, error)
	createDeletionOrder   func(ctx context.Context, order entities.DataDeletionOrder) (entities.DataDeletionOrder, error)
	getDeletionOrder      func(ctx context.Context, orderID uuid.UUID) (entities.DataDeletionOrder, error)
	hasPendingDeletion    func(ctx context.Context, userID uuid.UUID) (bool, error)
	listDueDeletionOrders func(ctx context.Context, now time.Time) ([]entities.DataDeletionOrder, error)
	listAuditLogs         func(ctx context.Context, userID uuid.UUID) ([]entities.PrivacyAuditLog, error)
}

func (m *mockPrivacyRepo) GetConsent(ctx context.Context, userID uuid.UUID) (entities.PrivacyConsent, error) {
	if m.getConsent != nil {
		return m.getConsent(ctx, userID)
	}
	return entities.PrivacyConsent{}, entities.ErrConsentNotFound
}

func (m *mockPrivacyRepo) UpsertConsent(ctx context.Context, consent entities.PrivacyConsent) (entities.PrivacyConsent, error) {
	return consent, nil
}

func (m *mockPrivacyRepo) CreateDeletionOrder(ctx context.Context, order entities.DataDeletionOrder) (entities.DataDeletionOrder, error) {
	if m.createDeletionOrder != nil {
		return m.createDeletionOrder(ctx, order)
	}
	return order, nil
}

func (m *mockPrivacyRepo) GetDeletionOrder(ctx context.Context, orderID uuid.UUID) (entities.DataDeletionOrder, error) {
	if m.getDeletionOrder != nil {
		return m.getDeletionOrder(ctx, orderID)
	}
	return entities.DataDeletionOrder{}, entities.ErrDeletionNotFound
}

func (m *mockPrivacyRepo) HasPendingDeletion(ctx context.Context, userID uuid.UUID) (bool, error) {
	if m.hasPendingDeletion != nil {
		return m.hasPendingDeletion(ctx, userID)
	}
	return false, nil
}

func (m *mockPrivacyRepo) ListDeletionOrders(ctx context.Context, userID uuid.UUID) ([]entities.DataDeletionOrder, error) {
	return []entities.DataDeletionOrder{}, nil
}

func (m *mockPrivacyRepo) ListDueDeletionOrders(ctx context.Context, now time.Time) ([]entities.DataDeletionOrder, error) {
	if m.listDueDeletionOrders != nil {
		return m.listDueDeletionOrders(ctx, now)
	}
	return []entities.DataDeletionOrder{}, nil
}

func (m *mockPrivacyRepo) UpdateDeletionOrder(ctx context.Context, order entities.DataDeletionOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, order)
	return nil
}

func (m *mockPrivacyRepo) AddAuditLog(ctx context.Context, entry entities.PrivacyAuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audits = append(m.audits, entry)
	return nil
}

func (m *mockPrivacyRepo) ListAuditLogs(ctx context.Context, userID uuid.UUID) ([]entities.PrivacyAuditLog, error) {
	if m.listAuditLogs != nil {
		return m.listAuditLogs(ctx, userID)
	}
	return []entities.PrivacyAuditLog{}, nil
}

func (m *mockPrivacyRepo) actions() []entities.AuditAction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entities.AuditAction, len(m.audits))
	for i, a := range m.audits {
		out[i] = a.Action
	}
	return out
}

type mockUsers struct{}

func (mockUsers) GetUserInfo(ctx context.Context, userID uuid.UUID) (entities.UserInfo, error) {
	return entities.UserInfo{ID: userID, Email: "ana@example.com", Role: entities.RoleEmployee}, nil
}

type mockProfiles struct {
	profileID        uuid.UUID
	resetErr         error
	resetCalls       [][]entities.DataType
	getProfileByUser func(ctx context.Context, userID uuid.UUID) (entities.EmployeeProfile, error)
}

func (m *mockProfiles) GetProfileByUser(ctx context.Context, userID uuid.UUID) (entities.EmployeeProfile, error) {
	if m.getProfileByUser != nil {
		return m.getProfileByUser(ctx, userID)
	}
	return entities.EmployeeProfile{ID: m.profileID, UserID: userID}, nil
}

func (m *mockProfiles) GetCompleteProfile(ctx context.Context, profileID uuid.UUID) (entities.CompleteProfile, error) {
	return entities.CompleteProfile{Profile: entities.EmployeeProfile{ID: profileID}}, nil
}

func (m *mockProfiles) ResetProfileData(ctx context.Context, profileID uuid.UUID, types []entities.DataType) error {
	m.resetCalls = append(m.resetCalls, types)
	return m.resetErr
}

type mockTeams struct{}

func (mockTeams) ListTeamsByUser(ctx context.Context, userID uuid.UUID) ([]entities.Team, error) {
	return []entities.Team{{ID: uuid.New(), Name: "Core"}}, nil
}

type trackingCache struct {
	mu      sync.Mutex
	evicted []string
}

func (c *trackingCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (c *trackingCache) Set(context.Context, string, []byte, ...string) error { return nil }

func (c *trackingCache) EvictByTag(_ context.Context, tag string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evicted = append(c.evicted, tag)
	return nil
}

var meta = entities.RequestMeta{IPAddress: "10.0.0.1", UserAgent: "test"}

func newUseCase(repo *mockPrivacyRepo, profiles *mockProfiles, c cache.Cache) *useCase {
	return New(repo, mockUsers{}, profiles, mockTeams{}, c, logger.New()).(*useCase)
}

func TestUseCase_GetConsent_Default(t *testing.T) {
	uc := newUseCase(&mockPrivacyRepo{}, &mockProfiles{}, cache.NewNoop())
	consent, err := uc.GetConsent(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, consent.TeamMatchingAnalysis)
	assert.Equal(t, "1.0", consent.Version)
}

func TestUseCase_UpdateConsent_Audit(t *testing.T) {
	repo := &mockPrivacyRepo{}
	uc := newUseCase(repo, &mockProfiles{}, cache.NewNoop())
	userID := uuid.New()

	_, err := uc.UpdateConsent(context.Background(), userID, false, meta)
	require.NoError(t, err)
	_, err = uc.UpdateConsent(context.Background(), userID, true, meta)
	require.NoError(t, err)

	assert.Equal(t, []entities.AuditAction{entities.AuditConsentWithdrawn, entities.AuditConsentUpdated}, repo.actions())
	assert.Equal(t, "10.0.0.1", repo.audits[0].IPAddress)
}

func TestUseCase_Export(t *testing.T) {
	repo := &mockPrivacyRepo{}
	profiles := &mockProfiles{profileID: uuid.New()}
	uc := newUseCase(repo, profiles, cache.NewNoop())
	userID := uuid.New()

	export, err := uc.Export(context.Background(), userID, meta)
	require.NoError(t, err)
	assert.Equal(t, userID, export.User.ID)
	require.NotNil(t, export.Profile)
	assert.Equal(t, profiles.profileID, export.Profile.Profile.ID)
	assert.Len(t, export.Teams, 1)
	assert.True(t, export.Consent.TeamMatchingAnalysis)
	assert.Equal(t, []entities.AuditAction{entities.AuditDataExported}, repo.actions())
}

func TestUseCase_Export_NoProfile(t *testing.T) {
	profiles := &mockProfiles{getProfileByUser: func(ctx context.Context, userID uuid.UUID) (entities.EmployeeProfile, error) {
		return entities.EmployeeProfile{}, entities.ErrProfileNotFound
	}}
	uc := newUseCase(&mockPrivacyRepo{}, profiles, cache.NewNoop())
	export, err := uc.Export(context.Background(), uuid.New(), meta)
	require.NoError(t, err)
	assert.Nil(t, export.Profile)
}

func TestUseCase_Export_Failure(t *testing.T) {
	boom := errors.New("db down")
	repo := &mockPrivacyRepo{listAuditLogs: func(ctx context.Context, userID uuid.UUID) ([]entities.PrivacyAuditLog, error) {
		return nil, boom
	}}
	uc := newUseCase(repo, &mockProfiles{}, cache.NewNoop())
	_, err := uc.Export(context.Background(), uuid.New(), meta)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, repo.actions())
}

func TestUseCase_RequestDeletion(t *testing.T) {
	repo := &mockPrivacyRepo{}
	uc := newUseCase(repo, &mockProfiles{}, cache.NewNoop())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	order, err := uc.RequestDeletion(context.Background(), uuid.New(), DeletionInput{DataTypes: []entities.DataType{entities.DataAll}, Reason: " leaving "}, meta)
	require.NoError(t, err)
	assert.Equal(t, entities.DeletionPending, order.Status)
	assert.Equal(t, now.Add(30*24*time.Hour), order.ScheduledDeletionDate)
	assert.Equal(t, "leaving", order.Reason)
	assert.Equal(t, []entities.AuditAction{entities.AuditDataDeletionRequested}, repo.actions())
}

func TestUseCase_RequestDeletion_Rejected(t *testing.T) {
	repo := &mockPrivacyRepo{}
	uc := newUseCase(repo, &mockProfiles{}, cache.NewNoop())
	ctx := context.Background()

	_, err := uc.RequestDeletion(ctx, uuid.New(), DeletionInput{}, meta)
	assert.Equal(t, entities.KindValidation, entities.KindOf(err))

	_, err = uc.RequestDeletion(ctx, uuid.New(), DeletionInput{DataTypes: []entities.DataType{"PHOTOS"}}, meta)
	assert.Equal(t, entities.KindValidation, entities.KindOf(err))

	repo.hasPendingDeletion = func(ctx context.Context, userID uuid.UUID) (bool, error) { return true, nil }
	_, err = uc.RequestDeletion(ctx, uuid.New(), DeletionInput{DataTypes: []entities.DataType{entities.DataLanguages}}, meta)
	assert.ErrorIs(t, err, entities.ErrDeletionPending)
	assert.Empty(t, repo.actions())
}

func TestUseCase_CancelDeletion(t *testing.T) {
	owner, orderID := uuid.New(), uuid.New()
	status := entities.DeletionPending
	repo := &mockPrivacyRepo{getDeletionOrder: func(ctx context.Context, id uuid.UUID) (entities.DataDeletionOrder, error) {
		if id != orderID {
			return entities.DataDeletionOrder{}, entities.ErrDeletionNotFound
		}
		return entities.DataDeletionOrder{ID: id, UserID: owner, Status: status}, nil
	}}
	uc := newUseCase(repo, &mockProfiles{}, cache.NewNoop())
	ctx := context.Background()

	_, err := uc.CancelDeletion(ctx, owner, uuid.New(), meta)
	assert.ErrorIs(t, err, entities.ErrDeletionNotFound)

	_, err = uc.CancelDeletion(ctx, uuid.New(), orderID, meta)
	assert.ErrorIs(t, err, entities.ErrDeletionNotOwned)

	order, err := uc.CancelDeletion(ctx, owner, orderID, meta)
	require.NoError(t, err)
	assert.Equal(t, entities.DeletionCancelled, order.Status)
	assert.Equal(t, "Cancelled by user", order.CancellationReason)
	assert.Equal(t, []entities.AuditAction{entities.AuditDataDeletionCancelled}, repo.actions())

	status = entities.DeletionCompleted
	_, err = uc.CancelDeletion(ctx, owner, orderID, meta)
	assert.ErrorIs(t, err, entities.ErrDeletionState)
}

func TestUseCase_ResetProfile(t *testing.T) {
	repo := &mockPrivacyRepo{}
	profiles := &mockProfiles{profileID: uuid.New()}
	c := &trackingCache{}
	uc := newUseCase(repo, profiles, c)

	err := uc.ResetProfile(context.Background(), uuid.New(), []entities.DataType{entities.DataInterests}, meta)
	require.NoError(t, err)
	require.Len(t, profiles.resetCalls, 1)
	assert.Equal(t, []entities.DataType{entities.DataInterests}, profiles.resetCalls[0])
	assert.Equal(t, []string{"profile:" + profiles.profileID.String()}, c.evicted)
	assert.Equal(t, []entities.AuditAction{entities.AuditDataDeleted}, repo.actions())

	err = uc.ResetProfile(context.Background(), uuid.New(), nil, meta)
	assert.Equal(t, entities.KindValidation, entities.KindOf(err))
}

func TestUseCase_ProcessDueDeletions(t *testing.T) {
	ok := entities.DataDeletionOrder{ID: uuid.New(), UserID: uuid.New(), Status: entities.DeletionPending, DataTypes: []entities.DataType{entities.DataAll}}
	bad := entities.DataDeletionOrder{ID: uuid.New(), UserID: uuid.New(), Status: entities.DeletionPending, DataTypes: []entities.DataType{entities.DataProfile}}
	repo := &mockPrivacyRepo{listDueDeletionOrders: func(ctx context.Context, now time.Time) ([]entities.DataDeletionOrder, error) {
		return []entities.DataDeletionOrder{ok, bad}, nil
	}}
	profiles := &mockProfiles{profileID: uuid.New()}
	profiles.getProfileByUser = func(ctx context.Context, userID uuid.UUID) (entities.EmployeeProfile, error) {
		if userID == bad.UserID {
			return entities.EmployeeProfile{}, errors.New("connection reset")
		}
		return entities.EmployeeProfile{ID: profiles.profileID, UserID: userID}, nil
	}
	uc := newUseCase(repo, profiles, cache.NewNoop())

	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	done, err := uc.ProcessDueDeletions(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, done)

	statuses := map[uuid.UUID][]entities.DeletionStatus{}
	for _, u := range repo.updates {
		statuses[u.ID] = append(statuses[u.ID], u.Status)
	}
	assert.Equal(t, []entities.DeletionStatus{entities.DeletionProcessing, entities.DeletionCompleted}, statuses[ok.ID])
	assert.Equal(t, []entities.DeletionStatus{entities.DeletionProcessing, entities.DeletionFailed}, statuses[bad.ID])
	assert.Equal(t, []entities.AuditAction{entities.AuditDataDeleted}, repo.actions())
	require.NotNil(t, repo.updates[1].ProcessedDate)
	assert.Equal(t, now, *repo.updates[1].ProcessedDate)
}

func TestUseCase_ProcessDueDeletions_MissingProfile(t *testing.T) {
	order := entities.DataDeletionOrder{ID: uuid.New(), UserID: uuid.New(), DataTypes: []entities.DataType{entities.DataAll}}
	repo := &mockPrivacyRepo{listDueDeletionOrders: func(ctx context.Context, now time.Time) ([]entities.DataDeletionOrder, error) {
		return []entities.DataDeletionOrder{order}, nil
	}}
	profiles := &mockProfiles{getProfileByUser: func(ctx context.Context, userID uuid.UUID) (entities.EmployeeProfile, error) {
		return entities.EmployeeProfile{}, entities.ErrProfileNotFound
	}}
	uc := newUseCase(repo, profiles, cache.NewNoop())

	done, err := uc.ProcessDueDeletions(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, done)
}
