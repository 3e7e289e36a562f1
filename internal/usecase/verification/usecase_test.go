package verification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

type mockProfiles struct {
	getProfile         func(ctx context.Context, profileID uuid.UUID) (entities.EmployeeProfile, error)
	getCompleteProfile func(ctx context.Context, profileID uuid.UUID) (entities.CompleteProfile, error)
}

func (m *mockProfiles) GetProfile(ctx context.Context, profileID uuid.UUID) (entities.EmployeeProfile, error) {
	if m.getProfile != nil {
		return m.getProfile(ctx, profileID)
	}
	return entities.EmployeeProfile{ID: profileID, VerificationStatus: entities.VerificationPending}, nil
}

func (m *mockProfiles) GetCompleteProfile(ctx context.Context, profileID uuid.UUID) (entities.CompleteProfile, error) {
	if m.getCompleteProfile != nil {
		return m.getCompleteProfile(ctx, profileID)
	}
	return completeProfile(profileID, entities.VerificationNotRequested), nil
}

type mockVerificationRepo struct {
	createVerificationRequest func(ctx context.Context, v entities.ProfileVerification) (entities.ProfileVerification, error)
	listPendingVerifications  func(ctx context.Context, limit, offset int) ([]entities.PendingVerification, int, error)
	completeVerification      func(ctx context.Context, p entities.EmployeeProfile, reviewerID uuid.UUID, reviewedAt time.Time) (entities.ProfileVerification, error)
	listVerifications         func(ctx context.Context, profileID uuid.UUID) ([]entities.ProfileVerification, error)
}

func (m *mockVerificationRepo) CreateVerificationRequest(ctx context.Context, v entities.ProfileVerification) (entities.ProfileVerification, error) {
	if m.createVerificationRequest != nil {
		return m.createVerificationRequest(ctx, v)
	}
	return v, nil
}

func (m *mockVerificationRepo) ListPendingVerifications(ctx context.Context, limit, offset int) ([]entities.PendingVerification, int, error) {
	if m.listPendingVerifications != nil {
		return m.listPendingVerifications(ctx, limit, offset)
	}
	return []entities.PendingVerification{}, 0, nil
}

func (m *mockVerificationRepo) CompleteVerification(ctx context.Context, p entities.EmployeeProfile, reviewerID uuid.UUID, reviewedAt time.Time) (entities.ProfileVerification, error) {
	if m.completeVerification != nil {
		return m.completeVerification(ctx, p, reviewerID, reviewedAt)
	}
	return entities.ProfileVerification{ProfileID: p.ID, Status: p.VerificationStatus, ReviewerID: &reviewerID, ReviewedAt: &reviewedAt}, nil
}

func (m *mockVerificationRepo) ListVerifications(ctx context.Context, profileID uuid.UUID) ([]entities.ProfileVerification, error) {
	if m.listVerifications != nil {
		return m.listVerifications(ctx, profileID)
	}
	return []entities.ProfileVerification{}, nil
}

type mockCache struct {
	evicted []string
}

func (m *mockCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (m *mockCache) Set(context.Context, string, []byte, ...string) error { return nil }

func (m *mockCache) EvictByTag(_ context.Context, tag string) error {
	m.evicted = append(m.evicted, tag)
	return nil
}

type mockNotifier struct {
	sent []entities.Notification
}

func (m *mockNotifier) Enqueue(n entities.Notification) bool {
	m.sent = append(m.sent, n)
	return true
}

func completeProfile(id uuid.UUID, status entities.VerificationStatus) entities.CompleteProfile {
	return entities.CompleteProfile{
		Profile: entities.EmployeeProfile{
			ID:                 id,
			FirstName:          "Ana",
			LastName:           "Diaz",
			Country:            "Bolivia",
			Timezone:           "America/La_Paz",
			SfiaLevelGeneral:   4,
			Mbti:               "INTJ",
			VerificationStatus: status,
		},
		SpecializedRoles: []entities.EmployeeSpecializedRole{{ID: uuid.New()}},
		WorkExperiences:  []entities.WorkExperience{{ID: uuid.New()}},
		Interests:        []entities.PersonalInterest{{ID: uuid.New()}},
	}
}

var manager = entities.Actor{UserID: uuid.New(), Role: entities.RoleManager}

func TestUseCase_Request(t *testing.T) {
	profileID := uuid.New()
	var stored entities.ProfileVerification
	repo := &mockVerificationRepo{createVerificationRequest: func(ctx context.Context, v entities.ProfileVerification) (entities.ProfileVerification, error) {
		stored = v
		return v, nil
	}}
	c := &mockCache{}
	uc := New(&mockProfiles{}, repo, c, &mockNotifier{}, logger.New())

	v, err := uc.Request(context.Background(), profileID)
	require.NoError(t, err)
	assert.Equal(t, entities.VerificationPending, v.Status)
	require.NotNil(t, stored.SfiaProposed)
	assert.Equal(t, 4, *stored.SfiaProposed)
	assert.Equal(t, []string{"profile:" + profileID.String()}, c.evicted)
}

func TestUseCase_Request_Status(t *testing.T) {
	tests := []struct {
		status entities.VerificationStatus
		want   error
	}{
		{entities.VerificationApproved, entities.ErrVerificationAlreadyVerified},
		{entities.VerificationPending, entities.ErrVerificationAlreadyRequested},
		{entities.VerificationRejected, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			profiles := &mockProfiles{getCompleteProfile: func(ctx context.Context, id uuid.UUID) (entities.CompleteProfile, error) {
				return completeProfile(id, tt.status), nil
			}}
			uc := New(profiles, &mockVerificationRepo{}, &mockCache{}, &mockNotifier{}, logger.New())
			_, err := uc.Request(context.Background(), uuid.New())
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUseCase_Request_Incomplete(t *testing.T) {
	profiles := &mockProfiles{getCompleteProfile: func(ctx context.Context, id uuid.UUID) (entities.CompleteProfile, error) {
		p := completeProfile(id, entities.VerificationNotRequested)
		p.Profile.Mbti = ""
		p.Interests = nil
		return p, nil
	}}
	created := false
	repo := &mockVerificationRepo{createVerificationRequest: func(ctx context.Context, v entities.ProfileVerification) (entities.ProfileVerification, error) {
		created = true
		return v, nil
	}}
	uc := New(profiles, repo, &mockCache{}, &mockNotifier{}, logger.New())

	_, err := uc.Request(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, entities.KindValidation, entities.KindOf(err))
	assert.Contains(t, err.Error(), "mbti")
	assert.Contains(t, err.Error(), "personal interest")
	assert.False(t, created)
}

func TestUseCase_ListPending_Paging(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &mockVerificationRepo{listPendingVerifications: func(ctx context.Context, limit, offset int) ([]entities.PendingVerification, int, error) {
		gotLimit, gotOffset = limit, offset
		return []entities.PendingVerification{{ProfileID: uuid.New()}}, 31, nil
	}}
	uc := New(&mockProfiles{}, repo, &mockCache{}, &mockNotifier{}, logger.New())

	page, err := uc.ListPending(context.Background(), 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, gotLimit)
	assert.Equal(t, 20, gotOffset)
	assert.Equal(t, 31, page.TotalCount)
	assert.Equal(t, 3, page.Page)

	page, err = uc.ListPending(context.Background(), -1, 500)
	require.NoError(t, err)
	assert.Equal(t, 100, gotLimit)
	assert.Equal(t, 0, gotOffset)
	assert.Equal(t, 1, page.Page)
}

func TestUseCase_GetForReview(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	profiles := &mockProfiles{getCompleteProfile: func(ctx context.Context, id uuid.UUID) (entities.CompleteProfile, error) {
		p := completeProfile(id, entities.VerificationPending)
		p.WorkExperiences = []entities.WorkExperience{
			{StartDate: time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC), EndDate: &end},
			{StartDate: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)},
		}
		return p, nil
	}}
	uc := New(&mockProfiles{}, &mockVerificationRepo{}, &mockCache{}, &mockNotifier{}, logger.New()).(*useCase)
	uc.profiles = profiles
	uc.now = func() time.Time { return now }

	review, err := uc.GetForReview(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, review.Experiences, 2)
	assert.Equal(t, 24, review.Experiences[0].DurationMonths)
	assert.Equal(t, 6, review.Experiences[1].DurationMonths)
	assert.Equal(t, 2.5, review.TotalExperienceYears)
}

func TestUseCase_Approve(t *testing.T) {
	profileID := uuid.New()
	var saved entities.EmployeeProfile
	repo := &mockVerificationRepo{completeVerification: func(ctx context.Context, p entities.EmployeeProfile, reviewerID uuid.UUID, reviewedAt time.Time) (entities.ProfileVerification, error) {
		saved = p
		return entities.ProfileVerification{ProfileID: p.ID, Status: p.VerificationStatus}, nil
	}}
	notifier := &mockNotifier{}
	c := &mockCache{}
	uc := New(&mockProfiles{}, repo, c, notifier, logger.New())

	sfia := 6
	v, err := uc.Approve(context.Background(), profileID, manager, ReviewInput{Notes: " solid ", SfiaLevel: &sfia})
	require.NoError(t, err)
	assert.Equal(t, entities.VerificationApproved, v.Status)
	assert.True(t, saved.Availability)
	assert.Equal(t, 6, saved.SfiaLevelGeneral)
	assert.Equal(t, "solid", saved.VerificationNotes)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, entities.NotifyProfileApproved, notifier.sent[0].Type)
	assert.Equal(t, profileID, notifier.sent[0].EmployeeProfileID)
	assert.Len(t, c.evicted, 1)
}

func TestUseCase_Reject(t *testing.T) {
	var saved entities.EmployeeProfile
	repo := &mockVerificationRepo{completeVerification: func(ctx context.Context, p entities.EmployeeProfile, reviewerID uuid.UUID, reviewedAt time.Time) (entities.ProfileVerification, error) {
		saved = p
		return entities.ProfileVerification{Status: p.VerificationStatus}, nil
	}}
	notifier := &mockNotifier{}
	profiles := &mockProfiles{getProfile: func(ctx context.Context, id uuid.UUID) (entities.EmployeeProfile, error) {
		return entities.EmployeeProfile{ID: id, Availability: true, VerificationStatus: entities.VerificationPending}, nil
	}}
	uc := New(profiles, repo, &mockCache{}, notifier, logger.New())

	_, err := uc.Reject(context.Background(), uuid.New(), manager, "missing experience detail")
	require.NoError(t, err)
	assert.Equal(t, entities.VerificationRejected, saved.VerificationStatus)
	assert.False(t, saved.Availability)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, entities.NotifyProfileRejected, notifier.sent[0].Type)
	assert.Equal(t, "missing experience detail", notifier.sent[0].Notes)
}

func TestUseCase_Review_Guards(t *testing.T) {
	notPending := &mockProfiles{getProfile: func(ctx context.Context, id uuid.UUID) (entities.EmployeeProfile, error) {
		return entities.EmployeeProfile{ID: id, VerificationStatus: entities.VerificationApproved}, nil
	}}
	notifier := &mockNotifier{}

	uc := New(&mockProfiles{}, &mockVerificationRepo{}, &mockCache{}, notifier, logger.New())
	_, err := uc.Approve(context.Background(), uuid.New(), entities.Actor{Role: entities.RoleEmployee}, ReviewInput{})
	assert.Equal(t, entities.KindForbidden, entities.KindOf(err))

	bad := 9
	_, err = uc.Approve(context.Background(), uuid.New(), manager, ReviewInput{SfiaLevel: &bad})
	assert.Equal(t, entities.KindValidation, entities.KindOf(err))

	uc = New(notPending, &mockVerificationRepo{}, &mockCache{}, notifier, logger.New())
	_, err = uc.Reject(context.Background(), uuid.New(), manager, "")
	assert.ErrorIs(t, err, entities.ErrVerificationInvalidStatus)
	assert.Empty(t, notifier.sent)
}

func TestUseCase_History_ProfileMissing(t *testing.T) {
	profiles := &mockProfiles{getProfile: func(ctx context.Context, id uuid.UUID) (entities.EmployeeProfile, error) {
		return entities.EmployeeProfile{}, entities.ErrProfileNotFound
	}}
	uc := New(profiles, &mockVerificationRepo{}, &mockCache{}, &mockNotifier{}, logger.New())
	_, err := uc.History(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entities.ErrProfileNotFound)
}
