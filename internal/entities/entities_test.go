package entities

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Is(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", ErrProfileNotFound)

	assert.True(t, errors.Is(wrapped, ErrProfileNotFound))
	assert.True(t, errors.Is(NotFound("Profile.NotFound", "other text"), ErrProfileNotFound))
	assert.False(t, errors.Is(wrapped, ErrTeamNotFound))
	assert.False(t, errors.Is(errors.New("Profile.NotFound"), ErrProfileNotFound))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{ErrTeamNotFound, KindNotFound},
		{fmt.Errorf("x: %w", ErrEmailExists), KindConflict},
		{ErrInvalidCredentials, KindValidation},
		{ErrDeletionNotOwned, KindForbidden},
		{ErrUnauthorized, KindUnauthorized},
		{ErrAIService, KindFailure},
		{errors.New("plain"), KindFailure},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
	assert.Equal(t, "not_found", KindNotFound.String())
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkExperience_Months(t *testing.T) {
	now := date(2025, 6, 15)
	end := date(2023, 3, 10)
	before := date(2019, 1, 1)

	tests := []struct {
		name string
		exp  WorkExperience
		want int
	}{
		{"closed range", WorkExperience{StartDate: date(2022, 1, 1), EndDate: ptr(date(2024, 1, 1))}, 24},
		{"partial month does not count", WorkExperience{StartDate: date(2022, 1, 20), EndDate: &end}, 13},
		{"ongoing uses now", WorkExperience{StartDate: date(2025, 1, 15)}, 5},
		{"end before start", WorkExperience{StartDate: date(2020, 1, 1), EndDate: &before}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.exp.Months(now))
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestCompleteProfile_MissingForVerification(t *testing.T) {
	empty := CompleteProfile{}
	assert.Equal(t, []string{
		"name", "country", "timezone", "sfia level", "mbti",
		"specialized role", "work experience", "personal interest",
	}, empty.MissingForVerification())

	full := CompleteProfile{
		Profile: EmployeeProfile{
			FirstName: "Ana", LastName: "Lopez", Country: "Bolivia", Timezone: "America/La_Paz",
			SfiaLevelGeneral: 3, Mbti: "ENFP",
		},
		SpecializedRoles: []EmployeeSpecializedRole{{Level: "Senior"}},
		WorkExperiences:  []WorkExperience{{ProjectName: "Payments"}},
		Interests:        []PersonalInterest{{Name: "Chess"}},
	}
	assert.Empty(t, full.MissingForVerification())

	full.Interests = nil
	assert.Equal(t, []string{"personal interest"}, full.MissingForVerification())
}

func TestExpandDataTypes(t *testing.T) {
	assert.Equal(t,
		[]DataType{DataProfile, DataTechnologies, DataExperiences, DataInterests, DataLanguages},
		ExpandDataTypes([]DataType{DataLanguages, DataAll}))
	assert.Equal(t,
		[]DataType{DataExperiences, DataLanguages},
		ExpandDataTypes([]DataType{DataLanguages, DataExperiences, DataLanguages}))
	assert.Empty(t, ExpandDataTypes(nil))

	assert.True(t, DataAll.Valid())
	assert.True(t, DataInterests.Valid())
	assert.False(t, DataType("PHOTOS").Valid())
}

func TestWeights(t *testing.T) {
	assert.Equal(t, 100, ReanalysisWeights.Sum())
	assert.True(t, ReanalysisWeights.NonNegative())
	assert.False(t, Weights{Sfia: -10, Technical: 110}.NonNegative())
	assert.Equal(t, 100, Weights{Sfia: -10, Technical: 110}.Sum())
}

func TestInvitationLink_Usable(t *testing.T) {
	now := date(2025, 6, 1)
	inv := InvitationLink{ExpiresAt: now.Add(InvitationTTL)}
	require.True(t, inv.Usable(now))
	assert.False(t, inv.Usable(now.Add(InvitationTTL)))

	inv.IsUsed = true
	assert.False(t, inv.Usable(now))
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidSfia(1))
	assert.True(t, ValidSfia(7))
	assert.False(t, ValidSfia(0))
	assert.False(t, ValidSfia(8))

	assert.True(t, RoleManager.Valid())
	assert.False(t, Role("Owner").Valid())

	assert.True(t, ValidRoleLevel("Architect"))
	assert.False(t, ValidRoleLevel("Principal"))

	assert.True(t, ComplexityMedium.Valid())
	assert.False(t, ProjectComplexity("Extreme").Valid())
}
