package postgres

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	requireDocker(t)
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "jala_match",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithDeadline(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/jala_match?sslmode=disable", host, port.Port())

	opts := PoolOptions{
		MaxConns:        6,
		MinConns:        1,
		MaxConnLifetime: 10 * time.Minute,
		MaxConnIdleTime: time.Minute,
	}
	var pool *pgxpool.Pool
	require.Eventually(t, func() bool {
		pool, err = NewPoolWithOptions(ctx, dsn, opts)
		return err == nil
	}, time.Minute, time.Second)
	t.Cleanup(pool.Close)
	require.Equal(t, int32(6), pool.Config().MaxConns)
	require.Equal(t, time.Minute, pool.Config().MaxConnIdleTime)

	require.NoError(t, RunMigrations(ctx, pool, migrationsPath(t), logger.New()))
	return pool
}

func migrationsPath(t *testing.T) string {
	candidates := []string{
		"db/migrations/postgresql",
		"../../../db/migrations/postgresql",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Fatalf("migrations directory not found, checked %v", candidates)
	return ""
}

func requireDocker(t *testing.T) {
	paths := []string{
		"/var/run/docker.sock",
		filepath.Join(os.Getenv("HOME"), ".docker/run/docker.sock"),
	}
	if host := os.Getenv("DOCKER_HOST"); strings.HasPrefix(host, "unix://") {
		paths = append(paths, strings.TrimPrefix(host, "unix://"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		conn, err := net.DialTimeout("unix", p, time.Second)
		if err == nil {
			_ = conn.Close()
			return
		}
	}
	t.Skip("docker socket not available")
}

func newEmployee(t *testing.T, repo *PostgresRepository, email string) (entities.User, entities.EmployeeProfile) {
	ctx := context.Background()
	profile := entities.EmployeeProfile{
		ID:                 uuid.New(),
		SfiaLevelGeneral:   1,
		VerificationStatus: entities.VerificationNotRequested,
	}
	user, err := repo.CreateUserWithProfile(ctx, entities.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hash",
		Role:         entities.RoleEmployee,
	}, profile)
	require.NoError(t, err)
	stored, err := repo.GetProfileByUser(ctx, user.ID)
	require.NoError(t, err)
	return user, stored
}

func TestPostgresRepository(t *testing.T) {
	pool := setupPool(t)
	repo := &PostgresRepository{pool: pool, logger: logger.New()}
	ctx := context.Background()

	require.NoError(t, repo.SeedCatalog(ctx, entities.CatalogSeed{
		Categories: []entities.SeedCategory{{Name: "Backend", Technologies: []entities.SeedTechnology{{Name: "Go"}, {Name: "Java"}}}},
		Areas:      []entities.SeedArea{{Name: "Backend Development", Roles: []string{"Backend Developer"}}},
	}))
	require.NoError(t, repo.SeedCatalog(ctx, entities.CatalogSeed{
		Categories: []entities.SeedCategory{{Name: "Backend", Technologies: []entities.SeedTechnology{{Name: "Go"}}}},
	}))

	techs, err := repo.ListTechnologies(ctx)
	require.NoError(t, err)
	require.Len(t, techs, 2)

	manager, err := repo.CreateUser(ctx, entities.User{ID: uuid.New(), Email: "lead@jala.dev", PasswordHash: "hash", Role: entities.RoleManager})
	require.NoError(t, err)

	t.Run("users", func(t *testing.T) {
		user, profile := newEmployee(t, repo, "ana@jala.dev")

		_, err := repo.CreateUser(ctx, entities.User{ID: uuid.New(), Email: "ANA@jala.dev", PasswordHash: "x", Role: entities.RoleEmployee})
		assert.ErrorIs(t, err, entities.ErrEmailExists)

		info, err := repo.GetUserInfo(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, info.HasProfile)
		assert.False(t, info.IsProfileVerified)
		assert.Equal(t, profile.ID, *info.ProfileID)

		byEmail, err := repo.GetUserByEmail(ctx, "Ana@Jala.dev")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		_, err = repo.CreateProfile(ctx, entities.EmployeeProfile{ID: uuid.New(), UserID: user.ID, VerificationStatus: entities.VerificationNotRequested})
		assert.ErrorIs(t, err, entities.ErrProfileExists)
	})

	t.Run("invitations", func(t *testing.T) {
		inv, err := repo.CreateInvitation(ctx, entities.InvitationLink{
			ID: uuid.New(), Token: uuid.NewString(), CreatedByID: manager.ID, Email: "new@jala.dev",
			TargetRole: entities.RoleManager, ExpiresAt: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)

		user := entities.User{ID: uuid.New(), Email: "new@jala.dev", PasswordHash: "hash", Role: entities.RoleManager}
		_, err = repo.CreateUserFromInvitation(ctx, user, inv.ID, time.Now())
		require.NoError(t, err)

		_, err = repo.CreateUserFromInvitation(ctx, entities.User{ID: uuid.New(), Email: "other@jala.dev", PasswordHash: "x", Role: entities.RoleManager}, inv.ID, time.Now())
		assert.ErrorIs(t, err, entities.ErrInvitationInvalid)

		stored, err := repo.GetInvitationByToken(ctx, inv.Token)
		require.NoError(t, err)
		assert.True(t, stored.IsUsed)
	})

	t.Run("profile children", func(t *testing.T) {
		_, profile := newEmployee(t, repo, "luis@jala.dev")

		_, err := repo.AddLanguage(ctx, entities.EmployeeLanguage{ID: uuid.New(), ProfileID: profile.ID, Language: "English", Proficiency: "C1"})
		require.NoError(t, err)
		_, err = repo.AddLanguage(ctx, entities.EmployeeLanguage{ID: uuid.New(), ProfileID: profile.ID, Language: "english", Proficiency: "B2"})
		assert.ErrorIs(t, err, entities.ErrLanguageExists)

		_, err = repo.AddEmployeeTechnology(ctx, entities.EmployeeTechnology{ID: uuid.New(), ProfileID: profile.ID, TechnologyID: techs[0].ID, SfiaLevel: 4, YearsExperience: 2.5})
		require.NoError(t, err)
		_, err = repo.AddEmployeeTechnology(ctx, entities.EmployeeTechnology{ID: uuid.New(), ProfileID: profile.ID, TechnologyID: uuid.New(), SfiaLevel: 4})
		assert.ErrorIs(t, err, entities.ErrTechnologyNotFound)

		end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		_, err = repo.AddWorkExperience(ctx, entities.WorkExperience{
			ID: uuid.New(), ProfileID: profile.ID, ProjectName: "Billing", Tools: []string{"Jira"},
			StartDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), EndDate: &end,
		})
		require.NoError(t, err)

		complete, err := repo.GetCompleteProfile(ctx, profile.ID)
		require.NoError(t, err)
		assert.Equal(t, "luis@jala.dev", complete.Email)
		assert.Len(t, complete.Languages, 1)
		assert.Len(t, complete.Technologies, 1)
		assert.Equal(t, "Go", complete.Technologies[0].TechnologyName)
		require.Len(t, complete.WorkExperiences, 1)
		assert.Equal(t, []string{"Jira"}, complete.WorkExperiences[0].Tools)

		require.NoError(t, repo.ResetProfileData(ctx, profile.ID, []entities.DataType{entities.DataAll}))
		complete, err = repo.GetCompleteProfile(ctx, profile.ID)
		require.NoError(t, err)
		assert.Empty(t, complete.Languages)
		assert.Empty(t, complete.Technologies)
		assert.Empty(t, complete.WorkExperiences)
		assert.True(t, complete.Profile.Availability)
	})

	t.Run("verification", func(t *testing.T) {
		_, profile := newEmployee(t, repo, "sofia@jala.dev")
		sfia := 3
		_, err := repo.CreateVerificationRequest(ctx, entities.ProfileVerification{
			ID: uuid.New(), ProfileID: profile.ID, SfiaProposed: &sfia, RequestedAt: time.Now(),
		})
		require.NoError(t, err)

		pending, total, err := repo.ListPendingVerifications(ctx, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, pending, 1)
		assert.Equal(t, profile.ID, pending[0].ProfileID)

		profile.VerificationStatus = entities.VerificationApproved
		profile.Availability = true
		profile.VerificationNotes = "ok"
		completed, err := repo.CompleteVerification(ctx, profile, manager.ID, time.Now())
		require.NoError(t, err)
		assert.Equal(t, entities.VerificationApproved, completed.Status)

		stored, err := repo.GetProfile(ctx, profile.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.VerificationApproved, stored.VerificationStatus)

		history, err := repo.ListVerifications(ctx, profile.ID)
		require.NoError(t, err)
		assert.Len(t, history, 1)

		_, err = repo.CreateVerificationRequest(ctx, entities.ProfileVerification{
			ID: uuid.New(), ProfileID: profile.ID, SfiaProposed: &sfia, RequestedAt: time.Now(),
		})
		assert.ErrorIs(t, err, entities.ErrVerificationAlreadyVerified)

		_, err = repo.CreateVerificationRequest(ctx, entities.ProfileVerification{
			ID: uuid.New(), ProfileID: uuid.New(), SfiaProposed: &sfia, RequestedAt: time.Now(),
		})
		assert.ErrorIs(t, err, entities.ErrProfileNotFound)
	})

	t.Run("verification requested twice", func(t *testing.T) {
		_, profile := newEmployee(t, repo, "mateo@jala.dev")
		sfia := 2
		request := func() error {
			_, err := repo.CreateVerificationRequest(ctx, entities.ProfileVerification{
				ID: uuid.New(), ProfileID: profile.ID, SfiaProposed: &sfia, RequestedAt: time.Now(),
			})
			return err
		}

		errs := make([]error, 4)
		var wg sync.WaitGroup
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = request()
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, entities.ErrVerificationAlreadyRequested)
		}
		assert.Equal(t, 1, succeeded)
		assert.ErrorIs(t, request(), entities.ErrVerificationAlreadyRequested)

		history, err := repo.ListVerifications(ctx, profile.ID)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("teams", func(t *testing.T) {
		_, p1 := newEmployee(t, repo, "t1@jala.dev")
		_, p2 := newEmployee(t, repo, "t2@jala.dev")

		source, err := repo.CreateTeam(ctx, entities.Team{
			ID: uuid.New(), Name: "Payments", CreatorID: manager.ID, IsActive: true,
			Analysis: entities.TeamAnalysis{Strengths: []string{"backend"}},
			Weights:  entities.ReanalysisWeights,
			Members: []entities.TeamMember{
				{EmployeeProfileID: p1.ID, Name: "T1", Role: "Developer", SfiaLevel: 3, IsLeader: true},
				{EmployeeProfileID: p2.ID, Name: "T2", Role: "QA", SfiaLevel: 2},
			},
			RequiredTechnologies: []entities.TeamRequiredTechnology{{TechnologyID: techs[0].ID, MinimumSfiaLevel: 3, IsMandatory: true}},
		})
		require.NoError(t, err)
		assert.Len(t, source.Members, 2)
		assert.Equal(t, []string{"backend"}, source.Analysis.Strengths)
		assert.Equal(t, 20, source.Weights.Sfia)

		target, err := repo.CreateTeam(ctx, entities.Team{ID: uuid.New(), Name: "Search", CreatorID: manager.ID, IsActive: true})
		require.NoError(t, err)

		require.NoError(t, repo.MoveTeamMember(ctx, source.ID, target.ID, p2.ID))
		assert.ErrorIs(t, repo.MoveTeamMember(ctx, source.ID, target.ID, p2.ID), entities.ErrTeamMemberNotFound)

		available, err := repo.ListActiveTeams(ctx, p2.ID)
		require.NoError(t, err)
		require.Len(t, available, 2)
		for _, at := range available {
			assert.Equal(t, 1, at.MemberCount)
			assert.Equal(t, at.TeamID == target.ID, at.HasMember)
		}

		byMember, err := repo.ListTeamsByMember(ctx, p1.ID)
		require.NoError(t, err)
		require.Len(t, byMember, 1)
		assert.Equal(t, source.ID, byMember[0].ID)

		require.NoError(t, repo.RemoveTeamMember(ctx, source.ID, p1.ID))
		require.NoError(t, repo.DeleteTeam(ctx, source.ID))
		_, err = repo.GetTeam(ctx, source.ID)
		assert.ErrorIs(t, err, entities.ErrTeamNotFound)
	})

	t.Run("privacy", func(t *testing.T) {
		user, _ := newEmployee(t, repo, "priv@jala.dev")

		_, err := repo.GetConsent(ctx, user.ID)
		assert.ErrorIs(t, err, entities.ErrConsentNotFound)
		_, err = repo.UpsertConsent(ctx, entities.PrivacyConsent{UserID: user.ID, TeamMatchingAnalysis: false, Version: entities.ConsentVersion, LastUpdated: time.Now()})
		require.NoError(t, err)

		now := time.Now()
		order, err := repo.CreateDeletionOrder(ctx, entities.DataDeletionOrder{
			ID: uuid.New(), UserID: user.ID, Status: entities.DeletionPending, RequestDate: now,
			ScheduledDeletionDate: now.Add(-time.Minute), DataTypes: []entities.DataType{entities.DataInterests},
		})
		require.NoError(t, err)
		assert.Equal(t, []entities.DataType{entities.DataInterests}, order.DataTypes)

		_, err = repo.CreateDeletionOrder(ctx, entities.DataDeletionOrder{
			ID: uuid.New(), UserID: user.ID, Status: entities.DeletionPending, RequestDate: now, ScheduledDeletionDate: now,
		})
		assert.ErrorIs(t, err, entities.ErrDeletionPending)

		due, err := repo.ListDueDeletionOrders(ctx, time.Now())
		require.NoError(t, err)
		require.Len(t, due, 1)

		order.Status = entities.DeletionCompleted
		order.ProcessedDate = &now
		require.NoError(t, repo.UpdateDeletionOrder(ctx, order))

		pending, err := repo.HasPendingDeletion(ctx, user.ID)
		require.NoError(t, err)
		assert.False(t, pending)

		require.NoError(t, repo.AddAuditLog(ctx, entities.PrivacyAuditLog{ID: uuid.New(), UserID: user.ID, Action: entities.AuditDataExported, Timestamp: now}))
		logs, err := repo.ListAuditLogs(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, logs, 1)
	})
}
