package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Miguelito2774/jala-match-sub001/internal/config"
	"github.com/Miguelito2774/jala-match-sub001/internal/handler"
	"github.com/Miguelito2774/jala-match-sub001/internal/infrastructure/aiservice"
	"github.com/Miguelito2774/jala-match-sub001/internal/infrastructure/cache"
	"github.com/Miguelito2774/jala-match-sub001/internal/infrastructure/metrics"
	"github.com/Miguelito2774/jala-match-sub001/internal/infrastructure/notifier"
	"github.com/Miguelito2774/jala-match-sub001/internal/infrastructure/postgres"
	"github.com/Miguelito2774/jala-match-sub001/internal/infrastructure/security"
	"github.com/Miguelito2774/jala-match-sub001/internal/scheduler"
	"github.com/Miguelito2774/jala-match-sub001/internal/usecase"
	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

const (
	bcryptCost       = 12
	deletionTimeout  = 5 * time.Minute
	limiterCleanup   = 10 * time.Minute
	shutdownDeadline = 10 * time.Second
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := logger.NewWithOptions(os.Stdout, cfg.LogLevel, !cfg.IsLocal())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPoolWithOptions(ctx, cfg.DBURL, postgres.PoolOptions{
		MaxConns:        int32(cfg.DBMaxConns),
		MinConns:        int32(cfg.DBMinConns),
		MaxConnLifetime: cfg.DBMaxConnLifetime,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
	})
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer pool.Close()

	if cfg.Migrate {
		migrationsPath := "db/migrations/postgresql"
		if err := postgres.RunMigrations(ctx, pool, migrationsPath, logger); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		logger.Info("migrations completed")
	}

	var store cache.Cache = cache.NewNoop()
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL, logger)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		defer func() { _ = redisCache.Close() }()
		store = redisCache
	}

	m := metrics.New()
	repo := postgres.NewPostgresRepository(pool, logger)
	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	notifyCtx, stopNotifier := context.WithCancel(context.Background())
	defer stopNotifier()
	notes := notifier.New(notifier.NewLogSender(repo, logger), cfg.NotificationQueueSize, logger).WithRecorder(m)
	go notes.Run(notifyCtx)

	uc := usecase.New(usecase.Dependencies{
		Repo:     repo,
		Tokens:   tokens,
		Hasher:   security.NewBcryptHasher(bcryptCost),
		Cache:    store,
		AI:       aiservice.New(cfg.AIServiceURL, cfg.AIServiceTimeout, logger).WithRecorder(m),
		Notifier: notes,
		Logger:   logger,
	})

	if err := uc.Catalog.SeedFromFile(ctx, cfg.CatalogSeedPath); err != nil {
		log.Fatalf("failed to seed catalog: %v", err)
	}
	if err := uc.Auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to bootstrap admin: %v", err)
	}

	jobs := scheduler.New(notifyCtx, deletionTimeout, logger).WithRecorder(m)
	err = jobs.Add("process_deletions", cfg.DeletionSchedule, func(ctx context.Context) (int, error) {
		return uc.Privacy.ProcessDueDeletions(ctx, time.Now().UTC())
	})
	if err != nil {
		log.Fatalf("failed to schedule deletions: %v", err)
	}
	jobs.Start()

	limiterStop := make(chan struct{})
	limiter := handler.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
	limiter.StartCleanup(limiterCleanup, limiterStop)

	h := handler.New(uc, tokens, logger, handler.WithMetrics(m), handler.WithRateLimiter(limiter))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", cfg.HTTPAddr, "environment", cfg.Environment)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownDeadline)
	defer cancel()

	logger.Info("shutting down server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	jobs.Stop(shutdownCtx)
	close(limiterStop)
	stopNotifier()
}
