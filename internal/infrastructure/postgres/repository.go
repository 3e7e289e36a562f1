package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Miguelito2774/jala-match-sub001/internal/repository"
	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

type PostgresRepository struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresRepository(pool *pgxpool.Pool, log logger.Logger) repository.Repository {
	return &PostgresRepository{pool: pool, logger: log}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// scanner covers pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}
