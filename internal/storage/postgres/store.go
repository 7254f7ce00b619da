package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/honeycarbs/vacancy-etl/internal/domain/ingest"
	"github.com/honeycarbs/vacancy-etl/internal/repository"
	pkgpostgres "github.com/honeycarbs/vacancy-etl/pkg/postgres"
)

// DB is the subset of *pgx.Conn the store runs statements on
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ DB                          = (*pgx.Conn)(nil)
	_ ingest.Store                = (*Store)(nil)
	_ repository.ReportRepository = (*Store)(nil)
)

// Store implements ingest.Store and repository.ReportRepository with PostgreSQL
type Store struct {
	db DB
}

// NewStore creates a Store over db
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// NewStoreFromClient creates a Store over the client's connection
func NewStoreFromClient(client *pkgpostgres.Client) *Store {
	return NewStore(client.Conn())
}

// rollback aborts tx even when ctx is already cancelled
func rollback(ctx context.Context, tx pgx.Tx) {
	_ = tx.Rollback(context.WithoutCancel(ctx))
}
