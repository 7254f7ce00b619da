//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/vacancy-etl/internal/config"
	"github.com/honeycarbs/vacancy-etl/internal/domain/ingest"
	"github.com/honeycarbs/vacancy-etl/internal/domain/report"
	"github.com/honeycarbs/vacancy-etl/internal/repository"
	storage "github.com/honeycarbs/vacancy-etl/internal/storage/postgres"
	"github.com/honeycarbs/vacancy-etl/pkg/hh"
	"github.com/honeycarbs/vacancy-etl/pkg/logging"
)

// InitializeApp creates App with all resources wired up
func InitializeApp(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, func(), error) {
	wire.Build(
		// Infrastructure - Postgres
		providePostgresConfig,
		providePostgresClient,

		// Infrastructure - hh.ru
		provideHHConfig,
		hh.NewClient,

		// Store
		storage.NewStoreFromClient,
		wire.Bind(new(ingest.Store), new(*storage.Store)),
		wire.Bind(new(repository.ReportRepository), new(*storage.Store)),
		wire.Bind(new(SchemaCreator), new(*storage.Store)),

		// Providers
		provideDirectory,
		provideMirror,

		// Services
		ingest.NewServiceWithDeps,
		report.NewService,
		wire.Bind(new(Reporter), new(*report.Service)),

		newApp,
	)

	return nil, nil, nil
}
