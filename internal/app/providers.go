package app

import (
	"context"

	"github.com/honeycarbs/vacancy-etl/internal/config"
	"github.com/honeycarbs/vacancy-etl/internal/domain/ingest"
	hhProvider "github.com/honeycarbs/vacancy-etl/internal/domain/ingest/providers/hh"
	graph "github.com/honeycarbs/vacancy-etl/internal/storage/neo4j"
	"github.com/honeycarbs/vacancy-etl/pkg/hh"
	"github.com/honeycarbs/vacancy-etl/pkg/logging"
	n4j "github.com/honeycarbs/vacancy-etl/pkg/neo4j"
	pg "github.com/honeycarbs/vacancy-etl/pkg/postgres"
)

// providePostgresConfig extracts Postgres config from main config
func providePostgresConfig(cfg config.Config) pg.Config {
	return pg.Config{
		Name:     cfg.Postgres.Name,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		SSLMode:  cfg.Postgres.SSLMode,
	}
}

// providePostgresClient opens the run's single connection
func providePostgresClient(ctx context.Context, cfg pg.Config, logger *logging.Logger) (*pg.Client, func(), error) {
	client, err := pg.NewClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("postgres connected", "host", cfg.Host, "database", cfg.Name)

	cleanup := func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("failed to close postgres connection", "err", err)
		}
	}
	return client, cleanup, nil
}

// provideHHConfig extracts hh.ru config from main config
func provideHHConfig(cfg config.Config) hh.Config {
	delay := cfg.HH.RequestDelay
	if delay == 0 {
		// an explicit zero turns the pause off
		delay = -1
	}
	return hh.Config{
		BaseURL:   cfg.HH.BaseURL,
		UserAgent: cfg.HH.UserAgent,
		PageSize:  cfg.HH.PageSize,
		Delay:     delay,
	}
}

// provideDirectory creates the hh.ru directory from client
func provideDirectory(client *hh.Client, logger *logging.Logger) (ingest.Directory, error) {
	p, err := hhProvider.NewProvider(client)
	if err != nil {
		return nil, err
	}
	logger.Debug("directory initialized", "directory", p.Name(), "page_size", client.PageSize())
	return p, nil
}

// provideMirror connects the graph mirror when Neo4j is configured; nil otherwise
func provideMirror(ctx context.Context, cfg config.Config, logger *logging.Logger) (ingest.Mirror, func(), error) {
	n4jCfg := n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
	}
	if !n4jCfg.Enabled() {
		logger.Debug("graph mirror disabled, NEO4J_URI not set")
		return nil, func() {}, nil
	}

	client, err := n4j.NewClient(ctx, n4jCfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("graph mirror enabled", "uri", n4jCfg.URI)

	cleanup := func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("failed to close neo4j driver", "err", err)
		}
	}
	return graph.NewGraphMirror(client), cleanup, nil
}
