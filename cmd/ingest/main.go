package main

import (
	"context"
	"log"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/vacancy-etl/internal/app"
	"github.com/honeycarbs/vacancy-etl/internal/config"
	"github.com/honeycarbs/vacancy-etl/pkg/logging"
	"github.com/honeycarbs/vacancy-etl/pkg/shutdown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	etl, cleanup, err := app.InitializeApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize", "err", err)
		return 1
	}
	defer cleanup()

	go shutdown.Graceful(
		ctx,
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		etl,
		10*time.Second,
		logger,
	)

	logger.Info("ETL run starting", "employers", len(cfg.ETL.Employers), "employer_ids", len(cfg.ETL.EmployerIDs))

	out, err := etl.Run(ctx)
	if err != nil {
		logger.Error("ETL run aborted", "err", err)
		return 1
	}

	if out.Run.Failed() {
		logger.Warn("ETL run completed with failures", "run_id", out.Run.RunID.String(), "failures", len(out.Run.Failures))
	} else {
		logger.Info("ETL run completed", "run_id", out.Run.RunID.String())
	}
	return 0
}
