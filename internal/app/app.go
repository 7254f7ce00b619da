package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/honeycarbs/vacancy-etl/internal/config"
	"github.com/honeycarbs/vacancy-etl/internal/domain"
	"github.com/honeycarbs/vacancy-etl/internal/domain/ingest"
	"github.com/honeycarbs/vacancy-etl/internal/domain/report"
	"github.com/honeycarbs/vacancy-etl/pkg/logging"
)

// SchemaCreator prepares the relational schema before a run
type SchemaCreator interface {
	CreateSchema(ctx context.Context) error
}

// Reporter runs the read-side queries after ingestion
type Reporter interface {
	Summarize(ctx context.Context, keyword string) report.Summary
}

// Outcome is everything one run produced
type Outcome struct {
	Run     domain.RunReport
	Summary report.Summary
}

// App runs one ETL pass: schema, ingestion, report
type App struct {
	schema   SchemaCreator
	ingest   ingest.Service
	reporter Reporter
	request  domain.IngestRequest
	keyword  string
	logger   *logging.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

func newApp(cfg config.Config, schema SchemaCreator, ingestSvc ingest.Service, reporter Reporter, logger *logging.Logger) *App {
	return &App{
		schema:   schema,
		ingest:   ingestSvc,
		reporter: reporter,
		request: domain.IngestRequest{
			SearchTerms: cfg.ETL.Employers,
			EmployerIDs: cfg.ETL.EmployerIDs,
		},
		keyword: cfg.ETL.Keyword,
		logger:  logger,
	}
}

// Run creates the schema, ingests and reports. Only a schema failure is
// returned; every later failure is recorded in the outcome.
func (a *App) Run(ctx context.Context) (Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.mu.Lock()
	a.cancel = cancel
	a.mu.Unlock()

	if err := a.schema.CreateSchema(ctx); err != nil {
		return Outcome{}, fmt.Errorf("app: %w", err)
	}

	run := a.ingest.Run(ctx, a.request)
	a.logger.Info("ingestion finished",
		"run_id", run.RunID.String(),
		"employers", run.EmployersResolved,
		"search_misses", run.SearchMisses,
		"fetched", run.VacanciesFetched,
		"inserted", run.VacanciesInserted,
		"dropped", run.VacanciesDropped,
		"failures", len(run.Failures),
	)

	summary := a.reporter.Summarize(ctx, a.keyword)
	if failures := summary.Failures(); len(failures) > 0 {
		a.logger.Warn("report finished with failures", "run_id", run.RunID.String(), "failures", len(failures))
	}

	return Outcome{Run: run, Summary: summary}, nil
}

// Shutdown cancels an in-flight run; the open transaction rolls back
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
	return nil
}
