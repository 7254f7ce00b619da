package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/honeycarbs/vacancy-etl/internal/domain"
	"github.com/honeycarbs/vacancy-etl/internal/domain/vacancy"
	"github.com/honeycarbs/vacancy-etl/pkg/logging"
)

type Service interface {
	Run(ctx context.Context, req domain.IngestRequest) domain.RunReport
}

// Option configures Service
type Option func(*config)

type config struct {
	directory Directory
	store     Store
	mirror    Mirror
	logger    *logging.Logger
	newRunID  func() domain.RunID
}

// WithDirectory sets the employer directory
func WithDirectory(d Directory) Option {
	return func(c *config) {
		c.directory = d
	}
}

// WithStore sets the store
func WithStore(s Store) Option {
	return func(c *config) {
		c.store = s
	}
}

// WithMirror sets an optional mirror written after the store commits
func WithMirror(m Mirror) Option {
	return func(c *config) {
		c.mirror = m
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithRunIDs sets a custom run id generator
func WithRunIDs(gen func() domain.RunID) Option {
	return func(c *config) {
		c.newRunID = gen
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		logger:   logging.NewNop(),
		newRunID: uuid.New,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.directory == nil {
		return nil, fmt.Errorf("ingest.Service: directory is required")
	}
	if cfg.store == nil {
		return nil, fmt.Errorf("ingest.Service: store is required")
	}

	return &service{
		directory: cfg.directory,
		store:     cfg.store,
		mirror:    cfg.mirror,
		logger:    cfg.logger,
		newRunID:  cfg.newRunID,
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible).
// mirror and logger may be nil.
func NewServiceWithDeps(directory Directory, store Store, mirror Mirror, logger *logging.Logger) (Service, error) {
	opts := []Option{WithDirectory(directory), WithStore(store)}
	if logger != nil {
		opts = append(opts, WithLogger(logger.Named("ingest")))
	}
	if mirror != nil {
		opts = append(opts, WithMirror(mirror))
	}
	return NewService(opts...)
}

type service struct {
	directory Directory
	store     Store
	mirror    Mirror
	logger    *logging.Logger
	newRunID  func() domain.RunID
}

// Run resolves employers, persists them, then fetches, normalizes and persists
// their vacancies. It never aborts on a single failure; every degraded step is
// logged and recorded in the report.
func (s *service) Run(ctx context.Context, req domain.IngestRequest) domain.RunReport {
	report := domain.RunReport{
		RunID:       s.newRunID(),
		SearchTerms: len(req.SearchTerms),
		EmployerIDs: len(req.EmployerIDs),
	}
	log := s.logger.With("run_id", report.RunID.String(), "directory", s.directory.Name())

	employers := s.resolveEmployers(ctx, log, req, &report)
	report.EmployersResolved = len(employers)
	log.Info("employers resolved",
		"resolved", report.EmployersResolved,
		"search_misses", report.SearchMisses,
	)
	if len(employers) == 0 {
		log.Warn("no employers resolved, nothing to ingest")
		return report
	}

	if err := s.store.UpsertEmployers(ctx, employers); err != nil {
		log.Error("failed to persist employers", "count", len(employers), "err", err)
		report.Failures = append(report.Failures, asFailure(err, domain.FailureStore, "upsert employers", ""))
	} else {
		log.Info("employers persisted", "count", len(employers))
	}

	batch := make([]domain.Vacancy, 0)
	for _, e := range employers {
		if err := ctx.Err(); err != nil {
			log.Warn("run interrupted while fetching vacancies", "err", err)
			report.Failures = append(report.Failures, asFailure(err, domain.FailureRemote, "fetch vacancies", e.EmployerID))
			return report
		}

		raws, err := s.directory.EmployerVacancies(ctx, e.EmployerID)
		if err != nil {
			log.Warn("vacancy listing incomplete",
				"employer_id", e.EmployerID,
				"fetched", len(raws),
				"err", err,
			)
			report.Failures = append(report.Failures, asFailure(err, domain.FailureRemote, "fetch vacancies", e.EmployerID))
		}
		batch = append(batch, vacancy.NormalizeAll(raws)...)
	}
	report.VacanciesFetched = len(batch)

	stats, err := s.store.InsertVacancies(ctx, batch)
	if err != nil {
		log.Error("failed to persist vacancies", "count", len(batch), "err", err)
		report.Failures = append(report.Failures, asFailure(err, domain.FailureStore, "insert vacancies", ""))
		return report
	}
	report.VacanciesInserted = stats.Inserted
	report.VacanciesDropped = stats.Dropped
	if stats.Dropped > 0 {
		log.Debug("vacancies without a stored employer dropped", "dropped", stats.Dropped)
	}
	log.Info("vacancies persisted", "inserted", stats.Inserted, "fetched", report.VacanciesFetched)

	if s.mirror != nil {
		owned := ownedVacancies(employers, batch)
		if err := s.mirror.Mirror(ctx, report.RunID, employers, owned); err != nil {
			log.Error("failed to mirror run", "err", err)
			report.Failures = append(report.Failures, asFailure(err, domain.FailureStore, "mirror run", ""))
		} else {
			log.Info("run mirrored", "employers", len(employers), "vacancies", len(owned))
		}
	}

	return report
}

// resolveEmployers looks up search terms first, then explicit ids, in request order
func (s *service) resolveEmployers(
	ctx context.Context,
	log *logging.Logger,
	req domain.IngestRequest,
	report *domain.RunReport,
) []domain.Employer {
	employers := make([]domain.Employer, 0, len(req.SearchTerms)+len(req.EmployerIDs))

	for _, term := range req.SearchTerms {
		e, err := s.directory.SearchEmployer(ctx, term)
		if err != nil {
			log.Warn("employer search failed", "term", term, "err", err)
			report.Failures = append(report.Failures, asFailure(err, domain.FailureRemote, "search employer", term))
			report.SearchMisses++
			continue
		}
		if e == nil {
			log.Debug("no employer matches search term", "term", term)
			report.SearchMisses++
			continue
		}
		employers = append(employers, *e)
	}

	for _, id := range req.EmployerIDs {
		e, err := s.directory.Employer(ctx, id)
		if err != nil {
			log.Warn("employer lookup failed", "employer_id", id, "err", err)
			report.Failures = append(report.Failures, asFailure(err, domain.FailureRemote, "fetch employer", id))
			continue
		}
		if e == nil {
			continue
		}
		employers = append(employers, *e)
	}

	return employers
}

func ownedVacancies(employers []domain.Employer, batch []domain.Vacancy) []domain.Vacancy {
	known := make(map[string]struct{}, len(employers))
	for _, e := range employers {
		known[e.EmployerID] = struct{}{}
	}

	out := make([]domain.Vacancy, 0, len(batch))
	for _, v := range batch {
		if _, ok := known[v.EmployerID]; ok {
			out = append(out, v)
		}
	}
	return out
}

// asFailure keeps an existing categorization and falls back to kind otherwise
func asFailure(err error, kind domain.FailureKind, op, subject string) domain.Failure {
	var f domain.Failure
	if errors.As(err, &f) {
		if f.Op == "" {
			f.Op = op
		}
		if f.Subject == "" {
			f.Subject = subject
		}
		return f
	}
	return domain.Failure{Kind: kind, Op: op, Subject: subject, Err: err}
}
