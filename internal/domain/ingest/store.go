package ingest

import (
	"context"

	"github.com/honeycarbs/vacancy-etl/internal/domain"
)

// Store persists employers and vacancies
type Store interface {
	// UpsertEmployers inserts employers in one transaction; an existing natural key is left untouched
	UpsertEmployers(ctx context.Context, employers []domain.Employer) error

	// InsertVacancies inserts vacancies in one transaction, dropping those whose employer is unknown
	InsertVacancies(ctx context.Context, vacancies []domain.Vacancy) (domain.InsertStats, error)
}

// Mirror copies the data of a committed run to a secondary store
type Mirror interface {
	Mirror(ctx context.Context, runID domain.RunID, employers []domain.Employer, vacancies []domain.Vacancy) error
}
