package ingest

import (
	"context"

	"github.com/honeycarbs/vacancy-etl/internal/domain"
)

// Directory is a remote employer and vacancy directory (hh.ru, a mock API, etc.).
// Errors are best-effort signals: callers treat them as absent or partial data.
type Directory interface {
	// e.g. "hh"
	Name() string

	// Employer loads one employer by natural key
	Employer(ctx context.Context, id string) (*domain.Employer, error)

	// SearchEmployer returns the first match for name, or nil, nil when nothing matches
	SearchEmployer(ctx context.Context, name string) (*domain.Employer, error)

	// EmployerVacancies returns every vacancy of an employer. On error the
	// returned slice holds what was fetched before the failure.
	EmployerVacancies(ctx context.Context, employerID string) ([]domain.RawVacancy, error)
}
