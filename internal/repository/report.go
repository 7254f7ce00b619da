package repository

import (
	"context"

	"github.com/honeycarbs/vacancy-etl/internal/domain"
)

// ReportRepository defines the read-side queries run after ingestion
type ReportRepository interface {
	CompaniesWithVacancyCounts(ctx context.Context) ([]domain.CompanyVacancyCount, error)
	AllVacancies(ctx context.Context) ([]domain.VacancyListing, error)
	// AverageSalary returns nil when no vacancy has a salary
	AverageSalary(ctx context.Context) (*float64, error)
	VacanciesAboveAverageSalary(ctx context.Context) ([]domain.VacancyListing, error)
	VacanciesMatchingKeyword(ctx context.Context, keyword string) ([]domain.VacancyListing, error)
}
