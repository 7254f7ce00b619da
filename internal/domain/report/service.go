package report

import (
	"context"

	"github.com/honeycarbs/vacancy-etl/internal/domain"
	"github.com/honeycarbs/vacancy-etl/internal/repository"
	"github.com/honeycarbs/vacancy-etl/pkg/logging"
)

// Summary holds every read-side section. A section that failed carries the
// zero value and its failure.
type Summary struct {
	Companies      domain.Result[[]domain.CompanyVacancyCount]
	Vacancies      domain.Result[[]domain.VacancyListing]
	AverageSalary  domain.Result[*float64]
	AboveAverage   domain.Result[[]domain.VacancyListing]
	Keyword        string
	KeywordMatches domain.Result[[]domain.VacancyListing]
}

// Failures collects the failures of every section in report order
func (s Summary) Failures() []domain.Failure {
	var out []domain.Failure
	for _, f := range []*domain.Failure{
		s.Companies.Failure,
		s.Vacancies.Failure,
		s.AverageSalary.Failure,
		s.AboveAverage.Failure,
		s.KeywordMatches.Failure,
	} {
		if f != nil {
			out = append(out, *f)
		}
	}
	return out
}

// Service runs the report queries after ingestion
type Service struct {
	repo   repository.ReportRepository
	logger *logging.Logger
}

// NewService creates a report service
func NewService(repo repository.ReportRepository, logger *logging.Logger) *Service {
	if logger == nil {
		return &Service{repo: repo, logger: logging.NewNop()}
	}
	return &Service{repo: repo, logger: logger.Named("report")}
}

// Summarize runs every report query and logs its outcome. A failing query
// never stops the remaining ones.
func (s *Service) Summarize(ctx context.Context, keyword string) Summary {
	sum := Summary{Keyword: keyword}

	sum.Companies = section(ctx, s, "companies with vacancy counts", "", s.repo.CompaniesWithVacancyCounts)
	for _, c := range sum.Companies.Value {
		s.logger.Info("company vacancies", "company", c.Company, "vacancies", c.Vacancies)
	}

	sum.Vacancies = section(ctx, s, "all vacancies", "", s.repo.AllVacancies)
	if sum.Vacancies.OK() {
		s.logger.Info("vacancies stored", "total", len(sum.Vacancies.Value))
	}

	sum.AverageSalary = section(ctx, s, "average salary", "", s.repo.AverageSalary)
	switch {
	case !sum.AverageSalary.OK():
	case sum.AverageSalary.Value == nil:
		s.logger.Info("average salary unavailable, no vacancy has a salary")
	default:
		s.logger.Info("average salary", "salary", *sum.AverageSalary.Value)
	}

	sum.AboveAverage = section(ctx, s, "vacancies above average salary", "", s.repo.VacanciesAboveAverageSalary)
	if sum.AboveAverage.OK() {
		s.logger.Info("vacancies above average salary", "count", len(sum.AboveAverage.Value))
	}

	sum.KeywordMatches = section(ctx, s, "vacancies matching keyword", keyword, func(ctx context.Context) ([]domain.VacancyListing, error) {
		return s.repo.VacanciesMatchingKeyword(ctx, keyword)
	})
	if sum.KeywordMatches.OK() {
		s.logger.Info("vacancies matching keyword", "keyword", keyword, "count", len(sum.KeywordMatches.Value))
	}

	return sum
}

func section[T any](ctx context.Context, s *Service, op, subject string, query func(context.Context) (T, error)) domain.Result[T] {
	v, err := query(ctx)
	if err != nil {
		s.logger.Error("report query failed", "query", op, "err", err)
		return domain.Failed[T](domain.Failure{Kind: domain.FailureStore, Op: op, Subject: subject, Err: err})
	}
	return domain.Ok(v)
}
