package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/honeycarbs/vacancy-etl/internal/domain"
)

const companiesWithVacancyCountsSQL = `SELECT COALESCE(e.name, ''), COUNT(v.id)
FROM employers e
LEFT JOIN vacancies v ON v.employer_id = e.id
GROUP BY e.name
ORDER BY e.name`

const listingColumns = `SELECT COALESCE(e.name, ''), COALESCE(v.vacancy_name, ''), v.salary, COALESCE(v.url, '')
FROM vacancies v
JOIN employers e ON e.id = v.employer_id`

const allVacanciesSQL = listingColumns + `
ORDER BY v.id`

const averageSalarySQL = `SELECT AVG(salary) FROM vacancies WHERE salary IS NOT NULL`

const vacanciesAboveSalarySQL = listingColumns + `
WHERE v.salary > $1
ORDER BY v.salary DESC, v.id`

const vacanciesMatchingKeywordSQL = listingColumns + `
WHERE v.vacancy_name ILIKE '%' || $1::text || '%'
ORDER BY v.id`

// CompaniesWithVacancyCounts lists every employer with its vacancy count, zero included
func (s *Store) CompaniesWithVacancyCounts(ctx context.Context) ([]domain.CompanyVacancyCount, error) {
	rows, err := s.db.Query(ctx, companiesWithVacancyCountsSQL)
	if err != nil {
		return nil, fmt.Errorf("postgres: companies with vacancy counts: %w", err)
	}

	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CompanyVacancyCount, error) {
		var (
			c domain.CompanyVacancyCount
			n int64
		)
		err := row.Scan(&c.Company, &n)
		c.Vacancies = int(n)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: companies with vacancy counts: %w", err)
	}
	return counts, nil
}

// AllVacancies lists every stored vacancy with its employer name
func (s *Store) AllVacancies(ctx context.Context) ([]domain.VacancyListing, error) {
	listings, err := s.queryListings(ctx, allVacanciesSQL)
	if err != nil {
		return nil, fmt.Errorf("postgres: all vacancies: %w", err)
	}
	return listings, nil
}

// AverageSalary returns the mean of non-null salaries, or nil when there are none
func (s *Store) AverageSalary(ctx context.Context) (*float64, error) {
	var avg *float64
	if err := s.db.QueryRow(ctx, averageSalarySQL).Scan(&avg); err != nil {
		return nil, fmt.Errorf("postgres: average salary: %w", err)
	}
	return avg, nil
}

// VacanciesAboveAverageSalary lists vacancies paid strictly above the average salary
func (s *Store) VacanciesAboveAverageSalary(ctx context.Context) ([]domain.VacancyListing, error) {
	avg, err := s.AverageSalary(ctx)
	if err != nil {
		return nil, err
	}
	if avg == nil {
		return []domain.VacancyListing{}, nil
	}

	listings, err := s.queryListings(ctx, vacanciesAboveSalarySQL, *avg)
	if err != nil {
		return nil, fmt.Errorf("postgres: vacancies above average salary: %w", err)
	}
	return listings, nil
}

// VacanciesMatchingKeyword lists vacancies whose name contains keyword, ignoring case
func (s *Store) VacanciesMatchingKeyword(ctx context.Context, keyword string) ([]domain.VacancyListing, error) {
	listings, err := s.queryListings(ctx, vacanciesMatchingKeywordSQL, keyword)
	if err != nil {
		return nil, fmt.Errorf("postgres: vacancies matching %q: %w", keyword, err)
	}
	return listings, nil
}

func (s *Store) queryListings(ctx context.Context, sql string, args ...any) ([]domain.VacancyListing, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.VacancyListing, error) {
		var l domain.VacancyListing
		err := row.Scan(&l.Company, &l.Vacancy, &l.Salary, &l.URL)
		return l, err
	})
}
