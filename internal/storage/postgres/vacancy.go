package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/honeycarbs/vacancy-etl/internal/domain"
)

const resolveEmployersSQL = `SELECT employer_id, id FROM employers WHERE employer_id = ANY($1)`

const insertVacancySQL = `INSERT INTO vacancies (vacancy_name, url, salary, employer_id)
VALUES ($1, $2, $3, $4)`

// InsertVacancies inserts vacancies in one transaction. Vacancies whose
// employer is not stored are skipped and counted as dropped.
func (s *Store) InsertVacancies(ctx context.Context, vacancies []domain.Vacancy) (domain.InsertStats, error) {
	var stats domain.InsertStats
	if len(vacancies) == 0 {
		return stats, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return stats, fmt.Errorf("postgres: insert vacancies: begin: %w", err)
	}

	ids, err := resolveEmployerIDs(ctx, tx, employerKeys(vacancies))
	if err != nil {
		rollback(ctx, tx)
		return stats, fmt.Errorf("postgres: insert vacancies: %w", err)
	}

	for _, v := range vacancies {
		id, ok := ids[v.EmployerID]
		if !ok {
			stats.Dropped++
			continue
		}
		if _, err := tx.Exec(ctx, insertVacancySQL, v.Name, v.URL, v.Salary, id); err != nil {
			rollback(ctx, tx)
			return domain.InsertStats{}, fmt.Errorf("postgres: insert vacancy %q: %w", v.Name, err)
		}
		stats.Inserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.InsertStats{}, fmt.Errorf("postgres: insert vacancies: commit: %w", err)
	}
	return stats, nil
}

// employerKeys returns the distinct employer natural keys in first-seen order
func employerKeys(vacancies []domain.Vacancy) []string {
	seen := make(map[string]struct{}, len(vacancies))
	keys := make([]string, 0, len(vacancies))
	for _, v := range vacancies {
		if _, ok := seen[v.EmployerID]; ok {
			continue
		}
		seen[v.EmployerID] = struct{}{}
		keys = append(keys, v.EmployerID)
	}
	return keys
}

func resolveEmployerIDs(ctx context.Context, tx pgx.Tx, keys []string) (map[string]int64, error) {
	rows, err := tx.Query(ctx, resolveEmployersSQL, keys)
	if err != nil {
		return nil, fmt.Errorf("resolve employers: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int64, len(keys))
	for rows.Next() {
		var (
			key string
			id  int64
		)
		if err := rows.Scan(&key, &id); err != nil {
			return nil, fmt.Errorf("resolve employers: scan: %w", err)
		}
		ids[key] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resolve employers: %w", err)
	}
	return ids, nil
}
