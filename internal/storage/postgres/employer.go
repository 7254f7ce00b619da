package postgres

import (
	"context"
	"fmt"

	"github.com/honeycarbs/vacancy-etl/internal/domain"
)

const insertEmployerSQL = `INSERT INTO employers (employer_id, name, url)
VALUES ($1, $2, $3)
ON CONFLICT (employer_id) DO NOTHING`

// UpsertEmployers inserts employers in one transaction. Rows whose employer_id
// already exists are left as they are.
func (s *Store) UpsertEmployers(ctx context.Context, employers []domain.Employer) error {
	if len(employers) == 0 {
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: upsert employers: begin: %w", err)
	}

	for _, e := range employers {
		if _, err := tx.Exec(ctx, insertEmployerSQL, e.EmployerID, e.Name, e.URL); err != nil {
			rollback(ctx, tx)
			return fmt.Errorf("postgres: upsert employer %s: %w", e.EmployerID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: upsert employers: commit: %w", err)
	}
	return nil
}
