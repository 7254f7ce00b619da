package postgres

import (
	"context"
	"fmt"
)

const createEmployersSQL = `CREATE TABLE IF NOT EXISTS employers (
	id SERIAL PRIMARY KEY,
	employer_id VARCHAR UNIQUE NOT NULL,
	name VARCHAR,
	url TEXT
)`

const createVacanciesSQL = `CREATE TABLE IF NOT EXISTS vacancies (
	id SERIAL PRIMARY KEY,
	vacancy_name VARCHAR,
	url TEXT,
	salary NUMERIC,
	employer_id INTEGER REFERENCES employers(id)
)`

// CreateSchema creates both tables if they do not exist, employers first
func (s *Store) CreateSchema(ctx context.Context) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: create schema: begin: %w", err)
	}

	for _, stmt := range []string{createEmployersSQL, createVacanciesSQL} {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			rollback(ctx, tx)
			return fmt.Errorf("postgres: create schema: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: create schema: commit: %w", err)
	}
	return nil
}
