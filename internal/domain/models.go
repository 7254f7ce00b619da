package domain

import (
	"github.com/google/uuid"
)

// RunID identifies one ingestion run
type RunID = uuid.UUID

// Employer is an employer keyed by its remote natural key
type Employer struct {
	EmployerID string
	Name       string
	URL        string
}

// SalaryRange is a possibly open-ended salary offer as published by the source
type SalaryRange struct {
	From     *float64
	To       *float64
	Currency string
}

// RawVacancy is a vacancy as the directory returns it
type RawVacancy struct {
	Name       string
	URL        string
	Salary     *SalaryRange
	EmployerID string
}

// Vacancy is the flat, storage-ready vacancy shape
type Vacancy struct {
	Name       string
	URL        string
	Salary     *float64
	EmployerID string
}

// CompanyVacancyCount is one row of the vacancies-per-company report
type CompanyVacancyCount struct {
	Company   string `json:"company"`
	Vacancies int    `json:"vacancies"`
}

// VacancyListing is a vacancy joined with its employer name
type VacancyListing struct {
	Company string   `json:"company"`
	Vacancy string   `json:"vacancy"`
	Salary  *float64 `json:"salary,omitempty"`
	URL     string   `json:"url"`
}

// InsertStats reports what a vacancy batch insert did
type InsertStats struct {
	Inserted int
	Dropped  int
}

// IngestRequest lists the employers a run should ingest
type IngestRequest struct {
	SearchTerms []string
	EmployerIDs []string
}

// RunReport summarizes an ingestion run
type RunReport struct {
	RunID             RunID
	SearchTerms       int
	EmployerIDs       int
	EmployersResolved int
	SearchMisses      int
	VacanciesFetched  int
	VacanciesInserted int
	VacanciesDropped  int
	Failures          []Failure
}

// Failed reports whether any step of the run degraded
func (r RunReport) Failed() bool {
	return len(r.Failures) > 0
}
