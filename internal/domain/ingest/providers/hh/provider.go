package hh

import (
	"context"
	"errors"
	"fmt"

	"github.com/honeycarbs/vacancy-etl/internal/domain"
	"github.com/honeycarbs/vacancy-etl/internal/domain/ingest"
	"github.com/honeycarbs/vacancy-etl/pkg/hh"
)

// directoryClient describes the subset of the hh client used by the provider.
type directoryClient interface {
	Employer(ctx context.Context, id string) (*hh.Employer, error)
	SearchEmployer(ctx context.Context, name string) (*hh.Employer, error)
	EmployerVacancies(ctx context.Context, employerID string) ([]hh.Vacancy, error)
}

// Provider implements ingest.Directory using the hh.ru API
type Provider struct {
	client directoryClient
}

// NewProvider builds an hh.ru provider
func NewProvider(client directoryClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("hh provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "hh"
}

// Employer loads one employer by id
func (p *Provider) Employer(ctx context.Context, id string) (*domain.Employer, error) {
	e, err := p.client.Employer(ctx, id)
	if err != nil {
		return nil, classify(err, "fetch employer", id)
	}
	if e == nil {
		return nil, nil
	}
	out := mapEmployer(*e)
	return &out, nil
}

// SearchEmployer returns the first employer matching name
func (p *Provider) SearchEmployer(ctx context.Context, name string) (*domain.Employer, error) {
	e, err := p.client.SearchEmployer(ctx, name)
	if err != nil {
		return nil, classify(err, "search employer", name)
	}
	if e == nil {
		return nil, nil
	}
	out := mapEmployer(*e)
	return &out, nil
}

// EmployerVacancies returns raw vacancies, keeping the partial listing on error
func (p *Provider) EmployerVacancies(ctx context.Context, employerID string) ([]domain.RawVacancy, error) {
	items, err := p.client.EmployerVacancies(ctx, employerID)

	out := make([]domain.RawVacancy, 0, len(items))
	for _, v := range items {
		out = append(out, mapVacancy(v))
	}

	if err != nil {
		return out, classify(err, "fetch vacancies", employerID)
	}
	return out, nil
}

var _ ingest.Directory = (*Provider)(nil)

func mapEmployer(e hh.Employer) domain.Employer {
	return domain.Employer{
		EmployerID: e.ID,
		Name:       e.Name,
		URL:        e.URL,
	}
}

func mapVacancy(v hh.Vacancy) domain.RawVacancy {
	raw := domain.RawVacancy{
		Name:       v.Name,
		URL:        v.URL,
		EmployerID: v.Employer.ID,
	}
	if v.Salary != nil {
		raw.Salary = &domain.SalaryRange{
			From:     v.Salary.From,
			To:       v.Salary.To,
			Currency: v.Salary.Currency,
		}
	}
	return raw
}

func classify(err error, op, subject string) domain.Failure {
	kind := domain.FailureRemote
	var decodeErr *hh.DecodeError
	if errors.As(err, &decodeErr) {
		kind = domain.FailureDecode
	}
	return domain.Failure{Kind: kind, Op: op, Subject: subject, Err: err}
}
