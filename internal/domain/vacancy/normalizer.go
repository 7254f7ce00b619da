// Package vacancy turns raw directory vacancies into storage-ready records.
package vacancy

import (
	"github.com/honeycarbs/vacancy-etl/internal/domain"
)

const (
	// a range open at the top is assumed to pay above its lower bound
	openTopFactor = 1.2
	// a range open at the bottom is assumed to pay below its upper bound
	openBottomFactor = 0.8
)

// Normalize flattens a raw vacancy and reduces its salary range to one value.
// The currency is discarded.
func Normalize(raw domain.RawVacancy) domain.Vacancy {
	return domain.Vacancy{
		Name:       raw.Name,
		URL:        raw.URL,
		Salary:     RepresentativeSalary(raw.Salary),
		EmployerID: raw.EmployerID,
	}
}

// NormalizeAll normalizes every item, keeping order
func NormalizeAll(raws []domain.RawVacancy) []domain.Vacancy {
	out := make([]domain.Vacancy, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw))
	}
	return out
}

// RepresentativeSalary returns the mean of a closed range, from*1.2 or to*0.8 for
// a half-open one, and nil when neither bound is set. A zero bound counts as unset.
func RepresentativeSalary(s *domain.SalaryRange) *float64 {
	if s == nil {
		return nil
	}

	from, hasFrom := bound(s.From)
	to, hasTo := bound(s.To)

	var v float64
	switch {
	case hasFrom && hasTo:
		v = (from + to) / 2
	case hasFrom:
		v = from * openTopFactor
	case hasTo:
		v = to * openBottomFactor
	default:
		return nil
	}
	return &v
}

func bound(p *float64) (float64, bool) {
	if p == nil || *p == 0 {
		return 0, false
	}
	return *p, true
}
