package neo4j

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/vacancy-etl/internal/domain"
	"github.com/honeycarbs/vacancy-etl/internal/domain/ingest"

	pkgneo4j "github.com/honeycarbs/vacancy-etl/pkg/neo4j"
)

// Ensure GraphMirror implements ingest.Mirror
var _ ingest.Mirror = (*GraphMirror)(nil)

const mergeEmployersQuery = `
	UNWIND $employers AS emp
	MERGE (e:Employer {employerId: emp.employerId})
	ON CREATE SET e.name = emp.name,
	              e.url = emp.url
`

const createVacanciesQuery = `
	UNWIND $vacancies AS vac
	MATCH (e:Employer {employerId: vac.employerId})
	CREATE (v:Vacancy {id: vac.id, name: vac.name, url: vac.url, runId: $runId})
	SET v.salary = vac.salary
	CREATE (v)-[:POSTED_BY]->(e)
`

// GraphMirror copies each run into Neo4j as (:Vacancy)-[:POSTED_BY]->(:Employer)
type GraphMirror struct {
	client *pkgneo4j.Client
	newID  func() uuid.UUID
}

// NewGraphMirror creates a GraphMirror with a Neo4j client
func NewGraphMirror(client *pkgneo4j.Client) *GraphMirror {
	return &GraphMirror{
		client: client,
		newID:  uuid.New,
	}
}

// Mirror merges employers and creates one node per vacancy in a single write transaction
func (m *GraphMirror) Mirror(ctx context.Context, runID domain.RunID, employers []domain.Employer, vacancies []domain.Vacancy) error {
	if len(employers) == 0 {
		return nil
	}

	session := m.client.NewWriteSession(ctx)
	defer session.Close(ctx)

	employersData := employerParams(employers)
	vacanciesData := vacancyParams(vacancies, m.newID)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, mergeEmployersQuery, map[string]any{"employers": employersData})
		if err != nil {
			return nil, err
		}
		if _, err := result.Consume(ctx); err != nil {
			return nil, err
		}

		if len(vacanciesData) == 0 {
			return nil, nil
		}
		result, err = tx.Run(ctx, createVacanciesQuery, map[string]any{
			"vacancies": vacanciesData,
			"runId":     runID.String(),
		})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("neo4j: mirror run %s: %w", runID, err)
	}
	return nil
}

func employerParams(employers []domain.Employer) []map[string]any {
	out := make([]map[string]any, 0, len(employers))
	for _, e := range employers {
		out = append(out, map[string]any{
			"employerId": e.EmployerID,
			"name":       e.Name,
			"url":        e.URL,
		})
	}
	return out
}

func vacancyParams(vacancies []domain.Vacancy, newID func() uuid.UUID) []map[string]any {
	out := make([]map[string]any, 0, len(vacancies))
	for _, v := range vacancies {
		// salary stays unset on the node when nil
		var salary any
		if v.Salary != nil {
			salary = *v.Salary
		}
		out = append(out, map[string]any{
			"id":         newID().String(),
			"name":       v.Name,
			"url":        v.URL,
			"salary":     salary,
			"employerId": v.EmployerID,
		})
	}
	return out
}
