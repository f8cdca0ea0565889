package lint

import (
	"context"
	"fmt"
	"sync"

	"github.com/datablast-analytics/blast-redshift/pkg/connection"
	"github.com/datablast-analytics/blast-redshift/pkg/query"
	"github.com/datablast-analytics/blast-redshift/pkg/task"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

type queryValidator interface {
	IsValid(ctx context.Context, connection string, q *query.Query) (bool, error)
}

type queryExtractor interface {
	ExtractQueriesFromFile(filepath string) ([]*query.Query, error)
	ExtractQueriesFromString(content string) ([]*query.Query, error)
}

// QueryValidatorRule checks every statement of the Redshift tasks against the warehouse.
type QueryValidatorRule struct {
	Validator   queryValidator
	Extractor   queryExtractor
	WorkerCount int
	Logger      *zap.SugaredLogger
}

func (q *QueryValidatorRule) validateTask(ctx context.Context, t *task.Task) []*Issue {
	issues := make([]*Issue, 0)
	for i, statement := range t.Statements {
		resolved, err := statement.Resolve(q.Extractor)
		if err != nil {
			issues = append(issues, &Issue{
				Task:        t,
				Description: fmt.Sprintf("Cannot render statement %d: %v", i+1, err),
			})
			continue
		}

		valid, err := q.Validator.IsValid(ctx, t.Connection, resolved)
		if err != nil {
			issues = append(issues, &Issue{
				Task:        t,
				Description: fmt.Sprintf("Invalid query found at statement %d: %v", i+1, err),
			})
		} else if !valid {
			issues = append(issues, &Issue{
				Task:        t,
				Description: fmt.Sprintf("Query '%s' is invalid", query.Preview(resolved.Query)),
			})
		}
	}

	return issues
}

func (q *QueryValidatorRule) Validate(tasks []*task.Task) ([]*Issue, error) {
	issues := make([]*Issue, 0)

	// skip if there are no workers defined
	if q.WorkerCount == 0 {
		return issues, nil
	}

	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(q.WorkerCount)
	for _, t := range tasks {
		if t.Type != task.TypeRedshiftQuery && t.Type != task.TypeRedshiftExcel {
			continue
		}

		t := t
		p.Go(func() {
			q.Logger.Debugf("validating the queries of task '%s'", t.Name)
			found := q.validateTask(context.Background(), t)

			mu.Lock()
			issues = append(issues, found...)
			mu.Unlock()
		})
	}
	p.Wait()

	return issues, nil
}

type connectionOpener interface {
	Open(ctx context.Context, name string) (connection.DB, error)
}

// ExplainValidator asks the warehouse for the plan of a query, a query that cannot be planned is invalid.
type ExplainValidator struct {
	Connections connectionOpener
}

func (v *ExplainValidator) IsValid(ctx context.Context, conn string, q *query.Query) (valid bool, err error) {
	db, err := v.Connections.Open(ctx, conn)
	if err != nil {
		return false, errors.Wrapf(err, "failed to open the connection '%s'", conn)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = errors.Wrapf(closeErr, "failed to close the connection '%s'", conn)
		}
	}()

	_, err = db.Select(ctx, &query.Query{Query: "EXPLAIN " + q.Query})
	if err != nil {
		return false, err
	}

	return true, nil
}
