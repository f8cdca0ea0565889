package sqlexec

import (
	"context"
	"fmt"

	"github.com/datablast-analytics/blast-redshift/pkg/connection"
	"github.com/datablast-analytics/blast-redshift/pkg/query"
	"github.com/datablast-analytics/blast-redshift/pkg/task"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type connectionOpener interface {
	Open(ctx context.Context, name string) (connection.DB, error)
}

type queryExtractor interface {
	ExtractQueriesFromFile(filepath string) ([]*query.Query, error)
	ExtractQueriesFromString(content string) ([]*query.Query, error)
}

// Operator runs a single statement against the warehouse. A connection is opened for every call and
// closed before the call returns.
type Operator struct {
	connections connectionOpener
	extractor   queryExtractor
	logger      *zap.SugaredLogger
}

func NewOperator(connections connectionOpener, extractor queryExtractor, logger *zap.SugaredLogger) *Operator {
	return &Operator{
		connections: connections,
		extractor:   extractor,
		logger:      logger,
	}
}

// Exec runs the statement and returns the number of affected rows.
func (o *Operator) Exec(ctx context.Context, conn string, q *query.Query) (*query.ExecResult, error) {
	var result *query.ExecResult
	err := o.withConnection(ctx, conn, q, func(db connection.DB) (fmt.Stringer, error) {
		var err error
		result, err = db.Exec(ctx, q)
		return result, err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Fetch runs the statement and returns the fully materialized result set.
func (o *Operator) Fetch(ctx context.Context, conn string, q *query.Query) (*query.Result, error) {
	var result *query.Result
	err := o.withConnection(ctx, conn, q, func(db connection.DB) (fmt.Stringer, error) {
		var err error
		result, err = db.Select(ctx, q)
		return result, err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (o *Operator) RunTask(ctx context.Context, t *task.Task) error {
	if len(t.Statements) != 1 {
		return errors.Errorf("task '%s' must have exactly one SQL statement, found %d", t.Name, len(t.Statements))
	}

	q, err := t.Statements[0].Resolve(o.extractor)
	if err != nil {
		return errors.Wrapf(err, "invalid statement for task '%s'", t.Name)
	}

	if t.Mode == task.ModeFetch {
		_, err = o.Fetch(ctx, t.Connection, q)
	} else {
		_, err = o.Exec(ctx, t.Connection, q)
	}

	return err
}

func (o *Operator) withConnection(ctx context.Context, conn string, q *query.Query, run func(db connection.DB) (fmt.Stringer, error)) (err error) {
	if q == nil || q.IsEmpty() {
		return task.ErrEmptyStatement
	}

	db, err := o.connections.Open(ctx, conn)
	if err != nil {
		return errors.Wrapf(err, "failed to open the connection '%s'", conn)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = errors.Wrapf(closeErr, "failed to close the connection '%s'", conn)
		}
	}()

	o.logger.Infof("Executing: %s", query.Preview(q.Query))
	result, err := run(db)
	if err != nil {
		return errors.Wrap(err, "failed to run the statement")
	}

	o.logger.Infof("Result: %s", query.Preview(result.String()))

	return nil
}
