package export

import (
	"context"
	"io"

	"github.com/datablast-analytics/blast-redshift/pkg/connection"
	"github.com/datablast-analytics/blast-redshift/pkg/excel"
	"github.com/datablast-analytics/blast-redshift/pkg/query"
	"github.com/datablast-analytics/blast-redshift/pkg/table"
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

type outputOpener interface {
	Open(ctx context.Context, path string) (io.WriteCloser, error)
}

type Operator struct {
	connections connectionOpener
	extractor   queryExtractor
	output      outputOpener
	logger      *zap.SugaredLogger
}

func NewOperator(connections connectionOpener, extractor queryExtractor, output outputOpener, logger *zap.SugaredLogger) *Operator {
	return &Operator{
		connections: connections,
		extractor:   extractor,
		output:      output,
		logger:      logger,
	}
}

// Export runs the statements one after another over a single connection and writes the workbook once all
// of them succeeded. Nothing is written when any statement fails.
func (o *Operator) Export(ctx context.Context, c Config) (err error) {
	if err := c.Validate(); err != nil {
		return err
	}

	db, err := o.connections.Open(ctx, c.Connection)
	if err != nil {
		return errors.Wrapf(err, "failed to open the connection '%s'", c.Connection)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = errors.Wrapf(closeErr, "failed to close the connection '%s'", c.Connection)
		}
	}()

	workbook := excel.NewWorkbook()
	defer workbook.Close()

	for i, statement := range c.Statements {
		o.logger.Infof("Executing: %s", query.Preview(statement))
		res, err := db.Select(ctx, &query.Query{Query: statement})
		if err != nil {
			return errors.Wrapf(err, "failed to run statement %d", i+1)
		}

		o.logger.Infof("Result: %s", query.Preview(res.String()))

		t := table.FromResult(res)
		if columns := c.columns(i); len(columns) > 0 {
			if err := t.Rename(columns); err != nil {
				return errors.Wrapf(err, "failed to rename the columns of statement %d", i+1)
			}
		}
		t.Normalize()

		if err := workbook.AddSheet(c.sheetName(i), t); err != nil {
			return errors.Wrapf(err, "failed to add the sheet for statement %d", i+1)
		}
	}

	dst, err := o.output.Open(ctx, c.OutputPath)
	if err != nil {
		return errors.Wrapf(err, "failed to open the output '%s'", c.OutputPath)
	}

	if err := workbook.Save(dst); err != nil {
		return errors.Wrapf(err, "failed to save the workbook to '%s'", c.OutputPath)
	}

	o.logger.Infof("Exported %d sheets to %s", len(c.Statements), c.OutputPath)

	return nil
}

func (o *Operator) RunTask(ctx context.Context, t *task.Task) error {
	c := ConfigFromTask(t)
	for i, statement := range t.Statements {
		q, err := statement.Resolve(o.extractor)
		if errors.Is(err, task.ErrEmptyStatement) {
			return &ConfigError{Field: "sql", Reason: err.Error()}
		}
		if err != nil {
			return errors.Wrapf(err, "invalid statement for task '%s'", t.Name)
		}

		c.Statements[i] = q.Query
	}

	return o.Export(ctx, c)
}
