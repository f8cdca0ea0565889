package executor

import (
	"context"

	"github.com/datablast-analytics/blast-redshift/pkg/task"
)

type NoOpOperator struct{}

func (e NoOpOperator) RunTask(ctx context.Context, t *task.Task) error {
	return nil
}
