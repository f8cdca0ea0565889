package executor

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/datablast-analytics/blast-redshift/pkg/task"
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

var faint = color.New(color.Faint).SprintFunc()

type Operator interface {
	RunTask(ctx context.Context, t *task.Task) error
}

type Sequential struct {
	TaskTypeMap map[string]Operator
}

func (s Sequential) RunSingleTask(ctx context.Context, t *task.Task) error {
	executor, ok := s.TaskTypeMap[t.Type]
	if !ok {
		return errors.New("there is no executor configured for the task type, task cannot be run: " + t.Type)
	}

	return executor.RunTask(ctx, t)
}

// TaskResult is the outcome of a single task within a run.
type TaskResult struct {
	Task     *task.Task
	Duration time.Duration
	Error    error
}

// Run executes the tasks strictly one after another. A failing task does not stop the run, the caller
// decides what to do with the collected results. Progress lines are written to out.
func (s Sequential) Run(ctx context.Context, tasks []*task.Task, out io.Writer) []*TaskResult {
	printer := color.New(color.FgCyan)
	results := make([]*TaskResult, 0, len(tasks))
	for _, t := range tasks {
		if ctx.Err() != nil {
			results = append(results, &TaskResult{Task: t, Error: ctx.Err()})
			continue
		}

		_, _ = printer.Fprintf(out, "Running: %s\n", t.Name)
		start := time.Now()
		err := s.RunSingleTask(ctx, t)
		duration := time.Since(start)

		durationString := fmt.Sprintf("(%s)", duration.Truncate(time.Millisecond).String())
		if err != nil {
			_, _ = color.New(color.FgRed).Fprintf(out, "Failed: %s %s\n", t.Name, faint(durationString))
		} else {
			_, _ = printer.Fprintf(out, "Completed: %s %s\n", t.Name, faint(durationString))
		}

		results = append(results, &TaskResult{
			Task:     t,
			Duration: duration,
			Error:    err,
		})
	}

	return results
}
