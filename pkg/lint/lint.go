package lint

import (
	"os"

	"github.com/datablast-analytics/blast-redshift/pkg/task"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type TaskValidator func(tasks []*task.Task) ([]*Issue, error)

type taskBuilder interface {
	CreateTasksFromPath(root string) ([]*task.Task, error)
}

type Issue struct {
	Task        *task.Task
	Description string
}

type Rule struct {
	Name        string
	Description string
	Checker     TaskValidator
}

type Linter struct {
	builder taskBuilder
	rules   []*Rule
	logger  *zap.SugaredLogger
}

func NewLinter(builder taskBuilder, rules []*Rule, logger *zap.SugaredLogger) *Linter {
	return &Linter{
		builder: builder,
		rules:   rules,
		logger:  logger,
	}
}

func (l *Linter) Lint(rootPath string) (*AnalysisResult, error) {
	tasks, err := l.builder.CreateTasksFromPath(rootPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.New("the given path does not exist, please make sure you gave the right path")
		}

		return nil, errors.Wrap(err, "error building the tasks")
	}

	if len(tasks) == 0 {
		return nil, errors.Errorf("no tasks found in path '%s'", rootPath)
	}

	l.logger.Debugf("found %d tasks", len(tasks))

	return l.lint(tasks)
}

type AnalysisResult struct {
	Tasks  []*task.Task
	Issues map[*Rule][]*Issue
}

// HasErrors returns true if any of the rules reported an issue.
func (r *AnalysisResult) HasErrors() bool {
	for _, issues := range r.Issues {
		if len(issues) > 0 {
			return true
		}
	}

	return false
}

func (l *Linter) lint(tasks []*task.Task) (*AnalysisResult, error) {
	result := &AnalysisResult{
		Tasks:  tasks,
		Issues: make(map[*Rule][]*Issue),
	}

	for _, rule := range l.rules {
		l.logger.Debugf("checking rule '%s'", rule.Name)

		issues, err := rule.Checker(tasks)
		if err != nil {
			return nil, errors.Wrapf(err, "rule '%s' failed", rule.Name)
		}

		if len(issues) > 0 {
			result.Issues[rule] = issues
		}
	}

	return result, nil
}
