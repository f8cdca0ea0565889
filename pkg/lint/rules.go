package lint

import (
	"fmt"
	"os"
	"strings"

	"github.com/datablast-analytics/blast-redshift/pkg/export"
	"github.com/datablast-analytics/blast-redshift/pkg/task"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/spf13/afero"
)

const (
	nameExistsDescription = `A task must have a name`

	sqlFileDoesNotExist = `The SQL file '%s' does not exist`
	sqlFileIsADirectory = `The SQL file '%s' is a directory, must be a file`
	sqlFileIsEmpty      = `The SQL file '%s' is empty`

	singleStatementDescription = `An 'rs.sql' task must have exactly one SQL statement, found %d`
	emptyStatementDescription  = `SQL statement %d is empty`
)

var validTaskTypes = map[string]struct{}{
	task.TypeRedshiftQuery: {},
	task.TypeRedshiftExcel: {},
	task.TypeEmpty:         {},
}

var validModes = map[string]struct{}{
	task.ModeRaw:   {},
	task.ModeFetch: {},
}

func EnsureNameExists(tasks []*task.Task) ([]*Issue, error) {
	issues := make([]*Issue, 0)
	for _, t := range tasks {
		if t.Name == "" {
			issues = append(issues, &Issue{
				Task:        t,
				Description: nameExistsDescription,
			})
		}
	}

	return issues, nil
}

func EnsureTaskNameIsUnique(tasks []*task.Task) ([]*Issue, error) {
	nameFileMapping := make(map[string][]*task.Task)
	for _, t := range tasks {
		if t.Name == "" {
			continue
		}

		nameFileMapping[t.Name] = append(nameFileMapping[t.Name], t)
	}

	issues := make([]*Issue, 0)
	for _, t := range tasks {
		duplicates := nameFileMapping[t.Name]
		if len(duplicates) < 2 || duplicates[0] != t {
			continue
		}

		files := make([]string, 0, len(duplicates))
		for _, duplicate := range duplicates {
			files = append(files, duplicate.DefinitionFile.Path)
		}

		issues = append(issues, &Issue{
			Task:        t,
			Description: fmt.Sprintf("Task name '%s' is not unique, please make sure all the task names are unique: %v", t.Name, files),
		})
	}

	return issues, nil
}

func EnsureOnlyAcceptedTaskTypesAreThere(tasks []*task.Task) ([]*Issue, error) {
	issues := make([]*Issue, 0)
	for _, t := range tasks {
		if _, ok := validTaskTypes[t.Type]; !ok {
			issues = append(issues, &Issue{
				Task:        t,
				Description: fmt.Sprintf("Invalid task type '%s'", t.Type),
			})
		}
	}

	return issues, nil
}

func EnsureModeIsValid(tasks []*task.Task) ([]*Issue, error) {
	issues := make([]*Issue, 0)
	for _, t := range tasks {
		if t.Type != task.TypeRedshiftQuery {
			continue
		}

		if _, ok := validModes[t.Mode]; !ok {
			issues = append(issues, &Issue{
				Task:        t,
				Description: fmt.Sprintf("Invalid mode '%s', must be one of 'raw' or 'fetch'", t.Mode),
			})
		}
	}

	return issues, nil
}

func EnsureScheduleIsValidCron(tasks []*task.Task) ([]*Issue, error) {
	issues := make([]*Issue, 0)
	for _, t := range tasks {
		if t.Schedule == "" {
			continue
		}

		_, err := cron.ParseStandard(t.Schedule)
		if err != nil {
			issues = append(issues, &Issue{
				Task:        t,
				Description: fmt.Sprintf("Invalid cron schedule '%s'", t.Schedule),
			})
		}
	}

	return issues, nil
}

func EnsureSQLFilesAreValid(fs afero.Fs) TaskValidator {
	return func(tasks []*task.Task) ([]*Issue, error) {
		issues := make([]*Issue, 0)
		for _, t := range tasks {
			if t.DefinitionFile.Type == task.CommentTask {
				continue
			}

			for _, statement := range t.Statements {
				if !statement.IsFile() {
					continue
				}

				fileInfo, err := fs.Stat(statement.File.Path)
				if errors.Is(err, os.ErrNotExist) {
					issues = append(issues, &Issue{
						Task:        t,
						Description: fmt.Sprintf(sqlFileDoesNotExist, statement.File.Path),
					})
					continue
				}
				if err != nil {
					return nil, errors.Wrapf(err, "cannot read the file '%s'", statement.File.Path)
				}

				if fileInfo.IsDir() {
					issues = append(issues, &Issue{
						Task:        t,
						Description: fmt.Sprintf(sqlFileIsADirectory, statement.File.Path),
					})
					continue
				}

				if fileInfo.Size() == 0 {
					issues = append(issues, &Issue{
						Task:        t,
						Description: fmt.Sprintf(sqlFileIsEmpty, statement.File.Path),
					})
				}
			}
		}

		return issues, nil
	}
}

func EnsureQueryTasksHaveSingleStatement(tasks []*task.Task) ([]*Issue, error) {
	issues := make([]*Issue, 0)
	for _, t := range tasks {
		if t.Type != task.TypeRedshiftQuery {
			continue
		}

		if len(t.Statements) != 1 {
			issues = append(issues, &Issue{
				Task:        t,
				Description: fmt.Sprintf(singleStatementDescription, len(t.Statements)),
			})
			continue
		}

		if !t.Statements[0].IsFile() && strings.TrimSpace(t.Statements[0].Query) == "" {
			issues = append(issues, &Issue{
				Task:        t,
				Description: fmt.Sprintf(emptyStatementDescription, 1),
			})
		}
	}

	return issues, nil
}

func EnsureExportConfigIsValid(tasks []*task.Task) ([]*Issue, error) {
	issues := make([]*Issue, 0)
	for _, t := range tasks {
		if t.Type != task.TypeRedshiftExcel {
			continue
		}

		err := export.ConfigFromTask(t).Validate()
		if err == nil {
			continue
		}

		var configErr *export.ConfigError
		if !errors.As(err, &configErr) {
			return nil, err
		}

		issues = append(issues, &Issue{
			Task:        t,
			Description: configErr.Error(),
		})
	}

	return issues, nil
}
