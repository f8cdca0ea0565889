package lint

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func GetRules(fs afero.Fs) []*Rule {
	return []*Rule{
		{
			Name:        "task-name-exists",
			Description: "Every task must have a name",
			Checker:     EnsureNameExists,
		},
		{
			Name:        "task-name-unique",
			Description: "Task names must be unique across the project",
			Checker:     EnsureTaskNameIsUnique,
		},
		{
			Name:        "valid-task-type",
			Description: "Only the supported task types are allowed",
			Checker:     EnsureOnlyAcceptedTaskTypesAreThere,
		},
		{
			Name:        "valid-task-mode",
			Description: "Query tasks run either in raw or fetch mode",
			Checker:     EnsureModeIsValid,
		},
		{
			Name:        "valid-task-schedule",
			Description: "Schedules must be valid cron expressions",
			Checker:     EnsureScheduleIsValidCron,
		},
		{
			Name:        "valid-sql-file",
			Description: "Referenced SQL files must exist and not be empty",
			Checker:     EnsureSQLFilesAreValid(fs),
		},
		{
			Name:        "single-statement-query-task",
			Description: "Query tasks run exactly one statement",
			Checker:     EnsureQueryTasksHaveSingleStatement,
		},
		{
			Name:        "valid-export",
			Description: "Excel exports must have aligned statements, sheet names and columns and an output",
			Checker:     EnsureExportConfigIsValid,
		},
	}
}

// WithQueryValidation appends the rule that checks the queries against the warehouse.
func WithQueryValidation(rules []*Rule, validator queryValidator, extractor queryExtractor, logger *zap.SugaredLogger) []*Rule {
	rule := &QueryValidatorRule{
		Validator:   validator,
		Extractor:   extractor,
		WorkerCount: 8,
		Logger:      logger,
	}

	logger.Debug("query validation is enabled, appending the rule")

	return append(rules, &Rule{
		Name:        "redshift-validator",
		Description: "Queries must be accepted by the warehouse",
		Checker:     rule.Validate,
	})
}
