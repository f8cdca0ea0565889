package export

import (
	"fmt"
	"strings"

	"github.com/datablast-analytics/blast-redshift/pkg/task"
)

// Config describes one workbook: a sheet per statement, in statement order. SheetNames and ColumnGroups
// are optional, when given they must have an entry for every statement. An empty entry keeps the default
// sheet name or the descriptor column names for that statement.
type Config struct {
	Connection   string
	Statements   []string
	SheetNames   []string
	ColumnGroups [][]string
	OutputPath   string
}

// ConfigError is returned for configurations that cannot be exported, always before any connection is opened.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid export configuration, %s: %s", e.Field, e.Reason)
}

func (c Config) Validate() error {
	if len(c.Statements) == 0 {
		return &ConfigError{Field: "sql", Reason: "at least one statement is required"}
	}

	for i, statement := range c.Statements {
		if strings.TrimSpace(statement) == "" {
			return &ConfigError{Field: "sql", Reason: fmt.Sprintf("statement %d is empty", i+1)}
		}
	}

	if c.SheetNames != nil && len(c.SheetNames) != len(c.Statements) {
		return &ConfigError{
			Field:  "sheet_names",
			Reason: fmt.Sprintf("expected %d entries to match the statements, found %d", len(c.Statements), len(c.SheetNames)),
		}
	}

	if c.ColumnGroups != nil && len(c.ColumnGroups) != len(c.Statements) {
		return &ConfigError{
			Field:  "columns",
			Reason: fmt.Sprintf("expected %d entries to match the statements, found %d", len(c.Statements), len(c.ColumnGroups)),
		}
	}

	if strings.TrimSpace(c.OutputPath) == "" {
		return &ConfigError{Field: "output", Reason: "an output path is required"}
	}

	return nil
}

func (c Config) sheetName(i int) string {
	if c.SheetNames == nil {
		return ""
	}

	return c.SheetNames[i]
}

func (c Config) columns(i int) []string {
	if c.ColumnGroups == nil {
		return nil
	}

	return c.ColumnGroups[i]
}

// ConfigFromTask builds the export configuration of an rs.excel task with the statements as written in the
// definition, file references are not read.
func ConfigFromTask(t *task.Task) Config {
	statements := make([]string, len(t.Statements))
	for i, statement := range t.Statements {
		statements[i] = statement.String()
	}

	return Config{
		Connection:   t.Connection,
		Statements:   statements,
		SheetNames:   t.SheetNames,
		ColumnGroups: t.ColumnGroups,
		OutputPath:   t.Output,
	}
}
