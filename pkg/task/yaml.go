package task

import (
	"path/filepath"
	"strings"

	"github.com/datablast-analytics/blast-redshift/pkg/path"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type statementList []string

func (s *statementList) UnmarshalYAML(value *yaml.Node) error {
	var multi []string
	err := value.Decode(&multi)
	if err != nil {
		return errors.New("`sql` field must be an array of strings")
	}

	*s = multi
	return nil
}

type taskDefinition struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Type        string        `yaml:"type"`
	Connection  string        `yaml:"connection"`
	Schedule    string        `yaml:"schedule"`
	Mode        string        `yaml:"mode" validate:"omitempty,oneof=raw fetch"`
	SQL         statementList `yaml:"sql"`
	SheetNames  []string      `yaml:"sheet_names"`
	Columns     [][]string    `yaml:"columns"`
	Output      string        `yaml:"output"`
}

func CreateTaskFromYamlDefinition(fs afero.Fs) TaskCreator {
	return func(filePath string) (*Task, error) {
		filePath, err := filepath.Abs(filePath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get absolute path for the definition file")
		}

		var definition taskDefinition
		err = path.ReadYaml(fs, filePath, &definition)
		if err != nil {
			return nil, err
		}

		baseDir := filepath.Dir(filePath)
		statements := make([]Statement, 0, len(definition.SQL))
		for _, entry := range definition.SQL {
			statement, err := newStatement(entry, baseDir)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to resolve the statement '%s'", entry)
			}

			statements = append(statements, statement)
		}

		mode := definition.Mode
		if mode == "" {
			mode = ModeRaw
		}

		task := Task{
			Name:         definition.Name,
			Description:  definition.Description,
			Type:         definition.Type,
			Connection:   definition.Connection,
			Schedule:     definition.Schedule,
			Mode:         mode,
			Statements:   statements,
			SheetNames:   definition.SheetNames,
			ColumnGroups: definition.Columns,
			Output:       resolveOutput(definition.Output, baseDir),
			DefinitionFile: DefinitionFile{
				Name: filepath.Base(filePath),
				Path: filePath,
				Type: YamlTask,
			},
		}

		return &task, nil
	}
}

func resolveOutput(output, baseDir string) string {
	if output == "" || filepath.IsAbs(output) || strings.Contains(output, "://") {
		return output
	}

	return filepath.Join(baseDir, output)
}
