package task

import (
	"bufio"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	commentMarker = "--"
	configMarker  = "@blast."
)

// CreateTaskFromFileComments builds an rs.sql task out of a SQL file that carries its configuration in
// comments, e.g. `-- @blast.name: refresh-users`. The file itself is the statement to run.
func CreateTaskFromFileComments(fs afero.Fs) TaskCreator {
	return func(filePath string) (*Task, error) {
		if filepath.Ext(filePath) != ".sql" {
			return nil, nil
		}

		file, err := fs.Open(filePath)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open file %s", filePath)
		}
		defer file.Close()

		var allRows []string
		var commentRows []string
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			rowText := scanner.Text()
			allRows = append(allRows, rowText)

			if !strings.HasPrefix(rowText, commentMarker) {
				continue
			}

			commentValue := strings.TrimSpace(strings.TrimPrefix(rowText, commentMarker))
			if strings.HasPrefix(commentValue, configMarker) {
				commentRows = append(commentRows, strings.TrimPrefix(commentValue, configMarker))
			}
		}

		if err := scanner.Err(); err != nil {
			return nil, errors.Wrapf(err, "failed to read file %s", filePath)
		}

		if len(commentRows) == 0 {
			return nil, nil
		}

		absFilePath, err := filepath.Abs(filePath)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get absolute path for file %s", filePath)
		}

		task := commentRowsToTask(commentRows)
		task.Statements = []Statement{
			{
				File: &ExecutableFile{
					Name:    filepath.Base(filePath),
					Path:    absFilePath,
					Content: strings.Join(allRows, "\n"),
				},
			},
		}
		task.DefinitionFile = DefinitionFile{
			Name: filepath.Base(filePath),
			Path: absFilePath,
			Type: CommentTask,
		}

		return task, nil
	}
}

func commentRowsToTask(commentRows []string) *Task {
	task := Task{
		Type: TypeRedshiftQuery,
		Mode: ModeRaw,
	}

	for _, row := range commentRows {
		key, value, found := strings.Cut(row, ":")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "name":
			task.Name = value
		case "description":
			task.Description = value
		case "type":
			task.Type = value
		case "connection":
			task.Connection = value
		case "schedule":
			task.Schedule = value
		case "mode":
			task.Mode = strings.ToLower(value)
		}
	}

	return &task
}
