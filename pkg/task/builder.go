package task

import (
	"github.com/datablast-analytics/blast-redshift/pkg/path"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

type TaskCreator func(path string) (*Task, error)

type BuilderConfig struct {
	TasksFileSuffixes []string
}

type Builder struct {
	config             BuilderConfig
	yamlTaskCreator    TaskCreator
	commentTaskCreator TaskCreator
	fs                 afero.Fs
}

func NewBuilder(config BuilderConfig, yamlTaskCreator TaskCreator, commentTaskCreator TaskCreator, fs afero.Fs) *Builder {
	return &Builder{
		config:             config,
		yamlTaskCreator:    yamlTaskCreator,
		commentTaskCreator: commentTaskCreator,
		fs:                 fs,
	}
}

// CreateTaskFromFile returns nil without an error when the file is not a task definition.
func (b *Builder) CreateTaskFromFile(filePath string) (*Task, error) {
	creator := b.commentTaskCreator
	if path.HasAnySuffix(filePath, b.config.TasksFileSuffixes) {
		creator = b.yamlTaskCreator
	}

	task, err := creator(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating task from file '%s'", filePath)
	}

	return task, nil
}

// CreateTasksFromPath builds every task found under root. SQL files referenced by YAML definitions are
// not considered as standalone tasks.
func (b *Builder) CreateTasksFromPath(root string) ([]*Task, error) {
	files, err := path.GetAllFilesRecursive(b.fs, root)
	if err != nil {
		return nil, errors.Wrapf(err, "error listing task files at '%s'", root)
	}

	tasks := make([]*Task, 0)
	referenced := make(map[string]bool)
	for _, file := range files {
		if !path.HasAnySuffix(file, b.config.TasksFileSuffixes) {
			continue
		}

		task, err := b.CreateTaskFromFile(file)
		if err != nil {
			return nil, err
		}

		for _, statement := range task.Statements {
			if statement.IsFile() {
				referenced[statement.File.Path] = true
			}
		}

		tasks = append(tasks, task)
	}

	for _, file := range files {
		if referenced[file] || path.HasAnySuffix(file, b.config.TasksFileSuffixes) {
			continue
		}

		task, err := b.CreateTaskFromFile(file)
		if err != nil {
			return nil, err
		}

		if task == nil {
			continue
		}

		tasks = append(tasks, task)
	}

	return tasks, nil
}
