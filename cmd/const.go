package cmd

import (
	"github.com/datablast-analytics/blast-redshift/pkg/task"
	"github.com/fatih/color"
	"github.com/spf13/afero"
)

const (
	defaultTasksPath  = "."
	defaultConfigFile = ".blast.yml"
)

var (
	fs       = afero.NewCacheOnReadFs(afero.NewOsFs(), afero.NewMemMapFs(), 0)
	outputFs = afero.NewOsFs()

	infoPrinter    = color.New(color.FgYellow)
	errorPrinter   = color.New(color.FgRed, color.Bold)
	successPrinter = color.New(color.FgGreen, color.Bold)

	builderConfig = task.BuilderConfig{
		TasksFileSuffixes: []string{".task.yml", ".task.yaml"},
	}

	builder = task.NewBuilder(builderConfig, task.CreateTaskFromYamlDefinition(fs), task.CreateTaskFromFileComments(fs), fs)
)
