package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/datablast-analytics/blast-redshift/pkg/config"
	"github.com/datablast-analytics/blast-redshift/pkg/connection"
	"github.com/datablast-analytics/blast-redshift/pkg/executor"
	"github.com/datablast-analytics/blast-redshift/pkg/export"
	"github.com/datablast-analytics/blast-redshift/pkg/lint"
	"github.com/datablast-analytics/blast-redshift/pkg/query"
	"github.com/datablast-analytics/blast-redshift/pkg/sqlexec"
	"github.com/datablast-analytics/blast-redshift/pkg/storage"
	"github.com/datablast-analytics/blast-redshift/pkg/task"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func Run(isDebug *bool) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "run a single task or all the tasks in a directory, one after another",
		ArgsUsage: "[path to the task file or directory]",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "environment",
				Usage: "the environment to pick the connections from",
			},
			&cli.StringFlag{
				Name:  "config-file",
				Usage: "the path to the connections config file",
				Value: defaultConfigFile,
			},
		}, dateFlags()...),
		Action: func(c *cli.Context) error {
			logger := makeLogger(*isDebug)

			inputPath := c.Args().Get(0)
			if inputPath == "" {
				errorPrinter.Printf("Please give a task or directory path: blast-redshift run <path to the task definition>)\n")
				return cli.Exit("", 1)
			}

			startDate, endDate, ok := parseDateFlags(c)
			if !ok {
				return cli.Exit("", 1)
			}
			logger.Debugf("running for the range %s - %s", startDate, endDate)

			tasks, err := buildTasks(inputPath, logger)
			if err != nil {
				return cli.Exit("", 1)
			}

			cm, err := config.LoadOrCreate(outputFs, c.String("config-file"))
			if err != nil {
				errorPrinter.Printf("Failed to load the config file: %v\n", err)
				return cli.Exit("", 1)
			}

			connectionManager, err := connection.NewManagerFromConfig(cm, c.String("environment"))
			if err != nil {
				errorPrinter.Printf("Failed to register connections: %v\n", err)
				return cli.Exit("", 1)
			}

			extractor := &query.WholeFileExtractor{
				Fs:       fs,
				Renderer: query.NewJinjaRendererFromStartEndDates(&startDate, &endDate),
			}
			ex := executor.Sequential{
				TaskTypeMap: setupExecutors(connectionManager, extractor, logger),
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			infoPrinter.Printf("\nStarting the execution of %d tasks...\n\n", len(tasks))

			start := time.Now()
			results := ex.Run(ctx, tasks, os.Stdout)
			duration := time.Since(start)

			successPrinter.Printf("\n\nExecuted %d tasks in %s\n", len(results), duration.Truncate(time.Millisecond).String())
			failed := make([]*executor.TaskResult, 0)
			for _, res := range results {
				if res.Error != nil {
					failed = append(failed, res)
				}
			}

			if len(failed) > 0 {
				errorPrinter.Printf("\nFailed tasks: %d\n", len(failed))
				for _, res := range failed {
					errorPrinter.Printf("  - %s\n", res.Task.Name)
					errorPrinter.Printf("    └── %s\n\n", res.Error.Error())
				}

				return cli.Exit("", 1)
			}

			return nil
		},
	}
}

// buildTasks builds the single task behind a file, or validates and builds every task under a directory.
func buildTasks(inputPath string, logger *zap.SugaredLogger) ([]*task.Task, error) {
	if !isDir(inputPath) {
		t, err := builder.CreateTaskFromFile(inputPath)
		if err != nil {
			errorPrinter.Printf("Failed to build task: %v\n", err.Error())
			return nil, err
		}

		if t == nil {
			errorPrinter.Printf("The given file path doesn't seem to be a task definition: '%s'\n", inputPath)
			return nil, os.ErrNotExist
		}

		return []*task.Task{t}, nil
	}

	linter := lint.NewLinter(builder, lint.GetRules(fs), logger)
	result, err := linter.Lint(inputPath)
	if err := reportLintErrors(result, err); err != nil {
		return nil, err
	}

	return result.Tasks, nil
}

func setupExecutors(conn *connection.Manager, extractor *query.WholeFileExtractor, logger *zap.SugaredLogger) map[string]executor.Operator {
	return executor.NewOperatorMap(map[string]executor.Operator{
		task.TypeRedshiftQuery: sqlexec.NewOperator(conn, extractor, logger),
		task.TypeRedshiftExcel: export.NewOperator(conn, extractor, storage.NewWriter(outputFs), logger),
	})
}

func isDir(path string) bool {
	fileInfo, err := fs.Stat(path)
	if err != nil {
		return false
	}

	return fileInfo.IsDir()
}
