package cmd

import (
	"os"

	"github.com/datablast-analytics/blast-redshift/pkg/config"
	"github.com/datablast-analytics/blast-redshift/pkg/connection"
	"github.com/datablast-analytics/blast-redshift/pkg/lint"
	"github.com/datablast-analytics/blast-redshift/pkg/query"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func Lint(isDebug *bool) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "validate the task definitions in a given directory",
		ArgsUsage: "[path to tasks]",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "check-queries",
				Usage: "ask the warehouse to plan every query, requires working connections",
			},
			&cli.StringFlag{
				Name:  "environment",
				Usage: "the environment of the connections used to check the queries",
			},
			&cli.StringFlag{
				Name:  "config-file",
				Usage: "the path to the connections config file",
				Value: defaultConfigFile,
			},
		}, dateFlags()...),
		Action: func(c *cli.Context) error {
			logger := makeLogger(*isDebug)

			rootPath := c.Args().Get(0)
			if rootPath == "" {
				rootPath = defaultTasksPath
			}

			rules := lint.GetRules(fs)
			if c.Bool("check-queries") {
				var err error
				rules, err = withQueryValidation(c, rules, logger)
				if err != nil {
					errorPrinter.Printf("Failed to set up the query validation: %v\n", err)
					return cli.Exit("", 1)
				}
			}

			linter := lint.NewLinter(builder, rules, logger)
			result, err := linter.Lint(rootPath)
			err = reportLintErrors(result, err)
			if err != nil {
				return cli.Exit("", 1)
			}

			return nil
		},
	}
}

func withQueryValidation(c *cli.Context, rules []*lint.Rule, logger *zap.SugaredLogger) ([]*lint.Rule, error) {
	startDate, endDate, ok := parseDateFlags(c)
	if !ok {
		return nil, cli.Exit("", 1)
	}

	cm, err := config.LoadOrCreate(outputFs, c.String("config-file"))
	if err != nil {
		return nil, err
	}

	manager, err := connection.NewManagerFromConfig(cm, c.String("environment"))
	if err != nil {
		return nil, err
	}

	extractor := &query.WholeFileExtractor{
		Fs:       fs,
		Renderer: query.NewJinjaRendererFromStartEndDates(&startDate, &endDate),
	}

	return lint.WithQueryValidation(rules, &lint.ExplainValidator{Connections: manager}, extractor, logger), nil
}

func reportLintErrors(result *lint.AnalysisResult, err error) error {
	if err != nil {
		errorPrinter.Printf("An error occurred while validating the tasks: %v\n", err)
		return err
	}

	printer := lint.Printer{Out: os.Stdout}
	printer.PrintIssues(result)

	if result.HasErrors() {
		issueCount := 0
		for _, issues := range result.Issues {
			issueCount += len(issues)
		}

		errorPrinter.Printf("\n✘ Checked %d tasks and found %d issues, please check above.\n", len(result.Tasks), issueCount)
		return cli.Exit("", 1)
	}

	successPrinter.Printf("\n✓ Successfully validated %d tasks, all good.\n", len(result.Tasks))
	return nil
}
