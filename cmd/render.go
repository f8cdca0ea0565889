package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/datablast-analytics/blast-redshift/pkg/query"
	"github.com/urfave/cli/v2"
)

func Render() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "render the SQL statements of a single task",
		ArgsUsage: "[path to the task file]",
		Flags:     dateFlags(),
		Action: func(c *cli.Context) error {
			taskPath := c.Args().Get(0)
			if taskPath == "" {
				errorPrinter.Printf("Please give a task path to render: blast-redshift render <path to the task file>)\n")
				return cli.Exit("", 1)
			}

			startDate, endDate, ok := parseDateFlags(c)
			if !ok {
				return cli.Exit("", 1)
			}

			t, err := builder.CreateTaskFromFile(taskPath)
			if err != nil {
				errorPrinter.Printf("Failed to build task: %v\n", err.Error())
				return cli.Exit("", 1)
			}

			if t == nil {
				errorPrinter.Printf("The given file path doesn't seem to be a task definition: '%s'\n", taskPath)
				return cli.Exit("", 1)
			}

			extractor := &query.WholeFileExtractor{
				Fs:       fs,
				Renderer: query.NewJinjaRendererFromStartEndDates(&startDate, &endDate),
			}

			for i, statement := range t.Statements {
				q, err := statement.Resolve(extractor)
				if err != nil {
					errorPrinter.Printf("Failed to render statement %d: %v\n", i+1, err.Error())
					return cli.Exit("", 1)
				}

				if len(t.Statements) > 1 {
					infoPrinter.Printf("-- statement %d\n", i+1)
				}
				fmt.Printf("%s\n", highlightCode(q.Query, "postgres"))
			}

			return nil
		},
	}
}

func highlightCode(code string, language string) string {
	o, _ := os.Stdout.Stat()
	if (o.Mode() & os.ModeCharDevice) != os.ModeCharDevice {
		return code
	}
	b := new(strings.Builder)
	err := quick.Highlight(b, code, language, "terminal16m", "monokai")
	if err != nil {
		errorPrinter.Printf("Failed to highlight the query: %v\n", err.Error())
		return code
	}

	return b.String()
}
