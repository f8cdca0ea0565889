package main

import (
	"os"
	"time"

	"github.com/datablast-analytics/blast-redshift/cmd"
	"github.com/urfave/cli/v2"
)

func main() {
	isDebug := false
	app := &cli.App{
		Name:     "blast-redshift",
		Usage:    "Run Redshift SQL tasks and export their results to Excel workbooks",
		Compiled: time.Now(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "debug",
				Value:       false,
				Usage:       "show debug information",
				Destination: &isDebug,
			},
		},
		Commands: []*cli.Command{
			cmd.Lint(&isDebug),
			cmd.Run(&isDebug),
			cmd.Render(),
		},
	}

	_ = app.Run(os.Args)
}
