package cmd

import (
	"fmt"
	"time"

	"github.com/datablast-analytics/blast-redshift/pkg/date"
	"github.com/urfave/cli/v2"
)

func dateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "start-date",
			Usage:       "the start date of the range the tasks will run for in YYYY-MM-DD or YYYY-MM-DD HH:MM:SS format",
			DefaultText: fmt.Sprintf("yesterday, e.g. %s", time.Now().AddDate(0, 0, -1).Format(date.DateLayout)),
			Value:       time.Now().AddDate(0, 0, -1).Format(date.DateLayout),
		},
		&cli.StringFlag{
			Name:        "end-date",
			Usage:       "the end date of the range the tasks will run for in YYYY-MM-DD or YYYY-MM-DD HH:MM:SS format",
			DefaultText: fmt.Sprintf("today, e.g. %s", time.Now().Format(date.DateLayout)),
			Value:       time.Now().Format(date.DateLayout),
		},
	}
}

// parseDateFlags prints a hint and returns false when one of the dates cannot be parsed.
func parseDateFlags(c *cli.Context) (time.Time, time.Time, bool) {
	startDate, err := date.ParseTime(c.String("start-date"))
	if err != nil {
		printDateHint("start-date", err)
		return time.Time{}, time.Time{}, false
	}

	endDate, err := date.ParseTime(c.String("end-date"))
	if err != nil {
		printDateHint("end-date", err)
		return time.Time{}, time.Time{}, false
	}

	return startDate, endDate, true
}

func printDateHint(flag string, err error) {
	errorPrinter.Printf("Please give a valid %s: %v\n", flag, err)
	errorPrinter.Printf("    e.g. %s  \n", time.Now().AddDate(0, 0, -1).Format(date.DateLayout))
	errorPrinter.Printf("    e.g. %s  \n", time.Now().AddDate(0, 0, -1).Format(date.DatetimeLayout))
}
