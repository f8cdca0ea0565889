package date

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	DatetimeLayout = "2006-01-02 15:04:05"
	DateLayout     = "2006-01-02"
)

// ParseTime accepts either YYYY-MM-DD or YYYY-MM-DD HH:MM:SS.
func ParseTime(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	for _, layout := range []string{DatetimeLayout, DateLayout} {
		t, err := time.Parse(layout, input)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.Errorf("invalid datetime format '%s', expected YYYY-MM-DD or YYYY-MM-DD HH:MM:SS", input)
}

var strftimeReplacer = strings.NewReplacer(
	"%Y", "2006",
	"%m", "01",
	"%d", "02",
	"%H", "15",
	"%M", "04",
	"%S", "05",
	"%z", "-0700",
	"%Z", "MST",
	"%a", "Mon",
	"%A", "Monday",
	"%b", "Jan",
	"%B", "January",
)

// ConvertPythonDateFormatToGolang turns a strftime format, e.g. %Y-%m-%d, into a Go layout.
func ConvertPythonDateFormatToGolang(pythonFormat string) string {
	return strftimeReplacer.Replace(pythonFormat)
}
