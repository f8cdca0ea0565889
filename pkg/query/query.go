package query

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// PreviewLength is the number of characters of a statement or a result that ends up in log lines.
const PreviewLength = 100

type Query struct {
	Query string
}

func (q Query) String() string {
	return q.Query
}

func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Query) == ""
}

// Result is a fully materialized result set together with its descriptor.
type Result struct {
	Columns     []string
	ColumnTypes []string
	Rows        [][]interface{}
}

func (r *Result) String() string {
	if r == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%v %v", r.Columns, r.Rows)
}

type ExecResult struct {
	RowsAffected int64
}

func (r *ExecResult) String() string {
	if r == nil {
		return "<nil>"
	}

	return fmt.Sprintf("rows affected: %d", r.RowsAffected)
}

// Preview returns the first PreviewLength characters of the given string.
func Preview(s string) string {
	if utf8.RuneCountInString(s) <= PreviewLength {
		return s
	}

	return string([]rune(s)[:PreviewLength])
}
