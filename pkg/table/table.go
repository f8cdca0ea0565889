package table

import (
	"strconv"
	"strings"
	"time"

	"github.com/datablast-analytics/blast-redshift/pkg/query"
	"github.com/pkg/errors"
)

// DatetimeLayout is the layout datetime cells are written with, i.e. YYYY-MM-DD HH:MM:SS.
const DatetimeLayout = "2006-01-02 15:04:05"

type Kind int

const (
	Text Kind = iota
	Integer
	Float
	Boolean
	Datetime
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	case Datetime:
		return "datetime"
	default:
		return "text"
	}
}

var databaseTypeKinds = map[string]Kind{
	"INT2":        Integer,
	"INT4":        Integer,
	"INT8":        Integer,
	"SMALLINT":    Integer,
	"INTEGER":     Integer,
	"BIGINT":      Integer,
	"FLOAT4":      Float,
	"FLOAT8":      Float,
	"REAL":        Float,
	"NUMERIC":     Float,
	"DECIMAL":     Float,
	"BOOL":        Boolean,
	"BOOLEAN":     Boolean,
	"DATE":        Datetime,
	"TIMESTAMP":   Datetime,
	"TIMESTAMPTZ": Datetime,
}

// Table is the in-memory shape of a single sheet: named columns, the kind of each column and the rows.
type Table struct {
	Columns []string
	Kinds   []Kind
	Rows    [][]interface{}
}

// FromResult builds a table out of a result set, the descriptor column names become the headers.
func FromResult(res *query.Result) *Table {
	t := &Table{
		Columns: append([]string{}, res.Columns...),
		Kinds:   make([]Kind, len(res.Columns)),
		Rows:    make([][]interface{}, len(res.Rows)),
	}

	for i, row := range res.Rows {
		t.Rows[i] = append([]interface{}{}, row...)
	}

	for col := range t.Columns {
		typeName := ""
		if col < len(res.ColumnTypes) {
			typeName = strings.ToUpper(res.ColumnTypes[col])
		}

		kind, ok := databaseTypeKinds[typeName]
		if !ok {
			kind = inferKind(t.columnValues(col))
		}

		t.Kinds[col] = kind
		if kind == Float {
			t.parseNumericColumn(col)
		}
	}

	return t
}

// Rename replaces the headers positionally.
func (t *Table) Rename(names []string) error {
	if len(names) != len(t.Columns) {
		return errors.Errorf("cannot rename %d columns with %d names", len(t.Columns), len(names))
	}

	for i, name := range names {
		t.Columns[i] = DecodeString(name)
	}

	return nil
}

// Normalize formats datetime columns as text and decodes raw bytes in text columns.
func (t *Table) Normalize() {
	for col, kind := range t.Kinds {
		switch kind {
		case Datetime:
			t.apply(col, formatDatetime)
		case Text:
			t.apply(col, DecodeText)
		}
	}
}

func (t *Table) apply(col int, f func(interface{}) interface{}) {
	for _, row := range t.Rows {
		if col < len(row) {
			row[col] = f(row[col])
		}
	}
}

func (t *Table) columnValues(col int) []interface{} {
	values := make([]interface{}, 0, len(t.Rows))
	for _, row := range t.Rows {
		if col < len(row) {
			values = append(values, row[col])
		}
	}

	return values
}

// NUMERIC values arrive as text from the driver, they are written as numbers whenever they parse.
func (t *Table) parseNumericColumn(col int) {
	t.apply(col, func(v interface{}) interface{} {
		s, ok := DecodeText(v).(string)
		if !ok {
			return v
		}

		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return s
		}

		return f
	})
}

func formatDatetime(v interface{}) interface{} {
	switch ts := v.(type) {
	case time.Time:
		return ts.Format(DatetimeLayout)
	case *time.Time:
		if ts == nil {
			return nil
		}
		return ts.Format(DatetimeLayout)
	default:
		return v
	}
}

func inferKind(values []interface{}) Kind {
	kind := Text
	seen := false

	for _, v := range values {
		if v == nil {
			continue
		}

		current := valueKind(v)
		if current == Text {
			return Text
		}

		if !seen {
			kind = current
			seen = true
			continue
		}

		if current == kind {
			continue
		}

		if isNumeric(current) && isNumeric(kind) {
			kind = Float
			continue
		}

		return Text
	}

	return kind
}

func isNumeric(k Kind) bool {
	return k == Integer || k == Float
}

func valueKind(v interface{}) Kind {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Integer
	case float32, float64:
		return Float
	case bool:
		return Boolean
	case time.Time, *time.Time:
		return Datetime
	default:
		return Text
	}
}
