package table

import (
	"testing"
	"time"

	"github.com/datablast-analytics/blast-redshift/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromResult(t *testing.T) {
	t.Parallel()

	ts := time.Date(2023, 4, 5, 6, 7, 8, 900, time.UTC)

	tests := []struct {
		name      string
		result    *query.Result
		wantKinds []Kind
		wantRows  [][]interface{}
	}{
		{
			name: "kinds are taken from the database types",
			result: &query.Result{
				Columns:     []string{"id", "amount", "created_at", "name"},
				ColumnTypes: []string{"INT8", "numeric", "TIMESTAMP", "VARCHAR"},
				Rows: [][]interface{}{
					{int64(1), "10.50", ts, "jane"},
				},
			},
			wantKinds: []Kind{Integer, Float, Datetime, Text},
			wantRows: [][]interface{}{
				{int64(1), 10.5, ts, "jane"},
			},
		},
		{
			name: "kinds are inferred from the values without database types",
			result: &query.Result{
				Columns: []string{"id", "ratio", "created_at", "flag", "name", "empty", "mixed"},
				Rows: [][]interface{}{
					{int64(1), int64(1), ts, true, []byte("jane"), nil, int64(1)},
					{int64(2), 0.5, nil, false, "john", nil, "a"},
				},
			},
			wantKinds: []Kind{Integer, Float, Datetime, Boolean, Text, Text, Text},
			wantRows: [][]interface{}{
				{int64(1), int64(1), ts, true, []byte("jane"), nil, int64(1)},
				{int64(2), 0.5, nil, false, "john", nil, "a"},
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FromResult(tt.result)
			assert.Equal(t, tt.result.Columns, got.Columns)
			assert.Equal(t, tt.wantKinds, got.Kinds)
			assert.Equal(t, tt.wantRows, got.Rows)
		})
	}
}

func TestTable_Rename(t *testing.T) {
	t.Parallel()

	tbl := FromResult(&query.Result{
		Columns: []string{"user_id", "user_name"},
		Rows:    [][]interface{}{{int64(1), "jane"}},
	})

	require.NoError(t, tbl.Rename([]string{"A", "B"}))
	assert.Equal(t, []string{"A", "B"}, tbl.Columns)

	require.Error(t, tbl.Rename([]string{"only one"}))
	assert.Equal(t, []string{"A", "B"}, tbl.Columns)
}

func TestTable_Normalize(t *testing.T) {
	t.Parallel()

	tbl := FromResult(&query.Result{
		Columns:     []string{"created_at", "day", "name", "count"},
		ColumnTypes: []string{"TIMESTAMPTZ", "DATE", "", ""},
		Rows: [][]interface{}{
			{time.Date(2023, 4, 5, 6, 7, 8, 123456, time.UTC), time.Date(2023, 4, 5, 0, 0, 0, 0, time.UTC), []byte("Zürich"), int64(3)},
			{nil, nil, "Genève", int64(4)},
		},
	})

	tbl.Normalize()

	assert.Equal(t, [][]interface{}{
		{"2023-04-05 06:07:08", "2023-04-05 00:00:00", "Zürich", int64(3)},
		{nil, nil, "Genève", int64(4)},
	}, tbl.Rows)

	tbl.Normalize()
	assert.Equal(t, "2023-04-05 06:07:08", tbl.Rows[0][0])
	assert.Equal(t, "Zürich", tbl.Rows[0][2])
}

func TestFromResult_DoesNotShareRows(t *testing.T) {
	t.Parallel()

	res := &query.Result{
		Columns: []string{"name"},
		Rows:    [][]interface{}{{[]byte("jane")}},
	}

	tbl := FromResult(res)
	tbl.Normalize()

	assert.Equal(t, "jane", tbl.Rows[0][0])
	assert.Equal(t, []byte("jane"), res.Rows[0][0])
}
