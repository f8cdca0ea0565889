package task

import (
	"testing"

	"github.com/datablast-analytics/blast-redshift/pkg/query"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type limitRenderer struct{}

func (limitRenderer) Render(q string) (string, error) {
	return q + " limit 10", nil
}

func TestStatement_Resolve(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tasks/users.sql", []byte("select * from users"), 0o644))

	extractor := &query.WholeFileExtractor{Fs: fs, Renderer: limitRenderer{}}

	tests := []struct {
		name      string
		statement Statement
		want      string
		wantErr   error
	}{
		{
			name:      "inline statement",
			statement: Statement{Query: "select 1"},
			want:      "select 1 limit 10",
		},
		{
			name:      "file reference",
			statement: Statement{File: &ExecutableFile{Path: "/tasks/users.sql"}},
			want:      "select * from users limit 10",
		},
		{
			name:      "file content already read",
			statement: Statement{File: &ExecutableFile{Path: "/tasks/missing.sql", Content: "select 2"}},
			want:      "select 2 limit 10",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.statement.Resolve(extractor)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Query)
		})
	}
}

func TestStatement_ResolveErrors(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tasks/blank.sql", []byte("  \n"), 0o644))
	extractor := &query.WholeFileExtractor{Fs: fs}

	_, err := Statement{File: &ExecutableFile{Path: "/tasks/blank.sql"}}.Resolve(extractor)
	assert.ErrorIs(t, err, ErrEmptyStatement)

	_, err = Statement{Query: ""}.Resolve(extractor)
	assert.ErrorIs(t, err, ErrEmptyStatement)

	_, err = Statement{File: &ExecutableFile{Path: "/tasks/missing.sql"}}.Resolve(extractor)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyStatement)
}
