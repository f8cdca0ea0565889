package path

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestGetAllFilesRecursive(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	for _, file := range []string{
		"/tasks/weekly.task.yml",
		"/tasks/nested/daily.task.yaml",
		"/tasks/nested/query.sql",
		"/tasks/README.md",
	} {
		require.NoError(t, afero.WriteFile(fs, file, []byte("content"), 0o644))
	}

	abs := func(p string) string {
		a, err := filepath.Abs(p)
		require.NoError(t, err)
		return a
	}

	tests := []struct {
		name     string
		root     string
		suffixes []string
		want     []string
		wantErr  bool
	}{
		{
			name: "all files are listed",
			root: "/tasks",
			want: []string{
				abs("/tasks/README.md"),
				abs("/tasks/nested/daily.task.yaml"),
				abs("/tasks/nested/query.sql"),
				abs("/tasks/weekly.task.yml"),
			},
		},
		{
			name:     "files are filtered by suffix",
			root:     "/tasks",
			suffixes: []string{".task.yml", ".task.yaml"},
			want: []string{
				abs("/tasks/nested/daily.task.yaml"),
				abs("/tasks/weekly.task.yml"),
			},
		},
		{
			name:    "missing root is an error",
			root:    "/some-random-directory-name-that-does-not-exist",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := GetAllFilesRecursive(fs, tt.root, tt.suffixes...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
