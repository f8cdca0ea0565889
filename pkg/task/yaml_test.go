package task

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const excelTaskDefinition = `
name: weekly-report
description: Weekly report for the finance team
type: rs.excel
connection: warehouse
schedule: "0 6 * * 1"
sql:
  - queries/revenue.sql
  - select id, name from users
sheet_names:
  - Revenue
  - Users
columns:
  - [Day, Revenue]
  - null
output: out/weekly.xlsx
`

const queryTaskDefinition = `
name: refresh-users
type: rs.sql
mode: fetch
sql:
  - /abs/path/refresh.sql
`

func TestCreateTaskFromYamlDefinition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		path    string
		want    *Task
		wantErr bool
	}{
		{
			name:    "fails for paths that do not exist",
			path:    "/tasks/some/path/that/doesnt/exist.task.yml",
			wantErr: true,
		},
		{
			name:    "fails when sql is not a list",
			path:    "/tasks/report.task.yml",
			content: "name: x\ntype: rs.sql\nsql: select 1\n",
			wantErr: true,
		},
		{
			name:    "fails for unknown modes",
			path:    "/tasks/report.task.yml",
			content: "name: x\ntype: rs.sql\nmode: stream\nsql: [select 1]\n",
			wantErr: true,
		},
		{
			name:    "reads an excel task",
			path:    "/tasks/report.task.yml",
			content: excelTaskDefinition,
			want: &Task{
				Name:        "weekly-report",
				Description: "Weekly report for the finance team",
				Type:        TypeRedshiftExcel,
				Connection:  "warehouse",
				Schedule:    "0 6 * * 1",
				Mode:        ModeRaw,
				Statements: []Statement{
					{File: &ExecutableFile{Name: "revenue.sql", Path: "/tasks/queries/revenue.sql"}},
					{Query: "select id, name from users"},
				},
				SheetNames:   []string{"Revenue", "Users"},
				ColumnGroups: [][]string{{"Day", "Revenue"}, nil},
				Output:       "/tasks/out/weekly.xlsx",
				DefinitionFile: DefinitionFile{
					Name: "report.task.yml",
					Path: "/tasks/report.task.yml",
					Type: YamlTask,
				},
			},
		},
		{
			name:    "reads a query task with an absolute file",
			path:    "/tasks/refresh.task.yml",
			content: queryTaskDefinition,
			want: &Task{
				Name: "refresh-users",
				Type: TypeRedshiftQuery,
				Mode: ModeFetch,
				Statements: []Statement{
					{File: &ExecutableFile{Name: "refresh.sql", Path: "/abs/path/refresh.sql"}},
				},
				DefinitionFile: DefinitionFile{
					Name: "refresh.task.yml",
					Path: "/tasks/refresh.task.yml",
					Type: YamlTask,
				},
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			if tt.content != "" {
				require.NoError(t, afero.WriteFile(fs, tt.path, []byte(tt.content), 0o644))
			}

			got, err := CreateTaskFromYamlDefinition(fs)(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestResolveOutput(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", resolveOutput("", "/tasks"))
	require.Equal(t, "/tasks/out/report.xlsx", resolveOutput("out/report.xlsx", "/tasks"))
	require.Equal(t, "/reports/report.xlsx", resolveOutput("/reports/report.xlsx", "/tasks"))
	require.Equal(t, "s3://bucket/report.xlsx", resolveOutput("s3://bucket/report.xlsx", "/tasks"))
}
