package task

const (
	TypeRedshiftQuery = "rs.sql"
	TypeRedshiftExcel = "rs.excel"
	TypeEmpty         = "empty"

	ModeRaw   = "raw"
	ModeFetch = "fetch"
)

type DefinitionType string

const (
	YamlTask    DefinitionType = "yaml"
	CommentTask DefinitionType = "comment"
)

type DefinitionFile struct {
	Name string
	Path string
	Type DefinitionType
}

type ExecutableFile struct {
	Name    string
	Path    string
	Content string
}

type Task struct {
	Name           string
	Description    string
	Type           string
	Connection     string
	Schedule       string
	Mode           string
	Statements     []Statement
	SheetNames     []string
	ColumnGroups   [][]string
	Output         string
	DefinitionFile DefinitionFile
}
