package task

import (
	"path/filepath"
	"strings"

	"github.com/datablast-analytics/blast-redshift/pkg/query"
	"github.com/pkg/errors"
)

var ErrEmptyStatement = errors.New("SQL statement must be non-empty")

type queryExtractor interface {
	ExtractQueriesFromFile(filepath string) ([]*query.Query, error)
	ExtractQueriesFromString(content string) ([]*query.Query, error)
}

// Statement is either inline SQL or a reference to a .sql file.
type Statement struct {
	Query string
	File  *ExecutableFile
}

func (s Statement) IsFile() bool {
	return s.File != nil
}

func (s Statement) String() string {
	if s.File != nil {
		return s.File.Path
	}

	return s.Query
}

// Resolve renders the statement into the single query sent to the warehouse. Statements that render
// to nothing are rejected with ErrEmptyStatement.
func (s Statement) Resolve(extractor queryExtractor) (*query.Query, error) {
	var queries []*query.Query
	var err error
	switch {
	case s.File != nil && s.File.Content != "":
		queries, err = extractor.ExtractQueriesFromString(s.File.Content)
	case s.File != nil:
		queries, err = extractor.ExtractQueriesFromFile(s.File.Path)
	default:
		queries, err = extractor.ExtractQueriesFromString(s.Query)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot extract the query from '%s'", query.Preview(s.String()))
	}

	if len(queries) == 0 || queries[0].IsEmpty() {
		return nil, ErrEmptyStatement
	}

	return queries[0], nil
}

// newStatement treats single-line entries ending with .sql as file references relative to the definition directory.
func newStatement(entry, baseDir string) (Statement, error) {
	trimmed := strings.TrimSpace(entry)
	if !strings.HasSuffix(trimmed, ".sql") || strings.ContainsAny(trimmed, " \n\t") {
		return Statement{Query: entry}, nil
	}

	path := trimmed
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Statement{}, err
	}

	return Statement{
		File: &ExecutableFile{
			Name: filepath.Base(trimmed),
			Path: abs,
		},
	}, nil
}
