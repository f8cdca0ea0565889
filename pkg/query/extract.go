package query

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

type renderer interface {
	Render(query string) (string, error)
}

// WholeFileExtractor reads the whole file as a single statement, the warehouse receives the
// rendered file content as-is.
type WholeFileExtractor struct {
	Fs       afero.Fs
	Renderer renderer
}

func (f *WholeFileExtractor) ExtractQueriesFromFile(filepath string) ([]*Query, error) {
	contents, err := afero.ReadFile(f.Fs, filepath)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read file '%s'", filepath)
	}

	return f.ExtractQueriesFromString(string(contents))
}

func (f *WholeFileExtractor) ExtractQueriesFromString(content string) ([]*Query, error) {
	queries := make([]*Query, 0)

	rendered := content
	if f.Renderer != nil {
		var err error
		rendered, err = f.Renderer.Render(content)
		if err != nil {
			return nil, errors.Wrap(err, "could not render the query")
		}
	}

	rendered = strings.TrimSpace(rendered)
	if rendered == "" {
		return queries, nil
	}

	return append(queries, &Query{Query: rendered}), nil
}
