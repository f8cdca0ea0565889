package path

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// GetAllFilesRecursive lists the files under root whose names end with one of the given suffixes, all files if none given.
func GetAllFilesRecursive(fs afero.Fs, root string, suffixes ...string) ([]string, error) {
	var paths []string
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if len(suffixes) > 0 && !HasAnySuffix(path, suffixes) {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return errors.Wrapf(err, "failed to get absolute path for %s", path)
		}

		paths = append(paths, abs)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "error walking directory")
	}

	return paths, nil
}

func HasAnySuffix(path string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if len(path) >= len(suffix) && path[len(path)-len(suffix):] == suffix {
			return true
		}
	}

	return false
}
