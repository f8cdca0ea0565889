package path

import (
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const filePermissions = 0o644

func ReadYaml(fs afero.Fs, path string, out interface{}) error {
	buf, err := afero.ReadFile(fs, path)
	if err != nil {
		return err
	}

	err = yaml.Unmarshal(buf, out)
	if err != nil {
		return errors.Wrapf(err, "cannot read the YAML file at '%s'", path)
	}

	validate := validator.New()
	err = validate.Struct(out)
	if err != nil {
		return errors.Wrapf(err, "cannot validate the YAML file at '%s'", path)
	}

	return nil
}

func WriteYaml(fs afero.Fs, path string, content interface{}) error {
	buf, err := yaml.Marshal(content)
	if err != nil {
		return errors.Wrap(err, "cannot serialize the content to YAML")
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "cannot create the directory for '%s'", path)
	}

	return afero.WriteFile(fs, path, buf, filePermissions)
}
