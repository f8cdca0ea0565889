package config

import (
	"errors"
	fs2 "io/fs"
	"sort"
	"time"

	path2 "github.com/datablast-analytics/blast-redshift/pkg/path"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/afero"
)

const DefaultEnvironmentName = "default"

// RedshiftConnection is a connection over the Postgres wire protocol, the params are handed to the driver as they are.
type RedshiftConnection struct {
	Name   string            `yaml:"name" validate:"required"`
	Params map[string]string `yaml:"params"`
}

// RedshiftDataConnection is a connection over the Redshift Data API.
type RedshiftDataConnection struct {
	Name              string        `yaml:"name" validate:"required"`
	ClusterIdentifier string        `yaml:"cluster_identifier,omitempty"`
	Database          string        `yaml:"database" validate:"required"`
	DBUser            string        `yaml:"db_user,omitempty"`
	WorkgroupName     string        `yaml:"workgroup_name,omitempty" validate:"required_without=ClusterIdentifier"`
	SecretArn         string        `yaml:"secret_arn,omitempty"`
	Region            string        `yaml:"region,omitempty"`
	Polling           time.Duration `yaml:"polling,omitempty"`
}

type Connections struct {
	Redshift     []RedshiftConnection     `yaml:"redshift,omitempty" validate:"dive"`
	RedshiftData []RedshiftDataConnection `yaml:"redshift_data,omitempty" validate:"dive"`
}

type Environment struct {
	Connections Connections `yaml:"connections"`
}

type Config struct {
	fs   afero.Fs
	path string

	Environments map[string]Environment `yaml:"environments" validate:"dive"`
}

func (c *Config) Persist() error {
	return path2.WriteYaml(c.fs, c.path, c)
}

// SelectEnvironment returns the environment with the given name, the default one if the name is empty.
func (c *Config) SelectEnvironment(name string) (*Environment, error) {
	if name == "" {
		name = DefaultEnvironmentName
	}

	env, ok := c.Environments[name]
	if !ok {
		return nil, pkgerrors.Errorf("environment '%s' does not exist, available environments: %v", name, c.environmentNames())
	}

	return &env, nil
}

func (c *Config) environmentNames() []string {
	names := make([]string, 0, len(c.Environments))
	for name := range c.Environments {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func LoadFromFile(fs afero.Fs, path string) (*Config, error) {
	var config Config

	err := path2.ReadYaml(fs, path, &config)
	if err != nil {
		return nil, err
	}

	config.fs = fs
	config.path = path

	return &config, nil
}

func LoadOrCreate(fs afero.Fs, path string) (*Config, error) {
	config, err := LoadFromFile(fs, path)
	if err != nil && !errors.Is(err, fs2.ErrNotExist) {
		return nil, err
	}

	if err == nil {
		return config, nil
	}

	config = &Config{
		fs:   fs,
		path: path,

		Environments: map[string]Environment{
			DefaultEnvironmentName: {
				Connections: Connections{},
			},
		},
	}

	err = config.Persist()
	if err != nil {
		return nil, err
	}

	return config, nil
}
