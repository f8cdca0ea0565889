package redshift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{
			name:   "empty config",
			config: Config{},
			want:   "",
		},
		{
			name: "keys are sorted",
			config: Config{
				"port":     "5439",
				"host":     "cluster.eu-west-1.redshift.amazonaws.com",
				"dbname":   "analytics",
				"user":     "etl",
				"password": "secret",
			},
			want: "dbname=analytics host=cluster.eu-west-1.redshift.amazonaws.com password=secret port=5439 user=etl",
		},
		{
			name: "aliases are normalized",
			config: Config{
				"Database": "analytics",
				"username": "etl",
			},
			want: "dbname=analytics user=etl",
		},
		{
			name: "values with special characters are quoted",
			config: Config{
				"password": `it's a \ secret`,
				"options":  "",
			},
			want: `options='' password='it\'s a \\ secret'`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.config.DSN())
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("REDSHIFT_HOST", "localhost")
	t.Setenv("REDSHIFT_USER", "etl")
	t.Setenv("REDSHIFT_DATABASE", "analytics")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, Config{
		"host":   "localhost",
		"user":   "etl",
		"dbname": "analytics",
		"port":   "5439",
	}, cfg)
}
