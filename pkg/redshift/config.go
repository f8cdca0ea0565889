package redshift

import (
	"sort"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const defaultPort = "5439"

var keyAliases = map[string]string{
	"database": "dbname",
	"username": "user",
}

// Config is the set of driver parameters used to open a connection, e.g. host, port, user, password and dbname.
// The parameters are passed to the driver as they are, the driver is the one that decides if they are valid.
type Config map[string]string

// DSN builds a keyword/value connection string out of the parameters.
func (c Config) DSN() string {
	params := make(map[string]string, len(c))
	for key, value := range c {
		key = strings.ToLower(strings.TrimSpace(key))
		if alias, ok := keyAliases[key]; ok {
			key = alias
		}

		params[key] = value
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+quoteValue(params[key]))
	}

	return strings.Join(parts, " ")
}

func quoteValue(value string) string {
	if value != "" && !strings.ContainsAny(value, " '\\\t\n") {
		return value
	}

	replacer := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + replacer.Replace(value) + "'"
}

type envConfig struct {
	Host     string `envconfig:"REDSHIFT_HOST"`
	Port     string `envconfig:"REDSHIFT_PORT"`
	User     string `envconfig:"REDSHIFT_USER"`
	Password string `envconfig:"REDSHIFT_PASSWORD"`
	Database string `envconfig:"REDSHIFT_DATABASE"`
	SSLMode  string `envconfig:"REDSHIFT_SSLMODE"`
}

func LoadConfigFromEnv() (Config, error) {
	var env envConfig
	err := envconfig.Process("", &env)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	set := func(key, value string) {
		if value != "" {
			cfg[key] = value
		}
	}

	set("host", env.Host)
	set("port", env.Port)
	set("user", env.User)
	set("password", env.Password)
	set("dbname", env.Database)
	set("sslmode", env.SSLMode)

	if _, ok := cfg["port"]; !ok && len(cfg) > 0 {
		cfg["port"] = defaultPort
	}

	return cfg, nil
}
