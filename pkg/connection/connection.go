package connection

import (
	"context"

	"github.com/datablast-analytics/blast-redshift/pkg/config"
	"github.com/datablast-analytics/blast-redshift/pkg/query"
	"github.com/datablast-analytics/blast-redshift/pkg/redshift"
	"github.com/datablast-analytics/blast-redshift/pkg/redshiftdata"
	"github.com/pkg/errors"
)

// DefaultConnectionName is used by tasks that do not name a connection, when it is not configured
// the REDSHIFT_* environment variables are used instead.
const DefaultConnectionName = "default"

// DB is an open connection to the warehouse. It is owned by whoever opened it and must be closed.
type DB interface {
	Exec(ctx context.Context, q *query.Query) (*query.ExecResult, error)
	Select(ctx context.Context, q *query.Query) (*query.Result, error)
	Close() error
}

type Opener func(ctx context.Context) (DB, error)

type Manager struct {
	openers map[string]Opener
}

func NewManager() *Manager {
	return &Manager{
		openers: make(map[string]Opener),
	}
}

func (m *Manager) Register(name string, opener Opener) error {
	if _, ok := m.openers[name]; ok {
		return errors.Errorf("connection '%s' is defined more than once", name)
	}

	m.openers[name] = opener
	return nil
}

// Open opens a new connection every time it is called, connections are not shared or pooled.
func (m *Manager) Open(ctx context.Context, name string) (DB, error) {
	if name == "" {
		name = DefaultConnectionName
	}

	opener, ok := m.openers[name]
	if !ok {
		return nil, errors.Errorf("connection '%s' not found", name)
	}

	return opener(ctx)
}

func NewManagerFromConfig(cm *config.Config, environment string) (*Manager, error) {
	env, err := cm.SelectEnvironment(environment)
	if err != nil {
		return nil, err
	}

	manager := NewManager()
	for _, conn := range env.Connections.Redshift {
		params := redshift.Config(conn.Params)
		err := manager.Register(conn.Name, func(ctx context.Context) (DB, error) {
			db, err := redshift.Open(ctx, params)
			if err != nil {
				return nil, err
			}

			return db, nil
		})
		if err != nil {
			return nil, err
		}
	}

	for _, conn := range env.Connections.RedshiftData {
		dataConfig := redshiftdata.Config{
			ClusterIdentifier: conn.ClusterIdentifier,
			Database:          conn.Database,
			DBUser:            conn.DBUser,
			WorkgroupName:     conn.WorkgroupName,
			SecretArn:         conn.SecretArn,
			Region:            conn.Region,
			Polling:           conn.Polling,
		}
		err := manager.Register(conn.Name, func(ctx context.Context) (DB, error) {
			db, err := redshiftdata.Open(ctx, dataConfig)
			if err != nil {
				return nil, err
			}

			return db, nil
		})
		if err != nil {
			return nil, err
		}
	}

	if _, ok := manager.openers[DefaultConnectionName]; !ok {
		manager.openers[DefaultConnectionName] = openFromEnv
	}

	return manager, nil
}

func openFromEnv(ctx context.Context) (DB, error) {
	params, err := redshift.LoadConfigFromEnv()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read the redshift connection from the environment")
	}

	if len(params) == 0 {
		return nil, errors.New("no default connection configured, either define a connection named 'default' or set the REDSHIFT_* environment variables")
	}

	db, err := redshift.Open(ctx, params)
	if err != nil {
		return nil, err
	}

	return db, nil
}
