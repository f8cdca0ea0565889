package redshift

import (
	"context"

	"github.com/datablast-analytics/blast-redshift/pkg/query"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// Redshift speaks the Postgres wire protocol, the pgx driver registers itself under this name.
const driverName = "pgx"

type DB struct {
	conn *sqlx.DB
}

// Open opens a single connection to the warehouse and pings it once so that network or authentication
// problems are reported right away. The caller owns the connection and must close it.
func Open(ctx context.Context, c Config) (*DB, error) {
	conn, err := sqlx.ConnectContext(ctx, driverName, c.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to redshift")
	}

	conn.SetMaxOpenConns(1)

	return NewDB(conn), nil
}

func NewDB(conn *sqlx.DB) *DB {
	return &DB{conn: conn}
}

// Exec runs the statement in a transaction and commits it.
func (d *DB) Exec(ctx context.Context, q *query.Query) (*query.ExecResult, error) {
	tx, err := d.conn.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start a transaction")
	}

	res, err := tx.ExecContext(ctx, q.Query)
	if err != nil {
		_ = tx.Rollback()
		return nil, errors.Wrap(err, "failed to execute the query")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit the transaction")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read the number of affected rows")
	}

	return &query.ExecResult{RowsAffected: affected}, nil
}

// Select runs the statement and reads the whole result set into memory.
func (d *DB) Select(ctx context.Context, q *query.Query) (*query.Result, error) {
	rows, err := d.conn.QueryxContext(ctx, q.Query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute the query")
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read the result columns")
	}

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read the result column types")
	}

	result := &query.Result{
		Columns:     columns,
		ColumnTypes: make([]string, len(columnTypes)),
		Rows:        make([][]interface{}, 0),
	}
	for i, ct := range columnTypes {
		result.ColumnTypes[i] = ct.DatabaseTypeName()
	}

	for rows.Next() {
		row, err := rows.SliceScan()
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan the result row")
		}

		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read the result rows")
	}

	return result, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}
