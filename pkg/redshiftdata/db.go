package redshiftdata

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/redshiftdata"
	"github.com/aws/aws-sdk-go-v2/service/redshiftdata/types"
	"github.com/datablast-analytics/blast-redshift/pkg/query"
	"github.com/pkg/errors"
)

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05.999999Z07",
	"2006-01-02",
}

type apiClient interface {
	ExecuteStatement(ctx context.Context, params *redshiftdata.ExecuteStatementInput, optFns ...func(*redshiftdata.Options)) (*redshiftdata.ExecuteStatementOutput, error)
	DescribeStatement(ctx context.Context, params *redshiftdata.DescribeStatementInput, optFns ...func(*redshiftdata.Options)) (*redshiftdata.DescribeStatementOutput, error)
	redshiftdata.GetStatementResultAPIClient
}

type DB struct {
	client apiClient
	config Config
}

func Open(ctx context.Context, c Config) (*DB, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if c.Region != "" {
		opts = append(opts, awsconfig.WithRegion(c.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load the AWS config")
	}

	return NewDB(redshiftdata.NewFromConfig(awsCfg), c), nil
}

func NewDB(client apiClient, c Config) *DB {
	return &DB{
		client: client,
		config: c,
	}
}

func (d *DB) Exec(ctx context.Context, q *query.Query) (*query.ExecResult, error) {
	desc, err := d.executeStatement(ctx, q)
	if err != nil {
		return nil, err
	}

	return &query.ExecResult{RowsAffected: desc.ResultRows}, nil
}

func (d *DB) Select(ctx context.Context, q *query.Query) (*query.Result, error) {
	desc, err := d.executeStatement(ctx, q)
	if err != nil {
		return nil, err
	}

	result := &query.Result{
		Columns:     make([]string, 0),
		ColumnTypes: make([]string, 0),
		Rows:        make([][]interface{}, 0),
	}

	if !aws.ToBool(desc.HasResultSet) {
		return result, nil
	}

	paginator := redshiftdata.NewGetStatementResultPaginator(d.client, &redshiftdata.GetStatementResultInput{
		Id: desc.Id,
	})

	first := true
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch the statement result")
		}

		if first {
			for _, column := range page.ColumnMetadata {
				result.Columns = append(result.Columns, aws.ToString(column.Name))
				result.ColumnTypes = append(result.ColumnTypes, strings.ToUpper(aws.ToString(column.TypeName)))
			}
			first = false
		}

		for _, record := range page.Records {
			row := make([]interface{}, len(record))
			for i, field := range record {
				typeName := ""
				if i < len(result.ColumnTypes) {
					typeName = result.ColumnTypes[i]
				}

				row[i] = fieldValue(field, typeName)
			}

			result.Rows = append(result.Rows, row)
		}
	}

	return result, nil
}

// Close is a no-op, the Data API has no connection to release.
func (d *DB) Close() error {
	return nil
}

func (d *DB) executeStatement(ctx context.Context, q *query.Query) (*redshiftdata.DescribeStatementOutput, error) {
	out, err := d.client.ExecuteStatement(ctx, &redshiftdata.ExecuteStatementInput{
		Sql:               aws.String(q.Query),
		ClusterIdentifier: nullable(d.config.ClusterIdentifier),
		Database:          nullable(d.config.Database),
		DbUser:            nullable(d.config.DBUser),
		SecretArn:         nullable(d.config.SecretArn),
		WorkgroupName:     nullable(d.config.WorkgroupName),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to submit the statement")
	}

	for {
		desc, err := d.client.DescribeStatement(ctx, &redshiftdata.DescribeStatementInput{Id: out.Id})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to describe the statement '%s'", aws.ToString(out.Id))
		}

		switch desc.Status {
		case types.StatusStringFinished:
			return desc, nil
		case types.StatusStringFailed:
			return nil, errors.Errorf("query failed: %s", aws.ToString(desc.Error))
		case types.StatusStringAborted:
			return nil, errors.Errorf("query aborted: %s", aws.ToString(desc.Error))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(d.config.pollingInterval()):
		}
	}
}

func fieldValue(field types.Field, typeName string) interface{} {
	switch v := field.(type) {
	case *types.FieldMemberIsNull:
		return nil
	case *types.FieldMemberLongValue:
		return v.Value
	case *types.FieldMemberDoubleValue:
		return v.Value
	case *types.FieldMemberBooleanValue:
		return v.Value
	case *types.FieldMemberBlobValue:
		return v.Value
	case *types.FieldMemberStringValue:
		if isTemporalType(typeName) {
			if ts, ok := parseTimestamp(v.Value); ok {
				return ts
			}
		}

		return v.Value
	default:
		return nil
	}
}

func isTemporalType(typeName string) bool {
	switch typeName {
	case "TIMESTAMP", "TIMESTAMPTZ", "DATE":
		return true
	default:
		return false
	}
}

func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}
