package redshiftdata

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

const defaultPolling = 500 * time.Millisecond

// Config points the Redshift Data API to either a provisioned cluster or a serverless workgroup.
type Config struct {
	ClusterIdentifier string        `yaml:"cluster_identifier"`
	Database          string        `yaml:"database" validate:"required"`
	DBUser            string        `yaml:"db_user"`
	WorkgroupName     string        `yaml:"workgroup_name"`
	SecretArn         string        `yaml:"secret_arn"`
	Region            string        `yaml:"region"`
	Polling           time.Duration `yaml:"polling"`
}

func (c Config) pollingInterval() time.Duration {
	if c.Polling <= 0 {
		return defaultPolling
	}

	return c.Polling
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}

	return aws.String(s)
}
