// Package config ...
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Config contains this application's runtime configuration.
type Config struct {
	Region           string `env:"AWS_REGION"`
	AccessKeyID      string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey  string `env:"AWS_SECRET_ACCESS_KEY"`
	SessionToken     string `env:"AWS_SESSION_TOKEN"`
	EndpointOverride string `env:"DOCDB_ENDPOINT"`

	PollInterval time.Duration `env:"DOCDB_POLL_INTERVAL" envDefault:"5s"`

	// Default deadlines for --wait. Restores are given much longer than fresh
	// creates since restoring a large snapshot can take the better part of an hour.
	CreateWaitTimeout   time.Duration `env:"DOCDB_CREATE_WAIT_TIMEOUT" envDefault:"10m"`
	RestoreWaitTimeout  time.Duration `env:"DOCDB_RESTORE_WAIT_TIMEOUT" envDefault:"1h"`
	DeleteWaitTimeout   time.Duration `env:"DOCDB_DELETE_WAIT_TIMEOUT" envDefault:"10m"`
	InstanceWaitTimeout time.Duration `env:"DOCDB_INSTANCE_WAIT_TIMEOUT" envDefault:"20m"`

	MetricsAddress string `env:"DOCDB_METRICS_ADDRESS"`
}

// GetConfig retrieves the current runtime configuration from the environment and returns it.
func GetConfig() (*Config, error) {
	c := Config{}
	var configErrors *multierror.Error

	if err := env.Parse(&c); err != nil {
		return nil, errors.Wrapf(err, "unable to parse runtime configuration from environment")
	}
	if c.PollInterval <= 0 {
		configErrors = multierror.Append(configErrors, errors.New("DOCDB_POLL_INTERVAL must be positive"))
	}
	for _, timeout := range []struct {
		name  string
		value time.Duration
	}{
		{"DOCDB_CREATE_WAIT_TIMEOUT", c.CreateWaitTimeout},
		{"DOCDB_RESTORE_WAIT_TIMEOUT", c.RestoreWaitTimeout},
		{"DOCDB_DELETE_WAIT_TIMEOUT", c.DeleteWaitTimeout},
		{"DOCDB_INSTANCE_WAIT_TIMEOUT", c.InstanceWaitTimeout},
	} {
		if timeout.value <= 0 {
			configErrors = multierror.Append(configErrors, errors.Errorf("%s must be positive", timeout.name))
		}
	}

	if err := configErrors.ErrorOrNil(); err != nil {
		return nil, errors.Wrap(err, "unexpected configuration settings")
	}
	return &c, nil
}
