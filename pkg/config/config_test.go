package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig_Defaults(t *testing.T) {
	cfg, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg.PollInterval, 5*time.Second)
	assert.Equal(t, cfg.CreateWaitTimeout, 10*time.Minute)
	assert.Equal(t, cfg.RestoreWaitTimeout, time.Hour)
	assert.Equal(t, cfg.DeleteWaitTimeout, 10*time.Minute)
	assert.Equal(t, cfg.InstanceWaitTimeout, 20*time.Minute)
	assert.Empty(t, cfg.MetricsAddress)
}

func TestGetConfig_Overrides(t *testing.T) {
	t.Setenv("AWS_REGION", "sa-east-1")
	t.Setenv("DOCDB_POLL_INTERVAL", "1s")
	t.Setenv("DOCDB_CREATE_WAIT_TIMEOUT", "2m")
	cfg, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg.Region, "sa-east-1")
	assert.Equal(t, cfg.PollInterval, time.Second)
	assert.Equal(t, cfg.CreateWaitTimeout, 2*time.Minute)
}

func TestGetConfig_Failure_WhenTimeoutsNotPositive(t *testing.T) {
	t.Setenv("DOCDB_POLL_INTERVAL", "0s")
	t.Setenv("DOCDB_INSTANCE_WAIT_TIMEOUT", "-1m")
	cfg, err := GetConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
