package reconciler

import (
	"context"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/sidneiweber/docdbctl/pkg/docdb/cloud"
	"github.com/sidneiweber/docdbctl/pkg/metrics"
)

// DefaultPollInterval is the interval between status checks while waiting for
// a resource to reach a stable lifecycle state.
const DefaultPollInterval = 5 * time.Second

// waitForClusterAvailable blocks until the cluster status is "available", the
// cluster enters a failed state, or the context deadline elapses.
func waitForClusterAvailable(ctx context.Context, client cloud.Client, clusterID string, interval time.Duration) (*cloud.Cluster, error) {
	metrics.IncrementActiveWaits()
	defer metrics.DecrementActiveWaits()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		cluster, err := client.DescribeCluster(ctx, clusterID)
		if err != nil {
			if errors.Is(err, cloud.ErrClusterNotFound) {
				return nil, errors.Errorf("DB cluster does not exist: %s", clusterID)
			}
			return nil, err
		}

		switch cluster.Status {
		case cloud.StatusAvailable:
			return cluster, nil
		case cloud.StatusFailed:
			return nil, errors.Errorf("DB cluster %s entered status %q", clusterID, cluster.Status)
		}

		glog.Infof("DocumentDB cluster status: %s (cluster ID: %s)", cluster.Status, clusterID)
		select {
		case <-ticker.C:
			continue
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), "waiting for DB cluster %s to be available", clusterID)
		}
	}
}

// waitForClusterDeleted blocks until the cluster no longer exists or the
// context deadline elapses.
func waitForClusterDeleted(ctx context.Context, client cloud.Client, clusterID string, interval time.Duration) error {
	metrics.IncrementActiveWaits()
	defer metrics.DecrementActiveWaits()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		cluster, err := client.DescribeCluster(ctx, clusterID)
		if err != nil {
			if errors.Is(err, cloud.ErrClusterNotFound) {
				return nil
			}
			return err
		}

		if cluster.Status == cloud.StatusFailed {
			return errors.Errorf("DB cluster %s entered status %q", clusterID, cluster.Status)
		}

		glog.Infof("DocumentDB cluster status: %s (cluster ID: %s)", cluster.Status, clusterID)
		select {
		case <-ticker.C:
			continue
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "waiting for DB cluster %s to be deleted", clusterID)
		}
	}
}

// waitForInstanceAvailable blocks until the instance status is "available",
// the instance enters a failed state, or the context deadline elapses.
func waitForInstanceAvailable(ctx context.Context, client cloud.Client, instanceID string, interval time.Duration) (*cloud.Instance, error) {
	metrics.IncrementActiveWaits()
	defer metrics.DecrementActiveWaits()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		instance, err := client.DescribeInstance(ctx, instanceID)
		if err != nil {
			if errors.Is(err, cloud.ErrInstanceNotFound) {
				return nil, errors.Errorf("DB instance does not exist: %s", instanceID)
			}
			return nil, err
		}

		switch instance.Status {
		case cloud.StatusAvailable:
			return instance, nil
		case cloud.StatusFailed:
			return nil, errors.Errorf("DB instance %s entered status %q", instanceID, instance.Status)
		}

		glog.Infof("DocumentDB instance status: %s (instance ID: %s)", instance.Status, instanceID)
		select {
		case <-ticker.C:
			continue
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), "waiting for DB instance %s to be available", instanceID)
		}
	}
}

// waitForInstanceDeleted blocks until the instance no longer exists or the
// context deadline elapses.
func waitForInstanceDeleted(ctx context.Context, client cloud.Client, instanceID string, interval time.Duration) error {
	metrics.IncrementActiveWaits()
	defer metrics.DecrementActiveWaits()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		instance, err := client.DescribeInstance(ctx, instanceID)
		if err != nil {
			if errors.Is(err, cloud.ErrInstanceNotFound) {
				return nil
			}
			return err
		}

		if instance.Status == cloud.StatusFailed {
			return errors.Errorf("DB instance %s entered status %q", instanceID, instance.Status)
		}

		glog.Infof("DocumentDB instance status: %s (instance ID: %s)", instance.Status, instanceID)
		select {
		case <-ticker.C:
			continue
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "waiting for DB instance %s to be deleted", instanceID)
		}
	}
}
