package reconciler

import (
	"context"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/sidneiweber/docdbctl/pkg/docdb/cloud"
	"github.com/sidneiweber/docdbctl/pkg/metrics"
)

// ClusterReconciler ensures a named DB cluster matches its desired spec or is absent.
type ClusterReconciler struct {
	client       cloud.Client
	pollInterval time.Duration
}

// NewClusterReconciler creates a ClusterReconciler. A non-positive pollInterval
// falls back to DefaultPollInterval.
func NewClusterReconciler(client cloud.Client, pollInterval time.Duration) *ClusterReconciler {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &ClusterReconciler{
		client:       client,
		pollInterval: pollInterval,
	}
}

// Reconcile issues at most one corrective call to move the cluster towards the
// desired spec. With wait set, it additionally blocks until the cluster reaches
// a stable lifecycle state or ctx expires.
func (r *ClusterReconciler) Reconcile(ctx context.Context, spec DesiredClusterSpec, wait bool) (*Result, error) {
	metrics.IncrementReconciliations(metrics.KindCluster)

	result, err := r.reconcile(ctx, spec, wait)
	if err != nil {
		metrics.IncrementReconciliationErrors(metrics.KindCluster)
		return nil, err
	}
	return result, nil
}

func (r *ClusterReconciler) reconcile(ctx context.Context, spec DesiredClusterSpec, wait bool) (*Result, error) {
	spec = spec.WithDefaults()
	if err := spec.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid cluster spec")
	}

	observed, err := r.observeCluster(ctx, spec.ClusterID)
	if err != nil {
		return nil, err
	}

	action := DecideCluster(spec, observed)
	result := &Result{Action: action, Cluster: observed}

	switch action {
	case ActionNone:
		glog.V(1).Infof("DB cluster %s already in desired state %s", spec.ClusterID, spec.State)

	case ActionCreate:
		result.Cluster, err = r.client.CreateCluster(ctx, newCreateClusterInput(spec))
		if err != nil {
			return nil, errors.Wrapf(err, "ensuring DB cluster %s exists", spec.ClusterID)
		}
		result.Changed = true

	case ActionRestore:
		result.Cluster, err = r.client.RestoreClusterFromSnapshot(ctx, newRestoreClusterInput(spec))
		if err != nil {
			return nil, errors.Wrapf(err, "restoring DB cluster %s from snapshot", spec.ClusterID)
		}
		result.Changed = true

	case ActionModify:
		input, _ := clusterModifications(spec, observed)
		if spec.ForceUpdatePassword {
			input.MasterPassword = spec.MasterPassword
		}
		result.Cluster, err = r.client.ModifyCluster(ctx, input)
		if err != nil {
			return nil, errors.Wrapf(err, "modifying DB cluster %s", spec.ClusterID)
		}
		result.Changed = true

	case ActionStart:
		result.Cluster, err = r.client.StartCluster(ctx, spec.ClusterID)
		if err != nil {
			return nil, errors.Wrapf(err, "starting DB cluster %s", spec.ClusterID)
		}
		result.Changed = true

	case ActionDelete:
		result.Cluster, err = r.client.DeleteCluster(ctx, cloud.DeleteClusterInput{
			ClusterID:       spec.ClusterID,
			FinalSnapshotID: spec.FinalSnapshotID,
		})
		if err != nil {
			// A concurrent delete winning the race still converges on the desired state.
			if errors.Is(err, cloud.ErrClusterNotFound) {
				result.Cluster = nil
				break
			}
			return nil, errors.Wrapf(err, "deleting DB cluster %s", spec.ClusterID)
		}
		result.Changed = true
	}

	if wait {
		if err := r.wait(ctx, spec, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (r *ClusterReconciler) wait(ctx context.Context, spec DesiredClusterSpec, result *Result) error {
	if spec.State == StateAbsent {
		if result.Cluster == nil {
			return nil
		}
		if err := waitForClusterDeleted(ctx, r.client, spec.ClusterID, r.pollInterval); err != nil {
			return err
		}
		result.Cluster = nil
		return nil
	}

	cluster, err := waitForClusterAvailable(ctx, r.client, spec.ClusterID, r.pollInterval)
	if err != nil {
		return err
	}
	result.Cluster = cluster
	return nil
}

func (r *ClusterReconciler) observeCluster(ctx context.Context, clusterID string) (*cloud.Cluster, error) {
	cluster, err := r.client.DescribeCluster(ctx, clusterID)
	if err != nil {
		if errors.Is(err, cloud.ErrClusterNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "checking if DB cluster %s exists", clusterID)
	}
	return cluster, nil
}

func newCreateClusterInput(spec DesiredClusterSpec) cloud.CreateClusterInput {
	return cloud.CreateClusterInput{
		ClusterID:         spec.ClusterID,
		Engine:            spec.Engine,
		EngineVersion:     spec.EngineVersion,
		SubnetGroup:       spec.SubnetGroup,
		SecurityGroupIDs:  spec.SecurityGroupIDs,
		AvailabilityZones: spec.AvailabilityZones,
		Port:              spec.Port,
		MasterUsername:    spec.MasterUsername,
		MasterPassword:    spec.MasterPassword,
		ParameterGroup:    spec.ParameterGroup,
		Tags:              spec.Tags,
	}
}

func newRestoreClusterInput(spec DesiredClusterSpec) cloud.RestoreClusterInput {
	return cloud.RestoreClusterInput{
		ClusterID:         spec.ClusterID,
		SnapshotARN:       spec.SnapshotARN,
		Engine:            spec.Engine,
		EngineVersion:     spec.EngineVersion,
		SubnetGroup:       spec.SubnetGroup,
		SecurityGroupIDs:  spec.SecurityGroupIDs,
		AvailabilityZones: spec.AvailabilityZones,
		Port:              spec.Port,
		ParameterGroup:    spec.ParameterGroup,
		Tags:              spec.Tags,
	}
}
