package reconciler

import (
	"context"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/sidneiweber/docdbctl/pkg/docdb/cloud"
	"github.com/sidneiweber/docdbctl/pkg/metrics"
)

// InstanceReconciler ensures a named DB instance within a cluster matches its
// desired spec or is absent.
type InstanceReconciler struct {
	client       cloud.Client
	pollInterval time.Duration
}

// NewInstanceReconciler creates an InstanceReconciler. A non-positive
// pollInterval falls back to DefaultPollInterval.
func NewInstanceReconciler(client cloud.Client, pollInterval time.Duration) *InstanceReconciler {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &InstanceReconciler{
		client:       client,
		pollInterval: pollInterval,
	}
}

// Reconcile issues at most one corrective call to move the instance towards
// the desired spec. With wait set, it additionally blocks until the instance
// reaches a stable lifecycle state or ctx expires.
func (r *InstanceReconciler) Reconcile(ctx context.Context, spec DesiredInstanceSpec, wait bool) (*Result, error) {
	metrics.IncrementReconciliations(metrics.KindInstance)

	result, err := r.reconcile(ctx, spec, wait)
	if err != nil {
		metrics.IncrementReconciliationErrors(metrics.KindInstance)
		return nil, err
	}
	return result, nil
}

func (r *InstanceReconciler) reconcile(ctx context.Context, spec DesiredInstanceSpec, wait bool) (*Result, error) {
	spec = spec.WithDefaults()
	if err := spec.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid instance spec")
	}

	observed, err := r.observeInstance(ctx, spec.InstanceID)
	if err != nil {
		return nil, err
	}

	action := DecideInstance(spec, observed)
	result := &Result{Action: action, Instance: observed}

	switch action {
	case ActionNone:
		glog.V(1).Infof("DB instance %s already in desired state %s", spec.InstanceID, spec.State)
		if observed != nil && spec.Tags != nil {
			changed, err := r.syncTags(ctx, observed, spec.Tags)
			if err != nil {
				return nil, errors.Wrapf(err, "syncing tags of DB instance %s", spec.InstanceID)
			}
			result.Changed = changed
		}

	case ActionCreate:
		if err := r.checkClusterExists(ctx, spec); err != nil {
			return nil, err
		}
		result.Instance, err = r.client.CreateInstance(ctx, cloud.CreateInstanceInput{
			InstanceID:                 spec.InstanceID,
			ClusterID:                  spec.ClusterID,
			InstanceClass:              spec.InstanceClass,
			Engine:                     spec.Engine,
			AvailabilityZone:           spec.AvailabilityZone,
			PreferredMaintenanceWindow: spec.PreferredMaintenanceWindow,
			Tags:                       spec.Tags,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "ensuring DB instance %s exists in cluster %s", spec.InstanceID, spec.ClusterID)
		}
		result.Changed = true

	case ActionDelete:
		result.Instance, err = r.client.DeleteInstance(ctx, spec.InstanceID)
		if err != nil {
			// A concurrent delete winning the race still converges on the desired state.
			if errors.Is(err, cloud.ErrInstanceNotFound) {
				result.Instance = nil
				break
			}
			return nil, errors.Wrapf(err, "deleting DB instance %s", spec.InstanceID)
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

func (r *InstanceReconciler) wait(ctx context.Context, spec DesiredInstanceSpec, result *Result) error {
	if spec.State == StateAbsent {
		if result.Instance == nil {
			return nil
		}
		if err := waitForInstanceDeleted(ctx, r.client, spec.InstanceID, r.pollInterval); err != nil {
			return err
		}
		result.Instance = nil
		return nil
	}

	instance, err := waitForInstanceAvailable(ctx, r.client, spec.InstanceID, r.pollInterval)
	if err != nil {
		return err
	}
	result.Instance = instance
	return nil
}

func (r *InstanceReconciler) observeInstance(ctx context.Context, instanceID string) (*cloud.Instance, error) {
	instance, err := r.client.DescribeInstance(ctx, instanceID)
	if err != nil {
		if errors.Is(err, cloud.ErrInstanceNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "checking if DB instance %s exists", instanceID)
	}
	return instance, nil
}

// checkClusterExists verifies the owning cluster resolves before an instance
// is created in it. A cluster that is still being created is acceptable.
func (r *InstanceReconciler) checkClusterExists(ctx context.Context, spec DesiredInstanceSpec) error {
	_, err := r.client.DescribeCluster(ctx, spec.ClusterID)
	if err != nil {
		if errors.Is(err, cloud.ErrClusterNotFound) {
			return errors.Wrapf(err, "instance %s references cluster %s which does not exist", spec.InstanceID, spec.ClusterID)
		}
		return errors.Wrapf(err, "checking if DB cluster %s exists", spec.ClusterID)
	}
	return nil
}

// syncTags makes the remote tag set match the desired one. Returns whether any
// remote change was issued.
func (r *InstanceReconciler) syncTags(ctx context.Context, instance *cloud.Instance, desired map[string]string) (bool, error) {
	current, err := r.client.ListResourceTags(ctx, instance.ARN)
	if err != nil {
		return false, err
	}
	if tagsEqual(current, desired) {
		return false, nil
	}

	glog.Infof("Updating tags of DB instance %s.", instance.ID)
	if err := r.client.SyncResourceTags(ctx, instance.ARN, desired); err != nil {
		return false, err
	}
	return true, nil
}

func tagsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for key, value := range a {
		if other, ok := b[key]; !ok || other != value {
			return false
		}
	}
	return true
}
