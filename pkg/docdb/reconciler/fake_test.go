package reconciler

import (
	"context"
	"fmt"

	"github.com/sidneiweber/docdbctl/pkg/docdb/cloud"
)

// fakeCloud is an in-memory cloud.Client recording every call, so tests can
// assert exactly which remote calls a reconciliation issued.
type fakeCloud struct {
	clusters  map[string]*cloud.Cluster
	instances map[string]*cloud.Instance
	tags      map[string]map[string]string

	calls []string

	// onDescribeCluster/onDescribeInstance run before each describe, letting
	// tests simulate status transitions between poll iterations.
	onDescribeCluster  func(f *fakeCloud)
	onDescribeInstance func(f *fakeCloud)
}

func newFakeCloud() *fakeCloud {
	return &fakeCloud{
		clusters:  map[string]*cloud.Cluster{},
		instances: map[string]*cloud.Instance{},
		tags:      map[string]map[string]string{},
	}
}

func (f *fakeCloud) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeCloud) countCalls(name string) int {
	count := 0
	for _, call := range f.calls {
		if call == name {
			count++
		}
	}
	return count
}

func (f *fakeCloud) mutatingCalls() int {
	count := 0
	for _, call := range f.calls {
		switch call {
		case "DescribeCluster", "DescribeInstance", "ListResourceTags":
		default:
			count++
		}
	}
	return count
}

func (f *fakeCloud) DescribeCluster(_ context.Context, clusterID string) (*cloud.Cluster, error) {
	f.record("DescribeCluster")
	if f.onDescribeCluster != nil {
		f.onDescribeCluster(f)
	}
	cluster, ok := f.clusters[clusterID]
	if !ok {
		return nil, cloud.ErrClusterNotFound
	}
	copied := *cluster
	return &copied, nil
}

func (f *fakeCloud) CreateCluster(_ context.Context, input cloud.CreateClusterInput) (*cloud.Cluster, error) {
	f.record("CreateCluster")
	cluster := &cloud.Cluster{
		ID:               input.ClusterID,
		ARN:              fmt.Sprintf("arn:aws:rds:us-east-1:000000000000:cluster:%s", input.ClusterID),
		Status:           cloud.StatusCreating,
		Engine:           input.Engine,
		EngineVersion:    input.EngineVersion,
		SubnetGroup:      input.SubnetGroup,
		ParameterGroup:   input.ParameterGroup,
		SecurityGroupIDs: input.SecurityGroupIDs,
	}
	f.clusters[input.ClusterID] = cluster
	copied := *cluster
	return &copied, nil
}

func (f *fakeCloud) RestoreClusterFromSnapshot(_ context.Context, input cloud.RestoreClusterInput) (*cloud.Cluster, error) {
	f.record("RestoreClusterFromSnapshot")
	cluster := &cloud.Cluster{
		ID:               input.ClusterID,
		Status:           cloud.StatusCreating,
		Engine:           input.Engine,
		SubnetGroup:      input.SubnetGroup,
		SecurityGroupIDs: input.SecurityGroupIDs,
	}
	f.clusters[input.ClusterID] = cluster
	copied := *cluster
	return &copied, nil
}

func (f *fakeCloud) ModifyCluster(_ context.Context, input cloud.ModifyClusterInput) (*cloud.Cluster, error) {
	f.record("ModifyCluster")
	cluster, ok := f.clusters[input.ClusterID]
	if !ok {
		return nil, cloud.ErrClusterNotFound
	}
	if len(input.SecurityGroupIDs) > 0 {
		cluster.SecurityGroupIDs = input.SecurityGroupIDs
	}
	if input.Port != nil {
		cluster.Port = *input.Port
	}
	if input.EngineVersion != "" {
		cluster.EngineVersion = input.EngineVersion
	}
	if input.ParameterGroup != "" {
		cluster.ParameterGroup = input.ParameterGroup
	}
	copied := *cluster
	return &copied, nil
}

func (f *fakeCloud) StartCluster(_ context.Context, clusterID string) (*cloud.Cluster, error) {
	f.record("StartCluster")
	cluster, ok := f.clusters[clusterID]
	if !ok {
		return nil, cloud.ErrClusterNotFound
	}
	cluster.Status = "starting"
	copied := *cluster
	return &copied, nil
}

func (f *fakeCloud) DeleteCluster(_ context.Context, input cloud.DeleteClusterInput) (*cloud.Cluster, error) {
	f.record("DeleteCluster")
	cluster, ok := f.clusters[input.ClusterID]
	if !ok {
		return nil, cloud.ErrClusterNotFound
	}
	cluster.Status = cloud.StatusDeleting
	copied := *cluster
	return &copied, nil
}

func (f *fakeCloud) DescribeInstance(_ context.Context, instanceID string) (*cloud.Instance, error) {
	f.record("DescribeInstance")
	if f.onDescribeInstance != nil {
		f.onDescribeInstance(f)
	}
	instance, ok := f.instances[instanceID]
	if !ok {
		return nil, cloud.ErrInstanceNotFound
	}
	copied := *instance
	return &copied, nil
}

func (f *fakeCloud) CreateInstance(_ context.Context, input cloud.CreateInstanceInput) (*cloud.Instance, error) {
	f.record("CreateInstance")
	instance := &cloud.Instance{
		ID:            input.InstanceID,
		ARN:           fmt.Sprintf("arn:aws:rds:us-east-1:000000000000:db:%s", input.InstanceID),
		Status:        cloud.StatusCreating,
		ClusterID:     input.ClusterID,
		InstanceClass: input.InstanceClass,
		Engine:        input.Engine,
	}
	f.instances[input.InstanceID] = instance
	if input.Tags != nil {
		f.tags[instance.ARN] = input.Tags
	}
	copied := *instance
	return &copied, nil
}

func (f *fakeCloud) DeleteInstance(_ context.Context, instanceID string) (*cloud.Instance, error) {
	f.record("DeleteInstance")
	instance, ok := f.instances[instanceID]
	if !ok {
		return nil, cloud.ErrInstanceNotFound
	}
	instance.Status = cloud.StatusDeleting
	copied := *instance
	return &copied, nil
}

func (f *fakeCloud) ListResourceTags(_ context.Context, arn string) (map[string]string, error) {
	f.record("ListResourceTags")
	tags := map[string]string{}
	for key, value := range f.tags[arn] {
		tags[key] = value
	}
	return tags, nil
}

func (f *fakeCloud) SyncResourceTags(_ context.Context, arn string, tags map[string]string) error {
	f.record("SyncResourceTags")
	f.tags[arn] = tags
	return nil
}

func availableCluster(clusterID string) *cloud.Cluster {
	return &cloud.Cluster{
		ID:               clusterID,
		ARN:              fmt.Sprintf("arn:aws:rds:us-east-1:000000000000:cluster:%s", clusterID),
		Status:           cloud.StatusAvailable,
		Engine:           DefaultEngine,
		EngineVersion:    "5.0.0",
		Port:             27017,
		SubnetGroup:      "default-subnet-group",
		ParameterGroup:   "default.docdb5.0",
		SecurityGroupIDs: []string{"sg-123456", "sg-567890"},
	}
}

func availableInstance(instanceID, clusterID string) *cloud.Instance {
	return &cloud.Instance{
		ID:            instanceID,
		ARN:           fmt.Sprintf("arn:aws:rds:us-east-1:000000000000:db:%s", instanceID),
		Status:        cloud.StatusAvailable,
		ClusterID:     clusterID,
		InstanceClass: "db.t3.medium",
		Engine:        DefaultEngine,
	}
}
