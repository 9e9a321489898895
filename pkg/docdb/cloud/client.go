// Package cloud defines the interface to the DocumentDB control plane, so that
// reconciliation logic can be tested without a live cloud endpoint.
package cloud

import (
	"context"
	"errors"
)

// ErrClusterNotFound is returned if a lookup failed because the cluster does not exist
var ErrClusterNotFound = errors.New("DB cluster not found")

// ErrInstanceNotFound is returned if a lookup failed because the instance does not exist
var ErrInstanceNotFound = errors.New("DB instance not found")

// Cluster is the control plane's current representation of a DB cluster.
type Cluster struct {
	ID                string            `json:"id"`
	ARN               string            `json:"arn,omitempty"`
	Status            string            `json:"status"`
	Engine            string            `json:"engine,omitempty"`
	EngineVersion     string            `json:"engineVersion,omitempty"`
	Endpoint          string            `json:"endpoint,omitempty"`
	ReaderEndpoint    string            `json:"readerEndpoint,omitempty"`
	Port              int32             `json:"port,omitempty"`
	SubnetGroup       string            `json:"subnetGroup,omitempty"`
	ParameterGroup    string            `json:"parameterGroup,omitempty"`
	SecurityGroupIDs  []string          `json:"securityGroupIds,omitempty"`
	AvailabilityZones []string          `json:"availabilityZones,omitempty"`
	MemberInstanceIDs []string          `json:"memberInstanceIds,omitempty"`
	Tags              map[string]string `json:"tags,omitempty"`
}

// Instance is the control plane's current representation of a DB instance.
type Instance struct {
	ID                         string `json:"id"`
	ARN                        string `json:"arn,omitempty"`
	Status                     string `json:"status"`
	ClusterID                  string `json:"clusterId,omitempty"`
	InstanceClass              string `json:"instanceClass,omitempty"`
	Engine                     string `json:"engine,omitempty"`
	AvailabilityZone           string `json:"availabilityZone,omitempty"`
	PreferredMaintenanceWindow string `json:"preferredMaintenanceWindow,omitempty"`
	Endpoint                   string `json:"endpoint,omitempty"`
	Port                       int32  `json:"port,omitempty"`
}

// CreateClusterInput holds the parameters for creating a fresh DB cluster.
type CreateClusterInput struct {
	ClusterID         string
	Engine            string
	EngineVersion     string
	SubnetGroup       string
	SecurityGroupIDs  []string
	AvailabilityZones []string
	Port              *int32
	MasterUsername    string
	MasterPassword    string
	ParameterGroup    string
	Tags              map[string]string
}

// RestoreClusterInput holds the parameters for restoring a DB cluster from a snapshot.
type RestoreClusterInput struct {
	ClusterID         string
	SnapshotARN       string
	Engine            string
	EngineVersion     string
	SubnetGroup       string
	SecurityGroupIDs  []string
	AvailabilityZones []string
	Port              *int32
	ParameterGroup    string
	Tags              map[string]string
}

// ModifyClusterInput holds the parameters for modifying an existing DB cluster.
// Zero-valued fields are left unchanged on the remote resource.
type ModifyClusterInput struct {
	ClusterID        string
	SecurityGroupIDs []string
	Port             *int32
	EngineVersion    string
	ParameterGroup   string
	MasterPassword   string
	ApplyImmediately bool
}

// DeleteClusterInput holds the parameters for deleting a DB cluster.
// An empty FinalSnapshotID skips the final snapshot.
type DeleteClusterInput struct {
	ClusterID       string
	FinalSnapshotID string
}

// CreateInstanceInput holds the parameters for creating a DB instance inside a cluster.
type CreateInstanceInput struct {
	InstanceID                 string
	ClusterID                  string
	InstanceClass              string
	Engine                     string
	AvailabilityZone           string
	PreferredMaintenanceWindow string
	Tags                       map[string]string
}

// Client defines an interface for clients that can manage DB clusters and
// instances on a cloud provider. Describe methods return ErrClusterNotFound /
// ErrInstanceNotFound when the resource does not exist.
type Client interface {
	DescribeCluster(ctx context.Context, clusterID string) (*Cluster, error)
	CreateCluster(ctx context.Context, input CreateClusterInput) (*Cluster, error)
	RestoreClusterFromSnapshot(ctx context.Context, input RestoreClusterInput) (*Cluster, error)
	ModifyCluster(ctx context.Context, input ModifyClusterInput) (*Cluster, error)
	StartCluster(ctx context.Context, clusterID string) (*Cluster, error)
	DeleteCluster(ctx context.Context, input DeleteClusterInput) (*Cluster, error)

	DescribeInstance(ctx context.Context, instanceID string) (*Instance, error)
	CreateInstance(ctx context.Context, input CreateInstanceInput) (*Instance, error)
	DeleteInstance(ctx context.Context, instanceID string) (*Instance, error)

	ListResourceTags(ctx context.Context, arn string) (map[string]string, error)
	SyncResourceTags(ctx context.Context, arn string, tags map[string]string) error
}
