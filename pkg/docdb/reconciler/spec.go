// Package reconciler compares desired DocumentDB resource specs against the
// observed control plane state and issues the minimal corrective action.
package reconciler

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/sidneiweber/docdbctl/pkg/docdb/cloud"
)

// State is the desired lifecycle state of a resource.
type State string

// Desired lifecycle states.
const (
	StatePresent State = "present"
	StateAbsent  State = "absent"
	// StateRunning additionally starts the cluster if it is stopped.
	StateRunning State = "running"
)

// DefaultEngine is the only database engine DocumentDB clusters support.
const DefaultEngine = "docdb"

// DesiredClusterSpec describes the desired state of a DB cluster.
type DesiredClusterSpec struct {
	ClusterID         string            `json:"cluster_id"`
	State             State             `json:"state,omitempty"`
	Engine            string            `json:"engine,omitempty"`
	EngineVersion     string            `json:"engine_version,omitempty"`
	SubnetGroup       string            `json:"subnet_group,omitempty"`
	SecurityGroupIDs  []string          `json:"vpc_security_group_ids,omitempty"`
	AvailabilityZones []string          `json:"availability_zones,omitempty"`
	Port              *int32            `json:"port,omitempty"`
	SnapshotARN       string            `json:"snapshot_arn,omitempty"`
	ParameterGroup    string            `json:"cluster_parameter_group,omitempty"`
	MasterUsername    string            `json:"master_username,omitempty"`
	MasterPassword    string            `json:"master_password,omitempty"`
	Tags              map[string]string `json:"tags,omitempty"`

	// ForceUpdatePassword pushes MasterPassword to an existing cluster. Passwords
	// cannot be compared against observed state, so this is never done implicitly.
	ForceUpdatePassword bool `json:"force_update_password,omitempty"`

	// FinalSnapshotID, when set, is the snapshot taken before deleting the cluster.
	FinalSnapshotID string `json:"final_snapshot_id,omitempty"`
}

// DesiredInstanceSpec describes the desired state of a DB instance within a cluster.
type DesiredInstanceSpec struct {
	InstanceID                 string            `json:"instance_id"`
	ClusterID                  string            `json:"cluster_id,omitempty"`
	State                      State             `json:"state,omitempty"`
	InstanceClass              string            `json:"instance_type,omitempty"`
	Engine                     string            `json:"engine,omitempty"`
	AvailabilityZone           string            `json:"availability_zone,omitempty"`
	PreferredMaintenanceWindow string            `json:"preferred_maintenance_window,omitempty"`
	Tags                       map[string]string `json:"tags,omitempty"`
}

// Result reports the outcome of a single reconciliation.
type Result struct {
	Changed  bool            `json:"changed"`
	Action   Action          `json:"action"`
	Cluster  *cloud.Cluster  `json:"cluster,omitempty"`
	Instance *cloud.Instance `json:"instance,omitempty"`
}

func validState(s State) bool {
	switch s {
	case StatePresent, StateAbsent, StateRunning:
		return true
	}
	return false
}

// WithDefaults returns a copy of the spec with the default state and engine filled in.
func (s DesiredClusterSpec) WithDefaults() DesiredClusterSpec {
	if s.State == "" {
		s.State = StatePresent
	}
	if s.Engine == "" {
		s.Engine = DefaultEngine
	}
	return s
}

// Validate checks the spec for missing or contradictory options.
func (s DesiredClusterSpec) Validate() error {
	var result *multierror.Error

	if s.ClusterID == "" {
		result = multierror.Append(result, errors.New("cluster_id is required"))
	}
	if s.State != "" && !validState(s.State) {
		result = multierror.Append(result, errors.Errorf("invalid state %q for cluster %q", s.State, s.ClusterID))
	}
	if s.ForceUpdatePassword && s.MasterPassword == "" {
		result = multierror.Append(result, errors.Errorf("force_update_password requires master_password for cluster %q", s.ClusterID))
	}

	return result.ErrorOrNil()
}

// WithDefaults returns a copy of the spec with the default state and engine filled in.
func (s DesiredInstanceSpec) WithDefaults() DesiredInstanceSpec {
	if s.State == "" {
		s.State = StatePresent
	}
	if s.Engine == "" {
		s.Engine = DefaultEngine
	}
	return s
}

// Validate checks the spec for missing or contradictory options.
func (s DesiredInstanceSpec) Validate() error {
	var result *multierror.Error

	if s.InstanceID == "" {
		result = multierror.Append(result, errors.New("instance_id is required"))
	}
	if s.State != "" && s.State != StatePresent && s.State != StateAbsent {
		result = multierror.Append(result, errors.Errorf("invalid state %q for instance %q", s.State, s.InstanceID))
	}
	if s.State != StateAbsent {
		if s.ClusterID == "" {
			result = multierror.Append(result, errors.Errorf("cluster_id is required to create instance %q", s.InstanceID))
		}
		if s.InstanceClass == "" {
			result = multierror.Append(result, errors.Errorf("instance_type is required to create instance %q", s.InstanceID))
		}
	}

	return result.ErrorOrNil()
}
