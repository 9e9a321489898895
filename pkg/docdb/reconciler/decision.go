package reconciler

import (
	"sort"

	"github.com/sidneiweber/docdbctl/pkg/docdb/cloud"
)

// Action is the corrective step a reconciler takes to move the observed state
// towards the desired state.
type Action string

// Possible corrective actions.
const (
	ActionNone    Action = "none"
	ActionCreate  Action = "create"
	ActionRestore Action = "restore"
	ActionModify  Action = "modify"
	ActionStart   Action = "start"
	ActionDelete  Action = "delete"
)

// DecideCluster is a pure function mapping (desired spec, observed state) to
// the single corrective action to take. A nil observed cluster means the
// cluster does not exist remotely.
func DecideCluster(spec DesiredClusterSpec, observed *cloud.Cluster) Action {
	switch spec.State {
	case StateAbsent:
		if observed == nil || observed.Status == cloud.StatusDeleting {
			return ActionNone
		}
		return ActionDelete

	case StatePresent, StateRunning:
		if observed == nil {
			if spec.SnapshotARN != "" {
				return ActionRestore
			}
			return ActionCreate
		}
		if spec.State == StateRunning && observed.Status == cloud.StatusStopped {
			return ActionStart
		}
		if spec.ForceUpdatePassword && spec.MasterPassword != "" {
			return ActionModify
		}
		if _, drifted := clusterModifications(spec, observed); drifted {
			return ActionModify
		}
		return ActionNone
	}

	return ActionNone
}

// DecideInstance is the instance counterpart of DecideCluster. Instances are
// never modified in place; only existence is reconciled.
func DecideInstance(spec DesiredInstanceSpec, observed *cloud.Instance) Action {
	switch spec.State {
	case StateAbsent:
		if observed == nil || observed.Status == cloud.StatusDeleting {
			return ActionNone
		}
		return ActionDelete

	case StatePresent:
		if observed == nil {
			return ActionCreate
		}
		return ActionNone
	}

	return ActionNone
}

// clusterModifications computes the ModifyClusterInput needed to correct drift
// between the desired spec and the observed cluster. Only fields the control
// plane can change in place are considered; everything else is left untouched.
func clusterModifications(spec DesiredClusterSpec, observed *cloud.Cluster) (cloud.ModifyClusterInput, bool) {
	input := cloud.ModifyClusterInput{
		ClusterID:        spec.ClusterID,
		ApplyImmediately: true,
	}
	drifted := false

	if len(spec.SecurityGroupIDs) > 0 && !equalStringSets(spec.SecurityGroupIDs, observed.SecurityGroupIDs) {
		input.SecurityGroupIDs = spec.SecurityGroupIDs
		drifted = true
	}
	if spec.Port != nil && *spec.Port != observed.Port {
		input.Port = spec.Port
		drifted = true
	}
	if spec.EngineVersion != "" && spec.EngineVersion != observed.EngineVersion {
		input.EngineVersion = spec.EngineVersion
		drifted = true
	}
	if spec.ParameterGroup != "" && spec.ParameterGroup != observed.ParameterGroup {
		input.ParameterGroup = spec.ParameterGroup
		drifted = true
	}

	return input, drifted
}

// equalStringSets compares two string slices irrespective of order.
func equalStringSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
