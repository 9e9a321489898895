// Package taskfile loads desired-state documents describing DocumentDB
// clusters and instances to reconcile.
package taskfile

import (
	"os"

	"github.com/ghodss/yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/sidneiweber/docdbctl/pkg/docdb/reconciler"
)

// TaskFile is the YAML document format accepted by `docdbctl apply`.
type TaskFile struct {
	Clusters  []reconciler.DesiredClusterSpec  `json:"clusters,omitempty"`
	Instances []reconciler.DesiredInstanceSpec `json:"instances,omitempty"`
}

// Load reads and validates a task file from disk.
func Load(path string) (*TaskFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading task file %s", path)
	}
	return Parse(raw)
}

// Parse decodes and validates a task file document.
func Parse(raw []byte) (*TaskFile, error) {
	var file TaskFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrap(err, "parsing task file")
	}

	file.applyDefaults()
	if err := file.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid task file")
	}
	return &file, nil
}

func (f *TaskFile) applyDefaults() {
	for i := range f.Clusters {
		f.Clusters[i] = f.Clusters[i].WithDefaults()
	}
	for i := range f.Instances {
		f.Instances[i] = f.Instances[i].WithDefaults()
	}
}

func (f *TaskFile) validate() error {
	var result *multierror.Error

	clusterIDs := make(map[string]bool, len(f.Clusters))
	for _, cluster := range f.Clusters {
		if err := cluster.Validate(); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if clusterIDs[cluster.ClusterID] {
			result = multierror.Append(result, errors.Errorf("duplicate cluster_id %q", cluster.ClusterID))
		}
		clusterIDs[cluster.ClusterID] = true
	}

	instanceIDs := make(map[string]bool, len(f.Instances))
	for _, instance := range f.Instances {
		if err := instance.Validate(); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if instanceIDs[instance.InstanceID] {
			result = multierror.Append(result, errors.Errorf("duplicate instance_id %q", instance.InstanceID))
		}
		instanceIDs[instance.InstanceID] = true

		// An instance may reference a cluster declared in the same file only if
		// that cluster is not also being deleted. References to clusters not in
		// the file are resolved remotely at reconcile time.
		if instance.State != reconciler.StateAbsent {
			for _, cluster := range f.Clusters {
				if cluster.ClusterID == instance.ClusterID && cluster.State == reconciler.StateAbsent {
					result = multierror.Append(result, errors.Errorf(
						"instance %q references cluster %q which this file deletes", instance.InstanceID, instance.ClusterID))
				}
			}
		}
	}

	return result.ErrorOrNil()
}
