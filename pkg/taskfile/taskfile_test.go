package taskfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidneiweber/docdbctl/pkg/docdb/reconciler"
)

const validTaskFile = `
clusters:
  - cluster_id: my-new-cluster
    subnet_group: my-subnet-group-name
    vpc_security_group_ids:
      - sg-123456
      - sg-567890
    tags:
      Name: my-new-cluster
      Env: staging
instances:
  - instance_id: my-new-instance
    cluster_id: my-new-cluster
    instance_type: db.t3.medium
  - instance_id: stale-instance
    state: absent
`

func TestParse_Valid(t *testing.T) {
	file, err := Parse([]byte(validTaskFile))
	require.NoError(t, err)

	require.Len(t, file.Clusters, 1)
	cluster := file.Clusters[0]
	assert.Equal(t, "my-new-cluster", cluster.ClusterID)
	assert.Equal(t, reconciler.StatePresent, cluster.State)
	assert.Equal(t, reconciler.DefaultEngine, cluster.Engine)
	assert.Equal(t, []string{"sg-123456", "sg-567890"}, cluster.SecurityGroupIDs)
	assert.Equal(t, "staging", cluster.Tags["Env"])

	require.Len(t, file.Instances, 2)
	assert.Equal(t, reconciler.StatePresent, file.Instances[0].State)
	assert.Equal(t, reconciler.StateAbsent, file.Instances[1].State)
}

func TestParse_MissingRequiredFields(t *testing.T) {
	_, err := Parse([]byte(`
clusters:
  - engine: docdb
instances:
  - instance_id: orphan
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cluster_id is required")
	assert.Contains(t, err.Error(), "instance_type is required")
}

func TestParse_InvalidState(t *testing.T) {
	_, err := Parse([]byte(`
clusters:
  - cluster_id: c1
    state: paused
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid state")
}

func TestParse_DuplicateIdentifiers(t *testing.T) {
	_, err := Parse([]byte(`
clusters:
  - cluster_id: c1
  - cluster_id: c1
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate cluster_id")
}

func TestParse_InstanceReferencingDeletedCluster(t *testing.T) {
	_, err := Parse([]byte(`
clusters:
  - cluster_id: c1
    state: absent
instances:
  - instance_id: i1
    cluster_id: c1
    instance_type: db.t3.medium
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "which this file deletes")
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse([]byte("clusters: {not: [valid"))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/tasks.yaml")
	require.Error(t, err)
}
