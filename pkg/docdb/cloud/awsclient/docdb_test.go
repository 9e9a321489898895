package awsclient

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/docdb/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidneiweber/docdbctl/pkg/config"
	"github.com/sidneiweber/docdbctl/pkg/docdb/cloud"
)

const awsTimeoutMinutes = 30

func TestConvertCluster(t *testing.T) {
	dbCluster := types.DBCluster{
		DBClusterIdentifier:     aws.String("my-new-cluster"),
		DBClusterArn:            aws.String("arn:aws:rds:us-east-1:1234567890:cluster:my-new-cluster"),
		Status:                  aws.String("available"),
		Engine:                  aws.String("docdb"),
		EngineVersion:           aws.String("5.0.0"),
		Endpoint:                aws.String("my-new-cluster.cluster-abc.us-east-1.docdb.amazonaws.com"),
		Port:                    aws.Int32(27017),
		DBSubnetGroup:           aws.String("my-subnet-group-name"),
		DBClusterParameterGroup: aws.String("default.docdb5.0"),
		VpcSecurityGroups: []types.VpcSecurityGroupMembership{
			{VpcSecurityGroupId: aws.String("sg-567890")},
			{VpcSecurityGroupId: aws.String("sg-123456")},
		},
		DBClusterMembers: []types.DBClusterMember{
			{DBInstanceIdentifier: aws.String("instance-1")},
		},
	}

	cluster := convertCluster(dbCluster)
	assert.Equal(t, "my-new-cluster", cluster.ID)
	assert.Equal(t, cloud.StatusAvailable, cluster.Status)
	assert.Equal(t, int32(27017), cluster.Port)
	// security groups are normalized to sorted order for stable comparisons
	assert.Equal(t, []string{"sg-123456", "sg-567890"}, cluster.SecurityGroupIDs)
	assert.Equal(t, []string{"instance-1"}, cluster.MemberInstanceIDs)
}

func TestConvertInstance(t *testing.T) {
	dbInstance := types.DBInstance{
		DBInstanceIdentifier: aws.String("instance-1"),
		DBInstanceStatus:     aws.String("creating"),
		DBClusterIdentifier:  aws.String("my-new-cluster"),
		DBInstanceClass:      aws.String("db.t3.medium"),
		Engine:               aws.String("docdb"),
		Endpoint: &types.Endpoint{
			Address: aws.String("instance-1.abc.us-east-1.docdb.amazonaws.com"),
			Port:    aws.Int32(27017),
		},
	}

	instance := convertInstance(dbInstance)
	assert.Equal(t, "instance-1", instance.ID)
	assert.Equal(t, cloud.StatusCreating, instance.Status)
	assert.Equal(t, "my-new-cluster", instance.ClusterID)
	assert.Equal(t, "instance-1.abc.us-east-1.docdb.amazonaws.com", instance.Endpoint)
	assert.Equal(t, int32(27017), instance.Port)
}

func TestConvertTags(t *testing.T) {
	assert.Nil(t, convertTags(nil))

	converted := convertTags(map[string]string{"Name": "my-new-cluster", "Env": "staging"})
	require.Len(t, converted, 2)
	// keys come out sorted
	assert.Equal(t, "Env", aws.ToString(converted[0].Key))
	assert.Equal(t, "Name", aws.ToString(converted[1].Key))
}

func TestAPIError(t *testing.T) {
	err := apiError(&types.DBClusterAlreadyExistsFault{Message: aws.String("cluster exists")})
	assert.Contains(t, err.Error(), "DBClusterAlreadyExistsFault")
	assert.Contains(t, err.Error(), "cluster exists")

	plain := fmt.Errorf("dial tcp: connection refused")
	assert.Equal(t, plain, apiError(plain))
}

func newTestDocDB(t *testing.T) *DocDB {
	t.Helper()

	cfg, err := config.GetConfig()
	require.NoError(t, err)

	client, err := NewDocDBClient(context.Background(), cfg)
	require.NoError(t, err)
	return client
}

func TestDocDBProvisioning(t *testing.T) {
	if os.Getenv("RUN_AWS_INTEGRATION") != "true" {
		t.Skip("Skip DocumentDB tests. Set RUN_AWS_INTEGRATION=true env variable to enable them.")
	}

	client := newTestDocDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), awsTimeoutMinutes*time.Minute)
	defer cancel()

	clusterID := fmt.Sprintf("docdbctl-test-%s", uuid.New().String())

	_, err := client.CreateCluster(ctx, cloud.CreateClusterInput{
		ClusterID:      clusterID,
		Engine:         "docdb",
		MasterUsername: "docdbadmin",
		MasterPassword: uuid.New().String(),
		SubnetGroup:    os.Getenv("DOCDB_TEST_SUBNET_GROUP"),
		Tags:           map[string]string{"docdbctl-test": "true"},
	})
	require.NoError(t, err)
	defer func() {
		_, err := client.DeleteCluster(ctx, cloud.DeleteClusterInput{ClusterID: clusterID})
		assert.NoError(t, err)
	}()

	cluster, err := client.DescribeCluster(ctx, clusterID)
	require.NoError(t, err)
	assert.Equal(t, clusterID, cluster.ID)
	assert.NotEmpty(t, cluster.Status)

	_, err = client.DescribeCluster(ctx, clusterID+"-missing")
	assert.ErrorIs(t, err, cloud.ErrClusterNotFound)
}
