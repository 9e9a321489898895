// Package awsclient provides the AWS DocumentDB implementation of the interfaces in cloud
package awsclient

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/docdb"
	"github.com/aws/aws-sdk-go-v2/service/docdb/types"
	"github.com/aws/smithy-go"
	"github.com/golang/glog"

	"github.com/sidneiweber/docdbctl/pkg/config"
	"github.com/sidneiweber/docdbctl/pkg/docdb/cloud"
	"github.com/sidneiweber/docdbctl/pkg/metrics"
)

// DocDB is an AWS DocumentDB client that manages DB clusters and instances.
type DocDB struct {
	docdbClient *docdb.Client
}

var _ cloud.Client = (*DocDB)(nil)

// NewDocDBClient initializes a new awsclient.DocDB from the runtime configuration.
func NewDocDBClient(ctx context.Context, cfg *config.Config) (*DocDB, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS configuration: %w", err)
	}

	docdbClient := docdb.NewFromConfig(awsCfg, func(o *docdb.Options) {
		if cfg.EndpointOverride != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointOverride)
		}
	})

	return &DocDB{docdbClient: docdbClient}, nil
}

// DescribeCluster returns the current control plane representation of a DB cluster.
func (d *DocDB) DescribeCluster(ctx context.Context, clusterID string) (*cloud.Cluster, error) {
	metrics.IncrementAPIRequests()
	result, err := d.docdbClient.DescribeDBClusters(ctx, &docdb.DescribeDBClustersInput{
		DBClusterIdentifier: aws.String(clusterID),
	})
	if err != nil {
		var notFound *types.DBClusterNotFoundFault
		if errors.As(err, &notFound) {
			return nil, cloud.ErrClusterNotFound
		}
		metrics.IncrementAPIRequestErrors()
		return nil, fmt.Errorf("retrieving DB cluster description: %w", apiError(err))
	}

	if len(result.DBClusters) != 1 {
		// this should never happen (DescribeDBClusters returns either 1 cluster, or DBClusterNotFoundFault)
		return nil, fmt.Errorf("unexpected number of DB clusters: %d", len(result.DBClusters))
	}

	return convertCluster(result.DBClusters[0]), nil
}

// CreateCluster initiates the creation of a fresh DB cluster.
func (d *DocDB) CreateCluster(ctx context.Context, input cloud.CreateClusterInput) (*cloud.Cluster, error) {
	glog.Infof("Initiating provisioning of DocumentDB cluster %s.", input.ClusterID)
	metrics.IncrementAPIRequests()

	apiInput := &docdb.CreateDBClusterInput{
		DBClusterIdentifier: aws.String(input.ClusterID),
		Engine:              aws.String(input.Engine),
		Tags:                convertTags(input.Tags),
	}
	if input.EngineVersion != "" {
		apiInput.EngineVersion = aws.String(input.EngineVersion)
	}
	if input.SubnetGroup != "" {
		apiInput.DBSubnetGroupName = aws.String(input.SubnetGroup)
	}
	if len(input.SecurityGroupIDs) > 0 {
		apiInput.VpcSecurityGroupIds = input.SecurityGroupIDs
	}
	if len(input.AvailabilityZones) > 0 {
		apiInput.AvailabilityZones = input.AvailabilityZones
	}
	if input.Port != nil {
		apiInput.Port = input.Port
	}
	if input.MasterUsername != "" {
		apiInput.MasterUsername = aws.String(input.MasterUsername)
	}
	if input.MasterPassword != "" {
		apiInput.MasterUserPassword = aws.String(input.MasterPassword)
	}
	if input.ParameterGroup != "" {
		apiInput.DBClusterParameterGroupName = aws.String(input.ParameterGroup)
	}

	result, err := d.docdbClient.CreateDBCluster(ctx, apiInput)
	if err != nil {
		metrics.IncrementAPIRequestErrors()
		return nil, fmt.Errorf("creating DB cluster: %w", apiError(err))
	}

	return convertCluster(*result.DBCluster), nil
}

// RestoreClusterFromSnapshot initiates the creation of a DB cluster from an existing snapshot.
func (d *DocDB) RestoreClusterFromSnapshot(ctx context.Context, input cloud.RestoreClusterInput) (*cloud.Cluster, error) {
	glog.Infof("Initiating restore of DocumentDB cluster %s from snapshot %s.", input.ClusterID, input.SnapshotARN)
	metrics.IncrementAPIRequests()

	apiInput := &docdb.RestoreDBClusterFromSnapshotInput{
		DBClusterIdentifier: aws.String(input.ClusterID),
		SnapshotIdentifier:  aws.String(input.SnapshotARN),
		Engine:              aws.String(input.Engine),
		Tags:                convertTags(input.Tags),
	}
	if input.EngineVersion != "" {
		apiInput.EngineVersion = aws.String(input.EngineVersion)
	}
	if input.SubnetGroup != "" {
		apiInput.DBSubnetGroupName = aws.String(input.SubnetGroup)
	}
	if len(input.SecurityGroupIDs) > 0 {
		apiInput.VpcSecurityGroupIds = input.SecurityGroupIDs
	}
	if len(input.AvailabilityZones) > 0 {
		apiInput.AvailabilityZones = input.AvailabilityZones
	}
	if input.Port != nil {
		apiInput.Port = input.Port
	}

	result, err := d.docdbClient.RestoreDBClusterFromSnapshot(ctx, apiInput)
	if err != nil {
		metrics.IncrementAPIRequestErrors()
		return nil, fmt.Errorf("restoring DB cluster from snapshot: %w", apiError(err))
	}

	return convertCluster(*result.DBCluster), nil
}

// ModifyCluster applies the given modifications to an existing DB cluster.
func (d *DocDB) ModifyCluster(ctx context.Context, input cloud.ModifyClusterInput) (*cloud.Cluster, error) {
	glog.Infof("Initiating modification of DocumentDB cluster %s.", input.ClusterID)
	metrics.IncrementAPIRequests()

	apiInput := &docdb.ModifyDBClusterInput{
		DBClusterIdentifier: aws.String(input.ClusterID),
		ApplyImmediately:    aws.Bool(input.ApplyImmediately),
	}
	if len(input.SecurityGroupIDs) > 0 {
		apiInput.VpcSecurityGroupIds = input.SecurityGroupIDs
	}
	if input.Port != nil {
		apiInput.Port = input.Port
	}
	if input.EngineVersion != "" {
		apiInput.EngineVersion = aws.String(input.EngineVersion)
	}
	if input.ParameterGroup != "" {
		apiInput.DBClusterParameterGroupName = aws.String(input.ParameterGroup)
	}
	if input.MasterPassword != "" {
		apiInput.MasterUserPassword = aws.String(input.MasterPassword)
	}

	result, err := d.docdbClient.ModifyDBCluster(ctx, apiInput)
	if err != nil {
		metrics.IncrementAPIRequestErrors()
		return nil, fmt.Errorf("modifying DB cluster: %w", apiError(err))
	}

	return convertCluster(*result.DBCluster), nil
}

// StartCluster starts a previously stopped DB cluster.
func (d *DocDB) StartCluster(ctx context.Context, clusterID string) (*cloud.Cluster, error) {
	glog.Infof("Starting DocumentDB cluster %s.", clusterID)
	metrics.IncrementAPIRequests()

	result, err := d.docdbClient.StartDBCluster(ctx, &docdb.StartDBClusterInput{
		DBClusterIdentifier: aws.String(clusterID),
	})
	if err != nil {
		metrics.IncrementAPIRequestErrors()
		return nil, fmt.Errorf("starting DB cluster: %w", apiError(err))
	}

	return convertCluster(*result.DBCluster), nil
}

// DeleteCluster initiates the deletion of a DB cluster. A final snapshot is
// taken when input.FinalSnapshotID is set.
func (d *DocDB) DeleteCluster(ctx context.Context, input cloud.DeleteClusterInput) (*cloud.Cluster, error) {
	glog.Infof("Initiating deprovisioning of DocumentDB cluster %s.", input.ClusterID)
	metrics.IncrementAPIRequests()

	apiInput := &docdb.DeleteDBClusterInput{
		DBClusterIdentifier: aws.String(input.ClusterID),
		SkipFinalSnapshot:   aws.Bool(true),
	}
	if input.FinalSnapshotID != "" {
		apiInput.SkipFinalSnapshot = aws.Bool(false)
		apiInput.FinalDBSnapshotIdentifier = aws.String(input.FinalSnapshotID)
	}

	result, err := d.docdbClient.DeleteDBCluster(ctx, apiInput)
	if err != nil {
		var notFound *types.DBClusterNotFoundFault
		if errors.As(err, &notFound) {
			return nil, cloud.ErrClusterNotFound
		}
		metrics.IncrementAPIRequestErrors()
		return nil, fmt.Errorf("deleting DB cluster: %w", apiError(err))
	}

	return convertCluster(*result.DBCluster), nil
}

// DescribeInstance returns the current control plane representation of a DB instance.
func (d *DocDB) DescribeInstance(ctx context.Context, instanceID string) (*cloud.Instance, error) {
	metrics.IncrementAPIRequests()
	result, err := d.docdbClient.DescribeDBInstances(ctx, &docdb.DescribeDBInstancesInput{
		DBInstanceIdentifier: aws.String(instanceID),
	})
	if err != nil {
		var notFound *types.DBInstanceNotFoundFault
		if errors.As(err, &notFound) {
			return nil, cloud.ErrInstanceNotFound
		}
		metrics.IncrementAPIRequestErrors()
		return nil, fmt.Errorf("retrieving DB instance state: %w", apiError(err))
	}

	if len(result.DBInstances) != 1 {
		// this should never happen (DescribeDBInstances returns either 1 instance, or DBInstanceNotFoundFault)
		return nil, fmt.Errorf("unexpected number of DB instances: %d", len(result.DBInstances))
	}

	return convertInstance(result.DBInstances[0]), nil
}

// CreateInstance initiates the creation of a DB instance inside an existing cluster.
func (d *DocDB) CreateInstance(ctx context.Context, input cloud.CreateInstanceInput) (*cloud.Instance, error) {
	glog.Infof("Initiating provisioning of DocumentDB instance %s in cluster %s.", input.InstanceID, input.ClusterID)
	metrics.IncrementAPIRequests()

	apiInput := &docdb.CreateDBInstanceInput{
		DBInstanceIdentifier: aws.String(input.InstanceID),
		DBClusterIdentifier:  aws.String(input.ClusterID),
		DBInstanceClass:      aws.String(input.InstanceClass),
		Engine:               aws.String(input.Engine),
		Tags:                 convertTags(input.Tags),
	}
	if input.AvailabilityZone != "" {
		apiInput.AvailabilityZone = aws.String(input.AvailabilityZone)
	}
	if input.PreferredMaintenanceWindow != "" {
		apiInput.PreferredMaintenanceWindow = aws.String(input.PreferredMaintenanceWindow)
	}

	result, err := d.docdbClient.CreateDBInstance(ctx, apiInput)
	if err != nil {
		metrics.IncrementAPIRequestErrors()
		return nil, fmt.Errorf("creating DB instance: %w", apiError(err))
	}

	return convertInstance(*result.DBInstance), nil
}

// DeleteInstance initiates the deletion of a DB instance.
func (d *DocDB) DeleteInstance(ctx context.Context, instanceID string) (*cloud.Instance, error) {
	glog.Infof("Initiating deprovisioning of DocumentDB instance %s.", instanceID)
	metrics.IncrementAPIRequests()

	result, err := d.docdbClient.DeleteDBInstance(ctx, &docdb.DeleteDBInstanceInput{
		DBInstanceIdentifier: aws.String(instanceID),
	})
	if err != nil {
		var notFound *types.DBInstanceNotFoundFault
		if errors.As(err, &notFound) {
			return nil, cloud.ErrInstanceNotFound
		}
		metrics.IncrementAPIRequestErrors()
		return nil, fmt.Errorf("deleting DB instance: %w", apiError(err))
	}

	return convertInstance(*result.DBInstance), nil
}

// ListResourceTags returns the tags currently attached to the given resource.
func (d *DocDB) ListResourceTags(ctx context.Context, arn string) (map[string]string, error) {
	metrics.IncrementAPIRequests()
	result, err := d.docdbClient.ListTagsForResource(ctx, &docdb.ListTagsForResourceInput{
		ResourceName: aws.String(arn),
	})
	if err != nil {
		metrics.IncrementAPIRequestErrors()
		return nil, fmt.Errorf("listing resource tags: %w", apiError(err))
	}

	tags := make(map[string]string, len(result.TagList))
	for _, tag := range result.TagList {
		tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return tags, nil
}

// SyncResourceTags replaces the tags attached to the given resource with the desired set.
func (d *DocDB) SyncResourceTags(ctx context.Context, arn string, tags map[string]string) error {
	current, err := d.ListResourceTags(ctx, arn)
	if err != nil {
		return err
	}

	var stale []string
	for key := range current {
		if _, ok := tags[key]; !ok {
			stale = append(stale, key)
		}
	}
	if len(stale) > 0 {
		metrics.IncrementAPIRequests()
		_, err = d.docdbClient.RemoveTagsFromResource(ctx, &docdb.RemoveTagsFromResourceInput{
			ResourceName: aws.String(arn),
			TagKeys:      stale,
		})
		if err != nil {
			metrics.IncrementAPIRequestErrors()
			return fmt.Errorf("removing stale resource tags: %w", apiError(err))
		}
	}

	if len(tags) > 0 {
		metrics.IncrementAPIRequests()
		_, err = d.docdbClient.AddTagsToResource(ctx, &docdb.AddTagsToResourceInput{
			ResourceName: aws.String(arn),
			Tags:         convertTags(tags),
		})
		if err != nil {
			metrics.IncrementAPIRequestErrors()
			return fmt.Errorf("adding resource tags: %w", apiError(err))
		}
	}

	return nil
}

// apiError surfaces the AWS error code alongside the message for modeled API errors.
func apiError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return err
}

func convertCluster(dbCluster types.DBCluster) *cloud.Cluster {
	cluster := &cloud.Cluster{
		ID:                aws.ToString(dbCluster.DBClusterIdentifier),
		ARN:               aws.ToString(dbCluster.DBClusterArn),
		Status:            aws.ToString(dbCluster.Status),
		Engine:            aws.ToString(dbCluster.Engine),
		EngineVersion:     aws.ToString(dbCluster.EngineVersion),
		Endpoint:          aws.ToString(dbCluster.Endpoint),
		ReaderEndpoint:    aws.ToString(dbCluster.ReaderEndpoint),
		Port:              aws.ToInt32(dbCluster.Port),
		SubnetGroup:       aws.ToString(dbCluster.DBSubnetGroup),
		ParameterGroup:    aws.ToString(dbCluster.DBClusterParameterGroup),
		AvailabilityZones: dbCluster.AvailabilityZones,
	}

	for _, membership := range dbCluster.VpcSecurityGroups {
		cluster.SecurityGroupIDs = append(cluster.SecurityGroupIDs, aws.ToString(membership.VpcSecurityGroupId))
	}
	sort.Strings(cluster.SecurityGroupIDs)

	for _, member := range dbCluster.DBClusterMembers {
		cluster.MemberInstanceIDs = append(cluster.MemberInstanceIDs, aws.ToString(member.DBInstanceIdentifier))
	}

	return cluster
}

func convertInstance(dbInstance types.DBInstance) *cloud.Instance {
	instance := &cloud.Instance{
		ID:                         aws.ToString(dbInstance.DBInstanceIdentifier),
		ARN:                        aws.ToString(dbInstance.DBInstanceArn),
		Status:                     aws.ToString(dbInstance.DBInstanceStatus),
		ClusterID:                  aws.ToString(dbInstance.DBClusterIdentifier),
		InstanceClass:              aws.ToString(dbInstance.DBInstanceClass),
		Engine:                     aws.ToString(dbInstance.Engine),
		AvailabilityZone:           aws.ToString(dbInstance.AvailabilityZone),
		PreferredMaintenanceWindow: aws.ToString(dbInstance.PreferredMaintenanceWindow),
	}

	if dbInstance.Endpoint != nil {
		instance.Endpoint = aws.ToString(dbInstance.Endpoint.Address)
		instance.Port = aws.ToInt32(dbInstance.Endpoint.Port)
	}

	return instance
}

func convertTags(tags map[string]string) []types.Tag {
	if len(tags) == 0 {
		return nil
	}

	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	converted := make([]types.Tag, 0, len(tags))
	for _, key := range keys {
		converted = append(converted, types.Tag{
			Key:   aws.String(key),
			Value: aws.String(tags[key]),
		})
	}
	return converted
}
