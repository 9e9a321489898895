// Package cluster contains commands for managing DocumentDB clusters.
package cluster

import (
	"github.com/spf13/cobra"
)

// Flag names shared by the cluster subcommands.
const (
	FlagClusterID         = "cluster-id"
	FlagEngine            = "engine"
	FlagEngineVersion     = "engine-version"
	FlagSubnetGroup       = "subnet-group"
	FlagSecurityGroupIDs  = "vpc-security-group-ids"
	FlagAvailabilityZones = "availability-zones"
	FlagPort              = "port"
	FlagMasterUsername    = "master-username"
	FlagMasterPassword    = "master-password"
	FlagParameterGroup    = "cluster-parameter-group"
	FlagSnapshotARN       = "snapshot-arn"
	FlagTags              = "tags"
	FlagFinalSnapshotID   = "final-snapshot-id"
	FlagRegion            = "region"
	FlagWait              = "wait"
	FlagWaitTimeout       = "wait-timeout"
)

// NewClusterCommand groups the DocumentDB cluster subcommands.
func NewClusterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Manage DocumentDB clusters",
		Long:  "Manage DocumentDB clusters idempotently, optionally restoring from a snapshot.",
	}

	cmd.PersistentFlags().String(FlagRegion, "", "AWS region, overrides AWS_REGION")
	cmd.PersistentFlags().Bool(FlagWait, false, "Wait for the cluster to reach a stable state")
	cmd.PersistentFlags().Duration(FlagWaitTimeout, 0, "Deadline for --wait, 0 uses the configured default")

	cmd.AddCommand(
		NewEnsureCommand(),
		NewDeleteCommand(),
		NewStartCommand(),
		NewUpdatePasswordCommand(),
		NewGetCommand(),
	)

	return cmd
}
