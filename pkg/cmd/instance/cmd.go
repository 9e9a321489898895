// Package instance contains commands for managing DocumentDB cluster instances.
package instance

import (
	"github.com/spf13/cobra"
)

// Flag names shared by the instance subcommands.
const (
	FlagInstanceID        = "instance-id"
	FlagClusterID         = "cluster-id"
	FlagInstanceType      = "instance-type"
	FlagEngine            = "engine"
	FlagAvailabilityZone  = "availability-zone"
	FlagMaintenanceWindow = "preferred-maintenance-window"
	FlagTags              = "tags"
	FlagRegion            = "region"
	FlagWait              = "wait"
	FlagWaitTimeout       = "wait-timeout"
)

// NewInstanceCommand groups the DocumentDB instance subcommands.
func NewInstanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instance",
		Short: "Manage DocumentDB cluster instances",
		Long:  "Manage individual DocumentDB cluster instances idempotently.",
	}

	cmd.PersistentFlags().String(FlagRegion, "", "AWS region, overrides AWS_REGION")
	cmd.PersistentFlags().Bool(FlagWait, false, "Wait for the instance to reach a stable state")
	cmd.PersistentFlags().Duration(FlagWaitTimeout, 0, "Deadline for --wait, 0 uses the configured default")

	cmd.AddCommand(
		NewEnsureCommand(),
		NewDeleteCommand(),
		NewGetCommand(),
	)

	return cmd
}
