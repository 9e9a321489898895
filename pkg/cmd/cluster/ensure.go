package cluster

import (
	"github.com/spf13/cobra"

	"github.com/sidneiweber/docdbctl/pkg/cmd/docdbclient"
	"github.com/sidneiweber/docdbctl/pkg/docdb/reconciler"
	"github.com/sidneiweber/docdbctl/pkg/flags"
)

// NewEnsureCommand creates a new command for ensuring a cluster exists.
func NewEnsureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ensure",
		Short: "Ensure a DocumentDB cluster exists",
		Long:  "Ensure a DocumentDB cluster exists, creating it fresh or restoring it from a snapshot when absent.",
		RunE:  runEnsure,
	}

	cmd.Flags().String(FlagClusterID, "", "Cluster identifier")
	cmd.Flags().String(FlagEngine, reconciler.DefaultEngine, "Database engine")
	cmd.Flags().String(FlagEngineVersion, "", "Database engine version, defaults to the latest (or the snapshot's)")
	cmd.Flags().String(FlagSubnetGroup, "", "Subnet group in which to create the cluster")
	cmd.Flags().StringSlice(FlagSecurityGroupIDs, nil, "VPC security group IDs to associate with the cluster")
	cmd.Flags().StringSlice(FlagAvailabilityZones, nil, "Availability zones in which to locate the cluster")
	cmd.Flags().Int32(FlagPort, 0, "Port the cluster listens on, 0 uses the engine default (or the snapshot's)")
	cmd.Flags().String(FlagMasterUsername, "", "Master username, used when creating a fresh cluster")
	cmd.Flags().String(FlagMasterPassword, "", "Master password, used when creating a fresh cluster")
	cmd.Flags().String(FlagParameterGroup, "", "Cluster parameter group")
	cmd.Flags().String(FlagSnapshotARN, "", "Snapshot to restore from when the cluster is absent")
	cmd.Flags().StringToString(FlagTags, nil, "Tags to assign to the cluster, as key=value pairs")
	flags.MarkFlagRequired(FlagClusterID, cmd)

	return cmd
}

func runEnsure(cmd *cobra.Command, _ []string) error {
	spec := reconciler.DesiredClusterSpec{
		ClusterID:         flags.MustGetDefinedString(FlagClusterID, cmd.Flags()),
		State:             reconciler.StatePresent,
		Engine:            flags.MustGetString(FlagEngine, cmd.Flags()),
		EngineVersion:     flags.MustGetString(FlagEngineVersion, cmd.Flags()),
		SubnetGroup:       flags.MustGetString(FlagSubnetGroup, cmd.Flags()),
		SecurityGroupIDs:  flags.MustGetStringSlice(FlagSecurityGroupIDs, cmd.Flags()),
		AvailabilityZones: flags.MustGetStringSlice(FlagAvailabilityZones, cmd.Flags()),
		MasterUsername:    flags.MustGetString(FlagMasterUsername, cmd.Flags()),
		MasterPassword:    flags.MustGetString(FlagMasterPassword, cmd.Flags()),
		ParameterGroup:    flags.MustGetString(FlagParameterGroup, cmd.Flags()),
		SnapshotARN:       flags.MustGetString(FlagSnapshotARN, cmd.Flags()),
		Tags:              flags.MustGetStringToString(FlagTags, cmd.Flags()),
	}
	if port := flags.MustGetInt32(FlagPort, cmd.Flags()); port != 0 {
		spec.Port = &port
	}

	runtime, err := docdbclient.NewRuntime(cmd.Context(), flags.MustGetString(FlagRegion, cmd.Flags()))
	if err != nil {
		return err
	}

	wait := flags.MustGetBool(FlagWait, cmd.Flags())
	defaultTimeout := runtime.Config.CreateWaitTimeout
	if spec.SnapshotARN != "" {
		defaultTimeout = runtime.Config.RestoreWaitTimeout
	}
	ctx, cancel := docdbclient.WaitContext(cmd.Context(), wait, flags.MustGetDuration(FlagWaitTimeout, cmd.Flags()), defaultTimeout)
	defer cancel()

	result, err := reconciler.NewClusterReconciler(runtime.Client, runtime.Config.PollInterval).Reconcile(ctx, spec, wait)
	if err != nil {
		return err
	}
	return docdbclient.PrintResult(result)
}
