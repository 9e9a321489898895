package instance

import (
	"github.com/spf13/cobra"

	"github.com/sidneiweber/docdbctl/pkg/cmd/docdbclient"
	"github.com/sidneiweber/docdbctl/pkg/docdb/reconciler"
	"github.com/sidneiweber/docdbctl/pkg/flags"
)

// NewEnsureCommand creates a new command for ensuring an instance exists.
func NewEnsureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ensure",
		Short: "Ensure a DocumentDB instance exists in a cluster",
		RunE:  runEnsure,
	}

	cmd.Flags().String(FlagInstanceID, "", "Instance identifier")
	cmd.Flags().String(FlagClusterID, "", "Identifier of the cluster the instance belongs to")
	cmd.Flags().String(FlagInstanceType, "", "Instance class of the database, e.g. db.t3.medium")
	cmd.Flags().String(FlagEngine, reconciler.DefaultEngine, "Database engine")
	cmd.Flags().String(FlagAvailabilityZone, "", "Availability zone in which to launch the instance")
	cmd.Flags().String(FlagMaintenanceWindow, "", "Maintenance window in ddd:hh24:mi-ddd:hh24:mi format")
	cmd.Flags().StringToString(FlagTags, nil, "Tags to apply to the instance, as key=value pairs")
	flags.MarkFlagRequired(FlagInstanceID, cmd)
	flags.MarkFlagRequired(FlagClusterID, cmd)
	flags.MarkFlagRequired(FlagInstanceType, cmd)

	return cmd
}

func runEnsure(cmd *cobra.Command, _ []string) error {
	spec := reconciler.DesiredInstanceSpec{
		InstanceID:                 flags.MustGetDefinedString(FlagInstanceID, cmd.Flags()),
		ClusterID:                  flags.MustGetDefinedString(FlagClusterID, cmd.Flags()),
		InstanceClass:              flags.MustGetDefinedString(FlagInstanceType, cmd.Flags()),
		State:                      reconciler.StatePresent,
		Engine:                     flags.MustGetString(FlagEngine, cmd.Flags()),
		AvailabilityZone:           flags.MustGetString(FlagAvailabilityZone, cmd.Flags()),
		PreferredMaintenanceWindow: flags.MustGetString(FlagMaintenanceWindow, cmd.Flags()),
		Tags:                       flags.MustGetStringToString(FlagTags, cmd.Flags()),
	}

	runtime, err := docdbclient.NewRuntime(cmd.Context(), flags.MustGetString(FlagRegion, cmd.Flags()))
	if err != nil {
		return err
	}

	wait := flags.MustGetBool(FlagWait, cmd.Flags())
	ctx, cancel := docdbclient.WaitContext(cmd.Context(), wait, flags.MustGetDuration(FlagWaitTimeout, cmd.Flags()), runtime.Config.InstanceWaitTimeout)
	defer cancel()

	result, err := reconciler.NewInstanceReconciler(runtime.Client, runtime.Config.PollInterval).Reconcile(ctx, spec, wait)
	if err != nil {
		return err
	}
	return docdbclient.PrintResult(result)
}
