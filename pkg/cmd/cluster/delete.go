package cluster

import (
	"github.com/spf13/cobra"

	"github.com/sidneiweber/docdbctl/pkg/cmd/docdbclient"
	"github.com/sidneiweber/docdbctl/pkg/docdb/reconciler"
	"github.com/sidneiweber/docdbctl/pkg/flags"
)

// NewDeleteCommand creates a new command for deleting a cluster.
func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a DocumentDB cluster",
		Long:  "Delete a DocumentDB cluster if it exists, optionally taking a final snapshot first.",
		RunE:  runDelete,
	}

	cmd.Flags().String(FlagClusterID, "", "Cluster identifier")
	cmd.Flags().String(FlagFinalSnapshotID, "", "Identifier of the final snapshot to take before deletion, empty skips it")
	flags.MarkFlagRequired(FlagClusterID, cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, _ []string) error {
	spec := reconciler.DesiredClusterSpec{
		ClusterID:       flags.MustGetDefinedString(FlagClusterID, cmd.Flags()),
		State:           reconciler.StateAbsent,
		FinalSnapshotID: flags.MustGetString(FlagFinalSnapshotID, cmd.Flags()),
	}

	runtime, err := docdbclient.NewRuntime(cmd.Context(), flags.MustGetString(FlagRegion, cmd.Flags()))
	if err != nil {
		return err
	}

	wait := flags.MustGetBool(FlagWait, cmd.Flags())
	ctx, cancel := docdbclient.WaitContext(cmd.Context(), wait, flags.MustGetDuration(FlagWaitTimeout, cmd.Flags()), runtime.Config.DeleteWaitTimeout)
	defer cancel()

	result, err := reconciler.NewClusterReconciler(runtime.Client, runtime.Config.PollInterval).Reconcile(ctx, spec, wait)
	if err != nil {
		return err
	}
	return docdbclient.PrintResult(result)
}
