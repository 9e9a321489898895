package cluster

import (
	"github.com/spf13/cobra"

	"github.com/sidneiweber/docdbctl/pkg/cmd/docdbclient"
	"github.com/sidneiweber/docdbctl/pkg/docdb/reconciler"
	"github.com/sidneiweber/docdbctl/pkg/flags"
)

// NewStartCommand creates a new command for starting a stopped cluster.
func NewStartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a stopped DocumentDB cluster",
		Long:  "Start a stopped DocumentDB cluster. Does nothing if the cluster is already available.",
		RunE:  runStart,
	}

	cmd.Flags().String(FlagClusterID, "", "Cluster identifier")
	flags.MarkFlagRequired(FlagClusterID, cmd)

	return cmd
}

func runStart(cmd *cobra.Command, _ []string) error {
	spec := reconciler.DesiredClusterSpec{
		ClusterID: flags.MustGetDefinedString(FlagClusterID, cmd.Flags()),
		State:     reconciler.StateRunning,
	}

	runtime, err := docdbclient.NewRuntime(cmd.Context(), flags.MustGetString(FlagRegion, cmd.Flags()))
	if err != nil {
		return err
	}

	wait := flags.MustGetBool(FlagWait, cmd.Flags())
	ctx, cancel := docdbclient.WaitContext(cmd.Context(), wait, flags.MustGetDuration(FlagWaitTimeout, cmd.Flags()), runtime.Config.CreateWaitTimeout)
	defer cancel()

	result, err := reconciler.NewClusterReconciler(runtime.Client, runtime.Config.PollInterval).Reconcile(ctx, spec, wait)
	if err != nil {
		return err
	}
	return docdbclient.PrintResult(result)
}
