package instance

import (
	"github.com/spf13/cobra"

	"github.com/sidneiweber/docdbctl/pkg/cmd/docdbclient"
	"github.com/sidneiweber/docdbctl/pkg/docdb/reconciler"
	"github.com/sidneiweber/docdbctl/pkg/flags"
)

// NewDeleteCommand creates a new command for deleting an instance.
func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a DocumentDB instance",
		Long:  "Delete a DocumentDB instance if it exists.",
		RunE:  runDelete,
	}

	cmd.Flags().String(FlagInstanceID, "", "Instance identifier")
	flags.MarkFlagRequired(FlagInstanceID, cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, _ []string) error {
	spec := reconciler.DesiredInstanceSpec{
		InstanceID: flags.MustGetDefinedString(FlagInstanceID, cmd.Flags()),
		State:      reconciler.StateAbsent,
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
