package cluster

import (
	"github.com/spf13/cobra"

	"github.com/sidneiweber/docdbctl/pkg/cmd/docdbclient"
	"github.com/sidneiweber/docdbctl/pkg/docdb/reconciler"
	"github.com/sidneiweber/docdbctl/pkg/flags"
)

// NewUpdatePasswordCommand creates a new command for rotating a cluster's master password.
// Passwords cannot be compared against observed state, so this is an explicit
// action rather than part of ensure.
func NewUpdatePasswordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-password",
		Short: "Update the master password of a DocumentDB cluster",
		RunE:  runUpdatePassword,
	}

	cmd.Flags().String(FlagClusterID, "", "Cluster identifier")
	cmd.Flags().String(FlagMasterPassword, "", "New master password")
	flags.MarkFlagRequired(FlagClusterID, cmd)
	flags.MarkFlagRequired(FlagMasterPassword, cmd)

	return cmd
}

func runUpdatePassword(cmd *cobra.Command, _ []string) error {
	spec := reconciler.DesiredClusterSpec{
		ClusterID:           flags.MustGetDefinedString(FlagClusterID, cmd.Flags()),
		State:               reconciler.StatePresent,
		MasterPassword:      flags.MustGetDefinedString(FlagMasterPassword, cmd.Flags()),
		ForceUpdatePassword: true,
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
