package instance

import (
	"github.com/spf13/cobra"

	"github.com/sidneiweber/docdbctl/pkg/cmd/docdbclient"
	"github.com/sidneiweber/docdbctl/pkg/flags"
)

// NewGetCommand creates a new command for describing an instance.
func NewGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get the current state of a DocumentDB instance",
		RunE:  runGet,
	}

	cmd.Flags().String(FlagInstanceID, "", "Instance identifier")
	flags.MarkFlagRequired(FlagInstanceID, cmd)

	return cmd
}

func runGet(cmd *cobra.Command, _ []string) error {
	runtime, err := docdbclient.NewRuntime(cmd.Context(), flags.MustGetString(FlagRegion, cmd.Flags()))
	if err != nil {
		return err
	}

	instance, err := runtime.Client.DescribeInstance(cmd.Context(), flags.MustGetDefinedString(FlagInstanceID, cmd.Flags()))
	if err != nil {
		return err
	}
	return docdbclient.PrintResult(instance)
}
