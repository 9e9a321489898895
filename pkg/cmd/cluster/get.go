package cluster

import (
	"github.com/spf13/cobra"

	"github.com/sidneiweber/docdbctl/pkg/cmd/docdbclient"
	"github.com/sidneiweber/docdbctl/pkg/flags"
)

// NewGetCommand creates a new command for describing a cluster.
func NewGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get the current state of a DocumentDB cluster",
		RunE:  runGet,
	}

	cmd.Flags().String(FlagClusterID, "", "Cluster identifier")
	flags.MarkFlagRequired(FlagClusterID, cmd)

	return cmd
}

func runGet(cmd *cobra.Command, _ []string) error {
	runtime, err := docdbclient.NewRuntime(cmd.Context(), flags.MustGetString(FlagRegion, cmd.Flags()))
	if err != nil {
		return err
	}

	cluster, err := runtime.Client.DescribeCluster(cmd.Context(), flags.MustGetDefinedString(FlagClusterID, cmd.Flags()))
	if err != nil {
		return err
	}
	return docdbclient.PrintResult(cluster)
}
