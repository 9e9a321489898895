// main package for the docdbctl CLI
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sidneiweber/docdbctl/pkg/cmd/apply"
	"github.com/sidneiweber/docdbctl/pkg/cmd/cluster"
	"github.com/sidneiweber/docdbctl/pkg/cmd/instance"
)

func main() {
	defer glog.Flush()
	rootCmd := &cobra.Command{
		Use:           "docdbctl",
		Long:          "docdbctl manages AWS DocumentDB clusters and instances idempotently",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	setupSubCommands(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupSubCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(cluster.NewClusterCommand())
	rootCmd.AddCommand(instance.NewInstanceCommand())
	rootCmd.AddCommand(apply.NewApplyCommand())
}

func init() {
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	if err := flag.Set("logtostderr", "true"); err != nil {
		glog.Infof("Unable to set logtostderr to true")
	}
}
