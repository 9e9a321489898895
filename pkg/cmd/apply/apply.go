// Package apply contains the command applying a whole task file of desired state.
package apply

import (
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/sidneiweber/docdbctl/pkg/cmd/docdbclient"
	"github.com/sidneiweber/docdbctl/pkg/config"
	"github.com/sidneiweber/docdbctl/pkg/docdb/reconciler"
	"github.com/sidneiweber/docdbctl/pkg/flags"
	"github.com/sidneiweber/docdbctl/pkg/metrics"
	"github.com/sidneiweber/docdbctl/pkg/taskfile"
)

// Flag names for the apply command.
const (
	FlagFile        = "file"
	FlagRegion      = "region"
	FlagWait        = "wait"
	FlagWaitTimeout = "wait-timeout"
)

// Summary aggregates the per-resource results of one apply run.
type Summary struct {
	Changed   bool                `json:"changed"`
	Clusters  []reconciler.Result `json:"clusters,omitempty"`
	Instances []reconciler.Result `json:"instances,omitempty"`
}

// NewApplyCommand creates a new command reconciling every resource in a task file.
func NewApplyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Reconcile all clusters and instances declared in a task file",
		Long:  "Reconcile all clusters and instances declared in a YAML task file, clusters first so instances can reference them.",
		RunE:  runApply,
	}

	cmd.Flags().StringP(FlagFile, "f", "", "Path to the task file")
	cmd.Flags().String(FlagRegion, "", "AWS region, overrides AWS_REGION")
	cmd.Flags().Bool(FlagWait, false, "Wait for each resource to reach a stable state")
	cmd.Flags().Duration(FlagWaitTimeout, 0, "Per-resource deadline for --wait, 0 uses the configured defaults")
	flags.MarkFlagRequired(FlagFile, cmd)

	return cmd
}

func runApply(cmd *cobra.Command, _ []string) error {
	file, err := taskfile.Load(flags.MustGetDefinedString(FlagFile, cmd.Flags()))
	if err != nil {
		return err
	}

	runtime, err := docdbclient.NewRuntime(cmd.Context(), flags.MustGetString(FlagRegion, cmd.Flags()))
	if err != nil {
		return err
	}

	if runtime.Config.MetricsAddress != "" {
		metricServer := metrics.NewMetricsServer(runtime.Config.MetricsAddress)
		go func() {
			if err := metricServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				glog.Errorf("serving metrics server: %v", err)
			}
		}()
		defer func() {
			if err := metricServer.Close(); err != nil {
				glog.Errorf("closing metric server: %v", err)
			}
		}()
	}

	wait := flags.MustGetBool(FlagWait, cmd.Flags())
	timeout := flags.MustGetDuration(FlagWaitTimeout, cmd.Flags())

	summary := &Summary{}
	clusters := reconciler.NewClusterReconciler(runtime.Client, runtime.Config.PollInterval)
	for _, spec := range file.Clusters {
		ctx, cancel := docdbclient.WaitContext(cmd.Context(), wait, timeout, clusterTimeout(runtime.Config, spec))
		result, err := clusters.Reconcile(ctx, spec, wait)
		cancel()
		if err != nil {
			return err
		}
		summary.Clusters = append(summary.Clusters, *result)
		summary.Changed = summary.Changed || result.Changed
	}

	instances := reconciler.NewInstanceReconciler(runtime.Client, runtime.Config.PollInterval)
	for _, spec := range file.Instances {
		ctx, cancel := docdbclient.WaitContext(cmd.Context(), wait, timeout, runtime.Config.InstanceWaitTimeout)
		result, err := instances.Reconcile(ctx, spec, wait)
		cancel()
		if err != nil {
			return err
		}
		summary.Instances = append(summary.Instances, *result)
		summary.Changed = summary.Changed || result.Changed
	}

	return docdbclient.PrintResult(summary)
}

func clusterTimeout(cfg *config.Config, spec reconciler.DesiredClusterSpec) time.Duration {
	switch {
	case spec.State == reconciler.StateAbsent:
		return cfg.DeleteWaitTimeout
	case spec.SnapshotARN != "":
		return cfg.RestoreWaitTimeout
	default:
		return cfg.CreateWaitTimeout
	}
}
