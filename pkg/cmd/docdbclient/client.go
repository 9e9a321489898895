// Package docdbclient builds the runtime pieces shared by all docdbctl commands.
package docdbclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/sidneiweber/docdbctl/pkg/config"
	"github.com/sidneiweber/docdbctl/pkg/docdb/cloud"
	"github.com/sidneiweber/docdbctl/pkg/docdb/cloud/awsclient"
)

// Runtime bundles the resolved configuration with a ready-to-use cloud client.
type Runtime struct {
	Config *config.Config
	Client cloud.Client
}

// NewRuntime loads the runtime configuration and connects the DocumentDB
// client. A non-empty region overrides the environment's AWS_REGION.
func NewRuntime(ctx context.Context, region string) (*Runtime, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, errors.Wrap(err, "loading configuration")
	}
	if region != "" {
		cfg.Region = region
	}

	client, err := awsclient.NewDocDBClient(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "creating DocumentDB client")
	}

	return &Runtime{Config: cfg, Client: client}, nil
}

// PrintResult writes the reconciliation result as indented JSON to stdout.
func PrintResult(result interface{}) error {
	raw, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding result")
	}
	fmt.Println(string(raw))
	return nil
}
