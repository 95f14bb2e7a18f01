package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evexport/evexport/internal/api"
	"github.com/evexport/evexport/internal/config"
	"github.com/evexport/evexport/internal/credentials"
	"github.com/evexport/evexport/internal/partition"
)

// filterOpts holds the per-command flag values that select data and override
// config file / environment settings.
type filterOpts struct {
	typ            string
	start          string
	end            string
	partitionKey   string
	partitionValue string
	accountID      string
	bucket         string
	token          string
}

// addFilterFlags registers the data-selection flags on cmd.
func addFilterFlags(cmd *cobra.Command, opts *filterOpts) {
	cmd.Flags().StringVarP(&opts.typ, "type", "t", "", `Data type to select ("decisions" or "events")`)
	cmd.Flags().StringVar(&opts.start, "start", "", "First date to select (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.end, "end", "", "Last date to select, inclusive (defaults to --start)")
	cmd.Flags().StringVar(&opts.partitionKey, "partition-key", "", "Partition key to narrow by (e.g. experiment)")
	cmd.Flags().StringVar(&opts.partitionValue, "partition-value", "", "Partition value, required with --partition-key")
	addAccountFlags(cmd, opts)
}

// addAccountFlags registers the base-path and credential override flags.
func addAccountFlags(cmd *cobra.Command, opts *filterOpts) {
	cmd.Flags().StringVar(&opts.accountID, "account-id", "", "Account ID (required without an API token)")
	cmd.Flags().StringVar(&opts.bucket, "bucket", "", "Export bucket (overrides config)")
	cmd.Flags().StringVar(&opts.token, "token", "", "API token (overrides config and environment)")
}

// loadConfig resolves configuration and applies flag overrides.
func loadConfig(opts *filterOpts) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.token != "" {
		cfg.APIToken = opts.token
	}
	if opts.accountID != "" {
		cfg.AccountID = opts.accountID
	}
	if opts.bucket != "" {
		cfg.Bucket = opts.bucket
	}

	return cfg, nil
}

// newManager creates the credential manager for cfg.
func newManager(cfg *config.Config) (*credentials.Manager, error) {
	apiClient, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return credentials.NewManager(apiClient), nil
}

// filter builds the immutable partition filter from the flag values.
func (o *filterOpts) filter() partition.Filter {
	return partition.Filter{
		Type:           o.typ,
		Start:          o.start,
		End:            o.end,
		PartitionKey:   o.partitionKey,
		PartitionValue: o.partitionValue,
	}
}

// resolvePrefixes resolves the base path and computes the prefix pairs the
// filters select. Type validity is checked before the date range inside
// Prefixes; base path resolution happens first because it needs no filter
// input and fails fastest on misconfiguration.
func resolvePrefixes(ctx context.Context, mgr *credentials.Manager, cfg *config.Config, opts *filterOpts) ([]partition.Prefix, error) {
	basePath, err := mgr.ResolveBasePath(ctx, cfg.AccountID, cfg.Bucket)
	if err != nil {
		return nil, err
	}

	prefixes, err := opts.filter().Prefixes(basePath)
	if err != nil {
		return nil, err
	}

	logger := GetLogger()
	for _, p := range prefixes {
		logger.Debugf("selected prefix %s", p.Absolute)
	}
	return prefixes, nil
}
