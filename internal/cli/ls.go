package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	s3store "github.com/evexport/evexport/internal/cloud/s3"
)

// newLsCmd creates the 'ls' command.
func newLsCmd() *cobra.Command {
	opts := &filterOpts{}

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List objects under the selected prefixes",
		Long: `List every object under each storage prefix the filters select.

Prefixes are listed serially, in date order. Output is one line per object:
last-modified time, size in bytes, and key.

Examples:
  # List one day of decision data
  evexport ls --type decisions --start 2020-07-01

  # List everything under the account
  evexport ls`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := GetContext()

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			mgr, err := newManager(cfg)
			if err != nil {
				return err
			}

			prefixes, err := resolvePrefixes(ctx, mgr, cfg, opts)
			if err != nil {
				return err
			}

			store, err := s3store.NewClient(ctx, cfg.Region, mgr)
			if err != nil {
				return err
			}

			for _, p := range prefixes {
				if err := store.EnsureFreshCredentials(ctx); err != nil {
					return err
				}
				objects, err := store.ListPrefix(ctx, p.Absolute)
				if err != nil {
					return err
				}
				for _, obj := range objects {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %12d  %s\n",
						obj.LastModified.Format("2006-01-02 15:04:05"), obj.Size, obj.Key)
				}
			}
			return nil
		},
	}

	addFilterFlags(cmd, opts)

	return cmd
}
