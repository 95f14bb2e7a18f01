package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newPathsCmd creates the 'paths' command.
func newPathsCmd() *cobra.Command {
	opts := &filterOpts{}

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the absolute storage prefixes the filters select",
		Long: `Compute and print the absolute storage prefixes selected by the filters,
one per line, without touching the object store.

Examples:
  # Every prefix for one experiment across three days
  evexport paths --type decisions --start 2020-07-01 --end 2020-07-03 \
    --partition-key experiment --partition-value 5678

  # The whole account (no filters)
  evexport paths --account-id 12345`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			mgr, err := newManager(cfg)
			if err != nil {
				return err
			}

			prefixes, err := resolvePrefixes(GetContext(), mgr, cfg, opts)
			if err != nil {
				return err
			}

			for _, p := range prefixes {
				fmt.Fprintln(cmd.OutOrStdout(), p.Absolute)
			}
			return nil
		},
	}

	addFilterFlags(cmd, opts)

	return cmd
}
