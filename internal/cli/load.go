package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	s3store "github.com/evexport/evexport/internal/cloud/s3"
	"github.com/evexport/evexport/internal/progress"
)

// newLoadCmd creates the 'load' command.
func newLoadCmd() *cobra.Command {
	opts := &filterOpts{}
	var outputDir string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Download the selected data to a local directory",
		Long: `Download every object under each selected storage prefix into a local
directory tree mirroring the relative prefix layout:

  <outdir>/type=<t>/date=<YYYY-MM-DD>/...

Prefixes are synced serially. A failure stops the run; data already
downloaded stays on disk.

Examples:
  # Three days of decisions for one experiment
  evexport load --type decisions --start 2020-07-01 --end 2020-07-03 \
    --partition-key experiment --partition-value 5678 --outdir ./exports

  # A single day of events into the current directory
  evexport load --type events --start 2020-07-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := GetContext()
			log := GetLogger()

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

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			store, err := s3store.NewClient(ctx, cfg.Region, mgr)
			if err != nil {
				return err
			}

			reporter := progress.NewReporter()
			total := 0
			for _, p := range prefixes {
				dest := filepath.Join(outputDir, filepath.FromSlash(p.Relative))
				if err := os.MkdirAll(dest, 0o755); err != nil {
					return fmt.Errorf("failed to create %s: %w", dest, err)
				}

				if err := store.EnsureFreshCredentials(ctx); err != nil {
					return err
				}

				log.Info().Str("prefix", p.Absolute).Str("dest", dest).Msg("Syncing prefix")
				n, err := store.SyncPrefix(ctx, p.Absolute, dest, reporter)
				total += n
				if err != nil {
					return err
				}
			}

			log.Info().Int("objects", total).Str("outdir", outputDir).Msg("Download complete")
			return nil
		},
	}

	addFilterFlags(cmd, opts)
	cmd.Flags().StringVarP(&outputDir, "outdir", "o", ".", "Local directory to download into")

	return cmd
}
