package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evexport/evexport/internal/models"
)

// newAuthCmd creates the 'auth' command.
func newAuthCmd() *cobra.Command {
	opts := &filterOpts{}

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Exchange the API token and print exportable credentials",
		Long: `Exchange the configured API token for temporary storage credentials and
print them as shell export lines.

The output format is a compatibility contract with wrapper scripts: exactly
five "export KEY=value" lines, suitable for eval.

Examples:
  # Export credentials into the current shell
  eval "$(evexport auth)"

  # With an explicit token
  evexport auth --token $MY_TOKEN`,
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

			cred, err := mgr.Refresh(GetContext())
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatExports(cred))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.token, "token", "", "API token (overrides config and environment)")

	return cmd
}

// formatExports renders the five export lines consumed by wrapper scripts.
// The format is bit-exact: do not reorder or reformat.
func formatExports(cred *models.Credential) string {
	return fmt.Sprintf(
		"export AWS_ACCESS_KEY_ID=%s\n"+
			"export AWS_SECRET_ACCESS_KEY=%s\n"+
			"export AWS_SESSION_TOKEN=%s\n"+
			"export AWS_SESSION_EXPIRATION=%d\n"+
			"export S3_BASE_PATH=%s\n",
		cred.AccessKeyID,
		cred.SecretAccessKey,
		cred.SessionToken,
		cred.ExpirationMillis(),
		cred.BasePath,
	)
}
