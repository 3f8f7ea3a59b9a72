package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/partgen/config"
	"github.com/teranos/partgen/errors"
	"github.com/teranos/partgen/logger"
)

// NewRootCmd builds the partgen command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "partgen",
		Short: "Enumerate integer and set partitions",
		Long: `partgen - Enumerate partitions of n into exactly k parts.

Two modes are available:
  int - integer partitions of n into k positive parts (non-increasing)
  set - partitions of {0..n-1} into k non-empty blocks

Each run selects a generation algorithm and a visitor that folds the
generated partitions into a result (count, checksum, sample, histogram).

Examples:
  partgen generate -n 5 -k 2                       # Count integer partitions
  partgen generate --mode set -n 4 -k 2 --pout std # Print set partitions
  partgen generate --file pairs.txt --visit Checksum
  partgen list                                     # Show algorithms and visitors
  partgen config show                              # Show effective configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := config.GetViper()
			if err := v.BindPFlag("log.json", cmd.Flags().Lookup("log-json")); err != nil {
				return errors.Wrap(err, "failed to bind flag --log-json")
			}

			verbosity, _ := cmd.Flags().GetCount("verbose")
			if err := logger.InitializeWithWriter(cmd.ErrOrStderr(), v.GetBool("log.json"), verbosity); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Cleanup()
		},
	}

	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs to stderr as JSON")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
