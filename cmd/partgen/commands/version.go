package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/partgen/display"
	"github.com/teranos/partgen/errors"
	"github.com/teranos/partgen/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show partgen version information",
		Long: `Display version, build time, commit hash, and platform information for the partgen binary.

With --check, exit non-zero unless the binary satisfies a semver constraint:
  partgen version --check ">= 1.2"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()

			if constraint, _ := cmd.Flags().GetString("check"); constraint != "" {
				ok, err := info.Satisfies(constraint)
				if err != nil {
					return err
				}
				if !ok {
					err := errors.Newf("partgen %s does not satisfy %s", info.Version, constraint)
					if !info.Release {
						err = errors.WithHint(err, "development and pre-release builds never satisfy a version constraint")
					}
					return err
				}
			}

			if display.ShouldOutputJSON(cmd) {
				return display.OutputJSON(cmd.OutOrStdout(), info)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, info.String())
			fmt.Fprintf(out, "Platform: %s\n", info.Platform)
			fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
			return nil
		},
	}
	cmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
	cmd.Flags().String("check", "", "Fail unless the version satisfies this semver constraint")
	return cmd
}
