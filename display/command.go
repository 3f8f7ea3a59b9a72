package display

import (
	"github.com/spf13/cobra"
)

// ShouldOutputJSON determines if a command should output JSON based on its
// own --json flag, falling back to a persistent --json on the root command.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}

	// An explicit --json on the command wins, true or false
	if cmd.Flags().Changed("json") {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	if globalFlag, err := cmd.Root().PersistentFlags().GetBool("json"); err == nil && globalFlag {
		return true
	}
	return false
}
