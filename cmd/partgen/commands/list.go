package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/partgen/display"
	"github.com/teranos/partgen/partition"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available algorithms and visitors",
		Long: `List the algorithms registered for each mode and the visitors available
to every mode. Names are matched exactly (case-sensitive) by 'generate'.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
	cmd.Flags().String("mode", "", "Only list algorithms of this mode: int, set")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	modes := []partition.Mode{partition.ModeInteger, partition.ModeSet}
	if name, _ := cmd.Flags().GetString("mode"); name != "" {
		mode, err := partition.ParseMode(name)
		if err != nil {
			return err
		}
		modes = []partition.Mode{mode}
	}

	reg := partition.NewRegistry()
	rows := [][]string{{"kind", "mode", "name"}}
	for _, mode := range modes {
		for _, name := range reg.Algorithms(mode) {
			rows = append(rows, []string{"algorithm", mode.String(), name})
		}
	}
	for _, name := range reg.Visitors() {
		rows = append(rows, []string{"visitor", "any", name})
	}

	return display.NewPrinter(cmd.OutOrStdout(), 0).Table(rows)
}
