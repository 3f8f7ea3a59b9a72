package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/partgen/config"
	"github.com/teranos/partgen/display"
	"github.com/teranos/partgen/errors"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage partgen configuration",
		Long: `Display and check partgen configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (PARTGEN_* prefix, e.g. PARTGEN_GENERATE_MODE)
3. Project config (./partgen.toml, searched up the directory tree)
4. User config (~/.partgen/partgen.toml)
5. System config (/etc/partgen/partgen.toml)
6. Default values

Examples:
  partgen config show                    # Show current configuration
  partgen config show --format json      # Show configuration in JSON format
  partgen config get generate.algorithm  # Get specific config value
  partgen config validate                # Validate current configuration
  partgen config where                   # Show where each value comes from`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	showCmd.Flags().String("format", "toml", "Output format: toml, json, yaml")

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific configuration value",
		Long:  "Get a specific configuration value using dot notation (e.g., generate.mode, output.format)",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigGet,
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		Long: `Validate the merged configuration, or with --file a single config file
on top of the defaults, ignoring the cascade and environment.`,
		Args: cobra.NoArgs,
		RunE: runConfigValidate,
	}
	validateCmd.Flags().String("file", "", "Validate only this config file")

	whereCmd := &cobra.Command{
		Use:   "where",
		Short: "Show where each configuration value is loaded from",
		Args:  cobra.NoArgs,
		RunE:  runConfigWhere,
	}

	configCmd.AddCommand(showCmd, getCmd, validateCmd, whereCmd)
	return configCmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		fmt.Fprintln(out, string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(out, "# partgen configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(out, "# partgen configuration\n%s", string(data))

	default:
		return errors.NewUnknownNameError(errors.ErrUnknownFormat, "format", format, []string{"json", "toml", "yaml"})
	}

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	v := config.GetViper()
	if !v.IsSet(key) {
		return errors.Newf("configuration key %q not found", key)
	}

	fmt.Fprintln(cmd.OutOrStdout(), v.Get(key))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	display.NewPrinter(cmd.OutOrStdout(), 0).Success("Configuration is valid")
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	settings := config.Introspect(config.GetViper())

	rows := [][]string{{"key", "value", "source", "from"}}
	for _, s := range settings {
		rows = append(rows, []string{s.Key, fmt.Sprint(s.Value), string(s.Source), s.SourcePath})
	}
	return display.NewPrinter(cmd.OutOrStdout(), 0).Table(rows)
}
