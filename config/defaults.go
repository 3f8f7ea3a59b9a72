package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teranos/partgen/errors"
	"github.com/teranos/partgen/partition"
	"github.com/teranos/partgen/sink"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generate.mode", partition.ModeInteger.String())
	v.SetDefault("generate.algorithm", partition.AlgorithmSimpleBacktracking)
	v.SetDefault("generate.visitor", partition.VisitorCounter)
	v.SetDefault("generate.cache", false)
	v.SetDefault("generate.sample_size", partition.DefaultSampleSize)

	v.SetDefault("output.partitions", sink.TargetDiscard)
	v.SetDefault("output.results", sink.TargetStdout)
	v.SetDefault("output.format", string(sink.FormatText))

	v.SetDefault("log.json", false)
}

// FlagKeys maps generate flag names to the configuration keys they override
var FlagKeys = map[string]string{
	"mode":   "generate.mode",
	"alg":    "generate.algorithm",
	"visit":  "generate.visitor",
	"cache":  "generate.cache",
	"sample": "generate.sample_size",
	"pout":   "output.partitions",
	"rout":   "output.results",
	"format": "output.format",
}

// BindFlags binds every flag in FlagKeys present in flags. Flags only take
// effect when set on the command line.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range FlagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "failed to bind flag --%s", name)
		}
	}
	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Generate: {Mode: %s, Algorithm: %s, Visitor: %s, Cache: %t}, Output: {Format: %s}}",
		c.Generate.Mode, c.Generate.Algorithm, c.Generate.Visitor, c.Generate.Cache, c.Output.Format)
}
