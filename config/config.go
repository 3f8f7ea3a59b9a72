package config

// Config represents the partgen configuration
type Config struct {
	Generate GenerateConfig `mapstructure:"generate" toml:"generate" json:"generate" yaml:"generate"`
	Output   OutputConfig   `mapstructure:"output" toml:"output" json:"output" yaml:"output"`
	Log      LogConfig      `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// GenerateConfig selects what is enumerated and how
type GenerateConfig struct {
	Mode       string `mapstructure:"mode" toml:"mode" json:"mode" yaml:"mode"`                             // int or set
	Algorithm  string `mapstructure:"algorithm" toml:"algorithm" json:"algorithm" yaml:"algorithm"`         // generator name within the mode
	Visitor    string `mapstructure:"visitor" toml:"visitor" json:"visitor" yaml:"visitor"`                 // Counter, Checksum, Sample, Histogram
	Cache      bool   `mapstructure:"cache" toml:"cache" json:"cache" yaml:"cache"`                         // answer plain counts from the counting tables
	SampleSize int    `mapstructure:"sample_size" toml:"sample_size" json:"sample_size" yaml:"sample_size"` // partitions kept by the Sample visitor
}

// OutputConfig configures the partition and result sinks.
// A target is a file path, "std" for stdout, or empty to discard.
type OutputConfig struct {
	Partitions string `mapstructure:"partitions" toml:"partitions" json:"partitions" yaml:"partitions"`
	Results    string `mapstructure:"results" toml:"results" json:"results" yaml:"results"`
	Format     string `mapstructure:"format" toml:"format" json:"format" yaml:"format"` // text, json, yaml
}

// LogConfig configures the stderr logger
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
}

// Config file locations
const (
	FileName        = "partgen.toml"
	SystemConfigDir = "/etc/partgen"
	UserConfigDir   = ".partgen" // relative to the home directory
	EnvPrefix       = "PARTGEN"
)
