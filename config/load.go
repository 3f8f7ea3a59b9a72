package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/partgen/errors"
)

var globalConfig *Config
var viperInstance *viper.Viper

// Sources records, per dotted key, the config file that last set it.
// Filled while the cascade is merged.
var Sources = map[string]SourceInfo{}

// Load reads the partgen configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, err := LoadWithViper(initViper())
	if err != nil {
		return nil, err
	}

	globalConfig = cfg
	return globalConfig, nil
}

// GetViper returns the Viper instance for flag binding and key lookups
func GetViper() *viper.Viper {
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path on top of the defaults
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Defaults only, no environment binding for this specific load
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", configPath)
	}
	return cfg, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
	Sources = map[string]SourceInfo{}
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}
	viperInstance = NewViper(candidateFiles())
	return viperInstance
}

// NewViper builds a Viper instance holding the defaults, the given files
// merged in order, and PARTGEN_* environment overrides.
func NewViper(files []ConfigFile) *viper.Viper {
	v := viper.New()

	// PARTGEN_GENERATE_MODE overrides generate.mode
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	mergeConfigFiles(v, files)
	return v
}

// ConfigFile is one level of the file cascade
type ConfigFile struct {
	Source ConfigSource
	Path   string
}

// candidateFiles lists the cascade in precedence order, lowest first.
// Missing files are skipped during the merge.
func candidateFiles() []ConfigFile {
	files := []ConfigFile{
		{Source: SourceSystem, Path: filepath.Join(SystemConfigDir, FileName)},
	}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, ConfigFile{Source: SourceUser, Path: filepath.Join(home, UserConfigDir, FileName)})
	}
	if project := findProjectConfig(); project != "" {
		files = append(files, ConfigFile{Source: SourceProject, Path: project})
	}
	return files
}

// findProjectConfig searches for partgen.toml by walking up the directory tree.
// Returns the path to the first config file found, or empty string if none found.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return ""
}

// mergeConfigFiles merges configuration files in precedence order.
// Files go into the config layer, so environment variables and bound
// flags still override them.
func mergeConfigFiles(v *viper.Viper, files []ConfigFile) {
	for _, file := range files {
		if _, err := os.Stat(file.Path); err != nil {
			continue
		}

		tempViper := viper.New()
		tempViper.SetConfigFile(file.Path)
		tempViper.SetConfigType("toml")
		if err := tempViper.ReadInConfig(); err != nil {
			continue
		}

		if err := v.MergeConfigMap(tempViper.AllSettings()); err != nil {
			continue
		}
		for _, key := range tempViper.AllKeys() {
			Sources[key] = SourceInfo{Source: file.Source, Path: file.Path}
		}
	}
}

// Get returns a configuration value using dot notation
func Get(key string) interface{} {
	return initViper().Get(key)
}

// GetString returns a configuration value as string using dot notation
func GetString(key string) string {
	return initViper().GetString(key)
}

// GetBool returns a configuration value as bool using dot notation
func GetBool(key string) bool {
	return initViper().GetBool(key)
}

// GetInt returns a configuration value as int using dot notation
func GetInt(key string) int {
	return initViper().GetInt(key)
}
