package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Carmen-Shannon/oxy-swim/engine/animator"
	"github.com/Carmen-Shannon/oxy-swim/engine/loader"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override config keys,
// e.g. OXYSWIM_TICKRATE or OXYSWIM_CAPTURE_PATH.
const EnvPrefix = "OXYSWIM"

// CaptureConfig holds pose capture settings.
type CaptureConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Path      string `json:"path" yaml:"path" mapstructure:"path"`
	DumpPath  string `json:"dumpPath" yaml:"dumpPath" mapstructure:"dumpPath"`
	BatchSize int    `json:"batchSize" yaml:"batchSize" mapstructure:"batchSize"`
	Every     uint64 `json:"every" yaml:"every" mapstructure:"every"`
}

// Config holds the host settings. Stroke constants are not configurable here; they come
// from the selected preset.
type Config struct {
	LogLevel  string        `json:"logLevel" yaml:"logLevel" mapstructure:"logLevel"`
	LogFile   string        `json:"logFile" yaml:"logFile" mapstructure:"logFile"`
	TickRate  float64       `json:"tickRate" yaml:"tickRate" mapstructure:"tickRate"`
	Frames    uint64        `json:"frames" yaml:"frames" mapstructure:"frames"`
	FixedStep bool          `json:"fixedStep" yaml:"fixedStep" mapstructure:"fixedStep"`
	Preset    string        `json:"preset" yaml:"preset" mapstructure:"preset"`
	Swimmers  int           `json:"swimmers" yaml:"swimmers" mapstructure:"swimmers"`
	Asset     string        `json:"asset" yaml:"asset" mapstructure:"asset"`
	Workers   int           `json:"workers" yaml:"workers" mapstructure:"workers"`
	Profiling bool          `json:"profiling" yaml:"profiling" mapstructure:"profiling"`
	Overlay   bool          `json:"overlay" yaml:"overlay" mapstructure:"overlay"`
	Capture   CaptureConfig `json:"capture" yaml:"capture" mapstructure:"capture"`
}

// SetDefaults installs the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")
	v.SetDefault("tickRate", 60.0)
	v.SetDefault("frames", 0)
	v.SetDefault("fixedStep", false)
	v.SetDefault("preset", "freestyle")
	v.SetDefault("swimmers", 1)
	v.SetDefault("asset", loader.BuiltinMixamo)
	v.SetDefault("workers", max(runtime.NumCPU()-1, 1))
	v.SetDefault("profiling", false)
	v.SetDefault("overlay", false)

	v.SetDefault("capture.enabled", false)
	v.SetDefault("capture.path", "")
	v.SetDefault("capture.dumpPath", "")
	v.SetDefault("capture.batchSize", 500)
	v.SetDefault("capture.every", 1)
}

// New returns a viper instance with defaults and environment overrides configured.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file at path on top of the defaults and decodes the result.
// An empty path loads defaults and environment overrides only. The file format follows its
// extension (yaml, json, toml).
//
// Parameters:
//   - v: a viper instance from New, possibly with flags bound to it
//   - path: the config file path, may be empty
//
// Returns:
//   - *Config: the decoded and validated config
//   - error: error if the file cannot be read or a value is invalid
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and the preset name.
func (c *Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tickRate must be positive, got %v", c.TickRate)
	}
	if c.Swimmers < 1 {
		return fmt.Errorf("swimmers must be at least 1, got %d", c.Swimmers)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Capture.BatchSize < 1 {
		return fmt.Errorf("capture.batchSize must be at least 1, got %d", c.Capture.BatchSize)
	}
	if _, err := animator.ParsePreset(c.Preset); err != nil {
		return err
	}
	return nil
}

// BackendType returns the stroke preset named by the config.
func (c *Config) BackendType() animator.AnimatorBackendType {
	bt, _ := animator.ParsePreset(c.Preset)
	return bt
}
