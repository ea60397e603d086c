package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format" yaml:"format"`
	Quiet   bool   `mapstructure:"quiet" yaml:"quiet"`
	Verbose bool   `mapstructure:"verbose" yaml:"verbose"`

	Recorder RecorderConfig `mapstructure:"recorder" yaml:"recorder"`

	// Default values for commands
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
}

// RecorderConfig tunes the simulated recorder
type RecorderConfig struct {
	Interval string `mapstructure:"interval" yaml:"interval"`   // Pause between scripted steps
	AutoStop bool   `mapstructure:"auto_stop" yaml:"auto_stop"` // Stop once the script is exhausted
}

// DefaultsConfig prefills recording fields
type DefaultsConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	URL  string `mapstructure:"url" yaml:"url"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "ndjson",
		Quiet:   false,
		Verbose: false,
		Recorder: RecorderConfig{
			Interval: "1500ms",
			AutoStop: false,
		},
	}
}

// IntervalDuration parses Recorder.Interval
func (c *Config) IntervalDuration() (time.Duration, error) {
	return time.ParseDuration(c.Recorder.Interval)
}

// Load loads configuration from files and environment
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	// Search paths, lowest precedence first
	v.AddConfigPath("/etc/testspark/")
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "testspark"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigName(".testspark")

	// Environment variables
	v.SetEnvPrefix("TESTSPARK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.BindEnv("format", "TESTSPARK_FORMAT")
	v.BindEnv("quiet", "TESTSPARK_QUIET")
	v.BindEnv("verbose", "TESTSPARK_VERBOSE")
	v.BindEnv("recorder.interval", "TESTSPARK_INTERVAL")
	v.BindEnv("recorder.auto_stop", "TESTSPARK_AUTO_STOP")
	v.BindEnv("defaults.name", "TESTSPARK_NAME")
	v.BindEnv("defaults.url", "TESTSPARK_URL")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Fall back to testspark.yaml before giving up on files
		v.SetConfigName("testspark")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	cfg := Default()
	v.SetDefault("format", cfg.Format)
	v.SetDefault("quiet", cfg.Quiet)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("recorder.interval", cfg.Recorder.Interval)
	v.SetDefault("recorder.auto_stop", cfg.Recorder.AutoStop)
	v.SetDefault("defaults.name", cfg.Defaults.Name)
	v.SetDefault("defaults.url", cfg.Defaults.URL)
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	v := viper.New()
	v.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")

	for _, name := range []string{".testspark", "testspark"} {
		v.SetConfigName(name)
		if err := v.ReadInConfig(); err == nil {
			return v.ConfigFileUsed()
		}
	}

	return ""
}

const sampleHeader = `# testspark configuration file
# Place at ~/.testspark.yaml, ./.testspark.yaml or $XDG_CONFIG_HOME/testspark/testspark.yaml
# Every key can be overridden with a TESTSPARK_ environment variable.

`

// Sample renders the default configuration as a commented YAML document
func Sample() ([]byte, error) {
	body, err := yaml.Marshal(Default())
	if err != nil {
		return nil, err
	}
	return append([]byte(sampleHeader), body...), nil
}
