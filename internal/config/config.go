package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultRegion   = "ap-south-1"
	DefaultLogLevel = "info"
)

// Keys shared by flags, environment variables and viper
const (
	KeyProfile  = "profile"
	KeyRegion   = "region"
	KeyLogLevel = "log-level"
)

// EnvPrefix prefixes environment overrides, e.g. ASGCHECK_REGION
const EnvPrefix = "ASGCHECK"

// Config represents the application configuration file
type Config struct {
	AWSProfile string `yaml:"aws_profile,omitempty"`
	AWSRegion  string `yaml:"aws_region,omitempty"`
	LogLevel   string `yaml:"log_level,omitempty"`
}

// Settings are the resolved values a run uses
type Settings struct {
	Profile  string
	Region   string
	LogLevel string
}

// GetConfigDir returns the config directory path (~/.config/asgcheck)
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".asgcheck"
	}
	return filepath.Join(home, ".config", "asgcheck")
}

// GetConfigPath returns the config file path (~/.config/asgcheck/config.yaml)
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// LoadConfig loads the configuration from the default path
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(GetConfigPath())
}

// LoadConfigFrom loads the configuration from path. A missing file yields an
// empty config.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// NewViper returns a viper instance reading ASGCHECK_* environment variables.
// "log-level" maps to ASGCHECK_LOG_LEVEL.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Resolve merges the sources in priority order:
// flags and ASGCHECK_* env (through v) > AWS env > config file > defaults.
func Resolve(v *viper.Viper, cfg *Config, getenv func(string) string) Settings {
	if cfg == nil {
		cfg = &Config{}
	}

	return Settings{
		Profile:  firstNonEmpty(v.GetString(KeyProfile), getenv("AWS_PROFILE"), cfg.AWSProfile),
		Region:   firstNonEmpty(v.GetString(KeyRegion), getenv("AWS_REGION"), getenv("AWS_DEFAULT_REGION"), cfg.AWSRegion, DefaultRegion),
		LogLevel: firstNonEmpty(v.GetString(KeyLogLevel), cfg.LogLevel, DefaultLogLevel),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
