// Package config resolves run settings from flags, SURVEY_* environment
// variables, an optional config file and .env, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "SURVEY"

const (
	KeyConfig      = "config"
	KeyInput       = "input"
	KeyOutputDir   = "output-dir"
	KeyMaxWords    = "max-words"
	KeySaveTimeout = "save-timeout"
	KeyLogLevel    = "log-level"
)

const (
	DefaultInput       = "Новая форма.csv"
	DefaultOutputDir   = "."
	DefaultMaxWords    = 80
	DefaultSaveTimeout = 5 * time.Second
	DefaultLogLevel    = "info"
)

type Config struct {
	Input       string
	OutputDir   string
	MaxWords    int
	SaveTimeout time.Duration
	LogLevel    string
}

// Flags registers the run flags on cmd.
func Flags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String(KeyConfig, "", "config file (yaml, json or toml)")
	f.StringP(KeyInput, "i", DefaultInput, "survey export to analyze (.csv or .xlsx)")
	f.StringP(KeyOutputDir, "o", DefaultOutputDir, "directory for report workbooks")
	f.Int(KeyMaxWords, DefaultMaxWords, "maximum words in the frequency table")
	f.Duration(KeySaveTimeout, DefaultSaveTimeout, "how long to keep retrying a failed workbook save")
	f.String(KeyLogLevel, DefaultLogLevel, "log level (debug, info, warn, error)")
}

// New builds a viper instance bound to the flags of cmd. cmd may be nil,
// in which case only defaults, environment and config file apply.
func New(cmd *cobra.Command) (*viper.Viper, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault(KeyInput, DefaultInput)
	v.SetDefault(KeyOutputDir, DefaultOutputDir)
	v.SetDefault(KeyMaxWords, DefaultMaxWords)
	v.SetDefault(KeySaveTimeout, DefaultSaveTimeout)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return v, nil
}

// Load reads and validates the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Input:       strings.TrimSpace(v.GetString(KeyInput)),
		OutputDir:   strings.TrimSpace(v.GetString(KeyOutputDir)),
		MaxWords:    v.GetInt(KeyMaxWords),
		SaveTimeout: v.GetDuration(KeySaveTimeout),
		LogLevel:    strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Input == "" {
		errs = append(errs, errors.New("input path is empty"))
	}
	if c.MaxWords < 1 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", KeyMaxWords, c.MaxWords))
	}
	if c.SaveTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %s", KeySaveTimeout, c.SaveTimeout))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Default is the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Input:       DefaultInput,
		OutputDir:   DefaultOutputDir,
		MaxWords:    DefaultMaxWords,
		SaveTimeout: DefaultSaveTimeout,
		LogLevel:    DefaultLogLevel,
	}
}
