// Package config loads gc settings from .env, environment variables and an
// optional ~/.guardcore/config.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/guardcore-cli/pkg/guardcore"
	"github.com/bnema/guardcore-cli/pkg/guardcore/core"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "GUARDCORE"
	DirName   = ".guardcore"

	KeyBaseURL        = "base_url"
	KeyTimeout        = "timeout"
	KeyUsageSegment   = "usage_segment"
	KeyProfilesPath   = "profiles.path"
	KeySecretsDir     = "secrets.dir"
	KeySecretsBackend = "secrets.backend"
	KeyLogLevel       = "log.level"

	BackendAuto = "auto"
	BackendFile = "file"
	BackendPass = "pass"
)

type Config struct {
	BaseURL      string        `mapstructure:"base_url" validate:"required,url"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UsageSegment string        `mapstructure:"usage_segment" validate:"oneof=usages usage"`
	Profiles     struct {
		Path string `mapstructure:"path" validate:"required"`
	} `mapstructure:"profiles"`
	Secrets struct {
		Dir     string `mapstructure:"dir" validate:"required"`
		Backend string `mapstructure:"backend" validate:"oneof=auto file pass"`
	} `mapstructure:"secrets"`
	Log struct {
		Level string `mapstructure:"level" validate:"oneof=trace debug info warn error disabled"`
	} `mapstructure:"log"`
}

type Options struct {
	// HomeDir replaces the user's home directory for defaults and the config file.
	HomeDir string
	// EnvFile is loaded before reading the environment. Missing files are ignored.
	EnvFile string
}

// Load builds the viper instance shared by the CLI and decodes it into a
// validated Config.
func Load(opts Options) (*viper.Viper, Config, error) {
	homeDir := opts.HomeDir
	if homeDir == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return nil, Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		homeDir = dir
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	configDir := filepath.Join(homeDir, DirName)
	v.SetDefault(KeyBaseURL, core.DefaultBaseURL)
	v.SetDefault(KeyTimeout, core.DefaultTimeout.String())
	v.SetDefault(KeyUsageSegment, guardcore.UsageSegment)
	v.SetDefault(KeyProfilesPath, filepath.Join(configDir, "profiles.toml"))
	v.SetDefault(KeySecretsDir, filepath.Join(configDir, "secrets"))
	v.SetDefault(KeySecretsBackend, BackendAuto)
	v.SetDefault(KeyLogLevel, "warn")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg, err := Decode(v)
	if err != nil {
		return nil, Config{}, err
	}

	return v, cfg, nil
}

// Decode reads a Config out of v and validates it.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Secrets.Backend = strings.ToLower(strings.TrimSpace(cfg.Secrets.Backend))

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
