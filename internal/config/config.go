package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/akyairhashvil/sprintsync/internal/util"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var validate = validator.New()

// Config is the runtime configuration. Every key can be set in
// sprintsync.yaml or through a SPRINTSYNC_<KEY> environment variable.
type Config struct {
	DataDir         string        `mapstructure:"data_dir" validate:"required"`
	LogFile         string        `mapstructure:"log_file"`
	CloudDSN        string        `mapstructure:"cloud_dsn"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval" validate:"gt=0"`
	RouteCacheTTL   time.Duration `mapstructure:"route_cache_ttl" validate:"gt=0"`
	HistoryLimit    int           `mapstructure:"history_limit" validate:"min=1,max=1000"`
	PersistDebounce time.Duration `mapstructure:"persist_debounce" validate:"gt=0"`
	HTTPAddr        string        `mapstructure:"http_addr" validate:"omitempty,hostname_port"`
	UserID          string        `mapstructure:"user_id"`
	Theme           string        `mapstructure:"theme" validate:"oneof=default dracula"`
}

// GuestDBPath is the SQLite file backing guest sessions.
func (c *Config) GuestDBPath() string {
	return filepath.Join(c.DataDir, GuestDBFile)
}

// LocalRoot is the directory holding local-device documents.
func (c *Config) LocalRoot() string {
	return filepath.Join(c.DataDir, LocalStoreDir)
}

// LoadOptions points Load at explicit files. Empty fields use the defaults.
type LoadOptions struct {
	ConfigFile string
	EnvFile    string
}

// Load reads .env, then the config file, then SPRINTSYNC_* variables, and
// validates the result. Missing files are not an error unless ConfigFile
// names one explicitly.
func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	dataDir := util.DataDir(AppName)
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("log_file", "")
	v.SetDefault("cloud_dsn", "")
	v.SetDefault("refresh_interval", DefaultRefreshInterval)
	v.SetDefault("route_cache_ttl", DefaultRouteCacheTTL)
	v.SetDefault("history_limit", DefaultHistoryLimit)
	v.SetDefault("persist_debounce", DefaultPersistDebounce)
	v.SetDefault("http_addr", "")
	v.SetDefault("user_id", "")
	v.SetDefault("theme", DefaultTheme)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(dataDir)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.DataDir = strings.TrimSpace(cfg.DataDir)
	if cfg.LogFile == "" && cfg.DataDir != "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, LogFileName)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
