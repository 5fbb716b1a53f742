package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the tunables of the monitor.
type Config struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	SampleInterval  time.Duration `mapstructure:"sample_interval"`
	CommandTimeout  time.Duration `mapstructure:"command_timeout"`
	CPURetryDelay   time.Duration `mapstructure:"cpu_retry_delay"`
	KillConcurrency int           `mapstructure:"kill_concurrency"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	LogFile         string        `mapstructure:"log_file"`
}

// EnvPrefix prefixes every environment override, e.g. PROCMON_LOG_LEVEL.
const EnvPrefix = "PROCMON"

func Default() *Config {
	return &Config{
		RefreshInterval: 2 * time.Second,
		SampleInterval:  2 * time.Second,
		CommandTimeout:  10 * time.Second,
		CPURetryDelay:   500 * time.Millisecond,
		KillConcurrency: 4,
		LogLevel:        "info",
		LogFormat:       "console",
	}
}

// Load reads .env (if present), then the config file, then PROCMON_*
// environment variables. An empty cfgFile searches procmon.yaml in the user
// config dir and the working directory.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, Default())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("procmon")
		v.SetConfigType("yaml")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("refresh_interval", d.RefreshInterval)
	v.SetDefault("sample_interval", d.SampleInterval)
	v.SetDefault("command_timeout", d.CommandTimeout)
	v.SetDefault("cpu_retry_delay", d.CPURetryDelay)
	v.SetDefault("kill_concurrency", d.KillConcurrency)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("log_file", d.LogFile)
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "procmon")
}
