package webhook

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "WEBHOOKD_CONFIG_FILE"

// ServerConfig is the daemon's own configuration. Commerce credentials come
// from the environment through config.FromEnv, not from this file.
type ServerConfig struct {
	Addr     string `mapstructure:"addr"`
	LogLevel string `mapstructure:"log_level"`
}

// LoadServerConfig reads the optional config file named by --config or
// WEBHOOKD_CONFIG_FILE, falling back to defaults.
func LoadServerConfig() ServerConfig {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("log_level", "info")

	if path := configFilepath(); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			die(err)
		}
	}

	var cfg ServerConfig
	if err := v.UnmarshalExact(&cfg); err != nil {
		die(err)
	}
	return cfg
}

// ParseLevel maps the configured log level name to a slog level.
func (c ServerConfig) ParseLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func configFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}
