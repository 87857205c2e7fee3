package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "INVENTORY"

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"   validate:"required,oneof=postgres sqlite"`
	Host     string `mapstructure:"host"     validate:"required_if=Driver postgres"`
	Port     int    `mapstructure:"port"     validate:"required_if=Driver postgres,min=0,max=65535"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database" validate:"required_if=Driver postgres"`
	SSLMode  string `mapstructure:"sslmode"`
	// Path is the sqlite database file
	Path string `mapstructure:"path" validate:"required_if=Driver sqlite"`
}

type AppConfig struct {
	Port                  int            `mapstructure:"port"                   validate:"required,numeric,min=1,max=65535"`
	LogLevel              string         `mapstructure:"log_level"              validate:"oneof=trace debug info warn error"`
	HumanReadableOutput   bool           `mapstructure:"human_readable_output"`
	ProductionEnvironment bool           `mapstructure:"production_environment"`
	Database              DatabaseConfig `mapstructure:"database"`
}

// DefaultValue seeds a config key before files and environment are read
type DefaultValue struct {
	Key   string
	Value any
}

var Cfg = &AppConfig{}

var Defaults = []DefaultValue{
	{Key: "port", Value: 8080},
	{Key: "log_level", Value: "info"},
	{Key: "human_readable_output", Value: false},
	{Key: "production_environment", Value: true},

	{Key: "database.driver", Value: "postgres"},
	{Key: "database.host", Value: "localhost"},
	{Key: "database.port", Value: 5432},
	{Key: "database.username", Value: "inventory"},
	{Key: "database.password", Value: ""},
	{Key: "database.database", Value: "inventory"},
	{Key: "database.sslmode", Value: "disable"},
	{Key: "database.path", Value: "inventory.db"},
}

// PopulateAppConfig fills cfg from defaults, an optional config file and
// INVENTORY_* environment variables, in increasing precedence, and validates
// the result. An empty configFile searches ./config.yaml and ignores its
// absence.
func PopulateAppConfig(
	cfg *AppConfig,
	configFile string,
	defaults ...DefaultValue,
) error {
	v := viper.New()
	for _, d := range defaults {
		v.SetDefault(d.Key, d.Value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %q: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}
