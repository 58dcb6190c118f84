package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Storage Storage `mapstructure:"storage"`
	Journal Journal `mapstructure:"journal"`
	Logger  Logger  `mapstructure:"logger"`
	Server  Server  `mapstructure:"server"`
}

// Storage selects the backend that holds the serialized journal blobs.
type Storage struct {
	Driver string `mapstructure:"driver"` // "sqlite" or "memory"
	DSN    string `mapstructure:"dsn"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Journal holds the defaults used by the journal core.
type Journal struct {
	PageSize        int     `mapstructure:"page_size"`
	MaxDrafts       int     `mapstructure:"max_drafts"`
	StartingBalance float64 `mapstructure:"starting_balance"`
	MaxRiskPercent  float64 `mapstructure:"max_risk_percent"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the configuration used when no file or environment overrides are present.
func Default() Config {
	return Config{
		Storage: Storage{Driver: "sqlite", DSN: "journal.db"},
		Journal: Journal{
			PageSize:        10,
			MaxDrafts:       10,
			StartingBalance: 10000,
			MaxRiskPercent:  10,
		},
		Logger: Logger{Level: "info", Format: "console"},
		Server: Server{Port: 8080},
	}
}

// LoadConfig reads configuration from file or environment variables.
// A missing config file is not an error; defaults apply.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config") // name of config file (without extension)
	v.SetConfigType("yml")

	// Allow environment variables to override config file
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	d := Default()
	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.dsn", d.Storage.DSN)
	v.SetDefault("journal.page_size", d.Journal.PageSize)
	v.SetDefault("journal.max_drafts", d.Journal.MaxDrafts)
	v.SetDefault("journal.starting_balance", d.Journal.StartingBalance)
	v.SetDefault("journal.max_risk_percent", d.Journal.MaxRiskPercent)
	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.format", d.Logger.Format)
	v.SetDefault("server.port", d.Server.Port)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	return
}
