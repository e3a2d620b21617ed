package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage driver names accepted in storage.driver.
const (
	DriverMemory = "memory"
	DriverMongo  = "mongo"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// StorageConfig selects the schedule/user store backend. "memory" is the
// transient in-process store; "mongo" requires database settings.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// JWTConfig defines JWT specific configuration. Expiration is parsed from a
// duration string such as "60m" or "1h".
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variable handling: storage.driver -> STORAGE_DRIVER,
	// jwt.expiration -> JWT_EXPIRATION, and so on.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("storage.driver", DriverMemory)
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "workout_scheduler")
	viper.SetDefault("jwt.expiration", "1h")

	err = viper.ReadInConfig()
	// Config file is optional; env vars and defaults may be enough.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
