// Package config loads careersim configuration from config.yaml and the
// environment.
package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Sim       SimConfig       `mapstructure:"sim"`
	Narrative NarrativeConfig `mapstructure:"narrative"`
}

type ServerConfig struct {
	HTTPAddress string `mapstructure:"http_address"`
	AdminToken  string `mapstructure:"admin_token"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type SimConfig struct {
	Seed            int64 `mapstructure:"seed"`
	WeekIntervalSec int   `mapstructure:"week_interval_sec"`
	AutoAdvance     bool  `mapstructure:"auto_advance"`
}

type NarrativeConfig struct {
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`
}

// Load reads config.yaml from path, with environment overrides.
func Load(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.http_address", ":8080")
	viper.SetDefault("database.path", "careersim.db")
	viper.SetDefault("sim.week_interval_sec", 60)
	viper.SetDefault("sim.auto_advance", false)

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
