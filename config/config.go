// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"log"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port                    string `mapstructure:"PORT"`
	APIBaseURL              string `mapstructure:"API_BASE_URL"`
	RedisURL                string `mapstructure:"REDIS_URL"`
	DBPath                  string `mapstructure:"DB_PATH"`
	DatabaseURL             string `mapstructure:"DATABASE_URL"`
	HTTPTimeoutSeconds      int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`
	CacheTTLSeconds         int    `mapstructure:"CACHE_TTL_SECONDS"`
	DashboardRefreshMinutes int    `mapstructure:"DASHBOARD_REFRESH_MINUTES"`
	UsersRefreshMinutes     int    `mapstructure:"USERS_REFRESH_MINUTES"`
	PostsRefreshMinutes     int    `mapstructure:"POSTS_REFRESH_MINUTES"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() *Config {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if errors.As(err, &notFoundErr) {
			log.Println("Config file not found; using environment variables and defaults")
		} else {
			log.Fatalf("Error reading config file: %s", err)
		}
	}

	// Set default values
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("API_BASE_URL", "https://jsonplaceholder.typicode.com")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("DB_PATH", "admindash.db")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 10)
	viper.SetDefault("CACHE_TTL_SECONDS", 60)
	viper.SetDefault("DASHBOARD_REFRESH_MINUTES", 5)
	viper.SetDefault("USERS_REFRESH_MINUTES", 10)
	viper.SetDefault("POSTS_REFRESH_MINUTES", 15)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode config into struct, %v", err)
	}

	return &config
}
