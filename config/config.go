package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values. It is constructed once in main
// and passed by reference into every component that needs it.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Store configuration.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	TableName   string `mapstructure:"TABLE_NAME"`

	// Retention windows. Bills (and their items) expire BillTTLDays after
	// their last write; sessions expire SessionTTLHours after login.
	BillTTLDays     int `mapstructure:"BILL_TTL_DAYS"`
	SessionTTLHours int `mapstructure:"SESSION_TTL_HOURS"`

	// Admin credential. If AdminPasscodeHash is set it takes precedence
	// and is verified with bcrypt; otherwise AdminPasscode is compared
	// directly. Login is disabled when neither is configured.
	AdminPasscode     string `mapstructure:"ADMIN_PASSCODE"`
	AdminPasscodeHash string `mapstructure:"ADMIN_PASSCODE_HASH"`

	// Redis configuration (rate limiter backend; optional).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

// Load reads configuration from config.yaml (current or ./config
// directory) and the environment, applying defaults for anything unset.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("TABLE_NAME", "washline")
	viper.SetDefault("BILL_TTL_DAYS", 30)
	viper.SetDefault("SESSION_TTL_HOURS", 24)
	viper.SetDefault("ADMIN_PASSCODE", "")
	viper.SetDefault("ADMIN_PASSCODE_HASH", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.BillTTLDays <= 0 {
		cfg.BillTTLDays = 30
	}
	if cfg.SessionTTLHours <= 0 {
		cfg.SessionTTLHours = 24
	}
	return &cfg, nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
