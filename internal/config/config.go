package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Booking  BookingConfig
	Redis    RedisConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port           int `mapstructure:"port" envconfig:"SERVER_PORT"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds" envconfig:"SERVER_TIMEOUT_SECONDS"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" envconfig:"DB_HOST"`
	Port     int    `mapstructure:"port" envconfig:"DB_PORT"`
	User     string `mapstructure:"user" envconfig:"DB_USER"`
	Password string `mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name     string `mapstructure:"name" envconfig:"DB_NAME"`
	SSLMode  string `mapstructure:"sslmode" envconfig:"DB_SSLMODE"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret" envconfig:"JWT_SECRET"`
	ExpiryHours int    `mapstructure:"expiry_hours" envconfig:"JWT_EXPIRY_HOURS"`
}

// BookingConfig holds the slot engine defaults applied when a request
// does not override them.
type BookingConfig struct {
	StepMinutes     int    `mapstructure:"step_minutes" envconfig:"BOOKING_STEP_MINUTES"`
	LeadMinutes     int    `mapstructure:"lead_minutes" envconfig:"BOOKING_LEAD_MINUTES"`
	BufferMinutes   int    `mapstructure:"buffer_minutes" envconfig:"BOOKING_BUFFER_MINUTES"`
	DefaultTimezone string `mapstructure:"default_timezone" envconfig:"BOOKING_DEFAULT_TIMEZONE"`
}

// RedisConfig is optional; with an empty Addr the shared rate limiter
// is skipped and only the in-process one runs.
type RedisConfig struct {
	Addr           string `mapstructure:"addr" envconfig:"REDIS_ADDR"`
	Password       string `mapstructure:"password" envconfig:"REDIS_PASSWORD"`
	DB             int    `mapstructure:"db" envconfig:"REDIS_DB"`
	BookingPerMin  int64  `mapstructure:"booking_per_min" envconfig:"REDIS_BOOKING_PER_MIN"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" envconfig:"LOG_LEVEL"`
	Pretty bool   `mapstructure:"pretty" envconfig:"LOG_PRETTY"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// environment wins over the file
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.TimeoutSeconds == 0 {
		c.Server.TimeoutSeconds = 30
	}
	if c.JWT.ExpiryHours == 0 {
		c.JWT.ExpiryHours = 24
	}
	if c.Booking.StepMinutes == 0 {
		c.Booking.StepMinutes = 15
	}
	if c.Booking.LeadMinutes == 0 {
		c.Booking.LeadMinutes = 120
	}
	if c.Booking.DefaultTimezone == "" {
		c.Booking.DefaultTimezone = "Europe/Lisbon"
	}
	if c.Redis.BookingPerMin == 0 {
		c.Redis.BookingPerMin = 60
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
