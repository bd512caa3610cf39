package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Listing   ListingConfig   `mapstructure:"listing"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	TimeoutSeconds int      `mapstructure:"timeoutSeconds"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	Enabled  bool   `mapstructure:"enabled"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type ListingConfig struct {
	PageSize             int `mapstructure:"page_size"`
	NotifyTimeoutSeconds int `mapstructure:"notify_timeout_seconds"`
}

func (l ListingConfig) NotifyTimeout() time.Duration {
	return time.Duration(l.NotifyTimeoutSeconds) * time.Second
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// secrets are read from DRAVAIL_* variables and take precedence over the file.
type secrets struct {
	DatabasePassword string `envconfig:"DB_PASSWORD"`
	RedisPassword    string `envconfig:"REDIS_PASSWORD"`
	SMTPPassword     string `envconfig:"SMTP_PASSWORD"`
	JWTSecret        string `envconfig:"JWT_SECRET"`
}

const envPrefix = "DRAVAIL"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeoutSeconds", 30)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("jwt.issuer", "dravail")
	v.SetDefault("ratelimit.requests_per_second", 10)
	v.SetDefault("ratelimit.burst", 20)
	v.SetDefault("listing.page_size", 4)
	v.SetDefault("listing.notify_timeout_seconds", 10)
	v.SetDefault("log.level", "info")
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applySecrets(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func applySecrets(cfg *Config) error {
	var s secrets
	if err := envconfig.Process(envPrefix, &s); err != nil {
		return fmt.Errorf("failed to read secrets from environment: %w", err)
	}
	if s.DatabasePassword != "" {
		cfg.Database.Password = s.DatabasePassword
	}
	if s.RedisPassword != "" {
		cfg.Redis.Password = s.RedisPassword
	}
	if s.SMTPPassword != "" {
		cfg.SMTP.Password = s.SMTPPassword
	}
	if s.JWTSecret != "" {
		cfg.JWT.Secret = s.JWTSecret
	}
	return nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if c.Listing.PageSize <= 0 {
		return fmt.Errorf("listing page size must be positive, got %d", c.Listing.PageSize)
	}
	if c.SMTP.Enabled && c.SMTP.From == "" {
		return fmt.Errorf("smtp from address is required when smtp is enabled")
	}
	return nil
}
