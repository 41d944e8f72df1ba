package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Gemini   GeminiConfig
	Matching MatchingConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret string
}

type GeminiConfig struct {
	APIKey        string
	Model         string
	CallTimeout   time.Duration
	MaxConcurrent int
}

type MatchingConfig struct {
	FeedThreshold float64
	FeedLimit     int
	PoolSize      int
	ExpiryDays    int
	FeedCacheTTL  time.Duration
	SweepInterval time.Duration
}

type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables or a .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// A missing .env file is fine; env vars alone are enough
	_ = viper.ReadInConfig()

	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-pro")
	viper.SetDefault("GEMINI_CALL_TIMEOUT_SEC", 10)
	viper.SetDefault("GEMINI_MAX_CONCURRENT", 8)
	viper.SetDefault("FEED_THRESHOLD", 50.0)
	viper.SetDefault("FEED_LIMIT", 5)
	viper.SetDefault("FEED_POOL_SIZE", 200)
	viper.SetDefault("FEED_CACHE_TTL_MIN", 10)
	viper.SetDefault("MATCH_EXPIRY_DAYS", 14)
	viper.SetDefault("MATCH_SWEEP_INTERVAL_MIN", 60)
	viper.SetDefault("LOG_LEVEL", "info")

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret: viper.GetString("JWT_ACCESS_SECRET"),
		},
		Gemini: GeminiConfig{
			APIKey:        viper.GetString("GEMINI_API_KEY"),
			Model:         viper.GetString("GEMINI_MODEL"),
			CallTimeout:   time.Duration(viper.GetInt("GEMINI_CALL_TIMEOUT_SEC")) * time.Second,
			MaxConcurrent: viper.GetInt("GEMINI_MAX_CONCURRENT"),
		},
		Matching: MatchingConfig{
			FeedThreshold: viper.GetFloat64("FEED_THRESHOLD"),
			FeedLimit:     viper.GetInt("FEED_LIMIT"),
			PoolSize:      viper.GetInt("FEED_POOL_SIZE"),
			ExpiryDays:    viper.GetInt("MATCH_EXPIRY_DAYS"),
			FeedCacheTTL:  time.Duration(viper.GetInt("FEED_CACHE_TTL_MIN")) * time.Minute,
			SweepInterval: time.Duration(viper.GetInt("MATCH_SWEEP_INTERVAL_MIN")) * time.Minute,
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks critical configuration values.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	if c.Matching.FeedLimit <= 0 {
		return fmt.Errorf("feed limit must be positive")
	}
	if c.Matching.ExpiryDays <= 0 {
		return fmt.Errorf("match expiry window must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns the Redis address.
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
