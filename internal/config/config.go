// backend-go/internal/config/config.go
package config

import (
	"sync"
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Planning PlanningConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	LogLevel       string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled            bool
	RedisURL           string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	ForecastTTLSeconds int
}

// PlanningConfig holds the fallback lead times for brands without their own
// transport configuration and the zone "today" is observed in.
type PlanningConfig struct {
	StandardShippingDays  int
	StandardShelfDays     int
	OversizedShippingDays int
	OversizedShelfDays    int
	Timezone              string
}

// TransportDefaults returns the fallback transport configuration.
func (p PlanningConfig) TransportDefaults() domain.TransportConfig {
	cfg := domain.DefaultTransportConfig()
	if p.StandardShippingDays > 0 {
		cfg.StandardShippingDays = p.StandardShippingDays
	}
	if p.StandardShelfDays > 0 {
		cfg.StandardShelfDays = p.StandardShelfDays
	}
	if p.OversizedShippingDays > 0 {
		cfg.OversizedShippingDays = p.OversizedShippingDays
	}
	if p.OversizedShelfDays > 0 {
		cfg.OversizedShelfDays = p.OversizedShelfDays
	}
	return cfg
}

// Location resolves Timezone, falling back to the local zone.
func (p PlanningConfig) Location() *time.Location {
	if p.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", p.Timezone).Msg("invalid planning timezone, using local")
		return time.Local
	}
	return loc
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		instance = load(viper.New())
	})

	return instance
}

func load(v *viper.Viper) *Config {
	defaults := domain.DefaultTransportConfig()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "fbaplan")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_FORECAST_TTL_SECONDS", 300)
	v.SetDefault("PLANNING_STANDARD_SHIPPING_DAYS", defaults.StandardShippingDays)
	v.SetDefault("PLANNING_STANDARD_SHELF_DAYS", defaults.StandardShelfDays)
	v.SetDefault("PLANNING_OVERSIZED_SHIPPING_DAYS", defaults.OversizedShippingDays)
	v.SetDefault("PLANNING_OVERSIZED_SHELF_DAYS", defaults.OversizedShelfDays)
	v.SetDefault("PLANNING_TIMEZONE", "")

	// Read from environment variables
	v.AutomaticEnv()

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			LogLevel:       v.GetString("LOG_LEVEL"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Cache: CacheConfig{
			Enabled:            v.GetBool("CACHE_ENABLED"),
			RedisURL:           v.GetString("REDIS_URL"),
			RedisHost:          v.GetString("REDIS_HOST"),
			RedisPort:          v.GetString("REDIS_PORT"),
			RedisPassword:      v.GetString("REDIS_PASSWORD"),
			RedisDB:            v.GetInt("REDIS_DB"),
			ForecastTTLSeconds: v.GetInt("CACHE_FORECAST_TTL_SECONDS"),
		},
		Planning: PlanningConfig{
			StandardShippingDays:  v.GetInt("PLANNING_STANDARD_SHIPPING_DAYS"),
			StandardShelfDays:     v.GetInt("PLANNING_STANDARD_SHELF_DAYS"),
			OversizedShippingDays: v.GetInt("PLANNING_OVERSIZED_SHIPPING_DAYS"),
			OversizedShelfDays:    v.GetInt("PLANNING_OVERSIZED_SHELF_DAYS"),
			Timezone:              v.GetString("PLANNING_TIMEZONE"),
		},
	}
}

// DSN renders the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return "host=" + c.Host + " port=" + c.Port + " user=" + c.User + " password=" + c.Password +
		" dbname=" + c.DBName + " sslmode=" + c.SSLMode
}
