package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/daymark-hq/daymark-go/internal/models"
	"github.com/daymark-hq/daymark-go/internal/scoring"
)

type Config struct {
	Environment string            `mapstructure:"environment"`
	LogLevel    string            `mapstructure:"log_level"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Providers   ProvidersConfig   `mapstructure:"providers"`
	Collector   CollectorConfig   `mapstructure:"collector"`
	Scoring     ScoringConfig     `mapstructure:"scoring"`
	DailyStatus DailyStatusConfig `mapstructure:"daily_status"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ProvidersConfig selects and configures the external feed collaborators.
// AirQualityBackend chooses between the OpenAQ and AirNow clients; the
// scoring core never sees which one is in use.
type ProvidersConfig struct {
	AirQualityBackend string `mapstructure:"air_quality_backend"`
	OpenAQURL         string `mapstructure:"openaq_url"`
	AirNowURL         string `mapstructure:"airnow_url"`
	// AirNowAPIKey is injected via the AIRNOW_API_KEY environment variable.
	AirNowAPIKey    string `mapstructure:"airnow_api_key" json:"-" yaml:"-"`
	AlertsURL       string `mapstructure:"alerts_url"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds"`
}

type CollectorConfig struct {
	Interval string          `mapstructure:"interval"`
	Region   string          `mapstructure:"region"`
	Workers  int             `mapstructure:"workers"`
	Counties []models.County `mapstructure:"counties"`
}

// ScoringConfig carries the named defaults that stand in for feeds not yet
// wired up. Persistence and DAS are the documented v1 placeholders; they live
// here so the core never holds inline magic numbers.
type ScoringConfig struct {
	PersistenceDefault float64 `mapstructure:"persistence_default"`
	DASDefault         float64 `mapstructure:"das_default"`
	Wind48hAgoDefault  float64 `mapstructure:"wind_48h_ago_default"`
	HistoryWindow      int     `mapstructure:"history_window"`
	ModelVersion       string  `mapstructure:"model_version"`
}

type DailyStatusConfig struct {
	AQIWeights scoring.AQIWeights `mapstructure:"aqi_weights"`
}

const (
	BackendOpenAQ = "openaq"
	BackendAirNow = "airnow"
)

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv("providers.airnow_api_key", "AIRNOW_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind AIRNOW_API_KEY environment variable: %w", err)
	}

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Environment = strings.ToLower(config.Environment)

	if err := config.validate(); err != nil {
		return nil, err
	}

	if len(config.Collector.Counties) == 0 {
		config.Collector.Counties = models.DefaultFloridaCounties()
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.Providers.AirQualityBackend {
	case BackendOpenAQ, BackendAirNow:
	default:
		return fmt.Errorf("unknown air quality backend %q (want %q or %q)",
			c.Providers.AirQualityBackend, BackendOpenAQ, BackendAirNow)
	}

	if c.Providers.AirQualityBackend == BackendAirNow && c.Environment != "development" && c.Providers.AirNowAPIKey == "" {
		return fmt.Errorf("AIRNOW_API_KEY environment variable is required when the airnow backend is selected")
	}

	if _, err := time.ParseDuration(c.Collector.Interval); err != nil {
		return fmt.Errorf("invalid collector interval: %w", err)
	}

	// The 3-day delta needs four points of history.
	if c.Scoring.HistoryWindow < 4 {
		return fmt.Errorf("scoring history window must be at least 4, got %d", c.Scoring.HistoryWindow)
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	viper.SetDefault("server.port", 8080)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "daymark")
	viper.SetDefault("database.sslmode", "disable")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("providers.air_quality_backend", BackendOpenAQ)
	viper.SetDefault("providers.openaq_url", "https://api.openaq.org")
	viper.SetDefault("providers.airnow_url", "https://www.airnowapi.org")
	viper.SetDefault("providers.airnow_api_key", "")
	viper.SetDefault("providers.alerts_url", "https://api.weather.gov")
	viper.SetDefault("providers.timeout_seconds", 10)
	viper.SetDefault("providers.cache_ttl_seconds", 600)

	viper.SetDefault("collector.interval", "24h")
	viper.SetDefault("collector.region", "FL")
	viper.SetDefault("collector.workers", 4)

	// v1 placeholder inputs for feeds that are not wired up yet: trailing
	// heat-load persistence, operational disruption score and the 48h-ago
	// wind score used by the wind escalation adjustment.
	viper.SetDefault("scoring.persistence_default", 40.0)
	viper.SetDefault("scoring.das_default", 10.0)
	viper.SetDefault("scoring.wind_48h_ago_default", 30.0)
	viper.SetDefault("scoring.history_window", 5)
	viper.SetDefault("scoring.model_version", "fl-v1")

	viper.SetDefault("daily_status.aqi_weights.good", 0)
	viper.SetDefault("daily_status.aqi_weights.moderate", 10)
	viper.SetDefault("daily_status.aqi_weights.unhealthy", 25)
}
