package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"salesdash/internal/ingest"
)

type Config struct {
	Server   ServerConfig
	Dataset  DatasetConfig
	Pipeline PipelineConfig
	Logger   LoggerConfig
	Security SecurityConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatasetConfig selects the input source. When UseSample is set (or CSVFile
// is empty) the server starts on generated sample data.
type DatasetConfig struct {
	CSVFile    string
	UseSample  bool
	SampleDays int
	Columns    ingest.ColumnMapping
}

// PipelineConfig carries the aggregation constants the dashboard leaves
// configurable.
type PipelineConfig struct {
	TopN          int
	GeoPrecision  int
	RollingWindow int
}

type LoggerConfig struct {
	Level  string
	Format string
}

type SecurityConfig struct {
	EnableRateLimit bool
	RateLimitRPS    int
	RateLimitBurst  int
	AllowedOrigins  []string
	TrustedProxies  []string
}

func Load() (*Config, error) {
	// .env is optional; real deployments configure the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnvString("SERVER_HOST", "localhost"),
			Port:            getEnvInt("SERVER_PORT", 8084),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Dataset: DatasetConfig{
			CSVFile:    getEnvString("DATA_CSV_FILE", ""),
			UseSample:  getEnvBool("DATA_USE_SAMPLE", true),
			SampleDays: getEnvInt("DATA_SAMPLE_DAYS", ingest.DefaultSampleDays),
			Columns:    loadColumnMapping(),
		},
		Pipeline: PipelineConfig{
			TopN:          getEnvInt("PIPELINE_TOP_N", 10),
			GeoPrecision:  getEnvInt("PIPELINE_GEO_PRECISION", 2),
			RollingWindow: getEnvInt("PIPELINE_ROLLING_WINDOW", 7),
		},
		Logger: LoggerConfig{
			Level:  getEnvString("LOG_LEVEL", "info"),
			Format: getEnvString("LOG_FORMAT", "json"),
		},
		Security: SecurityConfig{
			EnableRateLimit: getEnvBool("SECURITY_RATE_LIMIT_ENABLED", true),
			RateLimitRPS:    getEnvInt("SECURITY_RATE_LIMIT_RPS", 100),
			RateLimitBurst:  getEnvInt("SECURITY_RATE_LIMIT_BURST", 10),
			AllowedOrigins:  getEnvStringSlice("SECURITY_ALLOWED_ORIGINS", []string{"http://localhost:8084"}),
			TrustedProxies:  getEnvStringSlice("SECURITY_TRUSTED_PROXIES", []string{"127.0.0.1"}),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadColumnMapping starts from the canonical column names and applies
// per-field overrides, so arbitrary upload schemas can be mapped without
// code changes.
func loadColumnMapping() ingest.ColumnMapping {
	m := ingest.DefaultMapping()
	m.Date = getEnvString("COLUMN_DATE", m.Date)
	m.Product = getEnvString("COLUMN_PRODUCT", m.Product)
	m.Region = getEnvString("COLUMN_REGION", m.Region)
	m.City = getEnvString("COLUMN_CITY", m.City)
	m.Lat = getEnvString("COLUMN_LATITUDE", m.Lat)
	m.Lon = getEnvString("COLUMN_LONGITUDE", m.Lon)
	m.UnitPrice = getEnvString("COLUMN_UNIT_PRICE", m.UnitPrice)
	m.Quantity = getEnvString("COLUMN_QUANTITY", m.Quantity)
	m.OrderID = getEnvString("COLUMN_ORDER_ID", m.OrderID)
	return m
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}
	if !c.Dataset.UseSample && c.Dataset.CSVFile == "" {
		return fmt.Errorf("no input: set DATA_CSV_FILE or enable DATA_USE_SAMPLE")
	}
	if c.Dataset.SampleDays <= 0 {
		return fmt.Errorf("sample days must be positive, got %d", c.Dataset.SampleDays)
	}
	if c.Pipeline.TopN <= 0 {
		return fmt.Errorf("top-N must be positive, got %d", c.Pipeline.TopN)
	}
	if c.Pipeline.GeoPrecision < 0 || c.Pipeline.GeoPrecision > 6 {
		return fmt.Errorf("geo precision must be between 0 and 6 decimal places, got %d", c.Pipeline.GeoPrecision)
	}
	if c.Pipeline.RollingWindow <= 0 {
		return fmt.Errorf("rolling window must be positive, got %d", c.Pipeline.RollingWindow)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}
	validLogFormats := []string{"json", "text"}
	if !contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	if c.Security.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit RPS must be positive")
	}
	if c.Security.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}
	return nil
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
