package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Azure     AzureConfig
	Analytics AnalyticsConfig
	Logging   LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	Environment     string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// AzureConfig holds Azure service configuration
type AzureConfig struct {
	Storage StorageConfig
}

// StorageConfig holds Azure Blob Storage configuration
type StorageConfig struct {
	AccountName     string
	AccountKey      string
	BlobEndpoint    string
	ReportContainer string
}

// AnalyticsConfig holds tuning parameters for the analytics engine
type AnalyticsConfig struct {
	SnapshotWindowDays int
	HorizonDays        int
	BufferDays         int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdowntimeout", 30*time.Second)

	// Database defaults
	v.SetDefault("database.maxopenconns", 25)
	v.SetDefault("database.maxidleconns", 5)
	v.SetDefault("database.connmaxlifetime", 5*time.Minute)

	// Azure Storage defaults
	v.SetDefault("azure.storage.reportcontainer", "health-reports")

	// Analytics defaults
	v.SetDefault("analytics.snapshotwindowdays", 21)
	v.SetDefault("analytics.horizondays", 30)
	v.SetDefault("analytics.bufferdays", 7)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.environment", "ENV", "ENVIRONMENT")

	// Database
	v.BindEnv("database.url", "DATABASE_URL")

	// Azure Storage
	v.BindEnv("azure.storage.accountname", "AZURE_STORAGE_ACCOUNT_NAME")
	v.BindEnv("azure.storage.accountkey", "AZURE_STORAGE_ACCOUNT_KEY")
	v.BindEnv("azure.storage.blobendpoint", "AZURE_STORAGE_BLOB_ENDPOINT")
	v.BindEnv("azure.storage.reportcontainer", "AZURE_STORAGE_REPORT_CONTAINER")

	// Analytics
	v.BindEnv("analytics.snapshotwindowdays", "ANALYTICS_SNAPSHOT_WINDOW_DAYS")
	v.BindEnv("analytics.horizondays", "ANALYTICS_HORIZON_DAYS")
	v.BindEnv("analytics.bufferdays", "ANALYTICS_BUFFER_DAYS")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}

	if c.Analytics.SnapshotWindowDays <= 0 {
		return fmt.Errorf("analytics.snapshotwindowdays must be positive")
	}

	if c.Analytics.HorizonDays <= 0 {
		return fmt.Errorf("analytics.horizondays must be positive")
	}

	if c.Analytics.BufferDays < 0 || c.Analytics.BufferDays >= c.Analytics.HorizonDays {
		return fmt.Errorf("analytics.bufferdays must be between 0 and analytics.horizondays")
	}

	return nil
}

// HasAzureStorage reports whether real blob storage credentials are set.
func (c *Config) HasAzureStorage() bool {
	return c.Azure.Storage.AccountName != "" && c.Azure.Storage.AccountKey != ""
}
