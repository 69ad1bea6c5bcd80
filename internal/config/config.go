package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Storage     StorageConfig
	Database    DatabaseConfig
	Catalog     CatalogConfig
	Channels    ChannelsConfig
	RemoteLog   RemoteLogConfig
	Admin       AdminConfig
	LogLevel    string
}

type StorageConfig struct {
	// Driver selects the ledger backend: "file" or "postgres".
	Driver  string
	DataDir string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CatalogConfig struct {
	// Source is an http(s) URL or a local file path to the product list.
	Source string
}

// ChannelsConfig holds the shop's own contact endpoints. Orders are
// always handed off to these, never to the customer's handles.
type ChannelsConfig struct {
	WhatsAppNumber   string
	FacebookPageURL  string
	InstagramPageURL string
}

type RemoteLogConfig struct {
	// ScriptURL is the spreadsheet web app endpoint. Empty disables mirroring.
	ScriptURL string
}

type AdminConfig struct {
	// APIKeyHash is the bcrypt hash of the admin bearer key. Empty
	// disables the admin routes.
	APIKeyHash string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("STORAGE_DRIVER", "file")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Storage: StorageConfig{
			Driver:  getEnvOrViper("STORAGE_DRIVER", "file"),
			DataDir: getEnvOrViper("DATA_DIR", "data"),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "activshop"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Catalog: CatalogConfig{
			Source: getEnvOrViper("CATALOG_SOURCE", "data/products.json"),
		},
		Channels: ChannelsConfig{
			WhatsAppNumber:   getEnvOrViper("WHATSAPP_NUMBER", "22948740015"),
			FacebookPageURL:  getEnvOrViper("FACEBOOK_PAGE_URL", "https://www.facebook.com/share/v/1GZFPuWTcd/"),
			InstagramPageURL: getEnvOrViper("INSTAGRAM_PAGE_URL", "https://www.instagram.com/activshop_bj"),
		},
		RemoteLog: RemoteLogConfig{
			ScriptURL: getEnvOrViper("REMOTE_LOG_URL", ""),
		},
		Admin: AdminConfig{
			APIKeyHash: getEnvOrViper("ADMIN_API_KEY_HASH", ""),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Storage.Driver != "file" && cfg.Storage.Driver != "postgres" {
		return nil, fmt.Errorf("STORAGE_DRIVER must be file or postgres, got %q", cfg.Storage.Driver)
	}
	if cfg.Channels.WhatsAppNumber == "" {
		return nil, fmt.Errorf("WHATSAPP_NUMBER is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
