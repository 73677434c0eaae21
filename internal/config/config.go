package config

import (
	"os"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Dataset
	DatasetDir     string // local directory containing data_0.csv .. data_9.csv
	DatasetBaseURL string // optional upstream base URL; takes precedence over DatasetDir
	PreloadShards  bool   // load all shards at startup instead of on first use

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Recallboard"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:            getEnv("ENV", "development"),
		ServerAddr:     getEnv("SERVER_ADDR", ":3000"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:3000"),
		DatasetDir:     getEnv("DATASET_DIR", "split_data"),
		DatasetBaseURL: getEnv("DATASET_BASE_URL", ""),
		PreloadShards:  getEnv("PRELOAD_SHARDS", "") != "",
		TLSEnabled:     getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
		CORSOrigins:    getEnv("CORS_ORIGINS", ""),

		SiteTitle:   getEnv("SITE_TITLE", "Recallboard"),
		SiteTagline: getEnv("SITE_TAGLINE", "Check your vehicle for open recall notices"),
		SiteFooter:  getEnv("SITE_FOOTER", "Data source: data.gov.il"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
