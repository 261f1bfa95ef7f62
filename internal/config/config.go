// Package config loads application configuration from the environment.
package config

import "os"

// Config holds the runtime configuration.
type Config struct {
	SupabaseURL string
	SupabaseKey string
	CatalogFile string
	CacheDir    string
	LogLevel    string
	LogFile     string
	DevMode     bool
}

// Load reads configuration from environment variables, applying defaults.
func Load() *Config {
	return &Config{
		SupabaseURL: getEnv("SUPABASE_URL", ""),
		SupabaseKey: getEnv("SUPABASE_KEY", ""),
		CatalogFile: getEnv("CATALOG_FILE", ""),
		CacheDir:    getEnv("CACHE_DIR", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", ""),
		DevMode:     os.Getenv("COLLAGE_DEV") == "1",
	}
}

// HasRemoteCatalog reports whether Supabase credentials are configured.
func (c *Config) HasRemoteCatalog() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
