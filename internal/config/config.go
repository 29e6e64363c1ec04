package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Document store
	StoreDriver      string
	DBURI            string
	DBName           string // Postgres schema holding the collections
	CollectionPrefix string
	// Logging
	LogDir      string // empty disables the log file
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      env,
		CORSOrigins:      getEnv("CORS_ORIGINS", "http://localhost:3000"),
		StoreDriver:      strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		DBURI:            getEnv("DB_URI", ""),
		DBName:           getEnv("DB_NAME", ""),
		CollectionPrefix: getCollectionPrefix(env),
		LogDir:           getEnv("LOG_DIR", ""),
		LogMaxFiles:      getEnvInt("LOG_MAX_FILES", 10),
	}
}

// Validate reports settings that would make the server unusable. Missing
// database settings are not checked here; the store reports them on first use.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", c.StoreDriver, StoreDriverPostgres, StoreDriverMemory)
	}
	if c.LogMaxFiles < 1 {
		return fmt.Errorf("LOG_MAX_FILES must be at least 1, got %d", c.LogMaxFiles)
	}
	return nil
}

// IsProduction reports whether destructive tooling must be refused.
func (c *Config) IsProduction() bool {
	return c.Environment == "prod"
}

// LogLevel returns Debug outside production and Info in production.
func (c *Config) LogLevel() slog.Level {
	if c.IsProduction() {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// CORSOriginList splits CORS_ORIGINS on commas.
func (c *Config) CORSOriginList() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// getCollectionPrefix returns the collection prefix based on environment
func getCollectionPrefix(env string) string {
	// Allow manual override via COLLECTION_PREFIX env var
	if prefix := os.Getenv("COLLECTION_PREFIX"); prefix != "" {
		return prefix
	}

	// Auto-generate based on environment
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
