package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	StoreBackendGorm = "gorm"
	StoreBackendSQL  = "sql"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

const (
	defaultPort                = "8080"
	defaultDatabasePath        = "persons.db"
	defaultSQLLogLevel         = "warn"
	defaultServiceName         = "persons"
	defaultMetricsExporter     = "prometheus"
	defaultFreeMemoryThreshold = 20_000_000
)

type Config struct {
	// http listener
	Port           string
	AllowedOrigins []string

	// storage
	StoreBackend   string // gorm or sql
	DatabaseDriver string // sqlite, postgres or mysql (gorm backend only)
	DatabasePath   string // sqlite file
	DatabaseDSN    string // postgres/mysql connection string
	SQLLogLevel    string

	// observability
	ServiceName         string
	MetricsExporter     string
	CountRequests       bool
	FreeMemoryThreshold uint64
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvBoolOrDefault(envVar string, defaultVal bool) bool {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s'. Using default %t. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvListOrDefault(envVar string, defaultVal []string) []string {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	var out []string
	for _, p := range strings.Split(valStr, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                getEnvOrDefault("PORT", defaultPort),
		AllowedOrigins:      getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		StoreBackend:        strings.ToLower(getEnvOrDefault("STORE_BACKEND", StoreBackendGorm)),
		DatabaseDriver:      strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", DriverSQLite)),
		DatabasePath:        getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
		DatabaseDSN:         os.Getenv("DATABASE_DSN"),
		SQLLogLevel:         strings.ToLower(getEnvOrDefault("SQL_LOG_LEVEL", defaultSQLLogLevel)),
		ServiceName:         getEnvOrDefault("SERVICE_NAME", defaultServiceName),
		MetricsExporter:     strings.ToLower(getEnvOrDefault("METRICS_EXPORTER", defaultMetricsExporter)),
		CountRequests:       getEnvBoolOrDefault("METRICS_COUNT_REQUESTS", false),
		FreeMemoryThreshold: uint64(getEnvIntOrDefault("HEALTH_FREE_MEMORY_THRESHOLD", defaultFreeMemoryThreshold)),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the combination of storage and exporter settings.
func (c Config) Validate() error {
	switch c.StoreBackend {
	case StoreBackendGorm, StoreBackendSQL:
	default:
		return fmt.Errorf("unknown store backend '%s'", c.StoreBackend)
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("database path is required for driver '%s'", c.DatabaseDriver)
		}
	case DriverPostgres, DriverMySQL:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for driver '%s'", c.DatabaseDriver)
		}
	default:
		return fmt.Errorf("unknown database driver '%s'", c.DatabaseDriver)
	}

	// the squirrel store only speaks the sqlite dialect
	if c.StoreBackend == StoreBackendSQL && c.DatabaseDriver != DriverSQLite {
		return fmt.Errorf("store backend '%s' only supports driver '%s', got '%s'", StoreBackendSQL, DriverSQLite, c.DatabaseDriver)
	}

	switch c.SQLLogLevel {
	case "silent", "error", "warn", "info":
	default:
		return fmt.Errorf("unknown SQL log level '%s'", c.SQLLogLevel)
	}

	switch c.MetricsExporter {
	case "prometheus", "stdout", "otlp", "none":
	default:
		return fmt.Errorf("unknown metrics exporter '%s'", c.MetricsExporter)
	}

	return nil
}
