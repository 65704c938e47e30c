package config

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "CORS_ALLOWED_ORIGINS", "STORE_BACKEND", "DATABASE_DRIVER", "DATABASE_PATH",
		"DATABASE_DSN", "SQL_LOG_LEVEL", "SERVICE_NAME", "METRICS_EXPORTER",
		"METRICS_COUNT_REQUESTS", "HEALTH_FREE_MEMORY_THRESHOLD",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	assert.NilError(t, err)

	assert.Equal(t, cfg.Port, "8080")
	assert.Equal(t, cfg.StoreBackend, StoreBackendGorm)
	assert.Equal(t, cfg.DatabaseDriver, DriverSQLite)
	assert.Equal(t, cfg.DatabasePath, "persons.db")
	assert.Equal(t, cfg.MetricsExporter, "prometheus")
	assert.Equal(t, cfg.CountRequests, false)
	assert.Equal(t, cfg.FreeMemoryThreshold, uint64(20_000_000))
	assert.DeepEqual(t, cfg.AllowedOrigins, []string{"http://localhost:5173"})
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example ,")
	t.Setenv("STORE_BACKEND", "SQL")
	t.Setenv("DATABASE_PATH", "/tmp/p.db")
	t.Setenv("METRICS_EXPORTER", "none")
	t.Setenv("METRICS_COUNT_REQUESTS", "true")
	t.Setenv("HEALTH_FREE_MEMORY_THRESHOLD", "1000")

	cfg, err := LoadConfig()
	assert.NilError(t, err)

	assert.Equal(t, cfg.Port, "9090")
	assert.Equal(t, cfg.StoreBackend, StoreBackendSQL)
	assert.Equal(t, cfg.DatabasePath, "/tmp/p.db")
	assert.Equal(t, cfg.MetricsExporter, "none")
	assert.Equal(t, cfg.CountRequests, true)
	assert.Equal(t, cfg.FreeMemoryThreshold, uint64(1000))
	assert.DeepEqual(t, cfg.AllowedOrigins, []string{"http://a.example", "http://b.example"})
}

func TestLoadConfigInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("HEALTH_FREE_MEMORY_THRESHOLD", "lots")
	t.Setenv("METRICS_COUNT_REQUESTS", "maybe")

	cfg, err := LoadConfig()
	assert.NilError(t, err)
	assert.Equal(t, cfg.FreeMemoryThreshold, uint64(20_000_000))
	assert.Equal(t, cfg.CountRequests, false)
}

func TestValidate(t *testing.T) {
	base := Config{
		StoreBackend:    StoreBackendGorm,
		DatabaseDriver:  DriverSQLite,
		DatabasePath:    "persons.db",
		SQLLogLevel:     "warn",
		MetricsExporter: "prometheus",
	}
	assert.NilError(t, base.Validate())

	cases := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"unknown backend", func(c *Config) { c.StoreBackend = "mongo" }, "unknown store backend"},
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "oracle" }, "unknown database driver"},
		{"postgres without dsn", func(c *Config) { c.DatabaseDriver = DriverPostgres }, "DATABASE_DSN is required"},
		{"sql backend on mysql", func(c *Config) {
			c.StoreBackend = StoreBackendSQL
			c.DatabaseDriver = DriverMySQL
			c.DatabaseDSN = "user@tcp(localhost)/persons"
		}, "only supports driver"},
		{"unknown log level", func(c *Config) { c.SQLLogLevel = "loud" }, "unknown SQL log level"},
		{"unknown exporter", func(c *Config) { c.MetricsExporter = "statsd" }, "unknown metrics exporter"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mutate(&c)
			err := c.Validate()
			assert.Check(t, is.ErrorContains(err, tc.want))
		})
	}
}
