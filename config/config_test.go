package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "LOGGER_LEVEL", "LOGGER_ENCODING"} {
		t.Setenv(key, "")
	}
	cfg := LoadEnv()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "production", cfg.Server.AppEnv)
	assert.False(t, cfg.Server.IsDevelopment())
	assert.Empty(t, cfg.Logger.Level, "the logger preset picks the level")
	assert.Empty(t, cfg.Logger.Encoding)
	assert.True(t, cfg.Logger.DisableStacktrace)
	assert.Equal(t, "jewelry_catalog", cfg.Postgres.DBName)
	assert.Equal(t, 10, cfg.Postgres.MaxOpenConns)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("HTTP_READ_TIMEOUT", "30")
	t.Setenv("HTTP_WRITE_TIMEOUT", "not-a-number")
	t.Setenv("LOGGER_LEVEL", "debug")
	t.Setenv("LOGGER_DISABLE_CALLER", "true")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "25")

	cfg := LoadEnv()

	assert.False(t, cfg.Server.IsDevelopment())
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, 15, cfg.Server.WriteTimeout, "unparseable values fall back to the default")
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.Logger.DisableCaller)
	assert.Equal(t, 25, cfg.Postgres.MaxOpenConns)
}

func TestDSN(t *testing.T) {
	p := PostgresConfig{
		Host:     "db",
		Port:     "5433",
		User:     "shop",
		Password: "p@ss word",
		DBName:   "catalog",
		SSLMode:  "require",
	}
	assert.Equal(t, "postgres://shop:p%40ss%20word@db:5433/catalog?sslmode=require", p.DSN())

	p.URL = "postgres://override@elsewhere/db"
	assert.Equal(t, "postgres://override@elsewhere/db", p.DSN())
}
