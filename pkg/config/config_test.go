package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/corretor-landing-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TemplateCacheTTL)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("TEMPLATE_CACHE_TTL_SECONDS", "30")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorageMemory, cfg.Storage.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.Redis.TemplateCacheTTL)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ProduccionExigeSecreto(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "corretor", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/corretor?sslmode=disable", c.DSN())
}

func TestLoad_PoolDesdeEntorno(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "10")
	t.Setenv("DB_MIN_CONNS", "3")
	t.Setenv("DB_MAX_CONN_LIFETIME_MINUTES", "15")
	t.Setenv("DB_FORCE_IPV4", "false")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, int32(10), cfg.DB.Pool.MaxConns)
	assert.Equal(t, int32(3), cfg.DB.Pool.MinConns)
	assert.Equal(t, 15*time.Minute, cfg.DB.Pool.MaxConnLifetime)
	assert.Equal(t, 30*time.Minute, cfg.DB.Pool.MaxConnIdleTime)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestLoad_PoolInvalido(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "5")
	_, err := config.Load()
	assert.Error(t, err)
}
