package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8080"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, SourceStatic, cfg.Catalog.Source)
	assert.Equal(t, language.English, cfg.Catalog.Locale)
	assert.Equal(t, time.Second, cfg.Catalog.RefreshDebounce)
	assert.Equal(t, 10*time.Minute, cfg.Cache.CatalogTTL)
	assert.Equal(t, 24*time.Hour, cfg.Cart.SessionTTL)
	assert.True(t, cfg.Redis.Enabled)
	assert.True(t, cfg.NATS.Enabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "Postgres")
	t.Setenv("CATALOG_LOCALE", "pt-BR")
	t.Setenv("CART_SESSION_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com , https://admin.example.com")
	t.Setenv("DB_NAME", "catalog")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourcePostgres, cfg.Catalog.Source)
	assert.Equal(t, language.BrazilianPortuguese, cfg.Catalog.Locale)
	assert.Equal(t, 30*time.Minute, cfg.Cart.SessionTTL)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.Server.AllowedOrigins)
	assert.Contains(t, cfg.GetDSN(), "dbname=catalog")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SERVER_READ_TIMEOUT", "soon"},
		{"CACHE_TTL_CATALOG", "-"},
		{"CATALOG_SOURCE", "s3"},
		{"CATALOG_LOCALE", "not a locale!"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestGetRedisAddr(t *testing.T) {
	cfg := &Config{Redis: RedisConfig{Host: "cache", Port: "6380"}}
	assert.Equal(t, "cache:6380", cfg.GetRedisAddr())
}
