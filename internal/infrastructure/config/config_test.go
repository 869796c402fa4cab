package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "driftwear-storefront", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 4*time.Hour, cfg.Rates.CacheWindow)
	assert.Equal(t, cfg.Rates.CacheWindow, cfg.Rates.RefreshInterval)
	assert.NotEmpty(t, cfg.Rates.PrimaryURL)
	assert.NotEmpty(t, cfg.Rates.BackupURL)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins, "no wildcard CORS default")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults pass in development", func(t *testing.T) {
		assert.NoError(t, valid().validate())
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := valid()
		cfg.Database.MaxIdleConns = cfg.Database.MaxOpenConns + 1
		assert.Error(t, cfg.validate())
	})

	t.Run("cache window below a minute rejected", func(t *testing.T) {
		cfg := valid()
		cfg.Rates.CacheWindow = time.Second
		assert.Error(t, cfg.validate())
	})

	t.Run("production requires commerce credentials", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "production"
		assert.Error(t, cfg.validate())
	})

	t.Run("production rejects short jwt secret", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "production"
		cfg.Commerce.Endpoint = "https://shop.example/api/graphql.json"
		cfg.Commerce.AccessToken = "token"
		cfg.Database.Enabled = true
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.JWT.Secret = "short"
		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "store",
		Password: "p@ss/word",
		DBName:   "storefront",
		SSLMode:  "require",
	}

	dsn := d.DSN()

	require.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word", "password must be escaped")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6379}
	assert.Equal(t, "cache.internal:6379", r.Addr())
}
