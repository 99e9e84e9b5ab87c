package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "@RocketShoes:cart", cfg.StorageKey)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "pt-BR", cfg.Locale)
	assert.False(t, cfg.StrictStock)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORAGE", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SNAPSHOT_TTL", "24h")
	t.Setenv("STRICT_STOCK", "true")
	t.Setenv("INVENTORY", "grpc")
	t.Setenv("INVENTORY_TIMEOUT", "750ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, StorageRedis, cfg.Storage)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 24*time.Hour, cfg.SnapshotTTL)
	assert.True(t, cfg.StrictStock)
	assert.Equal(t, InventoryGRPC, cfg.Inventory)
	assert.Equal(t, 750*time.Millisecond, cfg.InventoryTimeout)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("REDIS_DB", "three")
	t.Setenv("STRICT_STOCK", "maybe")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.RedisDB)
	assert.False(t, cfg.StrictStock)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage: mongo
mongo_database: carts
currency: USD
locale: en
inventory_timeout: 2s
strict_stock: true
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("CURRENCY", "EUR")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageMongo, cfg.Storage)
	assert.Equal(t, "carts", cfg.MongoDatabase)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, 2*time.Second, cfg.InventoryTimeout)
	assert.True(t, cfg.StrictStock)
	// env wins over the file
	assert.Equal(t, "EUR", cfg.Currency)
	// untouched keys keep their defaults
	assert.Equal(t, "8080", cfg.HTTPPort)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.ErrorContains(t, err, "read config file")
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [redis"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	_, err := Load()
	assert.ErrorContains(t, err, "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "unknown storage", mutate: func(c *Config) { c.Storage = "etcd" }, errMsg: `unknown storage "etcd"`},
		{name: "unknown inventory", mutate: func(c *Config) { c.Inventory = "smtp" }, errMsg: `unknown inventory transport "smtp"`},
		{name: "empty key", mutate: func(c *Config) { c.StorageKey = " " }, errMsg: "storage_key must not be empty"},
		{name: "negative ttl", mutate: func(c *Config) { c.SnapshotTTL = -time.Second }, errMsg: "snapshot_ttl must not be negative"},
		{name: "ttl too long", mutate: func(c *Config) { c.SnapshotTTL = MaxSnapshotTTL + time.Second }, errMsg: "snapshot_ttl must not exceed"},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, errMsg: "request_timeout must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}

	assert.NoError(t, Default().Validate())

	cfg := Default()
	cfg.SnapshotTTL = MaxSnapshotTTL
	assert.NoError(t, cfg.Validate())
}
