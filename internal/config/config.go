package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageMongo  = "mongo"

	InventoryHTTP   = "http"
	InventoryGRPC   = "grpc"
	InventoryMemory = "memory"
)

// MaxSnapshotTTL is the longest expiry a Mongo TTL index can hold (int32 seconds).
const MaxSnapshotTTL = math.MaxInt32 * time.Second

// Config is shared by both binaries. Values come from defaults, then the
// optional YAML file named by CONFIG_FILE, then the environment.
type Config struct {
	HTTPPort      string `yaml:"http_port"`
	InventoryPort string `yaml:"inventory_port"`
	GRPCPort      string `yaml:"grpc_port"`

	Storage     string        `yaml:"storage"`
	StorageKey  string        `yaml:"storage_key"`
	SnapshotTTL time.Duration `yaml:"snapshot_ttl"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`

	Inventory        string        `yaml:"inventory"`
	InventoryURL     string        `yaml:"inventory_url"`
	InventoryAddr    string        `yaml:"inventory_addr"`
	InventoryTimeout time.Duration `yaml:"inventory_timeout"`

	Locale      string `yaml:"locale"`
	Currency    string `yaml:"currency"`
	StrictStock bool   `yaml:"strict_stock"`

	CatalogDBPath string `yaml:"catalog_db_path"`

	LogLevel     string `yaml:"log_level"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`

	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func Default() Config {
	return Config{
		HTTPPort:         "8080",
		InventoryPort:    "3333",
		GRPCPort:         "50053",
		Storage:          StorageMemory,
		StorageKey:       "@RocketShoes:cart",
		RedisAddr:        "localhost:6379",
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "cart_store",
		Inventory:        InventoryHTTP,
		InventoryURL:     "http://localhost:3333",
		InventoryAddr:    "localhost:50053",
		InventoryTimeout: 3 * time.Second,
		Locale:           "pt-BR",
		Currency:         "BRL",
		CatalogDBPath:    "./catalog.db",
		LogLevel:         "info",
		RequestTimeout:   30 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

func Load() (Config, error) {
	cfg := Default()

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.HTTPPort = getEnv("HTTP_PORT", c.HTTPPort)
	c.InventoryPort = getEnv("INVENTORY_PORT", c.InventoryPort)
	c.GRPCPort = getEnv("GRPC_PORT", c.GRPCPort)

	c.Storage = getEnv("STORAGE", c.Storage)
	c.StorageKey = getEnv("STORAGE_KEY", c.StorageKey)
	c.SnapshotTTL = getEnvDuration("SNAPSHOT_TTL", c.SnapshotTTL)

	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getEnv("REDIS_PASSWORD", c.RedisPassword)
	c.RedisDB = getEnvInt("REDIS_DB", c.RedisDB)

	c.MongoURI = getEnv("MONGO_URI", c.MongoURI)
	c.MongoDatabase = getEnv("MONGO_DATABASE", c.MongoDatabase)

	c.Inventory = getEnv("INVENTORY", c.Inventory)
	c.InventoryURL = getEnv("INVENTORY_URL", c.InventoryURL)
	c.InventoryAddr = getEnv("INVENTORY_ADDR", c.InventoryAddr)
	c.InventoryTimeout = getEnvDuration("INVENTORY_TIMEOUT", c.InventoryTimeout)

	c.Locale = getEnv("LOCALE", c.Locale)
	c.Currency = getEnv("CURRENCY", c.Currency)
	c.StrictStock = getEnvBool("STRICT_STOCK", c.StrictStock)

	c.CatalogDBPath = getEnv("DB_PATH", c.CatalogDBPath)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.OTLPEndpoint)

	c.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", c.RequestTimeout)
	c.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
}

func (c Config) Validate() error {
	var errs []error

	switch c.Storage {
	case StorageMemory, StorageRedis, StorageMongo:
	default:
		errs = append(errs, fmt.Errorf("unknown storage %q", c.Storage))
	}
	switch c.Inventory {
	case InventoryHTTP, InventoryGRPC, InventoryMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown inventory transport %q", c.Inventory))
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		errs = append(errs, errors.New("storage_key must not be empty"))
	}
	if c.SnapshotTTL < 0 {
		errs = append(errs, errors.New("snapshot_ttl must not be negative"))
	}
	if c.SnapshotTTL > MaxSnapshotTTL {
		errs = append(errs, fmt.Errorf("snapshot_ttl must not exceed %s", MaxSnapshotTTL))
	}
	if c.InventoryTimeout <= 0 {
		errs = append(errs, errors.New("inventory_timeout must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request_timeout must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown_timeout must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); strings.TrimSpace(value) != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}
