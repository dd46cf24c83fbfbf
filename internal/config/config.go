// Package config loads application configuration from environment
// variables. Required values are enforced with must(); optional ones fall
// back to sensible defaults so a bare `go run ./cmd/server` works against
// the file-backed store.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Store backends selectable through STORE_BACKEND.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendMySQL  = "mysql"
	BackendRedis  = "redis"
)

// Config holds all runtime configuration values.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	JWTSecret    string // secret used to sign access tokens
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing

	StoreBackend string // memory | file | mysql | redis
	StoreFile    string // path of the JSON document (file backend)
	StorePrefix  string // key prefix (redis backend)

	DBUser string // database username (mysql backend)
	DBPass string // database password, empty allowed
	DBHost string // database host
	DBPort string // database port
	DBName string // database name

	OrderConsumer bool // run the order.confirmed log consumer
}

// Load reads the environment into a Config. Missing required variables are
// fatal; the MySQL block is only required when that backend is selected.
func Load() Config {
	cfg := Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:   mustInt("BCRYPT_COST"),

		StoreBackend: strings.ToLower(getenv("STORE_BACKEND", BackendFile)),
		StoreFile:    getenv("STORE_FILE", "data/storefront.json"),
		StorePrefix:  getenv("STORE_PREFIX", "storefront"),

		OrderConsumer: getenv("ORDER_CONSUMER", "false") == "true",
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendFile, BackendRedis:
	case BackendMySQL:
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS")
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	default:
		log.Fatalf("unknown STORE_BACKEND: %q", cfg.StoreBackend)
	}
	return cfg
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is must() plus integer conversion.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
