// Package config は環境変数からアプリケーション設定を読み込みます。
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// サポートするストアドライバ
const (
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// Config はサーバー起動に必要な設定値をまとめた構造体です。
type Config struct {
	Port string

	StoreDriver     string
	MongoURI        string
	MongoDB         string
	MongoCollection string

	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string

	SQLitePath string

	PublicDir      string
	AllowOrigins   []string
	ConnectTimeout time.Duration
}

// Load は .env (存在すれば) と環境変数から Config を構築します。
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}
	return FromEnv()
}

// FromEnv は現在の環境変数のみから Config を構築します。
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "3000"),
		StoreDriver:     getEnv("STORE_DRIVER", DriverMongo),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "todo"),
		MongoCollection: getEnv("MONGO_COLLECTION", "todos"),
		DBUser:          os.Getenv("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          os.Getenv("DB_PORT"),
		DBName:          os.Getenv("DB_NAME"),
		SQLitePath:      getEnv("SQLITE_PATH", "todo.db"),
		PublicDir:       getEnv("PUBLIC_DIR", "public"),
		AllowOrigins:    splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
	}

	switch cfg.StoreDriver {
	case DriverMongo, DriverMySQL, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	timeout, err := time.ParseDuration(getEnv("CONNECT_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CONNECT_TIMEOUT: %w", err)
	}
	cfg.ConnectTimeout = timeout

	return cfg, nil
}

// Addr は http.Server に渡すリッスンアドレスを返します。
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
