package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config хранит все настройки демона уведомлений
type Config struct {
	Port          string
	BrokerURL     string
	APIBaseURL    string
	APIToken      string
	Storage       string // sqlite | redis | memory
	StoragePath   string
	RedisAddr     string
	AllowedOrigin string
	UserID        string
}

// Load читает .env (если есть) и возвращает заполненный Config
func Load() (*Config, error) {
	// Попробуем загрузить файл .env — если его нет, просто пропускаем
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8085"
	}

	broker := os.Getenv("BROKER_URL")
	if broker == "" {
		return nil, fmt.Errorf("BROKER_URL must be set")
	}

	apiBase := os.Getenv("API_BASE_URL")
	if apiBase == "" {
		return nil, fmt.Errorf("API_BASE_URL must be set")
	}

	storage := os.Getenv("STORAGE")
	if storage == "" {
		storage = "sqlite"
	}
	switch storage {
	case "sqlite", "redis", "memory":
	default:
		return nil, fmt.Errorf("unknown STORAGE %q", storage)
	}

	storagePath := os.Getenv("STORAGE_PATH")
	if storagePath == "" {
		storagePath = "panascoop.db"
	}

	return &Config{
		Port:          port,
		BrokerURL:     broker,
		APIBaseURL:    apiBase,
		APIToken:      os.Getenv("API_TOKEN"),
		Storage:       storage,
		StoragePath:   storagePath,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
		UserID:        os.Getenv("USER_ID"),
	}, nil
}
