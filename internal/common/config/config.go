package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	BackendURL  string // апстрим ProEventIQ REST API
	EditorURL   string // адрес editor-сервиса (для gateway)
	DraftDBPath string

	ReadyAttempts  int // попытки опроса апстрима при инициализации
	ReadyBackoffMS int // фиксированная пауза между попытками

	GridUnit float64 // шаг сетки канваса
}

// Load загружает конфигурацию из переменных окружения (и .env, если есть).
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "3000"),
		Environment:    getEnv("ENV", "development"),
		ReadTimeout:    getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout:   getEnvAsInt("WRITE_TIMEOUT", 10),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8080/api/v1"),
		EditorURL:      getEnv("EDITOR_URL", "http://localhost:3001"),
		DraftDBPath:    getEnv("DRAFT_DB_PATH", "data/db/drafts.db"),
		ReadyAttempts:  getEnvAsInt("READY_ATTEMPTS", 5),
		ReadyBackoffMS: getEnvAsInt("READY_BACKOFF_MS", 500),
		GridUnit:       getEnvAsFloat("GRID_UNIT", 20),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
