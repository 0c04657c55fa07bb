package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	Env            string
	DBPath         string
	UploadDir      string
	MaxUploadBytes int64
	CORSOrigins    string
	LogLevel       string
}

var AppConfig *Config

func Load() {
	_ = godotenv.Load()

	AppConfig = &Config{
		Port:           GetEnv("PORT", "3000"),
		Env:            GetEnv("ENV", "development"),
		DBPath:         GetEnv("DB_PATH", "./data/backoffice.db"),
		UploadDir:      GetEnv("UPLOAD_DIR", "./data/uploads"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),
		CORSOrigins:    GetEnv("CORS_ORIGINS", "*"),
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
