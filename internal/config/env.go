package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr   string
	GinMode   string
	LogFile   string
	JWTSecret string

	DBUser string
	DBPass string
	DBHost string
	DBName string
}

// LoadEnv reads configuration from the environment, loading a local
// .env file first when present.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr:   getenv("APP_ADDR", ":8080"),
		GinMode:   getenv("GIN_MODE", ""),
		LogFile:   getenv("LOG_FILE", "./logs/app.log"),
		JWTSecret: getenv("JWT_SECRET", "troque-esta-chave"),
		DBUser:    getenv("DB_USER", "root"),
		DBPass:    getenv("DB_PASS", ""),
		DBHost:    getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:    getenv("DB_NAME", "gestao_transportes"),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
