package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config reúne lo que el servicio lee del entorno.
type Config struct {
	Addr        string
	PostgresDSN string
	SQLitePath  string
	LogLevel    string
	LogFormat   string
	AppName     string
}

// Load intenta cargar .env del directorio actual (si existe) y después lee
// el entorno. El .env nunca pisa variables ya seteadas.
func Load() Config {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	return FromEnv()
}

func FromEnv() Config {
	addr := ":8080"
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		addr = ":" + v
	}

	return Config{
		Addr:        addr,
		PostgresDSN: os.Getenv("DB_DSN"),
		SQLitePath:  os.Getenv("SQLITE_PATH"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		LogFormat:   os.Getenv("LOG_FORMAT"),
		AppName:     os.Getenv("APP_NAME"),
	}
}
