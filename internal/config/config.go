package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the settings for the API server and the operational tools.
// Everything comes from the environment; a .env file in the working
// directory is loaded first if present.
type Config struct {
	HTTP struct {
		Port int
	}
	// Store selects the document store backend: "mongo", "postgres" or
	// "memory". Mongo is the default; memory is the seeded fallback used
	// when no store is reachable.
	Store struct {
		Driver string
	}
	Mongo struct {
		URI      string
		Database string
	}
	Database DatabaseConfig
	CORS     struct {
		AllowedOrigins []string
	}
	FrontendDir string
	BackupDir   string
	Log         struct {
		Level  string
		Format string
	}
}

// DatabaseConfig is the PostgreSQL connection configuration used when
// STORE_DRIVER=postgres.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

func Load() *Config {
	// Same bootstrap as the original deployment: a local .env overrides
	// nothing already exported in the environment.
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.HTTP.Port = parseInt(getEnv("PORT", "5000"), 5000)

	cfg.Store.Driver = getEnv("STORE_DRIVER", "mongo")
	cfg.Mongo.URI = getEnv("MONGODB_URI", "mongodb://localhost:27017")
	cfg.Mongo.Database = getEnv("MONGODB_DATABASE", "edge_ai_devices")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "edge_ai_devices")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.CORS.AllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS",
		"http://localhost:8000,http://localhost:5000,http://127.0.0.1:8000,http://127.0.0.1:5000"))

	cfg.FrontendDir = getEnv("FRONTEND_DIR", "frontend")
	cfg.BackupDir = getEnv("BACKUP_DIR", "backups")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
