package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Views    ViewConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	ViewLogFilePath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
}

type DatabaseConfig struct {
	Driver     string // "postgres" or "memory"
	Connection string
}

type ViewConfig struct {
	NotesSortOrder string        // "newest" or "oldest"
	IdleTTL        time.Duration // keep above the websocket ping period (54s) so streamed views stay open
	NoticeLogSize  int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			ViewLogFilePath:    getEnv("VIEW_LOG_FILE_PATH", "views.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("STORE_DRIVER", "postgres"),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Views: ViewConfig{
			NotesSortOrder: getEnv("NOTES_SORT_ORDER", "newest"),
			IdleTTL:        getEnvAsDuration("VIEW_IDLE_TTL", 30*time.Minute),
			NoticeLogSize:  getEnvAsInt("NOTICE_LOG_SIZE", 100),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// NotesDescending reports whether note lists default to newest first.
func (v ViewConfig) NotesDescending() bool {
	return v.NotesSortOrder != "oldest"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
