package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr      string
	DBPath        string
	ChecklistPath string
	JWTSecret     string
	AdminUser     string
	AdminPass     string
	GelfAddr      string
	MaxUploadMB   int64
}

func Load() *Config {
	// Local development reads .env when present; deployed instances rely
	// on real environment variables.
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:      getEnv("CHECKLIST_ADDR", ":8080"),
		DBPath:        getEnv("CHECKLIST_DB", "equipcheck.db"),
		ChecklistPath: getEnv("CHECKLIST_CONFIG", "checklist.json"),
		JWTSecret:     getEnv("CHECKLIST_JWT_SECRET", "equipcheck-dev-secret-change-me"),
		AdminUser:     getEnv("CHECKLIST_ADMIN_USER", "admin"),
		AdminPass:     getEnv("CHECKLIST_ADMIN_PASS", "admin123"),
		GelfAddr:      getEnv("CHECKLIST_GELF_ADDR", ""),
		MaxUploadMB:   getEnvInt64("CHECKLIST_MAX_UPLOAD_MB", 12),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
