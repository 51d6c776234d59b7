package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not configured (secrets file or environment)")

type Config struct {
	// Server
	Port string
	Env  string

	// Gemini AI
	GeminiAPIKey          string
	GeminiAPIKeySource    string
	GeminiTextModel       string
	GeminiMultimodalModel string
	GeminiTemperature     float32
	GeminiConcurrentReqs  int

	// Uploads
	MaxUploadMB int
	TempDir     string

	// Sessions
	SessionSecret     string
	SessionTTL        time.Duration
	RequestsPerMinute int

	// Secrets
	SecretsPath string

	// Frontend
	FrontendURL string
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                  getEnvOrDefault("PORT", "8080"),
		Env:                   getEnvOrDefault("ENV", "development"),
		GeminiTextModel:       getEnvOrDefault("GEMINI_TEXT_MODEL", "gemini-2.0-flash"),
		GeminiMultimodalModel: getEnvOrDefault("GEMINI_MULTIMODAL_MODEL", "gemini-1.5-pro"),
		GeminiTemperature:     float32(getEnvAsFloatOrDefault("GEMINI_TEMPERATURE", 0.7)),
		GeminiConcurrentReqs:  getEnvAsIntOrDefault("GEMINI_CONCURRENT_REQUESTS", 5),
		MaxUploadMB:           getEnvAsIntOrDefault("MAX_UPLOAD_MB", 25),
		TempDir:               getEnvOrDefault("TEMP_DIR", os.TempDir()),
		SessionTTL:            time.Duration(getEnvAsIntOrDefault("SESSION_TTL_MINUTES", 120)) * time.Minute,
		RequestsPerMinute:     getEnvAsIntOrDefault("REQUESTS_PER_MINUTE", 30),
		SecretsPath:           getEnvOrDefault("SECRETS_PATH", "secrets.toml"),
		FrontendURL:           getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	key, source, err := resolveAPIKey(cfg.SecretsPath)
	if err != nil {
		return nil, err
	}
	cfg.GeminiAPIKey = key
	cfg.GeminiAPIKeySource = source

	secret, err := resolveSessionSecret(cfg.IsDevelopment())
	if err != nil {
		return nil, err
	}
	cfg.SessionSecret = secret

	return cfg, nil
}

// resolveAPIKey checks the secrets file first, then the environment. In
// development the environment also holds whatever .env provided.
func resolveAPIKey(secretsPath string) (string, string, error) {
	if key, err := readSecret(secretsPath, "GEMINI_API_KEY"); err == nil && key != "" {
		return key, "secrets", nil
	} else if err != nil && !errors.Is(err, errSecretsFileMissing) {
		log.Printf("⚠ Could not read secrets file %s: %v", secretsPath, err)
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key, "env", nil
	}

	return "", "", ErrMissingAPIKey
}

func resolveSessionSecret(development bool) (string, error) {
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		return secret, nil
	}
	if !development {
		return "", fmt.Errorf("required environment variable SESSION_SECRET is not set")
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	log.Println("⚠ SESSION_SECRET not set, using a random per-process secret (DEV MODE)")
	return hex.EncodeToString(buf), nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
