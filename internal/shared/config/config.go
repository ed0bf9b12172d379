package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	PublicBaseURL   string
	CORSAllowOrigin []string
	Env             string
	DatabaseURL     string
	RedisURL        string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	S3KMSKeyID      string
	UploadsBucket   string
	UploadsPrefix   string

	ScorerMode    string // "http" or "process"
	ScorerBaseURL string
	ScorerCommand string

	AdzunaBaseURL string
	AdzunaCountry string
	AdzunaAppID   string
	AdzunaAPIKey  string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		PublicBaseURL:   strings.TrimSuffix(getEnv("PUBLIC_BASE_URL", ""), "/"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		Env:             env,
		DatabaseURL:     dbURL,
		RedisURL:        getEnv("REDIS_URL", ""),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		S3KMSKeyID:      getEnv("S3_KMS_KEY_ID", ""),
		UploadsBucket:   getEnv("UPLOADS_S3_BUCKET", ""),
		UploadsPrefix:   getEnv("UPLOADS_S3_PREFIX", "resumes/"),

		ScorerMode:    normalizeScorerMode(getEnv("SCORER_MODE", "http")),
		ScorerBaseURL: getEnv("SCORER_BASE_URL", "http://localhost:5000"),
		ScorerCommand: getEnv("SCORER_COMMAND", ""),

		AdzunaBaseURL: getEnv("ADZUNA_BASE_URL", "https://api.adzuna.com/v1/api/jobs"),
		AdzunaCountry: getEnv("ADZUNA_COUNTRY", "in"),
		AdzunaAppID:   getEnv("ADZUNA_APP_ID", ""),
		AdzunaAPIKey:  getEnv("ADZUNA_API_KEY", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:      getEnv("UI_REDIRECT_URL", ""),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeScorerMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "process", "subprocess", "local":
		return "process"
	default:
		return "http"
	}
}
