package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverBadger   = "badger"
)

type Config struct {
	Port           string
	FrontendURL    string
	LogLevel       string
	SwaggerEnabled bool

	// Document store
	StoreDriver string
	DBUrl       string
	BadgerPath  string

	// Redis (sessions + events). Optional.
	RedisURL      string
	RedisPassword string

	// Session & identity
	SessionSecret  string
	SessionTTL     time.Duration
	IdPJWKSURL     string
	IdPAudience    string
	IdPIssuers     []string
	IdPDevSecret   string // HS256 ID tokens for local development only
	AdminEmails    []string
	OrgEmailDomain string

	// Jobs
	CompanyName string

	// Scheduler
	AttentionSweepSpec string
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally; production injects env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		SwaggerEnabled: getEnvBool("SWAGGER_ENABLED", true),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverBadger)),
		DBUrl:       getEnv("DATABASE_URL", ""),
		BadgerPath:  getEnv("BADGER_PATH", "./data/badger"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		SessionSecret:  getEnv("SESSION_SECRET", ""),
		SessionTTL:     time.Duration(getEnvInt("SESSION_TTL_HOURS", 12)) * time.Hour,
		IdPJWKSURL:     getEnv("IDP_JWKS_URL", "https://www.googleapis.com/oauth2/v3/certs"),
		IdPAudience:    getEnv("IDP_AUDIENCE", ""),
		IdPIssuers:     getEnvList("IDP_ISSUER", []string{"https://accounts.google.com", "accounts.google.com"}),
		IdPDevSecret:   getEnv("IDP_DEV_SECRET", ""),
		AdminEmails:    getEnvList("ADMIN_EMAILS", nil),
		OrgEmailDomain: strings.TrimPrefix(getEnv("ORG_EMAIL_DOMAIN", "youngempreendimentos.com.br"), "@"),

		CompanyName: getEnv("COMPANY_NAME", "Young Empreendimentos"),

		AttentionSweepSpec: getEnv("ATTENTION_SWEEP_SPEC", "@every 6h"),
	}

	if cfg.StoreDriver == StoreDriverPostgres && cfg.DBUrl == "" {
		log.Println("WARNING: STORE_DRIVER=postgres but DATABASE_URL is missing. Application may fail to connect.")
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Sessions use the document store and events are disabled.")
	}

	if cfg.SessionSecret == "" {
		log.Println("WARNING: SESSION_SECRET not configured. Session tokens cannot be issued.")
	}

	if cfg.IdPAudience == "" && cfg.IdPJWKSURL != "" {
		log.Println("WARNING: IDP_AUDIENCE not configured. Identity-provider sign-in is disabled.")
	}

	if cfg.IdPDevSecret != "" && os.Getenv("GIN_MODE") == "release" {
		log.Println("WARNING: IDP_DEV_SECRET is set in release mode. HS256 identity tokens will be accepted.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, trimming and lower-casing
// each entry.
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	return out
}
