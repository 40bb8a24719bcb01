package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int

	DefaultRounds  int
	TokenTTL       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string

	// Архив завершённых турниров в Cloudflare R2. Пустой R2BucketName отключает архив.
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
}

// ArchiveEnabled reports whether all R2 settings are present.
func (c *Config) ArchiveEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load() // .env может отсутствовать
	return FromEnv(os.Getenv)
}

// FromEnv читает конфигурацию через getenv, без .env файла.
func FromEnv(getenv func(string) string) (*Config, error) {
	dbURL := getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := intVar(getenv, "SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	rounds, err := intVar(getenv, "DEFAULT_ROUNDS", 5)
	if err != nil {
		return nil, err
	}
	if rounds < 3 || rounds > 7 {
		return nil, fmt.Errorf("DEFAULT_ROUNDS must be between 3 and 7, got %d", rounds)
	}

	ttl := 12 * time.Hour
	if v := getenv("TOKEN_TTL"); v != "" {
		ttl, err = time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL environment variable: %q", v)
		}
	}

	rps := 5.0
	if v := getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err = strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS environment variable: %q", v)
		}
	}
	burst, err := intVar(getenv, "RATE_LIMIT_BURST", 20)
	if err != nil {
		return nil, err
	}
	if burst < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_BURST must not be negative, got %d", burst)
	}

	cfg := &Config{
		DatabaseURL:       dbURL,
		JWTSecretKey:      jwtKey,
		ServerPort:        port,
		DefaultRounds:     rounds,
		TokenTTL:          ttl,
		RateLimitRPS:      rps,
		RateLimitBurst:    burst,
		AllowedOrigins:    splitList(getenv("CORS_ALLOWED_ORIGINS")),
		R2AccountID:       getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      getenv("R2_BUCKET_NAME"),
	}

	return cfg, nil
}

func intVar(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
