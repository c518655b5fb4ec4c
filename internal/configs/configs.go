package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RedisAddr              string
	ChatChannelPrefix      string
	AssignGuardKeyPrefix   string
	AssignGuardTTLSeconds  int
	JWTSecret              string
	JWTExpireHours         int
	RateLimit              int
	ProfileFetchRetries    int
	ProfileRetryBackoffMS  int
	ShutdownTimeoutSeconds int
	LogLevel               string
	LogFormat              string
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "skillhub.db"),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		ChatChannelPrefix:      getEnv("CHAT_CHANNEL_PREFIX", "task_messages"),
		AssignGuardKeyPrefix:   getEnv("ASSIGN_GUARD_KEY_PREFIX", "assign"),
		AssignGuardTTLSeconds:  getEnvAsInt("ASSIGN_GUARD_TTL_SECONDS", 10),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		JWTExpireHours:         getEnvAsInt("JWT_EXPIRE_HOURS", 72),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		ProfileFetchRetries:    getEnvAsInt("PROFILE_FETCH_RETRIES", 3),
		ProfileRetryBackoffMS:  getEnvAsInt("PROFILE_RETRY_BACKOFF_MS", 500),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "json"),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must not be empty")
	}
	if cfg.JWTExpireHours <= 0 {
		log.Fatal("JWT_EXPIRE_HOURS must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.AssignGuardTTLSeconds <= 0 {
		log.Fatal("ASSIGN_GUARD_TTL_SECONDS must be greater than 0")
	}
	if cfg.ProfileFetchRetries < 0 {
		log.Fatal("PROFILE_FETCH_RETRIES must not be negative")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
