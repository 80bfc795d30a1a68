package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string

	// Session backend: "redis" or "memory".
	SessionBackend string
	SessionTTL     time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Upper bound for a single persistence call.
	DBTimeout time.Duration
}

func LoadConfig() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	backend := os.Getenv("SESSION_BACKEND")
	if backend == "" {
		backend = "memory"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	sessionTTL := 72 * time.Hour
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			sessionTTL = time.Duration(hours) * time.Hour
		}
	}

	dbTimeout := 5 * time.Second
	if v := os.Getenv("DB_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			dbTimeout = time.Duration(secs) * time.Second
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		Port:           port,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SessionBackend: backend,
		SessionTTL:     sessionTTL,
		RedisAddr:      redisAddr,
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		DBTimeout:      dbTimeout,
	}
}
