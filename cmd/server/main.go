package main

import (
	"net/http"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/mkarlsen/noteservice/internal/config"
	"github.com/mkarlsen/noteservice/internal/db"
	"github.com/mkarlsen/noteservice/internal/handlers"
	"github.com/mkarlsen/noteservice/internal/service"
	"github.com/mkarlsen/noteservice/internal/session"
	"github.com/mkarlsen/noteservice/internal/storage"
)

func main() {
	godotenv.Load()

	cfg := config.LoadConfig()
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	conn, err := db.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}
	defer conn.Close()

	store := storage.NewSQLStorage(conn)
	svc := service.New(store)

	var sessions session.Store
	switch cfg.SessionBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		sessions = session.NewRedisStore(client, cfg.SessionTTL)
	default:
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	api := handlers.NewAPI(svc, sessions, log, cfg.SessionTTL, cfg.DBTimeout)

	log.Info().Str("port", cfg.Port).Str("sessions", cfg.SessionBackend).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, api.Router()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
