package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"matchroom-server/internal/api"
	"matchroom-server/internal/auth"
	"matchroom-server/internal/core"
	database "matchroom-server/internal/db"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := core.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	auth.SetSecret(cfg.JWTSecret)

	if err := database.Init(cfg.DBPath); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}

	registry, err := core.NewRegistry(cfg.RoomCapacity)
	if err != nil {
		log.Fatal().Err(err).Msg("registry init failed")
	}
	hub := core.NewHub(cfg)

	if err := api.New(cfg, registry, hub).Serve(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
