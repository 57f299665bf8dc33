package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordladder/assets"
	"github.com/robalobadob/wordladder/internal/config"
	"github.com/robalobadob/wordladder/internal/httpserver"
	"github.com/robalobadob/wordladder/internal/puzzle"
	"github.com/robalobadob/wordladder/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	pz, err := puzzle.Load(cfg.Puzzle.File, puzzle.Options{Strict: cfg.Puzzle.Strict, Title: cfg.Puzzle.Title})
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Puzzle.File).Msg("failed to load puzzle")
	}
	log.Info().Str("title", pz.Title).Int("rungs", len(pz.Rungs)).Msg("puzzle loaded")

	web, err := assets.Web()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open embedded web assets")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := store.NewMemoryStore()
	store.StartSweeper(ctx, sessions, cfg.Session.TTL, cfg.Session.SweepInterval)

	srv := httpserver.New(sessions, pz, httpserver.Options{
		Secret:       cfg.Session.Secret,
		CookieName:   cfg.Session.CookieName,
		SessionTTL:   cfg.Session.TTL,
		Secure:       cfg.IsProduction(),
		ClientOrigin: cfg.ClientOrigin,
		Web:          web,
	})
	log.Info().Str("port", cfg.Port).Msg("starting word ladder server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}
