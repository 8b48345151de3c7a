package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/luckygame/apps/go-server/assets"
	"github.com/robalobadob/luckygame/apps/go-server/internal/config"
	"github.com/robalobadob/luckygame/apps/go-server/internal/httpserver"
	"github.com/robalobadob/luckygame/apps/go-server/internal/round"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("bad config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	reg, err := loadRegistry(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.RoundsSource).Msg("failed to load rounds")
	}
	log.Info().Str("source", cfg.RoundsSource).Int("rounds", reg.Len()).Msg("rounds loaded")

	srv := httpserver.New(reg, httpserver.Options{
		ClientOrigin:   cfg.ClientOrigin,
		JWTSecret:      cfg.JWTSecret,
		RequestTimeout: cfg.RequestTimeout,
	})
	log.Info().Str("port", cfg.Port).Msg("starting go-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// loadRegistry builds the round registry from the configured source.
func loadRegistry(ctx context.Context, cfg config.Config) (*round.Registry, error) {
	switch cfg.RoundsSource {
	case config.SourceEmbedded:
		return round.Default()
	case config.SourceFile:
		return round.LoadFile(cfg.RoundsFile)
	case config.SourceSQLite:
		def, err := round.Default()
		if err != nil {
			return nil, err
		}
		db, err := openDB(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		// The registry is a snapshot; the DB is not needed after loading.
		defer db.Close()
		if err := migrate(db, assets.Migrations()); err != nil {
			return nil, err
		}
		return seedOrLoad(ctx, db, def)
	default:
		return nil, fmt.Errorf("unknown rounds source %q", cfg.RoundsSource)
	}
}
