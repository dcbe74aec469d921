package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpapi "tabletop-arena/internal/api/http"
	"tabletop-arena/internal/api/ws"
	"tabletop-arena/internal/auth"
	"tabletop-arena/internal/config"
	"tabletop-arena/internal/game"
	"tabletop-arena/internal/game/checkers"
	"tabletop-arena/internal/game/chess"
	"tabletop-arena/internal/game/ludo"
	"tabletop-arena/internal/game/tictactoe"
	"tabletop-arena/internal/ledger"
	"tabletop-arena/internal/room"
	"tabletop-arena/internal/store"

	// swagger packages
	_ "tabletop-arena/docs"
)

// @title Tabletop Arena API
// @version 1.0
// @description Wagered multiplayer board games over websocket, with read-only room views (Go + Gin)
// @contact.name Backend Team
// @BasePath /
func main() {
	cfg := config.Load()
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	led, closeLedger, err := openLedger(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open ledger")
	}
	defer closeLedger()

	registry := game.NewRegistry(
		tictactoe.Engine{},
		checkers.Engine{},
		chess.Engine{},
		ludo.Engine{},
	)

	hub := ws.NewHub(auth.NewResolver(cfg.JWTSecret))
	rooms := room.NewManager(store.NewMemoryStore(), registry, led, hub, hub, room.Config{
		MinStake:         cfg.MinStake,
		TurnTimeout:      cfg.TurnTimeout,
		FirstTurnTimeout: cfg.FirstTurnTimeout,
		LedgerTimeout:    cfg.LedgerTimeout,
	})
	hub.Use(rooms)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(hub, rooms, cfg, registry.Types()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return hub.Run(ctx) })
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server exited")
		closeLedger()
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

// openLedger picks the sqlite ledger when LEDGER_DSN is set and the
// in-memory one otherwise.
func openLedger(cfg config.Config) (ledger.Ledger, func(), error) {
	if cfg.LedgerDSN == "" {
		log.Warn().Int64("startingCoins", cfg.StartingCoins).Msg("using in-memory ledger")
		return ledger.NewMemory(cfg.StartingCoins), func() {}, nil
	}
	l, err := ledger.OpenSQLite(cfg.LedgerDSN)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("dsn", cfg.LedgerDSN).Msg("using sqlite ledger")
	return l, func() { _ = l.Close() }, nil
}
