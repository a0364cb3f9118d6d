package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inotecloud/config"
	"inotecloud/handler"
	"inotecloud/internal/memstore"
	"inotecloud/repository"
	"inotecloud/services"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	svc, cleanup, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	router := handler.SetupRouter(svc, handler.RouterOptions{
		CORS:             cfg.CORS,
		MaxBodyBytes:     cfg.MaxBodyBytes,
		StrictNoteDelete: cfg.StrictNoteDelete,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		s := <-sigint

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		log.Info().Str("signal", s.String()).Msg("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown")
		}
		close(idleConnsClosed)
	}()

	log.Info().
		Str("addr", srv.Addr).
		Str("store", cfg.StoreDriver).
		Bool("strict_note_delete", cfg.StrictNoteDelete).
		Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server ListenAndServe: %w", err)
	}

	<-idleConnsClosed
	return nil
}

// buildServices opens the configured store and token blacklist. The returned cleanup closes
// whatever was opened.
func buildServices(ctx context.Context, cfg *config.Config) (handler.Services, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var blacklist services.TokenBlacklist
	if cfg.RedisURL != "" {
		redisBlacklist, err := services.NewRedisTokenBlacklist(ctx, cfg.RedisURL)
		if err != nil {
			return handler.Services{}, cleanup, err
		}
		closers = append(closers, func() { _ = redisBlacklist.Close() })
		blacklist = redisBlacklist
	} else {
		log.Warn().Msg("REDIS_URL not set, token blacklist is process local")
		blacklist = services.NewMemoryTokenBlacklist()
	}

	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn().Msg("using in-memory store, data is lost on exit")
		store := memstore.New()
		return handler.NewServices(cfg.Auth, store, store, store, blacklist), cleanup, nil

	default:
		client, err := repository.Connect(ctx, cfg.Database)
		if err != nil {
			cleanup()
			return handler.Services{}, func() {}, err
		}
		closers = append(closers, func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Error().Err(err).Msg("disconnecting MongoDB")
			}
		})

		db := client.Database(cfg.Database.DatabaseName)
		if err := repository.SetupIndexes(ctx, db); err != nil {
			cleanup()
			return handler.Services{}, func() {}, err
		}

		store := repository.NewStore(db)
		return handler.NewServices(cfg.Auth, store.Users, store.Notes, store.Messages, blacklist), cleanup, nil
	}
}
