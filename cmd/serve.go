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

	"deckbuilder/autosave"
	"deckbuilder/config"
	"deckbuilder/database"
	"deckbuilder/handlers/decks"
	"deckbuilder/logger"
	"deckbuilder/middleware"
	"deckbuilder/realtime"
	"deckbuilder/render"
	"deckbuilder/routes"
	v1 "deckbuilder/routes/v1"
	"deckbuilder/services"
	"deckbuilder/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.L()

	if err := database.InitDB(); err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}()

	if err := database.InitRedis(ctx); err != nil {
		// Caching, login cooldowns and token revocation degrade without redis
		log.Warn("redis unavailable", zap.Error(err))
	}

	sessions := autosave.NewManager(services.NewDeckStore(database.DB), autosave.Options{
		Delay:    config.AutosaveDelay,
		Listener: realtime.AutosaveListener,
	})

	var images storage.ImageStore
	if store := storage.NewS3StoreFromConfig(); store != nil {
		images = store
	}

	go realtime.Run(ctx)
	go middleware.UpdateSystemMetrics(ctx)
	go middleware.CleanupRateLimiters(ctx, 5*time.Minute, 30*time.Minute)

	handler := decks.NewHandler(sessions, render.NewRenderer(render.NewHTTPFetcher()), images)
	srv := &http.Server{
		Addr:              ":" + config.ServerPort,
		Handler:           routes.New(v1.Dependencies{Decks: handler}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	// Pending debounced saves are written before the pool closes
	if err := sessions.Close(shutdownCtx); err != nil {
		log.Error("failed to flush composition sessions", zap.Error(err))
	}
	return nil
}
