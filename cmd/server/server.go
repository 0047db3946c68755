package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/tavernkeep/gm-engine/internal/clients/narrative"
	"github.com/tavernkeep/gm-engine/internal/config"
	"github.com/tavernkeep/gm-engine/internal/dice"
	"github.com/tavernkeep/gm-engine/internal/engine"
	v1alpha1 "github.com/tavernkeep/gm-engine/internal/handlers/api/v1alpha1"
	"github.com/tavernkeep/gm-engine/internal/orchestrators/game"
	"github.com/tavernkeep/gm-engine/internal/orchestrators/session"
	"github.com/tavernkeep/gm-engine/internal/pkg/clock"
	"github.com/tavernkeep/gm-engine/internal/pkg/idgen"
	redisclient "github.com/tavernkeep/gm-engine/internal/redis"
	"github.com/tavernkeep/gm-engine/internal/repositories/gamestate"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the game engine HTTP server with all configured services.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	redis, err := redisclient.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() { _ = redis.Close() }()

	repo, err := gamestate.NewRedisRepository(&gamestate.Config{
		Client: redis,
		Clock:  clock.New(),
	})
	if err != nil {
		return fmt.Errorf("failed to create game state repository: %w", err)
	}

	sessions, err := session.NewOrchestrator(&session.Config{
		Repo:        repo,
		IDGenerator: idgen.NewUUID("sess"),
	})
	if err != nil {
		return fmt.Errorf("failed to create session service: %w", err)
	}

	roller := dice.New()
	eng, err := engine.New(&engine.Config{Roller: roller})
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	narrator, err := narrative.NewGeminiClient(ctx, &narrative.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.NarrativeTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create narrative client: %w", err)
	}
	defer func() { _ = narrator.Close() }()

	games, err := game.NewOrchestrator(&game.Config{
		Sessions:    sessions,
		Engine:      eng,
		Narrator:    narrator,
		Roller:      roller,
		IDGenerator: idgen.NewUUID("char"),
		Clock:       clock.New(),
	})
	if err != nil {
		return fmt.Errorf("failed to create game service: %w", err)
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.Config{GameService: games})
	if err != nil {
		return fmt.Errorf("failed to create API handler: %w", err)
	}

	diceHandler, err := v1alpha1.NewDiceHandler(&v1alpha1.DiceHandlerConfig{Roller: roller})
	if err != nil {
		return fmt.Errorf("failed to create dice handler: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	handler.RegisterRoutes(router)
	diceHandler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down HTTP server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown timeout exceeded, forcing close", "error", err)
			_ = srv.Close()
		}
		slog.Info("server stopped")
		return nil
	case err := <-errChan:
		return err
	}
}
