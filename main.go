package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davmont/quorum-be/internal/api"
	"github.com/davmont/quorum-be/internal/auth"
	"github.com/davmont/quorum-be/internal/config"
	"github.com/davmont/quorum-be/internal/database"
	"github.com/davmont/quorum-be/internal/logger"
	"github.com/davmont/quorum-be/internal/maintenance"
	"github.com/davmont/quorum-be/internal/services"
	"github.com/davmont/quorum-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel)
	auth.Init(cfg.JWTSecret)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(db)
	messageService := services.NewMessageService(db)
	tagService := services.NewTagService(db)
	questionService := services.NewQuestionService(db, tagService)

	// Set up and run the background maintenance scheduler
	scheduler, err := maintenance.NewScheduler(tagService, cfg.MaintenanceCron)
	if err != nil {
		log.Fatal().Err(err).Str("cron", cfg.MaintenanceCron).Msg("Invalid maintenance schedule")
	}
	go scheduler.Run()

	// Set up router
	router := api.NewRouter(hub, userService, messageService, questionService, tagService, cfg.AllowedOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
