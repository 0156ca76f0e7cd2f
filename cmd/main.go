package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/batchcrick/tournament-engine/brackets"
	"github.com/batchcrick/tournament-engine/config"
	"github.com/batchcrick/tournament-engine/db"
	"github.com/batchcrick/tournament-engine/handlers"
	"github.com/batchcrick/tournament-engine/repositories"
	"github.com/batchcrick/tournament-engine/routes"
	"github.com/batchcrick/tournament-engine/services"
	"github.com/batchcrick/tournament-engine/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 storage not configured, logo uploads disabled")
	}

	wsHub := brackets.NewHub()
	go wsHub.Run()
	logger.Info("websocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	squadRepo := repositories.NewPostgresSquadRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)

	jwtSecret := []byte(cfg.JWTSecretKey)

	materializer := services.NewMatchMaterializer(matchRepo, logger)
	authService := services.NewAuthService(userRepo, jwtSecret)
	tournamentService := services.NewTournamentService(tournamentRepo, matchRepo, uploader, wsHub, services.TournamentDefaults{
		Venue:      cfg.DefaultVenue,
		OversLimit: cfg.DefaultOversLimit,
	}, logger)
	groupService := services.NewGroupService(tournamentRepo, squadRepo)
	qualifierService := services.NewQualifierService(tournamentRepo, wsHub)
	bracketService := services.NewBracketService(tournamentRepo, matchRepo, squadRepo, wsHub, logger)
	stageService := services.NewStageService(tournamentRepo, matchRepo, squadRepo, materializer, wsHub, logger)
	logger.Info("services initialized")

	router := routes.New(routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Tournament: handlers.NewTournamentHandler(tournamentService),
		Group:      handlers.NewGroupHandler(groupService),
		Qualifier:  handlers.NewQualifierHandler(qualifierService),
		Bracket:    handlers.NewBracketHandler(bracketService),
		Stage:      handlers.NewStageHandler(stageService),
		Match:      handlers.NewMatchHandler(tournamentService, matchRepo),
		Squad:      handlers.NewSquadHandler(squadRepo),
		WebSocket:  handlers.NewWebSocketHandler(wsHub),
	}, jwtSecret)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
