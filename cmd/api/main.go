package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/piggybank-api/internal/config"
	"github.com/vasapolrittideah/piggybank-api/internal/handler"
	"github.com/vasapolrittideah/piggybank-api/internal/registry"
	"github.com/vasapolrittideah/piggybank-api/internal/repository"
	"github.com/vasapolrittideah/piggybank-api/internal/server"
	"github.com/vasapolrittideah/piggybank-api/internal/throttle"
	"github.com/vasapolrittideah/piggybank-api/internal/usecase"
	"github.com/vasapolrittideah/piggybank-api/shared/auth"
	"github.com/vasapolrittideah/piggybank-api/shared/mailer"
	"github.com/vasapolrittideah/piggybank-api/shared/validate"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongodb")
	}
	logger.Info().Msg("successfully connected to mongodb")

	db := client.Database(cfg.Mongo.Database)
	userRepo := repository.NewUserMongoRepository(ctx, &logger, db, cfg.Mongo.Timeout)
	piggybankRepo := repository.NewPiggybankMongoRepository(ctx, &logger, db, cfg.Mongo.Timeout)

	limiter := throttle.NewLimiter(cfg.Throttle.Threshold, cfg.Throttle.TTL)
	go limiter.Run(ctx, cfg.Throttle.SweepInterval)

	jwtAuth := auth.NewJWTAuthenticator(cfg.ServiceName, cfg.Token.Issuer)

	validator, err := validate.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize validator")
	}

	welcomeMailer := mailer.NewMailer(cfg.SMTP)
	if welcomeMailer == nil {
		logger.Info().Msg("smtp not configured, welcome emails disabled")
	}

	authUsecase := usecase.NewAuthUsecase(userRepo, limiter, jwtAuth, usecase.TokenConfig{
		Secret:    cfg.Token.Secret,
		ExpiresIn: cfg.Token.ExpiresIn,
	})
	userUsecase := usecase.NewUserUsecase(userRepo, welcomeMailer, &logger)
	piggybankUsecase := usecase.NewPiggybankUsecase(piggybankRepo)

	srv := server.New(
		cfg.HTTPAddr,
		&logger,
		handler.NewAuthHandler(authUsecase, validator, &logger),
		handler.NewUserHandler(userUsecase, validator, &logger),
		handler.NewPiggybankHandler(piggybankUsecase, validator, &logger),
	)

	registrar, err := registry.Register(cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to register with consul")
	}
	defer registrar.Deregister()

	if err := srv.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("http server failed")
	}
}
