package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"estate-marketplace/internal/adapter/messaging/nats"
	"estate-marketplace/internal/adapter/repository/cache"
	"estate-marketplace/internal/adapter/repository/mongodb"
	"estate-marketplace/internal/adapter/storage/s3"
	"estate-marketplace/internal/config"
	"estate-marketplace/internal/handler"
	"estate-marketplace/internal/mailer"
	"estate-marketplace/internal/middleware"
	"estate-marketplace/internal/router"
	"estate-marketplace/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("Error syncing logger: %v\n", err)
		}
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if cfg.JWTSecret == "your-secret-key" {
		logger.Warn("JWT_SECRET is set to its default insecure value")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.String("uri", cfg.MongoURI), zap.Error(err))
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	db := mongoClient.Database(cfg.MongoDatabase)
	logger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	listingRepo := mongodb.NewListingRepository(db)
	userRepo := mongodb.NewUserRepository(db)

	storage, err := s3.NewS3Storage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, logger)
	if err != nil {
		logger.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	listingUC := usecase.NewListingUsecase(listingRepo, userRepo, logger)

	listingCache, err := cache.NewListingCache(cfg.RedisAddress)
	if err != nil {
		logger.Warn("Redis unavailable, listing cache disabled", zap.String("address", cfg.RedisAddress), zap.Error(err))
	} else {
		listingUC.WithCache(listingCache)
	}

	publisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		logger.Warn("NATS unavailable, event publishing disabled", zap.String("url", cfg.NATSURL), zap.Error(err))
	} else {
		defer publisher.Close()
		listingUC.WithPublisher(publisher)
	}

	if cfg.SMTPEmail != "" {
		listingUC.WithMailer(mailer.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword))
	}

	userUC := usecase.NewUserUsecase(userRepo, logger)
	authUC := usecase.NewAuthUsecase(userRepo, cfg.JWTSecret, logger)
	photoUC := usecase.NewPhotoUsecase(storage)

	listingHandler := handler.NewListingHandler(listingUC, photoUC, logger)
	userHandler := handler.NewUserHandler(userUC, logger)
	authHandler := handler.NewAuthHandler(authUC, logger)

	r := chi.NewRouter()
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics)
	router.SetupListingRoutes(r, listingHandler, cfg.JWTSecret)
	router.SetupUserRoutes(r, userHandler, authHandler, cfg.JWTSecret)
	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting HTTP server", zap.String("address", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}
