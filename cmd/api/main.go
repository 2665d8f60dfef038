package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/grouptherapyeg/site-api/internal/handlers"
	"github.com/grouptherapyeg/site-api/internal/platform/config"
	pfirestore "github.com/grouptherapyeg/site-api/internal/platform/firestore"
	"github.com/grouptherapyeg/site-api/internal/platform/observability"
	firestoreRepo "github.com/grouptherapyeg/site-api/internal/repositories/firestore"
	"github.com/grouptherapyeg/site-api/internal/services"
)

func main() {
	ctx := context.Background()
	startedAt := time.Now().UTC()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("api")
	ctx = observability.WithLogger(ctx, logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	firestoreProvider := pfirestore.NewProvider(cfg.Firestore)
	firestoreClient, err := firestoreProvider.Client(ctx)
	if err != nil {
		logger.Fatal("failed to initialise firestore client", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := firestoreProvider.Close(closeCtx); err != nil {
			logger.Warn("firestore close error", zap.Error(err))
		}
	}()

	contentService, adminService, err := buildServices(firestoreProvider)
	if err != nil {
		logger.Fatal("failed to initialise services", zap.Error(err))
	}

	projectID := cfg.Firestore.ProjectID
	middlewares := []func(http.Handler) http.Handler{
		observability.InjectLoggerMiddleware(logger.Named("http")),
		observability.TraceMiddleware(projectID),
		observability.RecoveryMiddleware(logger.Named("http")),
		observability.RequestLoggerMiddleware(projectID),
	}

	healthHandlers := handlers.NewHealthHandlers(
		handlers.WithHealthStartedAt(startedAt),
		handlers.WithReadyCheck("firestore", func(ctx context.Context) error {
			iter := firestoreClient.Collections(ctx)
			_, err := iter.Next()
			if errors.Is(err, iterator.Done) {
				return nil
			}
			return err
		}),
	)
	seoHandlers := handlers.NewSEOHandlers(
		handlers.WithSEOContentService(contentService),
		handlers.WithSEOEnvironment(cfg.Environment),
	)
	crawlerHandlers := handlers.NewCrawlerHandlers(
		handlers.WithCrawlerContentService(contentService),
	)
	adminHandlers := handlers.NewAdminContentHandlers(
		handlers.WithAdminService(adminService),
		handlers.WithAdminWriteLimit(cfg.RateLimits.AdminWritesPerMinute, time.Minute),
	)

	router := handlers.NewRouter(
		handlers.WithMiddlewares(middlewares...),
		handlers.WithHealthHandlers(healthHandlers),
		handlers.WithSEOHandlers(seoHandlers),
		handlers.WithCrawlerHandlers(crawlerHandlers),
		handlers.WithAdminRoutes(adminHandlers.Routes),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("site api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func buildServices(provider *pfirestore.Provider) (services.ContentService, services.AdminContentService, error) {
	postRepo, err := firestoreRepo.NewPostRepository(provider)
	if err != nil {
		return nil, nil, err
	}
	releaseRepo, err := firestoreRepo.NewReleaseRepository(provider)
	if err != nil {
		return nil, nil, err
	}
	eventRepo, err := firestoreRepo.NewEventRepository(provider)
	if err != nil {
		return nil, nil, err
	}
	artistRepo, err := firestoreRepo.NewArtistRepository(provider)
	if err != nil {
		return nil, nil, err
	}
	pageRepo, err := firestoreRepo.NewStaticPageRepository(provider)
	if err != nil {
		return nil, nil, err
	}
	radioRepo, err := firestoreRepo.NewRadioShowRepository(provider)
	if err != nil {
		return nil, nil, err
	}
	settingsRepo, err := firestoreRepo.NewSettingsRepository(provider)
	if err != nil {
		return nil, nil, err
	}

	contentService, err := services.NewContentService(services.ContentServiceDeps{
		Posts:       postRepo,
		Releases:    releaseRepo,
		Events:      eventRepo,
		Artists:     artistRepo,
		StaticPages: pageRepo,
		RadioShows:  radioRepo,
		Settings:    settingsRepo,
	})
	if err != nil {
		return nil, nil, err
	}

	adminService, err := services.NewAdminContentService(services.AdminContentServiceDeps{
		Posts:       postRepo,
		Releases:    releaseRepo,
		Events:      eventRepo,
		Artists:     artistRepo,
		StaticPages: pageRepo,
		RadioShows:  radioRepo,
		Settings:    settingsRepo,
		Clock:       time.Now,
	})
	if err != nil {
		return nil, nil, err
	}

	return contentService, adminService, nil
}
