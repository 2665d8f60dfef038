// Command bake stamps the built index.html with computed SEO metadata. It is
// meant to run once per deploy, after the frontend build and before upload.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/grouptherapyeg/site-api/internal/bake"
	"github.com/grouptherapyeg/site-api/internal/platform/config"
	pfirestore "github.com/grouptherapyeg/site-api/internal/platform/firestore"
	"github.com/grouptherapyeg/site-api/internal/platform/observability"
	firestoreRepo "github.com/grouptherapyeg/site-api/internal/repositories/firestore"
	"github.com/grouptherapyeg/site-api/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bake failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		return fmt.Errorf("initialise logger: %w", err)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("bake")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	provider := pfirestore.NewProvider(cfg.Firestore)
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := provider.Close(closeCtx); err != nil {
			logger.Warn("firestore close error", zap.Error(err))
		}
	}()

	contentService, err := buildContentService(provider)
	if err != nil {
		return fmt.Errorf("initialise content service: %w", err)
	}

	baker := bake.New(
		bake.WithContentService(contentService),
		bake.WithLogger(logger),
		bake.WithBaseURL(cfg.Site.BaseURL),
		bake.WithSettingsCache(cfg.Bake.SettingsCachePath),
	)

	indexPath := cfg.Bake.IndexPath
	if len(os.Args) > 1 {
		indexPath = os.Args[1]
	}
	return baker.Bake(ctx, indexPath)
}

func buildContentService(provider *pfirestore.Provider) (services.ContentService, error) {
	postRepo, err := firestoreRepo.NewPostRepository(provider)
	if err != nil {
		return nil, err
	}
	releaseRepo, err := firestoreRepo.NewReleaseRepository(provider)
	if err != nil {
		return nil, err
	}
	eventRepo, err := firestoreRepo.NewEventRepository(provider)
	if err != nil {
		return nil, err
	}
	artistRepo, err := firestoreRepo.NewArtistRepository(provider)
	if err != nil {
		return nil, err
	}
	pageRepo, err := firestoreRepo.NewStaticPageRepository(provider)
	if err != nil {
		return nil, err
	}
	radioRepo, err := firestoreRepo.NewRadioShowRepository(provider)
	if err != nil {
		return nil, err
	}
	settingsRepo, err := firestoreRepo.NewSettingsRepository(provider)
	if err != nil {
		return nil, err
	}

	return services.NewContentService(services.ContentServiceDeps{
		Posts:       postRepo,
		Releases:    releaseRepo,
		Events:      eventRepo,
		Artists:     artistRepo,
		StaticPages: pageRepo,
		RadioShows:  radioRepo,
		Settings:    settingsRepo,
	})
}
