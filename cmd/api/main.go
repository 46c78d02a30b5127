package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/hudumahub/marketplace-backend/api/routes"
	"github.com/hudumahub/marketplace-backend/internal/attachments"
	"github.com/hudumahub/marketplace-backend/internal/auth"
	"github.com/hudumahub/marketplace-backend/internal/bookings"
	"github.com/hudumahub/marketplace-backend/internal/catalog"
	"github.com/hudumahub/marketplace-backend/internal/favorites"
	"github.com/hudumahub/marketplace-backend/internal/locations"
	"github.com/hudumahub/marketplace-backend/internal/messaging"
	"github.com/hudumahub/marketplace-backend/internal/posts"
	"github.com/hudumahub/marketplace-backend/internal/profiles"
	"github.com/hudumahub/marketplace-backend/internal/reviews"
	"github.com/hudumahub/marketplace-backend/pkg/config"
	"github.com/hudumahub/marketplace-backend/pkg/db"
	"github.com/hudumahub/marketplace-backend/pkg/logger"
	"github.com/hudumahub/marketplace-backend/pkg/migrate"
	"github.com/hudumahub/marketplace-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	svcs, err := buildServices(cfg, logg, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, svcs),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client) (routes.Services, error) {
	gdb := dbClient.DB()

	authService, err := auth.NewService(auth.ServiceParams{
		Repo:        auth.NewRepository(gdb),
		Tx:          dbClient,
		JWTConfig:   cfg.JWT,
		PasswordCfg: cfg.Password,
	})
	if err != nil {
		return routes.Services{}, err
	}

	profilesService, err := profiles.NewService(profiles.NewRepository(gdb), dbClient)
	if err != nil {
		return routes.Services{}, err
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(gdb), dbClient, profilesService)
	if err != nil {
		return routes.Services{}, err
	}

	bookingsService, err := bookings.NewService(bookings.NewRepository(gdb), profilesService, logg)
	if err != nil {
		return routes.Services{}, err
	}

	messagingService, err := messaging.NewService(messaging.NewRepository(gdb), profilesService, logg)
	if err != nil {
		return routes.Services{}, err
	}

	reviewsService, err := reviews.NewService(reviews.NewRepository(gdb), profilesService)
	if err != nil {
		return routes.Services{}, err
	}

	favoritesService, err := favorites.NewService(favorites.NewRepository(gdb))
	if err != nil {
		return routes.Services{}, err
	}

	locationsService, err := locations.NewService(locations.NewRepository(gdb), profilesService)
	if err != nil {
		return routes.Services{}, err
	}

	postsService, err := posts.NewService(posts.NewRepository(gdb), profilesService)
	if err != nil {
		return routes.Services{}, err
	}

	attachmentsService, err := attachments.NewService(attachments.NewRepository(gdb), profilesService, cfg.Uploads, logg)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:        authService,
		Profiles:    profilesService,
		Catalog:     catalogService,
		Bookings:    bookingsService,
		Messaging:   messagingService,
		Reviews:     reviewsService,
		Favorites:   favoritesService,
		Locations:   locationsService,
		Posts:       postsService,
		Attachments: attachmentsService,
	}, nil
}
