package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/course-service/internal/api/http"
	"github.com/spec-kit/course-service/internal/api/http/handlers"
	"github.com/spec-kit/course-service/internal/config"
	"github.com/spec-kit/course-service/internal/observability"
	"github.com/spec-kit/course-service/internal/persistence"
	"github.com/spec-kit/course-service/internal/repository"
	"github.com/spec-kit/course-service/internal/service"
	"github.com/spec-kit/course-service/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	if err := storage.EnsureDirectory(cfg.Upload.Dir); err != nil {
		logger.Fatal("failed to create upload directory", zap.Error(err))
	}
	store := storage.NewDiskStore(cfg.Upload.Dir, cfg.Upload.MaxFileSizeBytes())

	pool := pg.PoolHandle()
	courseRepo := repository.NewCourseRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	tokenCache := repository.NewTokenCache(redis.Client)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		AdminRepo:  adminRepo,
		TokenCache: tokenCache,
	})
	courseService := service.NewCourseService(courseRepo, store)

	if cfg.Admin.Username != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			logger.Fatal("failed to seed admin account", zap.Error(err))
		}
	}

	app := fiber.New(fiber.Config{
		// Two files at the per-file ceiling plus form field overhead.
		BodyLimit: int(cfg.Upload.MaxFileSizeBytes())*2 + 1024*1024,
	})
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	coursesHandler := handlers.NewCoursesHandler(courseService)
	usersHandler := handlers.NewUsersHandler(authService)
	adminHandler := handlers.NewAdminHandler(authService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    healthHandler,
		Courses:   coursesHandler,
		Users:     usersHandler,
		Admin:     adminHandler,
		UploadDir: cfg.Upload.Dir,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
