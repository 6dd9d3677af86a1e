package main

import (
	"context"
	"time"

	"simplebanking/internal/api"
	v1 "simplebanking/internal/api/v1"
	"simplebanking/internal/api/v1/middleware"
	"simplebanking/internal/api/validator"
	"simplebanking/internal/auth"
	"simplebanking/internal/config"
	"simplebanking/internal/database"
	apierrors "simplebanking/internal/errors"
	"simplebanking/internal/metrics"
	"simplebanking/internal/repository"
	"simplebanking/internal/service"

	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			database.NewConnection,
			metrics.NewMetrics,
			newValidator,
			newAuthMiddleware,
			repository.NewTransactionManager,
			repository.NewUserRepository,
			repository.NewAccountRepository,
			service.NewAccountService,
			service.NewTransferService,
			service.NewUserService,
			v1.NewHandler,
			newFiberApp,
		),
		fx.Invoke(startServer, startCollectors),
	).Run()
}

func newValidator(m *metrics.Metrics) validator.IXValidator {
	return validator.NewXValidator(playground.New(), m)
}

func newAuthMiddleware(users repository.UserRepository, cfg *config.Config, logger *zap.Logger) *auth.Middleware {
	return auth.NewMiddleware(users, cfg.Bank.AdminToken, logger)
}

func newFiberApp(m *metrics.Metrics, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apierrors.ErrorHandler()})
	app.Use(middleware.TrackIDMiddleware())
	app.Use(middleware.HTTPMetricsMiddleware(m, logger))
	app.Use(middleware.HealthCheckMiddleware("banking"))
	return app
}

func startServer(app *fiber.App, handler *v1.Handler, authMW *auth.Middleware, cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler, authMW)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("Server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

func startCollectors(m *metrics.Metrics, logger *zap.Logger, db *gorm.DB, lc fx.Lifecycle) {
	system := metrics.NewSystemCollector(m, logger)
	pool := metrics.NewDatabaseMetricsCollector(m, logger, db)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			system.Start(15 * time.Second)
			pool.Start(15 * time.Second)
			return nil
		},
		OnStop: func(context.Context) error {
			system.Stop()
			pool.Stop()
			return nil
		},
	})
}
