package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-events-api/core/cache"
	"campus-events-api/core/config"
	"campus-events-api/core/database"
	"campus-events-api/core/jobs"
	"campus-events-api/core/logger"
	"campus-events-api/core/mailer"
	"campus-events-api/core/middleware"
	"campus-events-api/core/storage"
	"campus-events-api/core/validation"
	"campus-events-api/modules/auth"
	"campus-events-api/modules/certificate"
	"campus-events-api/modules/event"
	"campus-events-api/modules/notification"
	"campus-events-api/modules/registration"
	"campus-events-api/modules/user"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Run wires the application together and serves until interrupted.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.App.LogLevel, cfg.App.LogPretty)

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	cacheClient, err := cache.NewRedisCache(cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	jobsClient := jobs.NewClient(cfg.Redis)
	defer jobsClient.Close()

	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestID())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	mw := middleware.NewMiddleware(cacheClient)
	uploader := storage.NewS3Uploader(cfg.S3)

	api := e.Group("/api/v1")

	notifier := notification.Init(api, db, mw)
	eventSvc := event.Init(api, db, mw, uploader)
	registration.Init(api, db, mw, notifier, jobsClient)
	auth.Init(api, db, cacheClient, mw)
	user.Init(api, db, cacheClient, mw)
	certificate.Init(api, db, mw, notifier)

	mail := mailer.New(cfg.SMTP)
	jobSrv := jobs.NewServer(cfg.Redis, mail, eventSvc)
	go func() {
		if err := jobSrv.Start(); err != nil {
			logger.Error("jobs server stopped", err)
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("http server stopped", err)
		}
	}()
	logger.Info("Server started", "port", cfg.App.Port, "env", cfg.App.Env)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	jobSrv.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
