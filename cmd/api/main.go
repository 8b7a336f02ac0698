// Package main Content API
//
// @title           Content API
// @version         1.0
// @description     Customer and admin auth, blog, gallery and contact endpoints.
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/pickmymaid/content-api/internal/api"
	"github.com/pickmymaid/content-api/internal/api/handler"
	"github.com/pickmymaid/content-api/internal/core/service"
	"github.com/pickmymaid/content-api/internal/infrastructure/config"
	"github.com/pickmymaid/content-api/internal/infrastructure/db/mongo"
	"github.com/pickmymaid/content-api/internal/infrastructure/db/redis"
	"github.com/pickmymaid/content-api/internal/infrastructure/mail"
	"github.com/pickmymaid/content-api/internal/infrastructure/queue"
	"github.com/pickmymaid/content-api/internal/infrastructure/scheduler"
	"github.com/pickmymaid/content-api/internal/infrastructure/storage"
	"github.com/pickmymaid/content-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "content-api",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	files := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.URLPrefix)

	// --- Mail ---
	var sender mail.Sender = mail.NewLogSender(log)
	if cfg.IsProduction() && cfg.Mail.APIKey != "" {
		sender = mail.NewMailgunSender(cfg.Mail.Domain, cfg.Mail.APIKey, cfg.Mail.From, log)
	} else {
		log.Warn().Msg("mail delivery disabled, messages are only logged")
	}

	mailQueue := queue.NewDispatcher[mail.Message](cfg.Mail.Workers,
		func(m mail.Message) string { return m.To },
		sender.Send,
		log.With().Str("component", "mail").Logger(),
	)
	mailQueue.Start(ctx)
	notifier := mail.NewNotifier(mail.NewComposer("Content", cfg.PublicURL), mailQueue, cfg.Mail.AdminNotify, log)

	// --- Services ---
	customers := mongo.NewCustomerRepository(db)
	admins := mongo.NewAdminRepository(db)
	tokens := service.NewTokenService(cfg.JWTSecret)

	services := api.Services{
		Auth:    service.NewAuthService(customers, admins, tokens, notifier, cfg.PublicURL, log),
		Tokens:  tokens,
		Blog:    service.NewBlogService(mongo.NewPostRepository(db), mongo.NewCounterRepository(db), customers, admins, files, log),
		Gallery: service.NewGalleryService(mongo.NewGalleryRepository(db), files, log),
		Contact: service.NewContactService(mongo.NewContactRepository(db)),
	}

	// --- Subscription sweep ---
	sweep := service.NewSweepService(mongo.NewSubscriptionRepository(db), redis.NewLocker(rdb), cfg.Sweep.LockTTL, log)
	sched := scheduler.New(sweep, cfg.Sweep.Interval, log.With().Str("component", "scheduler").Logger())
	sched.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(services, api.Options{
		Logger:          log,
		UploadDir:       files.Dir(),
		UploadURLPrefix: cfg.Upload.URLPrefix,
		BodyLimit:       cfg.Upload.MaxBody,
		HealthChecks: map[string]handler.HealthCheck{
			"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	sched.Wait()
	mailQueue.Wait()
	return nil
}
