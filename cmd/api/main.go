package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xavierca1/financekeem/internal/config"
	"github.com/xavierca1/financekeem/internal/infra/cache"
	"github.com/xavierca1/financekeem/internal/infra/database"
	"github.com/xavierca1/financekeem/internal/infra/http/handlers"
	"github.com/xavierca1/financekeem/internal/infra/localstore"
	"github.com/xavierca1/financekeem/internal/infra/mail"
	"github.com/xavierca1/financekeem/internal/infra/queue"
	"github.com/xavierca1/financekeem/internal/infra/store"
	"github.com/xavierca1/financekeem/internal/infra/worker"
	"github.com/xavierca1/financekeem/internal/log"
	"github.com/xavierca1/financekeem/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.SetDebug(cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Storage
	backend, err := openBackend(cfg)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer backend.Close()

	checks := map[string]handlers.Check{
		"storage":  backend.Ping,
		"redis":    nil,
		"rabbitmq": nil,
	}

	// 2. Slug cache
	var slugs usecase.SlugCache = cache.Nop{}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(cfg.RedisURL, cache.DefaultTTL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rc.Close()
		slugs = rc
		checks["redis"] = rc.Check
	}

	// 3. Events and notifications
	var events usecase.EventPublisher = queue.LogPublisher{}
	if cfg.RabbitMQURL != "" {
		rabbit, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("rabbitmq: %v", err)
		}
		defer rabbit.Close()
		events = queue.NewProducer(rabbit.Ch)
		checks["rabbitmq"] = rabbit.Check
		startWorker(ctx, cfg, rabbit)
	} else {
		log.Warnf("RABBITMQ_URL not set, events are only logged")
	}

	if cfg.AdminJWTSecret == "" {
		log.Warnf("ADMIN_JWT_SECRET not set, admin API is unauthenticated")
	}

	// 4. HTTP
	limiter := handlers.NewRateLimiter(10, time.Minute)
	go worker.NewPeriodic("rate-limit-sweep", 10*time.Minute, func(context.Context) { limiter.Sweep() }).Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           buildRouter(cfg, backend, slugs, events, checks, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("financekeem api listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}

func openBackend(cfg config.Config) (store.Backend, error) {
	if cfg.DatabaseURL != "" {
		db, err := database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Info("storage: postgres")
		return database.NewDocumentStore(db), nil
	}

	s, err := localstore.Open(cfg.LocalDataDir)
	if err != nil {
		return nil, err
	}
	log.Infof("storage: local store at %s", cfg.LocalDataDir)
	return s, nil
}

// startWorker consumes notifications on its own channel. Without SMTP settings messages stay queued.
func startWorker(ctx context.Context, cfg config.Config, rabbit *queue.RabbitMQ) {
	if !cfg.MailEnabled() {
		log.Warnf("MAIL_HOST not set, notification worker disabled")
		return
	}

	ch, err := rabbit.Conn.Channel()
	if err != nil {
		log.Fatalf("open worker channel: %v", err)
	}

	sender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
	consumer := queue.NewWorker(ch, mail.NewNotifier(sender, cfg.NotifyEmail))

	go func() {
		if err := consumer.Start(ctx, queue.QueueName); err != nil {
			log.WithError(err).Error("notification worker stopped")
		}
	}()
}
