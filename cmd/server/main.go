package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventdesk/internal/adapters/rest"
	"eventdesk/internal/application"
	"eventdesk/internal/config"
	"eventdesk/internal/infrastructure/database"
	"eventdesk/internal/infrastructure/i18n"
	"eventdesk/internal/infrastructure/mail"
	"eventdesk/internal/infrastructure/webhook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	eventRepo := database.NewEventRepository(pool)
	registrationRepo := database.NewRegistrationRepository(pool)
	organizerRepo := database.NewOrganizerRepository(pool)
	webhookRepo := database.NewWebhookRepository(pool)
	txManager := database.NewTxManager(pool)

	translator := i18n.NewTranslator(cfg.DefaultLocale)
	notifier := application.NewNotifier(
		mail.NewLogMailer(),
		webhook.NewSender(),
		webhookRepo,
		organizerRepo,
		translator,
		cfg.DefaultLocale,
	)

	eventService := application.NewEventService(eventRepo, registrationRepo)
	registrationService := application.NewRegistrationService(registrationRepo, eventRepo, txManager, notifier)
	webhookService := application.NewWebhookService(webhookRepo)

	handler := rest.NewHandler(eventService, registrationService, webhookService, pool.Ping)
	router := rest.Router(handler, rest.Options{
		Organizers:   organizerRepo,
		Limiter:      rest.NewLimiter(cfg.RateLimit, cfg.RateWindow),
		MaxBodyBytes: cfg.MaxBodyBytes,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[http] listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[http] shutdown: %v", err)
	}
	notifier.Wait()
}
