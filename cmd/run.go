package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"streamgate/config"
	"streamgate/database"
	"streamgate/events"
	"streamgate/payment"
	"streamgate/realtime"
	"streamgate/repository"
	"streamgate/server"
	"streamgate/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		log.SetFormatter(&log.JSONFormatter{})
	}

	log.WithField("environment", cfg.Environment).Info("Starting streamgate")

	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	eventBus := events.NewBus()

	userRepo := repository.NewUserRepository(db)
	streamRepo := repository.NewStreamRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	var paymentProvider service.PaymentProvider
	if cfg.PaymentAPIURL != "" {
		paymentProvider = payment.NewClient(cfg.PaymentAPIURL, cfg.PaymentAPIKey)
		log.Info("Payment provider configured")
	} else {
		log.Warn("No payment provider configured, streams are created unverified")
	}

	userService := service.NewUserService(userRepo, statsRepo, eventBus)
	streamService := service.NewStreamService(streamRepo, statsRepo, eventBus, paymentProvider)
	accessService := service.NewAccessService(streamRepo)
	messageService := service.NewMessageService(messageRepo, userRepo, accessService, eventBus)
	statsService := service.NewStatsService(statsRepo)

	hub := realtime.NewHub(messageService)
	eventBus.Subscribe(events.EventTypeMessageCreated, hub.HandleMessageCreated)

	announcer := service.NewStreamAnnouncer(userRepo, messageService)
	eventBus.Subscribe(events.EventTypeStreamCreated, announcer.HandleStreamCreated)

	srv := server.New(userService, streamService, accessService, messageService, statsService, hub, cfg.CommunityWalletAddress)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.ListenAddr).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		db.Close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithField("error", err).Warn("HTTP server shutdown failed")
	}

	db.Close()
	log.Info("Shutdown completed")

	return nil
}
