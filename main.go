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

	"video-distributor/domain/repository"
	"video-distributor/infrastructure/cache"
	"video-distributor/infrastructure/clients/gemini"
	"video-distributor/infrastructure/configuration"
	"video-distributor/infrastructure/logger"
	"video-distributor/infrastructure/realtime"
	httpHandler "video-distributor/interfaces/http"
	"video-distributor/server"
	"video-distributor/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	loaded := configuration.LoadEnvFromFile("config.env", ".env")
	logger.GetLogger().WithField("files", loaded).Info("Env files loaded")
	configuration.LoadConfig()

	cfg := configuration.C
	logger.SetFormat(cfg.Logger.Format)
	logger.SetLevel(cfg.Logger.Level)

	credential := InitiateCredential(ctx, cfg)
	seedCredential(ctx, credential, cfg.Gemini.APIKey)

	generator := gemini.NewClient(gemini.Config{
		Model:       cfg.Gemini.Model,
		Temperature: cfg.Gemini.Temperature,
		Timeout:     cfg.Gemini.Timeout(),
	})

	hub := realtime.NewSessionHub()
	registry := usecase.NewSessionRegistry(hub.Broadcast)

	sessionUsecase := usecase.NewSessionUsecase(registry)
	generationUsecase := usecase.NewGenerationUsecase(registry, credential, generator)
	publishUsecase := usecase.NewPublishUsecase(registry, usecase.PublishConfig{
		MinDelay:    cfg.Publish.MinDelay(),
		MaxDelay:    cfg.Publish.MaxDelay(),
		FailureRate: cfg.Publish.FailureRate,
	})
	settingsUsecase := usecase.NewSettingsUsecase(credential)

	router := server.InitiateRouter(cfg.App, server.Handlers{
		Health:     httpHandler.NewHealthHandler(),
		Platform:   httpHandler.NewPlatformHandler(),
		Settings:   httpHandler.NewSettingsHandler(settingsUsecase, generator.Model()),
		Session:    httpHandler.NewSessionHandler(sessionUsecase, hub),
		Generation: httpHandler.NewGenerationHandler(generationUsecase),
		Publish:    httpHandler.NewPublishHandler(publishUsecase),
	})

	// Idle session sweeper (simple ticker loop)
	g.Go(func() error {
		ticker := time.NewTicker(cfg.Session.SweepInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				registry.Sweep(cfg.Session.MaxIdle())
			}
		}
	})

	app := cfg.App
	logger.GetLogger().WithFields(map[string]interface{}{
		"port":  app.Port,
		"tls":   app.TLSEnabled,
		"model": generator.Model(),
	}).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", app.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		if app.TLSEnabled {
			cert := app.TLSCertFile
			key := app.TLSKeyFile
			if cert == "" || key == "" {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
				if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			} else {
				logger.GetLogger().WithFields(map[string]interface{}{"cert": cert, "key": key}).Info("Serving HTTPS")
				if err := httpServer.ListenAndServeTLS(cert, key); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			}
		} else {
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
	logger.GetLogger().Info("Application stopped")
}

// InitiateCredential prefers Redis and falls back to process memory when
// Redis is unreachable. The memory store does not survive a restart.
func InitiateCredential(ctx context.Context, cfg configuration.Config) repository.ICredential {
	redisClient, err := cache.NewCache(
		ctx,
		cfg.RedisClient.Addr(),
		cfg.RedisClient.Username,
		cfg.RedisClient.Password,
		cfg.RedisClient.DB,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - API key is kept in memory only")
		return cache.NewMemoryCredential("")
	}
	logger.GetLogger().WithField("addr", cfg.RedisClient.Addr()).Info("Redis client initialized successfully.")
	return cache.NewRedisCredential(redisClient, cfg.Credential.Key)
}

func seedCredential(ctx context.Context, credential repository.ICredential, configured string) {
	if configured == "" {
		return
	}
	current, err := credential.GetAPIKey(ctx)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Unable to read stored API key")
		return
	}
	if current != "" {
		return
	}
	if err := credential.SaveAPIKey(ctx, configured); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Unable to seed API key from configuration")
		return
	}
	logger.GetLogger().Info("API key seeded from configuration")
}
