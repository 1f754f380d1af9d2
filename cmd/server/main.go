package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wastepoint/internal/apiclient"
	"wastepoint/internal/auth"
	"wastepoint/internal/config"
	"wastepoint/internal/logger"
	"wastepoint/internal/navigation"
	"wastepoint/internal/routes"
	"wastepoint/internal/services"
	"wastepoint/internal/session"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logr := logger.New(cfg)
	defer logr.Sync()

	tokens, err := auth.NewTokenReader(cfg.JWTPublicKeyPath)
	if err != nil {
		logr.Fatal("failed to load jwt public key", zap.Error(err))
	}
	if !tokens.Verifies() {
		logr.Warn("JWT_PUBLIC_KEY_PATH not set; tokens are confirmed with the upstream instead of by signature")
	}

	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout, logr.Named("upstream"))
	lookup := &navigation.OSRMLookup{
		BaseURL:     cfg.RoutingBaseURL,
		Profile:     cfg.RoutingProfile,
		UserAgent:   cfg.RoutingUserAgent,
		MinInterval: cfg.RoutingMinInterval,
		CacheSize:   cfg.RoutingCacheSize,
		Client:      &http.Client{Timeout: cfg.RoutingTimeout},
	}

	sessions := session.NewManager(tokens, services.NewSet(api), lookup,
		session.WithLogger(logr.Named("session")),
		session.WithFallbackCenter(navigation.LatLng{Lat: cfg.MapDefaultLat, Lng: cfg.MapDefaultLng}),
		session.WithIdleTimeout(cfg.SessionIdleTimeout),
	)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go sessions.Run(sweepCtx, cfg.SessionSweepInterval)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      routes.NewRouter(cfg, logr, sessions),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.APITimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logr.Info("server started",
			zap.String("port", cfg.Port),
			zap.String("api_base_url", cfg.APIBaseURL),
			zap.String("environment", cfg.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logr.Error("server forced to shutdown", zap.Error(err))
	}

	stopSweep()
	sessions.Close()
	logr.Info("server exited gracefully")
}
