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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"golang.org/x/time/rate"

	"github.com/dsolovey/passguard/internal/analyzer"
	"github.com/dsolovey/passguard/internal/config"
	"github.com/dsolovey/passguard/internal/handler/password"
	"github.com/dsolovey/passguard/internal/hibp"
	"github.com/dsolovey/passguard/internal/router"
	"github.com/dsolovey/passguard/pkg/circuitbreaker"
	"github.com/dsolovey/passguard/pkg/logger"
	"github.com/dsolovey/passguard/pkg/metrics"
)

func main() {
	configPath := pflag.String("config", "config/config.toml", "path to TOML config file")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to apply environment overrides: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level})

	// Breach-lookup client, wrapped in a circuit breaker so a dead endpoint
	// fails fast instead of burning the timeout on every request.
	pwnedClient := hibp.NewClient(cfg.Pwned.Timeout)
	if cfg.Pwned.BaseURL != "" {
		pwnedClient = pwnedClient.WithBaseURL(cfg.Pwned.BaseURL)
	}
	if cfg.Pwned.UserAgent != "" {
		pwnedClient = pwnedClient.WithUserAgent(cfg.Pwned.UserAgent)
	}
	pwnedChecker := hibp.NewBreakerChecker(pwnedClient, circuitbreaker.Settings{
		MaxFailures: cfg.Pwned.BreakerFailures,
		Cooldown:    cfg.Pwned.BreakerCooldown,
	})

	blocklist := analyzer.NewCachedBlocklistLoader(analyzer.FileBlocklistLoader{}, cfg.Blocklist.CacheFor)
	svc := analyzer.NewAnalyzer(pwnedChecker, blocklist, log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New("passguard", registry)

	passwordH := password.NewHandler(svc, cfg.Policy, m)

	engine := router.New(log, registry, passwordH, router.Config{
		RateLimit: rate.Limit(cfg.Server.RequestsPerSecond),
		RateBurst: cfg.Server.Burst,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
