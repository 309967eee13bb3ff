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

	"funnel-billing/internal/client"
	"funnel-billing/internal/config"
	"funnel-billing/internal/lock"
	"funnel-billing/internal/logger"
	"funnel-billing/internal/metrics"
	"funnel-billing/internal/repository"
	"funnel-billing/internal/server"
	"funnel-billing/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Log)

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("init database")
	}

	mailClient, err := client.NewMailClient(&cfg.Email)
	if err != nil {
		log.Fatal().Err(err).Msg("init mail client")
	}

	subscriberLookup, err := client.NewSubscriberLookup(&cfg.Gateway, &cfg.BrainTree)
	if err != nil {
		log.Fatal().Err(err).Msg("init gateway client")
	}

	locker, closeLocker := newLocker(cfg.Redis)
	defer closeLocker()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	subscriptionRepo := repository.NewSubscriptionRepository(db)
	addOnRepo := repository.NewAddOnRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	userRepo := repository.NewUserRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)

	renewalService := service.NewRenewalService(
		db,
		subscriptionRepo,
		addOnRepo,
		paymentRepo,
		userRepo,
		mailClient,
		subscriberLookup,
		locker,
		metrics.New(reg),
		service.RenewalConfig{
			MailFrom:      cfg.Email.FromAddress,
			LookupTimeout: cfg.Gateway.LookupTimeout,
		},
	)
	entitlementService := service.NewEntitlementService(userRepo, workspaceRepo, addOnRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(renewalService, entitlementService, server.Options{
		WebhookSecret: cfg.Gateway.WebhookSecret,
		JWTSecret:     cfg.Auth.JWTSecret,
		Gatherer:      reg,
	})

	log.Info().Str("addr", serverAddr).Str("env", cfg.Environment.Name).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
}

// newLocker uses Redis when configured so several instances share
// subscription locks; otherwise locks stay in-process.
func newLocker(cfg config.Redis) (lock.Locker, func()) {
	if cfg.URL == "" {
		return lock.NewLocalLocker(), func() {}
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("parse redis url")
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}

	return lock.NewRedisLocker(rdb, cfg.LockTTL), func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("close redis")
		}
	}
}
