package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"consentd/internal/audit"
	consenthandler "consentd/internal/consent/handler"
	"consentd/internal/consent/metrics"
	"consentd/internal/consent/service"
	"consentd/internal/integration"
	"consentd/internal/jwttoken"
	"consentd/internal/platform/config"
	"consentd/internal/platform/database"
	"consentd/internal/platform/httpserver"
	"consentd/internal/platform/kafka/producer"
	"consentd/internal/platform/logger"
	"consentd/internal/platform/middleware"
	platformredis "consentd/internal/platform/redis"
	"consentd/internal/reporter"
	"consentd/internal/settings"
	"consentd/internal/userconfig"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing consentd",
		"addr", cfg.Addr,
		"metrics_addr", cfg.MetricsAddr,
		"database_configured", cfg.DatabaseURL != "",
		"redis_configured", cfg.Redis.URL != "",
		"kafka_configured", cfg.KafkaBrokers != "",
	)

	// Storage. An empty database URL selects in-memory stores for local
	// development; production deployments point at PostgreSQL.
	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	var (
		settingsStore    settings.Store
		integrationStore integration.Store
		userStore        userconfig.Store
	)
	if pool != nil {
		defer pool.Close()
		settingsStore = settings.NewPostgres(pool.DB())
		integrationStore = integration.NewPostgres(pool.DB())
		userStore = userconfig.NewPostgres(pool.DB())
	} else {
		settingsStore = settings.NewInMemoryStore()
		integrationStore = integration.NewInMemoryStore()
		userStore = userconfig.NewInMemoryStore()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		settingsStore = settings.NewCached(settingsStore, redisClient.Client, cfg.SettingsCacheTTL)
	}

	// Audit trail: Kafka when brokers are configured, in-memory otherwise.
	var auditStore audit.Store = audit.NewInMemoryStore()
	if cfg.KafkaBrokers != "" {
		producerCfg := producer.DefaultConfig()
		producerCfg.Brokers = cfg.KafkaBrokers
		kafkaProducer, err := producer.New(producerCfg, log)
		if err != nil {
			log.Error("kafka producer init failed", "error", err)
			os.Exit(1)
		}
		defer kafkaProducer.Close()
		auditStore = audit.NewKafkaStore(kafkaProducer, cfg.AuditTopic)
	}
	auditor := audit.NewPublisher(auditStore)

	var collectorReporter service.Reporter
	if cfg.CollectorURL != "" {
		collectorReporter = reporter.New(cfg.CollectorURL, reporter.WithTimeout(cfg.ReportTimeout))
	} else {
		log.Warn("collector url not configured, consent reports disabled")
	}

	consentService := service.NewService(
		settingsStore,
		integrationStore,
		userStore,
		collectorReporter,
		log,
		service.WithAuditor(auditor),
		service.WithMetrics(metrics.New()),
	)

	jwtService := jwttoken.NewService(cfg.JWTSigningKey, "consentd", "consentd-api")

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(&jwtValidatorAdapter{jwtService}, log))
		consenthandler.New(consentService, log).Register(r)
	})

	metricsRouter := chi.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.Handler())

	apiServer := httpserver.New(cfg.Addr, router)
	metricsServer := httpserver.New(cfg.MetricsAddr, metricsRouter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting metrics server", "addr", cfg.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := apiServer.Shutdown(shutdownCtx)
		if merr := metricsServer.Shutdown(shutdownCtx); err == nil {
			err = merr
		}
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// jwtValidatorAdapter bridges the token service onto the middleware contract.
type jwtValidatorAdapter struct {
	tokens *jwttoken.Service
}

func (a *jwtValidatorAdapter) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := a.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{UserID: claims.UserID}, nil
}
