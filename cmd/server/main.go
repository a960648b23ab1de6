package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	cataloghandler "academy/internal/catalog/handler"
	catalogmetrics "academy/internal/catalog/metrics"
	catalogservice "academy/internal/catalog/service"
	coursestore "academy/internal/catalog/store/course"
	"academy/internal/credential"
	enginehandler "academy/internal/engine/handler"
	enginemetrics "academy/internal/engine/metrics"
	engineservice "academy/internal/engine/service"
	"academy/internal/engine/tracer"
	"academy/internal/events"
	"academy/internal/idempotency"
	enrollmentstore "academy/internal/ledger/store/enrollment"
	"academy/internal/platform/config"
	"academy/internal/platform/database"
	"academy/internal/platform/httpserver"
	"academy/internal/platform/kafka"
	"academy/internal/platform/kafka/producer"
	"academy/internal/platform/logger"
	"academy/internal/platform/middleware"
	platformredis "academy/internal/platform/redis"
	registryhandler "academy/internal/registry/handler"
	registrymetrics "academy/internal/registry/metrics"
	registryservice "academy/internal/registry/service"
	institutionstore "academy/internal/registry/store/institution"
	httptransport "academy/internal/transport/http"
	"academy/internal/treasury"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	checks := map[string]func(context.Context) error{}

	// Stores: postgres when configured, memory twins otherwise.
	var (
		institutions registryservice.InstitutionStore
		courses      catalogservice.CourseStore
		ledger       engineservice.EnrollmentLedger
	)
	pool, err := database.New(database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer func() { _ = pool.Close() }()
		institutions = institutionstore.NewPostgres(pool.DB())
		courses = coursestore.NewPostgres(pool.DB())
		ledger = enrollmentstore.NewPostgres(pool.DB())
		checks["database"] = pool.Health
		log.Info("using postgres stores")
	} else {
		institutions = institutionstore.NewInMemory()
		courses = coursestore.NewInMemory()
		ledger = enrollmentstore.NewInMemory()
		log.Info("using in-memory stores")
	}

	// Idempotency cache: redis when configured, in-process otherwise.
	var idemStore idempotency.Store
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		idemStore = idempotency.NewRedis(redisClient.Client, cfg.IdempotencyTTL)
		checks["redis"] = redisClient.Health
	} else {
		memStore := idempotency.NewInMemory(cfg.IdempotencyTTL)
		defer func() { _ = memStore.Close() }()
		idemStore = memStore
	}

	// Event stream: kafka when configured, in-memory sink otherwise.
	var publisher events.Publisher = events.NewInMemory()
	if cfg.KafkaBrokers != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		if err := kafka.EnsureTopics(ctx, cfg.KafkaBrokers, 3, events.Topic); err != nil {
			cancel()
			log.Error("failed to ensure kafka topics", "error", err)
			os.Exit(1)
		}
		cancel()

		kafkaProducer, err := producer.New(producer.Config{Brokers: cfg.KafkaBrokers}, log)
		if err != nil {
			log.Error("failed to create kafka producer", "error", err)
			os.Exit(1)
		}
		defer kafkaProducer.Close()
		publisher = events.NewKafka(kafkaProducer)
	}

	// External collaborators. In-process reference implementations; swap for
	// real payment and issuance rails behind the same interfaces.
	valueTransfer := treasury.NewInMemory()
	credentials := credential.NewInMemory()

	registrySvc := registryservice.New(institutions, credentials,
		registryservice.WithLogger(log),
		registryservice.WithPublisher(publisher),
		registryservice.WithMetrics(registrymetrics.New()),
	)
	catalogSvc := catalogservice.New(courses, institutions, credentials,
		catalogservice.WithLogger(log),
		catalogservice.WithPublisher(publisher),
		catalogservice.WithMetrics(catalogmetrics.New()),
		catalogservice.WithDefaultCapacity(cfg.DefaultCourseCapacity),
	)
	engine := engineservice.New(institutions, courses, ledger, valueTransfer, credentials,
		engineservice.WithLogger(log),
		engineservice.WithPublisher(publisher),
		engineservice.WithMetrics(enginemetrics.New()),
		engineservice.WithTracer(tracer.NewOTel()),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Registry:       registryhandler.New(registrySvc, log),
		Catalog:        cataloghandler.New(catalogSvc, log),
		Engine:         enginehandler.New(engine, log),
		Verifier:       middleware.NewVerifier(cfg.JWTSigningKey),
		Idempotency:    idemStore,
		AdminTokenHash: cfg.AdminTokenHash,
		Checks:         checks,
		Logger:         log,
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting academy server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
