package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vndigital/sitehub/internal/cache"
	"github.com/vndigital/sitehub/internal/config"
	"github.com/vndigital/sitehub/internal/db"
	httpx "github.com/vndigital/sitehub/internal/http"
	"github.com/vndigital/sitehub/internal/observability"
	"github.com/vndigital/sitehub/internal/queue/redisclient"
	"github.com/vndigital/sitehub/internal/repo/postgres"
	"github.com/vndigital/sitehub/internal/session"
)

func main() {
	cfg, err := config.Load()

	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(ctx, "sitehub-api", cfg.OTLPEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
		} else {
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdownTracer(sctx)
			}()
		}
	}

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	err = db.EnsureSchema(ctx, pool)

	if err != nil {
		log.Error("schema setup failed", "err", err)
		os.Exit(1)
	}

	err = db.EnsureAdminUser(ctx, pool, cfg)

	if err != nil {
		log.Error("admin seed failed", "err", err)
		os.Exit(1)
	}

	// Sessions live in redis when an address is configured; otherwise a
	// process-local store keeps single-instance deployments working.
	var sessions session.Store
	if cfg.RedisAddr != "" {
		rc := redisclient.New(redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rc.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err = rc.Ping(pingCtx)
		cancel()

		if err != nil {
			log.Error("redis connect failed", "err", err)
			os.Exit(1)
		}

		sessions = session.NewRedisStore(rc.Raw(), cfg.SessionSecret, cfg.SessionTTL)
	} else {
		log.Warn("REDIS_ADDR not set, using in-memory session store")
		sessions = session.NewMemoryStore(cfg.SessionSecret, cfg.SessionTTL)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(registry)

	router := httpx.NewRouter(httpx.Deps{
		Log:      log,
		Cfg:      cfg,
		Users:    postgres.NewUsersRepo(pool, prom),
		Services: postgres.NewServicesRepo(pool, prom),
		Team:     postgres.NewTeamRepo(pool, prom),
		Contacts: postgres.NewContactsRepo(pool, prom),
		Jobs:     postgres.NewJobsRepo(pool, prom),
		Sessions: sessions,
		Cache:    cache.New(30 * time.Second),
		Prom:     prom,
		Registry: registry,
		Ping: func() error {
			pctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
			defer cancel()
			return pool.Ping(pctx)
		},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)

	if err != nil {
		log.Error("graceful shutdown failed", "err", err)
		return
	}

	log.Info("shutdown complete")
}
