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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"uwevents/internal/app"
	"uwevents/internal/platform/config"
	"uwevents/internal/platform/health"
	"uwevents/internal/platform/logger"
	"uwevents/internal/platform/tracer"
	httptransport "uwevents/internal/transport/http"
)

// main wires the client graph behind the portal router and keeps the server
// lifecycle small. Gate and client logic live in internal packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logger.New("info").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	log.Info("initializing campus portal",
		"addr", cfg.PortalAddr,
		"api_base_url", cfg.APIBaseURL,
		"environment", cfg.Environment,
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	a, err := app.New(ctx, cfg,
		app.WithLogger(log),
		app.WithRegisterer(reg),
		app.WithTracer(tracer.NewOTel()),
	)
	if err != nil {
		log.Error("failed to build clients", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	a.Resolver.Mount(ctx)

	probes := health.New(cfg.Environment)
	probes.RegisterCheck("storage", a.StorageCheck)
	probes.RegisterCheck("session", func(context.Context) error {
		if !a.Resolver.State().Resolved() {
			return errors.New("session not resolved")
		}
		return nil
	})

	handler := httptransport.NewHandler(httptransport.Deps{
		Session:    a.Resolver,
		Admin:      a.Admin,
		Member:     a.Member,
		Promotions: a.Promotions,
		Moderation: a.Moderation,
		Catalog:    a.Catalog,
		Newsletter: a.Newsletter,
		Metrics:    a.Metrics,
	}, log)
	router := httptransport.NewRouter(handler, log,
		probes.Register,
		func(r chi.Router) {
			r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		},
	)

	srv := &http.Server{
		Addr:              cfg.PortalAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("starting http server", "addr", cfg.PortalAddr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
