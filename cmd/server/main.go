package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/quidwise/taxengine/internal/auth"
	"github.com/quidwise/taxengine/internal/calculator"
	"github.com/quidwise/taxengine/internal/config"
	"github.com/quidwise/taxengine/internal/middleware"
	"github.com/quidwise/taxengine/internal/rates"
	"github.com/quidwise/taxengine/internal/service"
	"github.com/quidwise/taxengine/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Missing or malformed rates are fatal: the engine must never boot
	// with a partial table.
	table, err := rates.Load(cfg.RatesPath)
	if err != nil {
		slog.Error("Failed to load rate table", "error", err, "path", cfg.RatesPath)
		os.Exit(1)
	}
	slog.Info("Rate table loaded", "tax_year", table.TaxYear)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	interceptors := []connect.Interceptor{
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(registry),
	}
	if cfg.Auth.JWTSecret != "" {
		manager := auth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL))
		interceptors = append(interceptors, middleware.RequireAuth(manager))
		slog.Info("Bearer-token auth enabled")
	}

	svc := service.NewTaxService(calculator.New(table))

	mux := http.NewServeMux()
	path, handler := service.NewTaxServiceHandler(svc, connect.WithInterceptors(interceptors...))
	mux.Handle(path, handler)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// SIGHUP reloads the rate document and swaps the engine atomically;
	// in-flight calculations keep the snapshot they started with.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			newTable, err := rates.Load(cfg.RatesPath)
			if err != nil {
				slog.Error("Rate table reload failed, keeping current table", "error", err)
				continue
			}
			svc.Swap(calculator.New(newTable))
		}
	}()

	// h2c enables HTTP/2 without TLS, as Connect clients expect.
	h2cHandler := h2c.NewHandler(mux, &http2.Server{})

	slog.Info("Tax engine server starting", "address", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
