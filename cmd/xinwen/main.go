package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"xinwen/internal/app"
	"xinwen/internal/config"
	"xinwen/internal/logger"
	"xinwen/internal/metrics"
)

func main() {
	log := logger.New()
	m := metrics.New()

	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer(log, m)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration error", "err", err)
		os.Exit(1)
	}

	if err := app.Run(context.Background(), cfg, log, m); err != nil {
		log.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func startMonitoringServer(log *slog.Logger, m *metrics.Metrics) {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		stats := m.GetStats()

		status := "ok"
		if !stats["is_healthy"].(bool) {
			status = "error"
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":     status,
			"last_run":   stats["last_run_time"],
			"last_error": stats["last_error"],
		})
	})

	http.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(m.GetStats())
	})

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Error("monitoring server error", "err", err)
	}
}
