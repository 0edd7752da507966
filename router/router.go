// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/mat-e-voto/catalog"
	"github.com/danielhkuo/mat-e-voto/cliparse"
	"github.com/danielhkuo/mat-e-voto/handlers"
	"github.com/danielhkuo/mat-e-voto/middleware"
)

func NewRouter(store catalog.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	vaaHandler := handlers.NewVAAHandler(store, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", promhttp.Handler())

	// Scoring (public, nothing stored)
	mux.HandleFunc("POST /api/vaa/calculate", middleware.WithLogging("/api/vaa/calculate", vaaHandler.Calculate))
	mux.HandleFunc("POST /api/vaa/share", middleware.WithLogging("/api/vaa/share", vaaHandler.Share))

	// Questionnaire and share link views
	mux.HandleFunc("GET /vaa/statements", middleware.WithLogging("/vaa/statements", vaaHandler.Statements))
	mux.HandleFunc("GET /vaa/results", middleware.WithLogging("/vaa/results", vaaHandler.Results))
	mux.HandleFunc("GET /vaa/compare", middleware.WithLogging("/vaa/compare", vaaHandler.Compare))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("mat-e-voto API v1"))
	})

	return mux
}
