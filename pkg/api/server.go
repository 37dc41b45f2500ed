// Package api is the caresave REST API. Every route under /api/v1 requires
// the X-API-Key header; /metrics is left open for scraping.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// NewRouter wires every route onto a chi router
func NewRouter(server *Server) http.Handler {
	metrics := server.metrics

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(server.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(server.config.APIKey)))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))
		r.Get("/actions", metrics.InstrumentHandler("GET", "/api/v1/actions", server.handleListActions))

		// Profiles
		r.Post("/profiles", metrics.InstrumentHandler("POST", "/api/v1/profiles", server.handleCreateProfile))
		r.Get("/profiles", metrics.InstrumentHandler("GET", "/api/v1/profiles", server.handleListProfiles))
		r.Route("/profiles/{accountId}", func(r chi.Router) {
			r.Get("/", metrics.InstrumentHandler("GET", "/api/v1/profiles/{accountId}", server.handleGetProfile))
			r.Put("/", metrics.InstrumentHandler("PUT", "/api/v1/profiles/{accountId}", server.handlePutProfile))
			r.Delete("/", metrics.InstrumentHandler("DELETE", "/api/v1/profiles/{accountId}", server.handleDeleteProfile))
			r.Post("/actions", metrics.InstrumentHandler("POST", "/api/v1/profiles/{accountId}/actions", server.handleApplyAction))
			r.Post("/sessions", metrics.InstrumentHandler("POST", "/api/v1/profiles/{accountId}/sessions", server.handleCompleteSession))
			r.Get("/save", metrics.InstrumentHandler("GET", "/api/v1/profiles/{accountId}/save", server.handleGenerateSave))
		})

		// User saves
		r.Post("/saves/decode", metrics.InstrumentHandler("POST", "/api/v1/saves/decode", server.handleDecodeSave))
	})

	return r
}

// StartServer serves the API on config.Addr until ctx is cancelled, then
// shuts down gracefully
func StartServer(ctx context.Context, profiles ProfileStore, saves SaveService, config ServerConfig, logger *zap.Logger) error {
	if config.APIKey == "" {
		return errors.New("api key is required to start the server")
	}

	server := NewServer(profiles, saves, config, NewMetrics()).WithLogger(logger)
	srv := &http.Server{
		Addr:              config.Addr,
		Handler:           NewRouter(server),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting caresave REST API server",
			zap.String("addr", config.Addr),
			zap.String("metrics", fmt.Sprintf("http://%s/metrics", config.Addr)),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down caresave REST API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
