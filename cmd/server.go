package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/masklab/snowmask/internal/auth"
	"github.com/masklab/snowmask/internal/handler"
	"github.com/masklab/snowmask/internal/logger"
	"github.com/masklab/snowmask/internal/metrics"
	"github.com/masklab/snowmask/internal/util"
)

func RunServer(port int, config *Config) error {
	if err := config.ValidateServer(); err != nil {
		return err
	}

	logger.Debug("Auth configured for user %s (hash %s)", config.Username, util.AbbreviateSecret(config.PasswordHash))

	m := metrics.New(config.MetricsNamespace)

	maskHandler := handler.NewMaskHandler(handler.Config{
		DefaultCategory: config.DefaultCategory,
		DefaultLevel:    config.DefaultLevel,
		Metrics:         m,
	})

	authMiddleware := auth.Middleware(auth.Config{
		Username:     config.Username,
		PasswordHash: config.PasswordHash,
	})

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK\n"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/v1/mask", maskHandler.MaskQuery)
		r.Post("/v1/mask", maskHandler.MaskJSON)
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting masking server on port %d", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
