package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"
)

const shutdownTimeout = 10 * time.Second

// startHTTPServer serves router until ctx is canceled or the listener fails,
// then shuts down gracefully.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:              net.JoinHostPort(app.config.Server.Host, strconv.Itoa(app.config.Server.Port)),
		Handler:           router,
		ReadTimeout:       time.Duration(app.config.Server.ReadTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      time.Duration(app.config.Server.WriteTimeoutSeconds) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		app.logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.logger.Info("server shutdown completed")
	return nil
}
