package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/myrjola/fitnesspro/internal/e2etest"
	"github.com/myrjola/fitnesspro/internal/errors"
)

const (
	// defaultTimeout bounds reading and writing a request. Handlers get a little less, see [application.timeout].
	defaultTimeout  = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// configureAndStartServer serves handler on addr until ctx is done. In-flight requests get shutdownTimeout to
// finish.
func (app *application) configureAndStartServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{ //nolint:exhaustruct // defaults are fine.
		ErrorLog:          slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
		Handler:           handler,
		IdleTimeout:       time.Minute,
		ReadTimeout:       defaultTimeout,
		WriteTimeout:      defaultTimeout,
		ReadHeaderTimeout: time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	listener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr) //nolint:exhaustruct // defaults.
	if err != nil {
		return errors.Wrap(err, "tcp listen", slog.String("addr", addr))
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		start := time.Now()
		app.logger.LogAttrs(ctx, slog.LevelInfo, "shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
			app.logger.LogAttrs(ctx, slog.LevelError, "server shutdown failed", errors.SlogError(shutdownErr))
			return
		}
		app.logger.LogAttrs(ctx, slog.LevelInfo, "server stopped", slog.Duration("shutdown_duration", time.Since(start)))
	}()

	app.logger.LogAttrs(ctx, slog.LevelInfo, "starting server", slog.String(e2etest.LogAddrKey, listener.Addr().String()))
	if err = srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve")
	}
	<-stopped
	return nil
}
