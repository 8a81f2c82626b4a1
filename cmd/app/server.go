package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownGrace = 30 * time.Second

func (app *application) newServer(port string) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           app.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		ErrorLog:          slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}
}

// serve blocks until SIGINT or SIGTERM, then drains in-flight requests,
// stops the stats watcher and flushes queued blog events.
func (app *application) serve(port string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := app.newServer(port)

	listenErr := make(chan error, 1)
	go func() {
		app.logger.Info("listening", slog.String("addr", srv.Addr), slog.String("env", app.config.Environment))

		var err error
		if app.config.Environment == "production" {
			err = srv.ListenAndServeTLS(app.config.TLSCertFile, app.config.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		listenErr <- err
	}()

	select {
	case err := <-listenErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	app.logger.Info("shutdown signal received", slog.String("addr", srv.Addr))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	return app.shutdown(shutdownCtx, srv)
}

func (app *application) shutdown(ctx context.Context, srv *http.Server) error {
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	app.statService.Close()

	drained := make(chan struct{})
	go func() {
		app.publisher.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		app.logger.Info("server stopped", slog.String("addr", srv.Addr))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
