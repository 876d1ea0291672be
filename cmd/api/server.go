package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Running and listening HTTP server
func (app *application) serve() error {
	// HTTP server settings
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.port),
		Handler:      app.routes(),
		ErrorLog:     zap.NewStdLog(app.logger),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	// shutdownError channel receive any errors returned by the graceful Shutdown() function
	shutdownError := make(chan error)

	// background go routine for listening a signal
	go func() {
		// buffered so signal.Notify() never blocks on delivery
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		s := <-quit

		app.logger.Info("caught signal", zap.String("signal", s.String()))

		// 5-second context timeout
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
			return
		}

		app.logger.Info("completing background tasks", zap.String("addr", srv.Addr))

		// waiting for background goroutine complete
		app.wg.Wait()
		shutdownError <- nil
	}()

	app.logger.Info("starting server",
		zap.String("addr", srv.Addr),
		zap.String("env", app.config.env),
	)

	// Shutdown() makes ListenAndServe() return http.ErrServerClosed immediately;
	// any other error means the server failed to start or crashed
	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// waiting for graceful shutdown done and receive the error on Shutdown()
	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", zap.String("addr", srv.Addr))

	return nil
}
