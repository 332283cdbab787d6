// Command server exposes the Spanish verse scanner as a JSON REST API.
//
// Endpoints:
//
//	POST /api/scan            body: {"text":"<CoNLL-U>","options":{...}}
//	GET  /api/syllabify?word=<word>
//	GET  /api/structures
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cours-de-latin/escansion"
	"github.com/cours-de-latin/escansion/internal/app"
	"github.com/cours-de-latin/escansion/internal/config"
	"github.com/cours-de-latin/escansion/internal/conllu"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	opts := append(cfg.Scan.ScannerOptions(), escansion.WithLogger(logger))
	scanner, err := escansion.New(conllu.Tagger{}, opts...)
	if err != nil {
		return err
	}
	logger.Info("rule tables loaded")

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      newHandler(scanner, cfg, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
