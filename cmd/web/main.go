package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"finitefield.org/studio-web/internal/config"
	"finitefield.org/studio-web/internal/observability"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "web: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		addr     string
		tmplPath string
	)
	flag.StringVar(&addr, "addr", "", "HTTP listen address (defaults to :$STUDIO_WEB_PORT)")
	flag.StringVar(&tmplPath, "templates", "", "templates directory to parse instead of the embedded copy (dev)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Server.LogLevel, cfg.Server.DevMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	var opts []appOption
	if tmplPath != "" {
		opts = append(opts, withTemplates(os.DirFS(tmplPath)))
	}
	a, err := newApp(cfg, logger, opts...)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	if addr == "" {
		addr = ":" + cfg.Server.Port
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening",
			zap.String("addr", addr),
			zap.Bool("dev_mode", cfg.Server.DevMode),
			zap.Bool("cms_configured", a.cms.Configured()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
