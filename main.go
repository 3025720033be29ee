package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/sentrytools"

	"todo-api/app"
	"todo-api/app/config"
)

//	@title		TodoAPI v1
//	@version	v1

func main() {
	cfg := config.Load(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	application, err := app.New(logger, cfg)
	if err != nil {
		logger.Error("failed to initialize application", logging.ErrAttr(err))
		os.Exit(1)
	}
	defer application.Close()
	defer sentry.Flush(2 * time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Serve(ctx); err != nil {
		logger.Error("failed to serve server", logging.ErrAttr(err))
	}
}

// newLogger reports error records to Sentry on top of the usual output.
func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(sentrytools.NewLogHandler(cfg.Env, handler))
}
