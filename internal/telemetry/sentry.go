// Package telemetry provides optional Sentry error capture.
package telemetry

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

const serverName = "elvproposal"

// Config holds the configuration for Sentry initialization.
type Config struct {
	DSN         string
	Environment string
	Release     string
	Debug       bool
}

// Init initializes Sentry and returns a shutdown function that flushes
// pending events. An empty DSN leaves Sentry disabled and returns a no-op.
// A failed initialization is logged and treated the same way.
func Init(cfg Config, logger *zap.Logger) func() {
	if cfg.DSN == "" {
		return func() {}
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		Debug:       cfg.Debug,
		ServerName:  serverName,
	})
	if err != nil {
		if logger != nil {
			logger.Warn("sentry: failed to initialize, continuing without it", zap.Error(err))
		}
		return func() {}
	}

	if logger != nil {
		logger.Info("sentry: error capture enabled", zap.String("environment", cfg.Environment))
	}
	return func() {
		sentry.Flush(5 * time.Second)
	}
}

// CaptureError captures an error to Sentry with the current context. It is a
// no-op when Sentry was never initialized.
func CaptureError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}

// AddBreadcrumb records a breadcrumb on the current scope.
func AddBreadcrumb(ctx context.Context, category, message string) {
	breadcrumb := &sentry.Breadcrumb{
		Type:      "default",
		Category:  category,
		Message:   message,
		Level:     sentry.LevelInfo,
		Timestamp: time.Now(),
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.AddBreadcrumb(breadcrumb, nil)
	} else {
		sentry.AddBreadcrumb(breadcrumb)
	}
}
