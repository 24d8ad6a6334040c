package sentry

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/subbridge/subbridge/internal/config"
	ierr "github.com/subbridge/subbridge/internal/errors"
	"github.com/subbridge/subbridge/internal/logger"
	"go.uber.org/fx"
)

// Service is the process-wide error sink. Every notification is logged; it is
// also forwarded to Sentry when sentry.enabled is set.
type Service struct {
	cfg    *config.Configuration
	logger *logger.Logger
}

// Module provides fx options for Sentry
func Module() fx.Option {
	return fx.Options(
		fx.Provide(NewSentryService),
		fx.Invoke(RegisterHooks),
	)
}

// RegisterHooks initialises the SDK on start and flushes it on stop
func RegisterHooks(lc fx.Lifecycle, svc *Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !svc.cfg.Sentry.Enabled {
				svc.logger.Debug("Sentry is disabled")
				return nil
			}

			err := sentry.Init(sentry.ClientOptions{
				Dsn:              svc.cfg.Sentry.DSN,
				Environment:      svc.cfg.Sentry.Environment,
				SampleRate:       svc.cfg.Sentry.SampleRate,
				AttachStacktrace: true,
			})
			if err != nil {
				svc.logger.Errorw("Failed to initialize Sentry", "error", err)
				return err
			}
			svc.logger.Infow("Sentry initialized successfully",
				"environment", svc.cfg.Sentry.Environment,
				"sample_rate", svc.cfg.Sentry.SampleRate,
			)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			svc.Flush(2)
			return nil
		},
	})
}

// NewSentryService creates a new Sentry service
func NewSentryService(cfg *config.Configuration, logger *logger.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger,
	}
}

// Notify reports err with its details. It never blocks on the network: the SDK
// queues events and sends them in the background.
func (s *Service) Notify(ctx context.Context, err error, details map[string]any) {
	if err == nil {
		return
	}

	fields := []interface{}{"error", err, "error_code", ierr.Code(err)}
	for k, v := range details {
		fields = append(fields, k, v)
	}
	s.logger.Errorw("reporting error", fields...)

	if !s.cfg.Sentry.Enabled {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("error_code", ierr.Code(err))
		if len(details) > 0 {
			scope.SetContext("details", sentry.Context(details))
		}
		hub.CaptureException(err)
	})
}

// Flush waits for queued events to be sent
func (s *Service) Flush(timeout uint) bool {
	if !s.cfg.Sentry.Enabled {
		return true
	}
	return sentry.Flush(time.Duration(timeout) * time.Second)
}
