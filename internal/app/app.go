package app

import (
	"context"

	"github.com/subbridge/subbridge/internal/cache"
	"github.com/subbridge/subbridge/internal/config"
	"github.com/subbridge/subbridge/internal/httpclient"
	"github.com/subbridge/subbridge/internal/integration/stripe"
	"github.com/subbridge/subbridge/internal/interfaces"
	"github.com/subbridge/subbridge/internal/logger"
	"github.com/subbridge/subbridge/internal/postgres"
	"github.com/subbridge/subbridge/internal/repository"
	"github.com/subbridge/subbridge/internal/security"
	"github.com/subbridge/subbridge/internal/sentry"
	"github.com/subbridge/subbridge/internal/service"
	"go.uber.org/fx"
)

// Module provides everything the subscription pipeline needs
var Module = fx.Options(
	fx.Provide(
		// Config
		config.NewConfig,

		// Logger
		logger.NewLogger,

		// Cache
		cache.NewInMemoryCache,

		// Postgres
		provideDB,

		// Repositories
		repository.NewCustomerRepository,

		// Collaborators
		providePaymentLookup,
		provideErrorSink,
		security.NewCredentialProvider,

		// HTTP Client
		httpclient.NewDefaultClient,

		// Services
		service.NewServiceParams,
		service.NewSubscriptionGateway,
	),
	sentry.Module(),
)

func provideDB(lc fx.Lifecycle, cfg *config.Configuration, log *logger.Logger) (*postgres.DB, error) {
	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
	return db, nil
}

func providePaymentLookup(cfg *config.Configuration, log *logger.Logger) interfaces.PaymentCustomerLookup {
	return stripe.NewCustomerLookup(cfg, log)
}

func provideErrorSink(svc *sentry.Service) interfaces.ErrorSink {
	return svc
}

// Run starts the application, calls fn with the populated targets and stops the
// application again. targets are pointers filled by fx.Populate.
func Run(ctx context.Context, fn func(ctx context.Context) error, targets ...interface{}) error {
	app := fx.New(
		Module,
		fx.Populate(targets...),
		fx.NopLogger,
	)
	if err := app.Err(); err != nil {
		return err
	}

	if err := app.Start(ctx); err != nil {
		return err
	}

	runErr := fn(ctx)

	stopCtx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		return err
	}
	return runErr
}
