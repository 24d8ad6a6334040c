package service

import (
	"github.com/subbridge/subbridge/internal/config"
	"github.com/subbridge/subbridge/internal/domain/customer"
	"github.com/subbridge/subbridge/internal/httpclient"
	"github.com/subbridge/subbridge/internal/interfaces"
	"github.com/subbridge/subbridge/internal/logger"
	"github.com/subbridge/subbridge/internal/security"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Repositories
	CustomerRepo customer.Repository

	// Collaborators
	PaymentLookup interfaces.PaymentCustomerLookup
	ErrorSink     interfaces.ErrorSink
	Credentials   security.CredentialProvider

	// http client
	Client httpclient.Client
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	customerRepo customer.Repository,
	paymentLookup interfaces.PaymentCustomerLookup,
	errorSink interfaces.ErrorSink,
	credentials security.CredentialProvider,
	client httpclient.Client,
) ServiceParams {
	return ServiceParams{
		Logger:        logger,
		Config:        config,
		CustomerRepo:  customerRepo,
		PaymentLookup: paymentLookup,
		ErrorSink:     errorSink,
		Credentials:   credentials,
		Client:        client,
	}
}
