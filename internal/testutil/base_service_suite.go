package testutil

import (
	"context"

	"github.com/stretchr/testify/suite"
	"github.com/subbridge/subbridge/internal/config"
	"github.com/subbridge/subbridge/internal/logger"
	"github.com/subbridge/subbridge/internal/security"
)

const (
	TestServiceURL = "https://subscriptions.test"
	TestAPIKey     = "test-api-key"
)

// Stores holds the fakes standing in for the pipeline's collaborators
type Stores struct {
	CustomerRepo  *InMemoryCustomerStore
	PaymentLookup *StubPaymentLookup
	ErrorSink     *RecordingErrorSink
	HTTPClient    *MockHTTPClient
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	stores      Stores
	logger      *logger.Logger
	config      *config.Configuration
	credentials security.CredentialProvider
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	s.logger = logger.NewNoopLogger()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()

	s.config = config.GetDefaultConfig()
	s.config.Subscriptions.ServiceURL = TestServiceURL
	s.config.Subscriptions.APIKey = TestAPIKey
	s.credentials = security.NewCredentialProvider(s.config)

	s.stores = Stores{
		CustomerRepo:  NewInMemoryCustomerStore(),
		PaymentLookup: NewStubPaymentLookup(),
		ErrorSink:     NewRecordingErrorSink(),
		HTTPClient:    NewMockHTTPClient(),
	}
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetCredentials() security.CredentialProvider {
	return s.credentials
}
