package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/subbridge/subbridge/internal/domain/customer"
	"github.com/subbridge/subbridge/internal/domain/order"
	ierr "github.com/subbridge/subbridge/internal/errors"
	"github.com/subbridge/subbridge/internal/testutil"
	"github.com/subbridge/subbridge/internal/types"
)

type CustomerResolverSuite struct {
	testutil.BaseServiceTestSuite
	resolver *CustomerResolver
}

func TestCustomerResolver(t *testing.T) {
	suite.Run(t, new(CustomerResolverSuite))
}

func (s *CustomerResolverSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.resolver = NewCustomerResolver(testServiceParams(&s.BaseServiceTestSuite))
}

func (s *CustomerResolverSuite) orderCustomer() *order.Customer {
	return &order.Customer{ID: 9, Email: "a@b.com", FirstName: "Ada", LastName: "Byron"}
}

func (s *CustomerResolverSuite) TestNoCustomerIsANoop() {
	identity, err := s.resolver.Resolve(s.GetContext(), nil)
	s.NoError(err)
	s.True(identity.IsEmpty())

	stores := s.GetStores()
	s.Equal(0, stores.CustomerRepo.FindCalls())
	s.Empty(stores.PaymentLookup.Calls())
	s.Empty(stores.ErrorSink.Notifications())
}

func (s *CustomerResolverSuite) TestStoredReferenceSkipsRemoteLookup() {
	stores := s.GetStores()
	s.NoError(stores.CustomerRepo.Upsert(s.GetContext(), &customer.Customer{Email: "a@b.com", StripeCustomerID: "cus_1"}))
	stores.PaymentLookup.AddCustomer("a@b.com", "cus_remote")

	identity, err := s.resolver.Resolve(s.GetContext(), s.orderCustomer())
	s.NoError(err)

	s.Equal("cus_1", identity.PaymentCustomerRef)
	s.Equal(int64(9), identity.ExternalID)
	s.Equal("a@b.com", identity.Email)
	s.Equal("Ada", identity.FirstName)
	s.Equal("Byron", identity.LastName)
	s.Empty(stores.PaymentLookup.Calls())
	s.Empty(stores.ErrorSink.Notifications())
}

func (s *CustomerResolverSuite) TestStoredReferenceFromMetadata() {
	stores := s.GetStores()
	s.NoError(stores.CustomerRepo.Upsert(s.GetContext(), &customer.Customer{
		Email:    "a@b.com",
		Metadata: types.Metadata{types.MetadataKeyStripeCustomerID: "cus_meta"},
	}))

	identity, err := s.resolver.Resolve(s.GetContext(), s.orderCustomer())
	s.NoError(err)
	s.Equal("cus_meta", identity.PaymentCustomerRef)
	s.Empty(stores.PaymentLookup.Calls())
}

func (s *CustomerResolverSuite) TestStoredRecordWithoutReferenceFallsBackToRemote() {
	stores := s.GetStores()
	s.NoError(stores.CustomerRepo.Upsert(s.GetContext(), &customer.Customer{Email: "a@b.com"}))
	stores.PaymentLookup.AddCustomer("a@b.com", "cus_remote")

	identity, err := s.resolver.Resolve(s.GetContext(), s.orderCustomer())
	s.NoError(err)
	s.Equal("cus_remote", identity.PaymentCustomerRef)
	s.Equal([]string{"a@b.com"}, stores.PaymentLookup.Calls())
}

func (s *CustomerResolverSuite) TestStoreFailureFallsBackToRemote() {
	stores := s.GetStores()
	stores.CustomerRepo.FindErr = ierr.NewError("connection refused").Mark(ierr.ErrDatabase)
	stores.PaymentLookup.AddCustomer("a@b.com", "cus_remote")

	identity, err := s.resolver.Resolve(s.GetContext(), s.orderCustomer())
	s.NoError(err)
	s.Equal("cus_remote", identity.PaymentCustomerRef)
	s.Empty(stores.ErrorSink.Notifications())
}

func (s *CustomerResolverSuite) TestNoReferenceAnywhereFails() {
	stores := s.GetStores()

	identity, err := s.resolver.Resolve(s.GetContext(), s.orderCustomer())
	s.Nil(identity)
	s.Error(err)
	s.True(ierr.IsCustomerResolution(err))

	notifications := stores.ErrorSink.Notifications()
	s.Len(notifications, 1)
	s.True(ierr.IsCustomerResolution(notifications[0].Err))
	s.NotContains(notifications[0].Details, "message")
	s.Equal("a@b.com", notifications[0].Details["customer"].(map[string]any)["email"])
}

func (s *CustomerResolverSuite) TestRemoteFailureIsReportedThenResolutionFails() {
	stores := s.GetStores()
	stores.PaymentLookup.Err = ierr.WithError(errors.New("stripe unavailable")).Mark(ierr.ErrHTTPClient)

	_, err := s.resolver.Resolve(s.GetContext(), s.orderCustomer())
	s.True(ierr.IsCustomerResolution(err))

	notifications := stores.ErrorSink.Notifications()
	s.Len(notifications, 2)

	lookupFailure, resolutionFailure := notifications[0], notifications[1]
	s.True(ierr.IsHTTPClient(lookupFailure.Err))
	s.Equal(msgPaymentLookupFailed, lookupFailure.Details["message"])
	s.Contains(lookupFailure.Details, "customer")

	s.True(ierr.IsCustomerResolution(resolutionFailure.Err))
	s.False(ierr.IsCustomerResolution(lookupFailure.Err))
}
