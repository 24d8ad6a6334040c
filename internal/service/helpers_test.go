package service

import (
	"github.com/subbridge/subbridge/internal/testutil"
)

func testServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		stores.CustomerRepo,
		stores.PaymentLookup,
		stores.ErrorSink,
		s.GetCredentials(),
		stores.HTTPClient,
	)
}
