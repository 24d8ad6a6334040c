package testutil

import (
	"context"
	"strings"
	"sync"

	ierr "github.com/subbridge/subbridge/internal/errors"
)

// StubPaymentLookup implements interfaces.PaymentCustomerLookup from a fixed email → ref map
type StubPaymentLookup struct {
	mu    sync.Mutex
	refs  map[string]string
	calls []string
	// Err, when set, is returned by every lookup
	Err error
}

func NewStubPaymentLookup() *StubPaymentLookup {
	return &StubPaymentLookup{refs: make(map[string]string)}
}

// AddCustomer registers a payment customer reference for email
func (s *StubPaymentLookup) AddCustomer(email, ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs[strings.ToLower(email)] = ref
}

func (s *StubPaymentLookup) FindCustomerRefByEmail(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, email)

	if s.Err != nil {
		return "", s.Err
	}
	ref, ok := s.refs[strings.ToLower(email)]
	if !ok {
		return "", ierr.NewError("customer not found").Mark(ierr.ErrNotFound)
	}
	return ref, nil
}

// Calls returns the emails looked up, in order
func (s *StubPaymentLookup) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}
