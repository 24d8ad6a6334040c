package testutil

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/samber/lo"
	"github.com/subbridge/subbridge/internal/domain/customer"
	"github.com/subbridge/subbridge/internal/types"
)

// InMemoryCustomerStore implements customer.Repository keyed by lower-cased email
type InMemoryCustomerStore struct {
	*InMemoryStore[*customer.Customer]
	findCalls atomic.Int32
	// FindErr, when set, is returned by every FindByEmail call
	FindErr error
}

func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		InMemoryStore: NewInMemoryStore[*customer.Customer](),
	}
}

func copyCustomer(c *customer.Customer) *customer.Customer {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Metadata = lo.Assign(types.Metadata{}, c.Metadata)
	return &cp
}

func (s *InMemoryCustomerStore) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	s.findCalls.Add(1)
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	c, err := s.InMemoryStore.Get(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	return copyCustomer(c), nil
}

func (s *InMemoryCustomerStore) Upsert(ctx context.Context, c *customer.Customer) error {
	if c.ID == "" {
		c.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER)
	}
	s.InMemoryStore.Put(ctx, strings.ToLower(c.Email), copyCustomer(c))
	return nil
}

// FindCalls returns how many times FindByEmail was called
func (s *InMemoryCustomerStore) FindCalls() int {
	return int(s.findCalls.Load())
}
