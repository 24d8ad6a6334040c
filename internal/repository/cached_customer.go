package repository

import (
	"context"
	"strings"
	"time"

	"github.com/subbridge/subbridge/internal/cache"
	"github.com/subbridge/subbridge/internal/domain/customer"
)

// CachedCustomerRepository caches successful email lookups. Misses and errors are
// never cached so a customer linked later is picked up on the next call.
type CachedCustomerRepository struct {
	next  customer.Repository
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedCustomerRepository(next customer.Repository, c cache.Cache, ttl time.Duration) *CachedCustomerRepository {
	return &CachedCustomerRepository{next: next, cache: c, ttl: ttl}
}

func (r *CachedCustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	key := emailKey(email)
	if v, ok := r.cache.Get(ctx, key); ok {
		if c, ok := v.(*customer.Customer); ok {
			cp := *c
			return &cp, nil
		}
	}

	c, err := r.next.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	stored := *c
	r.cache.Set(ctx, key, &stored, r.ttl)
	return c, nil
}

func (r *CachedCustomerRepository) Upsert(ctx context.Context, c *customer.Customer) error {
	if err := r.next.Upsert(ctx, c); err != nil {
		return err
	}
	r.cache.Delete(ctx, emailKey(c.Email))
	return nil
}

func emailKey(email string) string {
	return cache.GenerateKey(cache.PrefixCustomerByEmail, strings.ToLower(strings.TrimSpace(email)))
}
