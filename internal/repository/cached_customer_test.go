package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subbridge/subbridge/internal/cache"
	"github.com/subbridge/subbridge/internal/config"
	"github.com/subbridge/subbridge/internal/domain/customer"
	ierr "github.com/subbridge/subbridge/internal/errors"
	"github.com/subbridge/subbridge/internal/testutil"
)

func newCachedRepo() (*CachedCustomerRepository, *testutil.InMemoryCustomerStore) {
	store := testutil.NewInMemoryCustomerStore()
	return NewCachedCustomerRepository(store, cache.NewInMemoryCache(config.GetDefaultConfig()), time.Minute), store
}

func TestCachedCustomerRepository_HitsCacheOnSecondLookup(t *testing.T) {
	ctx := context.Background()
	repo, store := newCachedRepo()
	require.NoError(t, store.Upsert(ctx, &customer.Customer{Email: "a@b.com", StripeCustomerID: "cus_1"}))

	first, err := repo.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	second, err := repo.FindByEmail(ctx, "A@B.com ")
	require.NoError(t, err)

	assert.Equal(t, "cus_1", first.PaymentCustomerRef())
	assert.Equal(t, "cus_1", second.PaymentCustomerRef())
	assert.Equal(t, 1, store.FindCalls())
}

func TestCachedCustomerRepository_DoesNotCacheMisses(t *testing.T) {
	ctx := context.Background()
	repo, store := newCachedRepo()

	_, err := repo.FindByEmail(ctx, "a@b.com")
	assert.True(t, ierr.IsNotFound(err))

	require.NoError(t, repo.Upsert(ctx, &customer.Customer{Email: "a@b.com", StripeCustomerID: "cus_2"}))
	c, err := repo.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "cus_2", c.PaymentCustomerRef())
	assert.Equal(t, 2, store.FindCalls())
}

func TestCachedCustomerRepository_UpsertInvalidates(t *testing.T) {
	ctx := context.Background()
	repo, _ := newCachedRepo()

	require.NoError(t, repo.Upsert(ctx, &customer.Customer{Email: "a@b.com", StripeCustomerID: "cus_old"}))
	_, err := repo.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, &customer.Customer{Email: "a@b.com", StripeCustomerID: "cus_new"}))
	c, err := repo.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "cus_new", c.PaymentCustomerRef())
}
