package stripe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subbridge/subbridge/internal/config"
	ierr "github.com/subbridge/subbridge/internal/errors"
	"github.com/subbridge/subbridge/internal/logger"
	"golang.org/x/time/rate"
)

type fakeSearcher struct {
	id      string
	found   bool
	err     error
	queries []string
}

func (f *fakeSearcher) firstCustomerID(_ context.Context, query string) (string, bool, error) {
	f.queries = append(f.queries, query)
	return f.id, f.found, f.err
}

func TestFindCustomerRefByEmail(t *testing.T) {
	tests := []struct {
		name     string
		searcher *fakeSearcher
		email    string
		want     string
		check    func(error) bool
	}{
		{
			name:     "found",
			searcher: &fakeSearcher{id: "cus_123", found: true},
			email:    "a@b.com",
			want:     "cus_123",
		},
		{
			name:     "not_found",
			searcher: &fakeSearcher{},
			email:    "a@b.com",
			check:    ierr.IsNotFound,
		},
		{
			name:     "search_failure",
			searcher: &fakeSearcher{err: errors.New("connection reset")},
			email:    "a@b.com",
			check:    ierr.IsHTTPClient,
		},
		{
			name:     "empty_email",
			searcher: &fakeSearcher{},
			email:    " ",
			check:    ierr.IsValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := &CustomerLookup{searcher: tt.searcher, logger: logger.NewNoopLogger()}
			got, err := lookup.FindCustomerRefByEmail(context.Background(), tt.email)
			if tt.check != nil {
				require.Error(t, err)
				assert.True(t, tt.check(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"email:'a@b.com'"}, tt.searcher.queries)
		})
	}
}

func TestFindCustomerRefByEmailWithoutKey(t *testing.T) {
	lookup := NewCustomerLookup(config.GetDefaultConfig(), logger.NewNoopLogger())
	_, err := lookup.FindCustomerRefByEmail(context.Background(), "a@b.com")
	require.Error(t, err)
	assert.True(t, ierr.IsConfiguration(err))
}

func TestEmailQueryEscapesQuotes(t *testing.T) {
	assert.Equal(t, `email:'o\'brien@b.com'`, emailQuery(" o'brien@b.com "))
}

func TestSDKSearcherHonoursCancelledContext(t *testing.T) {
	searcher := newSDKSearcher(nil, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, found, err := searcher.firstCustomerID(ctx, "email:'a@b.com'")
	require.Error(t, err)
	assert.False(t, found)
}

func TestSDKSearcherUnlimitedRate(t *testing.T) {
	assert.Equal(t, rate.Inf, newSDKSearcher(nil, 0).limiter.Limit())
	assert.Equal(t, rate.Limit(20), newSDKSearcher(nil, 20).limiter.Limit())
}
