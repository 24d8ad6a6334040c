package stripe

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/subbridge/subbridge/internal/config"
	ierr "github.com/subbridge/subbridge/internal/errors"
	"github.com/subbridge/subbridge/internal/interfaces"
	"github.com/subbridge/subbridge/internal/logger"
	"golang.org/x/time/rate"
)

// customerSearcher runs a Stripe customer search and returns the first match's id.
type customerSearcher interface {
	firstCustomerID(ctx context.Context, query string) (id string, found bool, err error)
}

type sdkSearcher struct {
	client  *stripe.Client
	limiter *rate.Limiter
}

func newSDKSearcher(client *stripe.Client, searchRate float64) *sdkSearcher {
	limit := rate.Inf
	if searchRate > 0 {
		limit = rate.Limit(searchRate)
	}
	return &sdkSearcher{client: client, limiter: rate.NewLimiter(limit, 1)}
}

func (s *sdkSearcher) firstCustomerID(ctx context.Context, query string) (string, bool, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", false, err
	}

	params := &stripe.CustomerSearchParams{}
	params.Query = query
	params.Limit = stripe.Int64(1)

	for customer, err := range s.client.V1Customers.Search(ctx, params) {
		if err != nil {
			return "", false, err
		}
		return customer.ID, true, nil
	}
	return "", false, nil
}

// CustomerLookup resolves Stripe customer ids by email
type CustomerLookup struct {
	searcher customerSearcher
	logger   *logger.Logger
}

var _ interfaces.PaymentCustomerLookup = (*CustomerLookup)(nil)

// NewCustomerLookup builds a lookup from stripe.secret_key. Without a key every
// lookup fails with a configuration error.
func NewCustomerLookup(cfg *config.Configuration, logger *logger.Logger) *CustomerLookup {
	var searcher customerSearcher
	if cfg.Stripe.SecretKey != "" {
		searcher = newSDKSearcher(stripe.NewClient(cfg.Stripe.SecretKey, nil), cfg.Stripe.SearchRate)
	}
	return &CustomerLookup{searcher: searcher, logger: logger}
}

// FindCustomerRefByEmail returns the id of the first Stripe customer with the email
func (l *CustomerLookup) FindCustomerRefByEmail(ctx context.Context, email string) (string, error) {
	if l.searcher == nil {
		return "", ierr.NewError("stripe secret key not configured").
			WithHint("Set stripe.secret_key to look up payment customers").
			Mark(ierr.ErrConfiguration)
	}
	if strings.TrimSpace(email) == "" {
		return "", ierr.NewError("email is required").
			WithHint("Stripe customers can only be searched by a non-empty email").
			Mark(ierr.ErrValidation)
	}

	id, found, err := l.searcher.firstCustomerID(ctx, emailQuery(email))
	if err != nil {
		l.logger.Warnw("stripe customer search failed", "email", email, "error", err)
		return "", ierr.WithError(err).
			WithHint("Failed to search Stripe customers").
			Mark(ierr.ErrHTTPClient)
	}
	if !found {
		return "", ierr.NewError("customer not found").
			WithHintf("No Stripe customer has email %s", email).
			Mark(ierr.ErrNotFound)
	}

	l.logger.Debugw("found stripe customer", "email", email, "stripe_customer_id", id)
	return id, nil
}

// emailQuery builds a Stripe search query, escaping quotes in the email
func emailQuery(email string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(strings.TrimSpace(email))
	return "email:'" + escaped + "'"
}
