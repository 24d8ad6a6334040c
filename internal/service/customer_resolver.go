package service

import (
	"context"

	"github.com/subbridge/subbridge/internal/domain/customer"
	"github.com/subbridge/subbridge/internal/domain/order"
	"github.com/subbridge/subbridge/internal/domain/subscription"
	ierr "github.com/subbridge/subbridge/internal/errors"
	"github.com/subbridge/subbridge/internal/interfaces"
	"github.com/subbridge/subbridge/internal/logger"
)

const (
	msgPaymentLookupFailed = "Problem getting customer ID from Stripe"
	msgNoPaymentCustomer   = "Problem getting customer ID from Stripe; subscription will not be created."
)

// CustomerResolver builds the subscription customer and finds its Stripe customer id,
// preferring the local customer store over a Stripe search
type CustomerResolver struct {
	customerRepo  customer.Repository
	paymentLookup interfaces.PaymentCustomerLookup
	errorSink     interfaces.ErrorSink
	logger        *logger.Logger
}

func NewCustomerResolver(params ServiceParams) *CustomerResolver {
	return &CustomerResolver{
		customerRepo:  params.CustomerRepo,
		paymentLookup: params.PaymentLookup,
		errorSink:     params.ErrorSink,
		logger:        params.Logger,
	}
}

// Resolve returns an empty identity, without any lookups, when the order has no
// customer. Otherwise it fails with ierr.ErrCustomerResolution unless a payment
// customer reference is found.
func (r *CustomerResolver) Resolve(ctx context.Context, c *order.Customer) (*subscription.CustomerIdentity, error) {
	if c == nil {
		return &subscription.CustomerIdentity{}, nil
	}

	identity := &subscription.CustomerIdentity{
		ExternalID: c.ID,
		Email:      c.Email,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
	}

	identity.PaymentCustomerRef = r.storedRef(ctx, identity.Email)
	if identity.PaymentCustomerRef == "" {
		identity.PaymentCustomerRef = r.lookupRef(ctx, identity)
	}

	if identity.PaymentCustomerRef == "" {
		err := ierr.NewError(msgNoPaymentCustomer).
			WithHintf("No Stripe customer could be found for %s", identity.Email).
			WithReportableDetails(map[string]any{"external_id": identity.ExternalID}).
			Mark(ierr.ErrCustomerResolution)
		r.errorSink.Notify(ctx, err, map[string]any{
			"customer": identityDetails(identity),
		})
		return nil, err
	}

	return identity, nil
}

// storedRef reads the local customer store. Store failures are logged and treated as a miss.
func (r *CustomerResolver) storedRef(ctx context.Context, email string) string {
	stored, err := r.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		if !ierr.IsNotFound(err) {
			r.logger.Warnw("customer store lookup failed", "email", email, "error", err)
		}
		return ""
	}
	return stored.PaymentCustomerRef()
}

// lookupRef searches Stripe. A missing customer is not an error; any other failure is
// reported and resolution continues.
func (r *CustomerResolver) lookupRef(ctx context.Context, identity *subscription.CustomerIdentity) string {
	ref, err := r.paymentLookup.FindCustomerRefByEmail(ctx, identity.Email)
	if err != nil {
		if !ierr.IsNotFound(err) {
			r.errorSink.Notify(ctx, err, map[string]any{
				"message":  msgPaymentLookupFailed,
				"customer": identityDetails(identity),
			})
		}
		return ""
	}
	return ref
}

func identityDetails(identity *subscription.CustomerIdentity) map[string]any {
	return map[string]any{
		"external_id":        identity.ExternalID,
		"email":              identity.Email,
		"first_name":         identity.FirstName,
		"last_name":          identity.LastName,
		"stripe_customer_id": identity.PaymentCustomerRef,
	}
}
