package service

import (
	"context"

	"github.com/sourcegraph/conc/pool"
	"github.com/subbridge/subbridge/internal/domain/order"
	"github.com/subbridge/subbridge/internal/domain/subscription"
	ierr "github.com/subbridge/subbridge/internal/errors"
	"github.com/subbridge/subbridge/internal/interfaces"
	"github.com/subbridge/subbridge/internal/logger"
	"github.com/subbridge/subbridge/internal/security"
)

// Assembler builds a subscription request from an order. It returns either a
// complete request or an error, never a partial request.
type Assembler struct {
	products    *ProductExtractor
	customers   *CustomerResolver
	credentials security.CredentialProvider
	errorSink   interfaces.ErrorSink
	logger      *logger.Logger
}

func NewAssembler(params ServiceParams) *Assembler {
	return &Assembler{
		products:    NewProductExtractor(params.Config.Directives, params.Logger),
		customers:   NewCustomerResolver(params),
		credentials: params.Credentials,
		errorSink:   params.ErrorSink,
		logger:      params.Logger,
	}
}

// Assemble runs product, customer, shipping and order extraction concurrently and
// combines the results once all four are done.
func (a *Assembler) Assemble(ctx context.Context, o *order.Order) (*subscription.Request, error) {
	var (
		products *ProductSet
		identity *subscription.CustomerIdentity
		shipping subscription.ShippingMethod
		header   subscription.OrderHeader
	)

	p := pool.New().WithContext(ctx).WithFirstError()
	p.Go(func(ctx context.Context) error {
		set, err := a.products.Extract(o)
		if err != nil {
			return err
		}
		products = set
		return nil
	})
	p.Go(func(ctx context.Context) error {
		id, err := a.customers.Resolve(ctx, o.Customer)
		if err != nil {
			return err
		}
		identity = id
		return nil
	})
	p.Go(func(ctx context.Context) error {
		shipping = ExtractShipping(o)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		header = ExtractOrderHeader(o)
		return nil
	})

	if err := p.Wait(); err != nil {
		// customer failures were already reported by the resolver
		if ierr.IsArithmetic(err) {
			a.errorSink.Notify(ctx, err, map[string]any{
				"message":  "Problem calculating subscription item discounts",
				"order_id": o.ID,
			})
		}
		return nil, err
	}

	return &subscription.Request{
		APIKey:                    a.credentials.APIKey(),
		SendSubscriptionIDToStore: true,
		IncludesFreeTrial:         products.IncludesFreeTrial,
		Subscription: subscription.Terms{
			RenewalFrequency:   products.RenewalFrequency,
			ShippingMethodID:   shipping.ID,
			ShippingMethodName: shipping.Name,
			ShippingCost:       shipping.Cost,
		},
		Customer:          *identity,
		Order:             header,
		SubscriptionItems: products.Products,
	}, nil
}
