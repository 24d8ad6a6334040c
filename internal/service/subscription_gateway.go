package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/subbridge/subbridge/internal/domain/order"
	ierr "github.com/subbridge/subbridge/internal/errors"
	"github.com/subbridge/subbridge/internal/httpclient"
	"github.com/subbridge/subbridge/internal/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	createSubscriptionPath = "/methods/api_CreateNewSubscription"
	renewSubscriptionPath  = "/api/subscriptions/%s/renew"
)

// SubscriptionGateway talks to the external subscription service
type SubscriptionGateway interface {
	// Create assembles a subscription request from the order and posts it. A nil order is a no-op.
	Create(ctx context.Context, o *order.Order) error
	// Resume asks the service to renew a subscription. An empty id is a no-op.
	Resume(ctx context.Context, subscriptionID string) error
}

type subscriptionGateway struct {
	ServiceParams
	assembler *Assembler
}

func NewSubscriptionGateway(params ServiceParams) SubscriptionGateway {
	return &subscriptionGateway{
		ServiceParams: params,
		assembler:     NewAssembler(params),
	}
}

func (g *subscriptionGateway) Create(ctx context.Context, o *order.Order) error {
	if o == nil {
		return nil
	}

	baseURL, err := g.serviceURL()
	if err != nil {
		return err
	}
	if g.Credentials.APIKey() == "" {
		return missingAPIKeyError()
	}

	runID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RUN)
	log := g.Logger.With("run_id", runID, "order_id", o.ID)

	req, err := g.assembler.Assemble(ctx, o)
	if err != nil {
		log.Errorw("subscription request not assembled", "error", err, "error_code", ierr.Code(err))
		return err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode subscription request").
			Mark(ierr.ErrSystem)
	}

	log.Infow("creating subscription",
		"renewal_frequency", req.Subscription.RenewalFrequency,
		"items", len(req.SubscriptionItems),
		"includes_free_trial", req.IncludesFreeTrial,
	)

	_, err = g.Client.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    baseURL + createSubscriptionPath,
		Body:   body,
	})
	if err != nil {
		log.Errorw("create subscription request failed", "error", err)
		return err
	}

	log.Infow("subscription created")
	return nil
}

func (g *subscriptionGateway) Resume(ctx context.Context, subscriptionID string) error {
	subscriptionID = strings.TrimSpace(subscriptionID)
	if subscriptionID == "" {
		return nil
	}

	baseURL, err := g.serviceURL()
	if err != nil {
		return err
	}
	token := g.Credentials.BearerToken()
	if token == "" {
		return missingAPIKeyError()
	}

	_, err = g.Client.Send(ctx, &httpclient.Request{
		Method: http.MethodPut,
		URL:    baseURL + fmt.Sprintf(renewSubscriptionPath, url.PathEscape(subscriptionID)),
		Headers: map[string]string{
			"authorization": "Bearer " + token,
		},
	})
	if err != nil {
		g.Logger.Errorw("renew subscription request failed", "subscription_id", subscriptionID, "error", err)
		return err
	}

	g.Logger.Infow("subscription renewal requested", "subscription_id", subscriptionID)
	return nil
}

func (g *subscriptionGateway) serviceURL() (string, error) {
	base := strings.TrimRight(strings.TrimSpace(g.Config.Subscriptions.ServiceURL), "/")
	if base == "" {
		return "", ierr.NewError("subscription service url not configured").
			WithHint("Set subscriptions.service_url").
			Mark(ierr.ErrConfiguration)
	}
	return base, nil
}

func missingAPIKeyError() error {
	return ierr.NewError("subscription service api key not configured").
		WithHint("Set subscriptions.api_key or MP_API_KEY").
		Mark(ierr.ErrConfiguration)
}
