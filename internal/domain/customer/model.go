package customer

import (
	"time"

	"github.com/subbridge/subbridge/internal/types"
)

// Customer is a locally stored storefront customer. The store is maintained by the
// account sync jobs; the subscription pipeline only reads it.
type Customer struct {
	ID               string         `db:"id" json:"id"`
	Email            string         `db:"email" json:"email"`
	StripeCustomerID string         `db:"stripe_customer_id" json:"stripe_customer_id"`
	Metadata         types.Metadata `db:"metadata" json:"metadata"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// PaymentCustomerRef returns the stripe customer id, falling back to the
// metadata key older rows used.
func (c *Customer) PaymentCustomerRef() string {
	if c == nil {
		return ""
	}
	if c.StripeCustomerID != "" {
		return c.StripeCustomerID
	}
	return c.Metadata[types.MetadataKeyStripeCustomerID]
}
