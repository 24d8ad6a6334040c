package subscription

import (
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RenewalFrequency identifies how often a subscription renews. The value is opaque
// to this service and forwarded as is.
type RenewalFrequency string

// DefaultRenewalFrequency is weekly.
const DefaultRenewalFrequency RenewalFrequency = "w1"

// OrderTypeNew marks a first-time subscription order.
const OrderTypeNew = "new"

// Request is the payload accepted by the subscription service's create endpoint.
type Request struct {
	APIKey                    string           `json:"apiKey"`
	SendSubscriptionIDToStore bool             `json:"sendSubscriptionIdToStore"`
	IncludesFreeTrial         bool             `json:"includesFreeTrial"`
	Subscription              Terms            `json:"subscription"`
	Customer                  CustomerIdentity `json:"customer"`
	Order                     OrderHeader      `json:"order"`
	SubscriptionItems         []ProductLine    `json:"subscriptionItems"`
}

// Terms carries the renewal cadence and the shipping method chosen for the first order.
type Terms struct {
	RenewalFrequency   RenewalFrequency `json:"renewalFrequencyId"`
	ShippingMethodID   int64            `json:"shippingMethodId,omitempty"`
	ShippingMethodName string           `json:"shippingMethodName,omitempty"`
	ShippingCost       string           `json:"shippingCost,omitempty"`
}

// ProductLine is one subscribed product. DiscountPercent is nil for trial lines.
type ProductLine struct {
	ProductID       ItemID   `json:"productId"`
	VariantID       ItemID   `json:"variationId"`
	Quantity        int      `json:"quantity"`
	DiscountPercent *float64 `json:"discountPercent,omitempty"`
}

// ItemID is a product or variant id. Ids taken from an order line item are sent
// as JSON numbers, ids read from a trial note are sent as strings.
type ItemID struct {
	value   string
	numeric bool
}

// NumericID wraps a line item id
func NumericID(id int64) ItemID {
	return ItemID{value: strconv.FormatInt(id, 10), numeric: true}
}

// TextID wraps an id parsed from free text
func TextID(id string) ItemID {
	return ItemID{value: id}
}

func (i ItemID) String() string {
	return i.value
}

func (i ItemID) MarshalJSON() ([]byte, error) {
	if i.numeric {
		return []byte(i.value), nil
	}
	return json.Marshal(i.value)
}

func (i *ItemID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*i = TextID(text)
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*i = NumericID(id)
	return nil
}

// CustomerIdentity is the order's customer plus the resolved payment customer reference.
type CustomerIdentity struct {
	ExternalID         int64  `json:"externalId,omitempty"`
	Email              string `json:"email,omitempty"`
	FirstName          string `json:"firstName,omitempty"`
	LastName           string `json:"lastName,omitempty"`
	PaymentCustomerRef string `json:"stripeCustomerId,omitempty"`
}

// IsEmpty reports whether the identity was built from an order without a customer.
func (c CustomerIdentity) IsEmpty() bool {
	return c == CustomerIdentity{}
}

// ShippingMethod is the first shipping line of an order.
type ShippingMethod struct {
	ID   int64
	Name string
	Cost string
}

type OrderHeader struct {
	OrderID     int64  `json:"orderId,omitempty"`
	OrderTypeID string `json:"orderTypeId"`
	OrderDate   string `json:"orderDate,omitempty"`
	TotalPrice  string `json:"totalPrice,omitempty"`
}
