package order

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	ierr "github.com/subbridge/subbridge/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Order is the storefront order payload as delivered by the order-created webhook.
// It is read-only for the whole pipeline run.
type Order struct {
	ID             int64           `json:"id"`
	CreatedAt      string          `json:"created_at"`
	TotalPrice     string          `json:"total_price"`
	Customer       *Customer       `json:"customer,omitempty"`
	ShippingLines  []ShippingLine  `json:"shipping_lines"`
	LineItems      []LineItem      `json:"line_items"`
	NoteAttributes []NoteAttribute `json:"note_attributes"`
}

// LineItem is one purchased row of an order
type LineItem struct {
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	ProductID     int64           `json:"product_id"`
	VariantID     int64           `json:"variant_id"`
}

// Total returns price × quantity
func (li LineItem) Total() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// NoteAttribute is a free-form key/value pair attached to an order
type NoteAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ShippingLine describes a shipping method chosen at checkout. Price is kept as sent.
type ShippingLine struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
}

type Customer struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Parse decodes a webhook order payload
func Parse(data []byte) (*Order, error) {
	var o Order
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Order payload is not valid JSON").
			Mark(ierr.ErrValidation)
	}
	return &o, nil
}
