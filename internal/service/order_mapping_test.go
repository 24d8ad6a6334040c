package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/subbridge/subbridge/internal/domain/order"
	"github.com/subbridge/subbridge/internal/domain/subscription"
)

func TestExtractShipping(t *testing.T) {
	tests := []struct {
		name     string
		lines    []order.ShippingLine
		expected subscription.ShippingMethod
	}{
		{name: "no_shipping_lines", expected: subscription.ShippingMethod{}},
		{
			name:     "first_line_only",
			lines:    []order.ShippingLine{{ID: 5, Title: "Standard", Price: "3.00"}, {ID: 6, Title: "Express", Price: "9.00"}},
			expected: subscription.ShippingMethod{ID: 5, Name: "Standard", Cost: "3.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractShipping(&order.Order{ShippingLines: tt.lines}))
		})
	}
}

func TestExtractOrderHeader(t *testing.T) {
	header := ExtractOrderHeader(&order.Order{ID: 100, CreatedAt: "2024-01-01T10:00:00-05:00", TotalPrice: "17.00"})
	assert.Equal(t, subscription.OrderHeader{
		OrderID:     100,
		OrderTypeID: "new",
		OrderDate:   "2024-01-01T10:00:00-05:00",
		TotalPrice:  "17.00",
	}, header)
}
